// Package assembly turns uploaded media identifiers and rotating copy
// variants into the ad platform's label-indirection creative specification.
// Assembly is pure: it performs no I/O and leaves submission to the platform
// gateway.
package assembly
