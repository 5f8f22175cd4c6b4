// Package preflight verifies the local environment and remote collaborators
// are usable before a sync run: directory permissions, asset store
// reachability, and platform credentials.
package preflight
