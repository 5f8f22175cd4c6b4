// Package cache provides the process-wide TTL cache that memoizes expensive
// remote reads. Eviction is lazy: entries are removed when a read or an
// explicit invalidation encounters them, never by a background sweeper.
package cache
