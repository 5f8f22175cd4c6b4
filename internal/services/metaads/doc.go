// Package metaads is the gateway to the Meta Marketing API. It provides
// uniform request execution (timeouts, error classification), cursor
// pagination, bounded parallel fan-out, media uploads, and cached read
// endpoints. The gateway never retries; retry policy belongs to callers.
package metaads
