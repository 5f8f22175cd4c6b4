// Package journal persists a history of sync runs and their per-asset
// outcomes to a local SQLite database. The journal exists for operator
// triage; the pipeline never reads it back.
package journal
