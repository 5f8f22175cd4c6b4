// Package api wires configuration into runnable workflows for the CLI.
// It builds the shared runtime (cache, store client, platform client,
// discovery and upload pipeline), guards sync execution with a file lock so
// only one sync touches an ad account at a time, and records finished runs in
// the journal.
package api
