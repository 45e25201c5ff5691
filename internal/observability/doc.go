// Package observability provides the append-only event log for task
// lifecycle events and a metrics calculator that aggregates it.
//
// The event log is the only thing taskdesk writes to disk: the task store
// itself is in-memory, but an audit trail of creates, updates, status
// changes, and removals survives the session for diagnostics.
package observability
