// Package requests persists the outbox of update requests issued while
// offline (see models.UpdateRequest).
//
// Requests are appended by the offline updater in the same transaction that
// applies them to the entity cache, listed in issue order (Ordering, then
// Seq) by whatever reconciles them with the server, and acknowledged one by
// one with MarkReplayed. Rows are never rewritten: a replayed request keeps
// its verb, endpoint and body for auditing.
package requests
