// Package task implements the Task aggregate root for the dispatch domain.
//
// A Task is a unit of work needing exactly one actor assignment. The package
// provides:
//   - Task: The aggregate root with lifecycle management and claim semantics
//   - Status: The state machine (Created -> Assigned | Exhausted | Cancelled)
//   - Kind: The assignment classification (fulfillment vs carriage)
//
// The aggregate enforces the protocol's core invariant in memory: at most one
// assignee per task, immutable once set. The durable race arbitration lives in
// the repository's conditional update; both layers enforce the same rule.
package task
