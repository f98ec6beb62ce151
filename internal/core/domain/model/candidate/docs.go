// Package candidate implements the Candidate aggregate for the dispatch domain.
//
// A Candidate is an actor eligible to receive, accept, or deny offers for one
// kind of task. The aggregate tracks availability, the single flag that gates
// participation in candidate discovery; the durable claim arbitration lives in
// the task repository, so availability is allowed to lag briefly behind it.
package candidate
