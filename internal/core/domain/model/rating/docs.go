// Package rating contains the bidirectional rating records and their
// aggregation.
//
// Every rating is tied to a delivered order and flows between the two party
// kinds: a company rates the courier that delivered its order, and the
// courier rates the company. Each party can rate a given order at most once.
// Records are immutable; reputation values on the rated aggregates are
// recomputed from the full record set on every submission.
package rating
