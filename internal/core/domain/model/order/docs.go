// Package order contains the Order aggregate and its lifecycle state machine.
//
// The aggregate is the only place order status is allowed to change. Every
// transition is checked against an exhaustive allowed-transition table,
// appended to an immutable audit trail, and stamped onto the matching
// timestamp field the first time its target state is entered:
//
//	pending ──> accepted ──> picked_up ──> in_transit ──> delivered
//	   │            │             └──────────────────────────┘
//	   └────────────┴──> cancelled
//
// delivered and cancelled are terminal. No transition targets pending, so
// courier assignment happens exactly once per order. Ratings can only be
// attached to delivered orders, one per direction, each settable once.
package order
