// Package services contains domain services that work across aggregates.
//
// The match engine ranks pending orders for a courier and eligible couriers
// for an order. It never mutates its inputs: callers pass snapshots and the
// engine returns freshly ordered slices.
package services
