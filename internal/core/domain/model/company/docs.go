// Package company contains the Company aggregate.
//
// A company creates orders and owns a delivery configuration consumed as
// defaults when its orders are created. Configuration changes go through a
// typed patch so only the four configurable values can ever be touched.
package company
