// Package courier contains the Courier aggregate.
//
// A courier is a person delivering orders for companies. The aggregate owns
// the courier's profile (name, phone, vehicle), operational flags (active,
// available, verified), the weekly working schedule, the last reported
// location, and the delivery counters and reputation values maintained by the
// rating and delivery flows.
//
// Eligibility is the central concept: IsEligibleAt combines the three flags
// with the working schedule into a single pure decision, so matching and
// acceptance share exactly one rule.
package courier
