// Package kernel contains the shared value objects of the dispatch domain:
// UUID identities, geographic points, and public tracking codes.
// All types are immutable once constructed and validate themselves through
// the constructor-guard pattern, so a zero value is always detectable.
package kernel
