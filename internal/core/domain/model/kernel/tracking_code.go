package kernel

import (
	"math/rand/v2"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
)

// trackingCodePrefix is the fixed prefix of every public tracking code.
const trackingCodePrefix = "MR"

// trackingCodeAlphabet is the base36 alphabet used for the random suffix.
const trackingCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrTrackingCodeIsRequired is returned when an empty tracking code is used
// where a valid one is required.
var ErrTrackingCodeIsRequired = errs.NewValueIsRequiredError("trackingCode")

// TrackingCode is the public, immutable identifier a customer uses to follow
// an order without authenticating. It is generated once at order creation and
// never changes.
type TrackingCode string

// NewTrackingCode generates a code of the form MR<6 digits><4 base36 chars>:
// the digits come from the low end of the current unix-millisecond clock and
// the tail is random, which keeps codes short, URL-safe, and practically
// unique within the retention window of an order book.
func NewTrackingCode() TrackingCode {
	millis := time.Now().UnixMilli()
	digits := millis % 1_000_000

	var sb strings.Builder
	sb.Grow(len(trackingCodePrefix) + 10)
	sb.WriteString(trackingCodePrefix)
	for div := int64(100_000); div >= 1; div /= 10 {
		sb.WriteByte(byte('0' + (digits/div)%10))
	}
	for range 4 {
		sb.WriteByte(trackingCodeAlphabet[rand.IntN(len(trackingCodeAlphabet))]) //nolint:gosec // not a secret
	}

	return TrackingCode(sb.String())
}

// String returns the code as a plain string.
func (c TrackingCode) String() string {
	return string(c)
}

// Validate rejects the empty code.
func (c TrackingCode) Validate() error {
	if c == "" {
		return ErrTrackingCodeIsRequired
	}
	return nil
}
