// Package access defines the outcome type of the company access cascade.
// A blocked company is a normal, expected outcome and is represented as a
// value, not an error; only infrastructure failures surface as errors.
package access

// Reason identifies why the cascade denied access. The codes are stable and
// translated to localized messages at the presentation layer.
type Reason string

const (
	// ReasonBlockedPlatform means the license-bearing node (the company
	// itself, or its whitelabel partner) has no currently valid license.
	ReasonBlockedPlatform Reason = "ERR_ACCESS_BLOCKED_PLATFORM"
	// ReasonBlockedPartner means the whitelabel partner manually blocked
	// this child company, independent of any license state.
	ReasonBlockedPartner Reason = "ERR_ACCESS_BLOCKED_PARTNER"
)

// Decision is the tagged outcome of an access evaluation.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason,omitempty"`
}

// Granted returns an allowing decision.
func Granted() Decision {
	return Decision{Allowed: true}
}

// Denied returns a blocking decision with the given reason.
func Denied(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
