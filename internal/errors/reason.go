package errors

// MetaKeyReason is the metadata key holding the machine-readable reason of an error
const MetaKeyReason = "reason"

// Reason narrows an error code down to the exact rule that failed
type Reason string

// String returns the string representation of the reason
func (r Reason) String() string {
	return string(r)
}

// WithReason tags the error with a reason
func (e *Error) WithReason(reason Reason) *Error {
	return e.WithMeta(MetaKeyReason, reason)
}

// GetReason extracts the reason from an error, or "" when none is set
func GetReason(err error) Reason {
	meta := GetMeta(err)
	if meta == nil {
		return ""
	}

	switch r := meta[MetaKeyReason].(type) {
	case Reason:
		return r
	case string:
		return Reason(r)
	default:
		return ""
	}
}

// HasReason checks if an error carries the given reason
func HasReason(err error, reason Reason) bool {
	return GetReason(err) == reason
}
