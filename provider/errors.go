package provider

import "strings"

// ErrorKind is the classified category of an authentication failure.
type ErrorKind string

const (
	KindNotAvailable         ErrorKind = "not_available"
	KindNotEnrolled          ErrorKind = "not_enrolled"
	KindLockout              ErrorKind = "lockout"
	KindUserCancel           ErrorKind = "user_cancel"
	KindSystemCancel         ErrorKind = "system_cancel"
	KindAuthenticationFailed ErrorKind = "authentication_failed"
	KindPasscodeNotSet       ErrorKind = "passcode_not_set"
	KindNotInteractive       ErrorKind = "not_interactive"
	KindValidation           ErrorKind = "validation_error"
	KindUnknown              ErrorKind = "unknown"
)

// AuthError is a classified authentication failure. It is returned as part
// of a result value, never thrown across the public API boundary.
type AuthError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *AuthError) Error() string { return e.Message }

func NewAuthError(kind ErrorKind, message string) *AuthError {
	return &AuthError{Kind: kind, Message: message}
}

// classificationRules maps known provider error substrings to taxonomy
// kinds. The provider boundary is not strongly typed, so matching on the
// raw message is the contract here; rules are checked in order and the
// first match wins. Cancellation rules precede the generic "authentication
// failed" rule because several platform cancel messages contain it.
var classificationRules = []struct {
	substr string
	kind   ErrorKind
}{
	{"canceled by the user", KindUserCancel},
	{"canceled by user", KindUserCancel},
	{"user canceled", KindUserCancel},
	{"user cancel", KindUserCancel},
	{"declined the biometric prompt", KindUserCancel},
	{"canceled by the system", KindSystemCancel},
	{"canceled by system", KindSystemCancel},
	{"canceled by application", KindSystemCancel},
	{"app canceled", KindSystemCancel},
	{"system cancel", KindSystemCancel},
	{"biometry is locked", KindLockout},
	{"locked out", KindLockout},
	{"lockout", KindLockout},
	{"too many failed attempts", KindLockout},
	{"no identities are enrolled", KindNotEnrolled},
	{"not enrolled", KindNotEnrolled},
	{"passcode is not set", KindPasscodeNotSet},
	{"passcode not set", KindPasscodeNotSet},
	{"not interactive", KindNotInteractive},
	{"ui is forbidden", KindNotInteractive},
	{"not available", KindNotAvailable},
	{"no biometry", KindNotAvailable},
	{"failed to match", KindAuthenticationFailed},
	{"authentication failed", KindAuthenticationFailed},
}

// Classify maps a raw provider error onto the taxonomy, preserving the
// original message. Unmatched errors classify as KindUnknown.
func Classify(err error) *AuthError {
	msg := err.Error()
	lower := strings.ToLower(msg)
	for _, rule := range classificationRules {
		if strings.Contains(lower, rule.substr) {
			return &AuthError{Kind: rule.kind, Message: msg}
		}
	}
	return &AuthError{Kind: KindUnknown, Message: msg}
}
