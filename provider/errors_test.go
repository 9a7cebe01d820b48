package provider

import (
	"errors"
	"testing"
)

// Every known platform error string must map to its taxonomy kind; the
// matching rules are an implementation detail, this table is the contract.
func TestClassifyKnownProviderErrors(t *testing.T) {
	cases := []struct {
		msg  string
		want ErrorKind
	}{
		// User cancellation
		{"Canceled by user.", KindUserCancel},
		{"Authentication was canceled by the user.", KindUserCancel},
		{"User canceled the operation.", KindUserCancel},
		{"user declined the biometric prompt", KindUserCancel},
		// System cancellation
		{"Authentication was canceled by the system.", KindSystemCancel},
		{"Canceled by system.", KindSystemCancel},
		{"Authentication was canceled by application.", KindSystemCancel},
		{"App canceled authentication.", KindSystemCancel},
		// Lockout
		{"Biometry is locked out.", KindLockout},
		{"Authentication failed because there were too many failed attempts.", KindLockout},
		{"Biometric lockout is in effect.", KindLockout},
		// Enrollment
		{"No identities are enrolled.", KindNotEnrolled},
		{"Biometry is not enrolled.", KindNotEnrolled},
		// Passcode
		{"Passcode is not set on the device.", KindPasscodeNotSet},
		{"Passcode not set.", KindPasscodeNotSet},
		// Interactivity
		{"Authentication is not interactive.", KindNotInteractive},
		{"Displaying the required authentication UI is forbidden.", KindNotInteractive},
		// Availability
		{"Biometry is not available on this device.", KindNotAvailable},
		{"No biometry detected.", KindNotAvailable},
		// Match failure
		{"Authentication failed.", KindAuthenticationFailed},
		{"The biometric data failed to match.", KindAuthenticationFailed},
	}

	for _, tc := range cases {
		got := Classify(errors.New(tc.msg))
		if got.Kind != tc.want {
			t.Errorf("Classify(%q).Kind = %s, want %s", tc.msg, got.Kind, tc.want)
		}
		if got.Message != tc.msg {
			t.Errorf("Classify(%q) must preserve the original message, got %q", tc.msg, got.Message)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// Cancellation strings often embed "authentication"; they must not fall
	// through to the match-failure kind.
	got := Classify(errors.New("Authentication was canceled by the user."))
	if got.Kind != KindUserCancel {
		t.Errorf("cancel message classified as %s, want %s", got.Kind, KindUserCancel)
	}

	// "too many failed attempts" embeds "failed"; lockout must win.
	got = Classify(errors.New("Authentication failed because there were too many failed attempts."))
	if got.Kind != KindLockout {
		t.Errorf("lockout message classified as %s, want %s", got.Kind, KindLockout)
	}
}

func TestClassifyUnknownPreservesMessage(t *testing.T) {
	got := Classify(errors.New("sensor firmware rebooted unexpectedly"))
	if got.Kind != KindUnknown {
		t.Errorf("kind = %s, want %s", got.Kind, KindUnknown)
	}
	if got.Message != "sensor firmware rebooted unexpectedly" {
		t.Errorf("message not preserved: %q", got.Message)
	}
}

func TestDeclinedSentinelClassifiesAsUserCancel(t *testing.T) {
	got := Classify(ErrDeclined)
	if got.Kind != KindUserCancel {
		t.Errorf("ErrDeclined classified as %s, want %s", got.Kind, KindUserCancel)
	}
}
