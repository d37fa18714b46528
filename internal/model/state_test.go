package model

import "testing"

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateAwaitingFormatChoice, false},
		{StateTransferring, false},
		{StateSent, true},
		{StateReset, true},
		{StateFailed, true},
	}

	for _, test := range tests {
		result := test.state.IsTerminal()
		if result != test.expected {
			t.Errorf("State(%s).IsTerminal() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestSessionKind_Valid(t *testing.T) {
	tests := []struct {
		kind     SessionKind
		expected bool
	}{
		{SessionKindVideo, true},
		{SessionKindAudio, true},
		{SessionKind(""), false},
		{SessionKind("playlist"), false},
	}

	for _, test := range tests {
		result := test.kind.Valid()
		if result != test.expected {
			t.Errorf("SessionKind(%q).Valid() = %v, expected %v", test.kind, result, test.expected)
		}
	}
}

func TestSessionKey(t *testing.T) {
	key := SessionKey(123456, 42)
	expected := "123456:42"
	if key != expected {
		t.Errorf("SessionKey(123456, 42) = %q, expected %q", key, expected)
	}

	// Distinct prompts in the same chat must produce distinct keys.
	if SessionKey(123456, 42) == SessionKey(123456, 43) {
		t.Error("expected distinct keys for distinct message IDs")
	}
}
