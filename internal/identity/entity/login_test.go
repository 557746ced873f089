package entity

import "testing"

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FlowAwaitingEmail.String(), "AwaitingEmail"},
		{FlowAwaitingCode.String(), "AwaitingCode"},
		{FlowState(9).String(), "Unknown"},
		{SubmissionIdle.String(), "Idle"},
		{SubmissionInFlight.String(), "InFlight"},
		{KeyBackspace.String(), "Backspace"},
		{KeyArrowLeft.String(), "ArrowLeft"},
		{KeyArrowRight.String(), "ArrowRight"},
		{KeyOther.String(), "Other"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestLoginStateCode(t *testing.T) {
	st := LoginState{Slots: []string{"1", "2", "", "4"}}
	if got := st.Code(); got != "124" {
		t.Errorf("Code() = %q, want 124", got)
	}
}
