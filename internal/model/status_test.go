package model

import "testing"

func TestJobState_IsActive(t *testing.T) {
	tests := []struct {
		state    JobState
		expected bool
	}{
		{JobStateIdle, false},
		{JobStateRunning, true},
		{JobStateSucceeded, false},
		{JobStateFailed, false},
	}

	for _, test := range tests {
		result := test.state.IsActive()
		if result != test.expected {
			t.Errorf("JobState(%s).IsActive() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestJobState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    JobState
		expected bool
	}{
		{JobStateIdle, false},
		{JobStateRunning, false},
		{JobStateSucceeded, true},
		{JobStateFailed, true},
	}

	for _, test := range tests {
		result := test.state.IsTerminal()
		if result != test.expected {
			t.Errorf("JobState(%s).IsTerminal() = %v, expected %v", test.state, result, test.expected)
		}
	}
}

func TestJobState_String(t *testing.T) {
	state := JobStateRunning
	expected := "Running"
	result := state.String()

	if result != expected {
		t.Errorf("JobState.String() = %s, expected %s", result, expected)
	}
}
