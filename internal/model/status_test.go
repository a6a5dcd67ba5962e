package model

import "testing"

func TestTaskStatus_String(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected string
	}{
		{TaskStatusQueued, "Queued"},
		{TaskStatusActive, "Active"},
		{TaskStatusRetrying, "Retrying"},
		{TaskStatusSucceeded, "Succeeded"},
		{TaskStatusCancelled, "Cancelled"},
		{TaskStatusFailed, "Failed"},
	}

	for _, test := range tests {
		if result := test.status.String(); result != test.expected {
			t.Errorf("String() for %v = %s, expected %s", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusQueued, true},
		{TaskStatusActive, true},
		{TaskStatusRetrying, true},
		{TaskStatusSucceeded, false},
		{TaskStatusCancelled, false},
		{TaskStatusFailed, false},
	}

	for _, test := range tests {
		if result := test.status.IsActive(); result != test.expected {
			t.Errorf("IsActive() for %s = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusQueued, false},
		{TaskStatusActive, false},
		{TaskStatusRetrying, false},
		{TaskStatusSucceeded, true},
		{TaskStatusCancelled, true},
		{TaskStatusFailed, true},
	}

	for _, test := range tests {
		if result := test.status.IsTerminal(); result != test.expected {
			t.Errorf("IsTerminal() for %s = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTaskStatus_NoOverlap(t *testing.T) {
	all := []TaskStatus{
		TaskStatusQueued, TaskStatusActive, TaskStatusRetrying,
		TaskStatusSucceeded, TaskStatusCancelled, TaskStatusFailed,
	}

	for _, status := range all {
		if status.IsActive() && status.IsTerminal() {
			t.Errorf("Status %s is both active and terminal", status)
		}
		if !status.IsActive() && !status.IsTerminal() {
			t.Errorf("Status %s is neither active nor terminal", status)
		}
	}
}
