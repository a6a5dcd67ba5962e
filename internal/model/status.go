package model

// TaskStatus represents the status of a thumbnail acquisition task
type TaskStatus string

const (
	// TaskStatusQueued means the task is waiting in the FIFO queue
	TaskStatusQueued TaskStatus = "Queued"

	// TaskStatusActive means a network request for the thumbnail is in flight
	TaskStatusActive TaskStatus = "Active"

	// TaskStatusRetrying means the task is waiting out a retry delay
	TaskStatusRetrying TaskStatus = "Retrying"

	// TaskStatusSucceeded means the thumbnail was fetched successfully
	TaskStatusSucceeded TaskStatus = "Succeeded"

	// TaskStatusCancelled means the task was cancelled; this is not an error
	TaskStatusCancelled TaskStatus = "Cancelled"

	// TaskStatusFailed means the task exhausted its retry budget or hit an
	// unrecoverable response
	TaskStatusFailed TaskStatus = "Failed"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task still owns queue or network resources
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusQueued || ts == TaskStatusActive || ts == TaskStatusRetrying
}

// IsTerminal returns true if the task reached a final state (succeeded,
// cancelled, or failed)
func (ts TaskStatus) IsTerminal() bool {
	return ts == TaskStatusSucceeded || ts == TaskStatusCancelled || ts == TaskStatusFailed
}
