package model

// JobState represents the lifecycle state of the single in-flight job
type JobState string

const (
	// JobStateIdle means no job is running and a new one may be submitted
	JobStateIdle JobState = "Idle"

	// JobStateRunning means a worker is executing the job
	JobStateRunning JobState = "Running"

	// JobStateSucceeded means the job finished and its result is being reported
	JobStateSucceeded JobState = "Succeeded"

	// JobStateFailed means the job finished with an error that is being reported
	JobStateFailed JobState = "Failed"
)

// String returns the string representation of JobState
func (js JobState) String() string {
	return string(js)
}

// IsActive returns true while a worker owns the job
func (js JobState) IsActive() bool {
	return js == JobStateRunning
}

// IsTerminal returns true for the outcome states reached before returning to idle
func (js JobState) IsTerminal() bool {
	return js == JobStateSucceeded || js == JobStateFailed
}

// JobKind identifies which operation a job performs
type JobKind string

const (
	JobKindInfo     JobKind = "info"
	JobKindDownload JobKind = "download"
)
