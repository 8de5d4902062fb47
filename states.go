package paperwave

// Status represents the lifecycle state of an ingestion task as reported by
// the workspace server. Use the exported constants (StatusPending,
// StatusCompleted, etc.) instead of raw strings to avoid typos.
type Status string

const (
	// StatusPending marks a task accepted by the server but not yet picked up.
	StatusPending Status = "pending"
	// StatusRunning marks a task whose files are being fetched.
	StatusRunning Status = "running"
	// StatusProcessing marks a task whose files are being parsed and indexed.
	StatusProcessing Status = "processing"
	// StatusCompleted marks a task that finished with every file ingested.
	StatusCompleted Status = "completed"
	// StatusFailed marks a task that finished with one or more files rejected.
	StatusFailed Status = "failed"
	// StatusError marks a task aborted by a server-side fault.
	StatusError Status = "error"
)

// AllStatuses lists every valid task status in lifecycle order.
var AllStatuses = []Status{StatusPending, StatusRunning, StatusProcessing, StatusCompleted, StatusFailed, StatusError}

// String returns the raw string value of the status.
func (s Status) String() string { return string(s) }

// Terminal reports whether the status is absorbing: a task that reaches
// completed, failed or error never transitions again.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusError
}

// Failure reports whether the status is a terminal failure.
func (s Status) Failure() bool { return s == StatusFailed || s == StatusError }

// ParseStatus converts a string into a Status, returning an error for unknown values.
func ParseStatus(s string) (Status, error) {
	switch s {
	case string(StatusPending):
		return StatusPending, nil
	case string(StatusRunning):
		return StatusRunning, nil
	case string(StatusProcessing):
		return StatusProcessing, nil
	case string(StatusCompleted):
		return StatusCompleted, nil
	case string(StatusFailed):
		return StatusFailed, nil
	case string(StatusError):
		return StatusError, nil
	default:
		return "", ErrUnknownStatus
	}
}

// FileStatus represents the tracker's projection of one file's state.
type FileStatus string

const (
	// FileStatusProcessing covers files the pipeline still owns.
	FileStatusProcessing FileStatus = "processing"
	// FileStatusActive marks files fully ingested and queryable.
	FileStatusActive FileStatus = "active"
	// FileStatusFailed marks files the pipeline rejected.
	FileStatusFailed FileStatus = "failed"
)

// MapFileStatus derives a projection status from the raw per-file status
// embedded in a task snapshot. The mapping is total: pending and running mean
// the pipeline still owns the file, completed means it is queryable, failed
// stays failed, and any unknown value conservatively maps to processing.
func MapFileStatus(raw Status) FileStatus {
	switch raw {
	case StatusPending, StatusRunning:
		return FileStatusProcessing
	case StatusCompleted:
		return FileStatusActive
	case StatusFailed:
		return FileStatusFailed
	default:
		return FileStatusProcessing
	}
}

// ConnectorType identifies where a tracked file originated.
type ConnectorType string

const (
	// ConnectorLocal is a file uploaded directly from the user's machine.
	ConnectorLocal ConnectorType = "local"
	// ConnectorRemoteStorage is a file discovered through a cloud-connector sync.
	ConnectorRemoteStorage ConnectorType = "remote-storage"
)
