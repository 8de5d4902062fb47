package paperwave

// Task represents a server-side ingestion job: a file upload, a folder scan
// or a cloud-connector sync. It is the unit the listing endpoint reports on.
type Task struct {
	// ID is the unique identifier assigned by the server.
	ID string `json:"id"`
	// Status is the current lifecycle state of the job.
	Status Status `json:"status"`
	// TotalFiles is the number of files the job covers.
	TotalFiles int `json:"total_files,omitempty"`
	// ProcessedFiles is the number of files the pipeline has finished with.
	ProcessedFiles int `json:"processed_files,omitempty"`
	// SuccessfulFiles counts files ingested without error.
	SuccessfulFiles int `json:"successful_files,omitempty"`
	// FailedFiles counts files the pipeline rejected.
	FailedFiles int `json:"failed_files,omitempty"`
	// RunningFiles counts files currently being fetched or parsed.
	RunningFiles int `json:"running_files,omitempty"`
	// PendingFiles counts files not yet picked up.
	PendingFiles int `json:"pending_files,omitempty"`
	// CreatedAt is the timestamp (ms) when the job was accepted.
	CreatedAt int64 `json:"created_at,omitempty"`
	// UpdatedAt is the timestamp (ms) of the last server-side change.
	UpdatedAt int64 `json:"updated_at,omitempty"`
	// Error is the human-readable failure reason, present only in terminal
	// failure states.
	Error string `json:"error,omitempty"`
	// Files maps each file path the job handles to its embedded status record.
	Files map[string]TaskFileInfo `json:"files,omitempty"`
}

// TaskFileInfo is the per-file status record embedded in a task snapshot.
type TaskFileInfo struct {
	Status    Status `json:"status"`
	CreatedAt int64  `json:"created_at,omitempty"`
	UpdatedAt int64  `json:"updated_at,omitempty"`
}

// TaskFile is the tracker's projection of one in-flight file, derived from
// the owning task's embedded file map. Its identity is (SourceURL, TaskID):
// the same path may appear under different jobs without colliding.
type TaskFile struct {
	// Filename is the base name of the file.
	Filename string `json:"filename"`
	// Mimetype is guessed from the file extension when not seeded explicitly.
	Mimetype string `json:"mimetype,omitempty"`
	// SourceURL is the path key from the owning task's file map.
	SourceURL string `json:"source_url"`
	// Size is the file size in bytes when known.
	Size int64 `json:"size,omitempty"`
	// ConnectorType records where the file originated.
	ConnectorType ConnectorType `json:"connector_type"`
	// Status is the projected file state.
	Status FileStatus `json:"status"`
	// TaskID is the id of the owning task.
	TaskID string `json:"task_id"`
	// CreatedAt is the timestamp (ms) when the tracker first saw the file.
	CreatedAt int64 `json:"created_at,omitempty"`
	// UpdatedAt is the timestamp (ms) of the last projected change.
	UpdatedAt int64 `json:"updated_at,omitempty"`
}

// PartialTaskFile seeds an optimistic file entry right after a client-side
// upload, before the server lists it. SourceURL is required; Filename,
// Mimetype and Size are inferred from the path when left empty.
type PartialTaskFile struct {
	SourceURL string `json:"source_url"`
	Filename  string `json:"filename,omitempty"`
	Mimetype  string `json:"mimetype,omitempty"`
	Size      int64  `json:"size,omitempty"`
}
