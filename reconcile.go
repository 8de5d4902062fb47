package paperwave

import (
	"github.com/Paperwave/paperwave-go/internal/filemeta"
)

// reconcileOutcome is what one reconciliation pass decided: file projections
// to merge, tasks whose projections must be dropped, and the notification
// events the pass produced. The caller applies the store mutations under its
// lock and dispatches the events after releasing it.
type reconcileOutcome struct {
	files     []TaskFile
	drop      []string
	events    []Event
	completed bool
}

func (o *reconcileOutcome) merge(sub reconcileOutcome) {
	o.files = append(o.files, sub.files...)
	o.drop = append(o.drop, sub.drop...)
	o.events = append(o.events, sub.events...)
	o.completed = o.completed || sub.completed
}

// fileLookup resolves the current projection for an identity key, or nil.
type fileLookup func(sourceURL, taskID string) *TaskFile

// reconcileSnapshot diffs a freshly fetched listing against the previous task
// view. It never mutates its inputs; after applying the outcome the caller
// replaces the task list with next.
func reconcileSnapshot(prev, next []Task, lookup fileLookup, now int64) reconcileOutcome {
	byID := make(map[string]*Task, len(prev))
	for i := range prev {
		byID[prev[i].ID] = &prev[i]
	}
	var out reconcileOutcome
	for _, nt := range next {
		out.merge(reconcileTask(byID[nt.ID], nt, lookup, now))
	}
	return out
}

// reconcileTask diffs one fetched task against the previous view of it.
// It projects the embedded file map first, then detects the terminal
// transition. The old-status guards make every notification fire exactly
// once: repeated polls of an already-terminal task produce nothing.
func reconcileTask(old *Task, next Task, lookup fileLookup, now int64) reconcileOutcome {
	var out reconcileOutcome
	for path, info := range next.Files {
		out.files = append(out.files, projectFile(path, info, next.ID, lookup(path, next.ID), now))
	}
	if old == nil {
		return out
	}
	switch {
	case old.Status != StatusCompleted && next.Status == StatusCompleted:
		out.events = append(out.events, completedEvent(next.ID))
		out.drop = append(out.drop, next.ID)
		out.completed = true
	case !old.Status.Failure() && next.Status.Failure():
		out.events = append(out.events, failedEvent(next.ID, next.Error))
	}
	return out
}

// projectFile builds or refreshes the projection for one (path, task) pair.
// Metadata discovered earlier, such as a seeded size or first-seen time, is
// carried over so re-projection never loses it; only the status and
// timestamps move.
func projectFile(sourceURL string, info TaskFileInfo, taskID string, prior *TaskFile, now int64) TaskFile {
	f := TaskFile{
		Filename:      filemeta.Filename(sourceURL),
		Mimetype:      filemeta.MimeType(sourceURL),
		SourceURL:     sourceURL,
		ConnectorType: connectorFor(sourceURL),
		Status:        MapFileStatus(info.Status),
		TaskID:        taskID,
		CreatedAt:     info.CreatedAt,
		UpdatedAt:     info.UpdatedAt,
	}
	if prior != nil {
		f.Size = prior.Size
		if prior.Filename != "" {
			f.Filename = prior.Filename
		}
		if prior.Mimetype != "" {
			f.Mimetype = prior.Mimetype
		}
		if f.CreatedAt == 0 {
			f.CreatedAt = prior.CreatedAt
		}
	}
	if f.CreatedAt == 0 {
		f.CreatedAt = now
	}
	if f.UpdatedAt == 0 {
		f.UpdatedAt = now
	}
	return f
}

// seedFile builds the optimistic projection for one just-uploaded file.
func seedFile(pf PartialTaskFile, taskID string, now int64) TaskFile {
	f := TaskFile{
		Filename:      pf.Filename,
		Mimetype:      pf.Mimetype,
		SourceURL:     pf.SourceURL,
		Size:          pf.Size,
		ConnectorType: connectorFor(pf.SourceURL),
		Status:        FileStatusProcessing,
		TaskID:        taskID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if f.Filename == "" {
		f.Filename = filemeta.Filename(pf.SourceURL)
	}
	if f.Mimetype == "" {
		f.Mimetype = filemeta.MimeType(f.Filename)
	}
	return f
}

// connectorFor applies the sourcing rule: a relative path with separators
// came from a cloud connector, anything else is a direct upload.
func connectorFor(sourceURL string) ConnectorType {
	if filemeta.IsRemote(sourceURL) {
		return ConnectorRemoteStorage
	}
	return ConnectorLocal
}
