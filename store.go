package paperwave

// taskStore holds the tracker's current view of tasks and file projections.
// It does no locking of its own: the owning Tracker serializes every mutation
// and snapshot read, so each update sees the previous value exactly.
type taskStore struct {
	tasks []Task
	files []TaskFile
}

// upsertTasks replaces the task list with a freshly fetched snapshot. Callers
// must have diffed the snapshot against the previous contents first; applying
// one blindly skips transition detection.
func (s *taskStore) upsertTasks(next []Task) {
	s.tasks = next
}

// mergeTask inserts t when no task shares its id, otherwise replaces the
// existing entry in place. Used by the burst path, which learns about a
// single task at a time.
func (s *taskStore) mergeTask(t Task) {
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID {
			s.tasks[i] = t
			return
		}
	}
	s.tasks = append(s.tasks, t)
}

// addTask inserts an optimistic placeholder for a just-submitted job so the
// UI has an entry before the server lists it. It reports false when the id is
// already present.
func (s *taskStore) addTask(id string, now int64) bool {
	if s.taskByID(id) != nil {
		return false
	}
	s.tasks = append(s.tasks, Task{ID: id, Status: StatusPending, CreatedAt: now, UpdatedAt: now})
	return true
}

// removeTask removes exactly one task by id, leaving its file projections
// untouched. It reports whether a task was removed.
func (s *taskStore) removeTask(id string) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// mergeFile inserts f when no entry shares its (source_url, task_id)
// identity, otherwise replaces the existing entry in place.
func (s *taskStore) mergeFile(f TaskFile) {
	for i := range s.files {
		if s.files[i].SourceURL == f.SourceURL && s.files[i].TaskID == f.TaskID {
			s.files[i] = f
			return
		}
	}
	s.files = append(s.files, f)
}

// dropFilesForTask removes every file projection owned by the given task.
func (s *taskStore) dropFilesForTask(taskID string) {
	kept := s.files[:0]
	for _, f := range s.files {
		if f.TaskID != taskID {
			kept = append(kept, f)
		}
	}
	s.files = kept
}

// taskByID returns a pointer into the task list, or nil.
func (s *taskStore) taskByID(id string) *Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

// fileByKey returns a pointer into the file list for the identity key, or nil.
func (s *taskStore) fileByKey(sourceURL, taskID string) *TaskFile {
	for i := range s.files {
		if s.files[i].SourceURL == sourceURL && s.files[i].TaskID == taskID {
			return &s.files[i]
		}
	}
	return nil
}

// snapshotTasks returns a copy of the task list safe to hand out.
func (s *taskStore) snapshotTasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// snapshotFiles returns a copy of the file projections safe to hand out.
func (s *taskStore) snapshotFiles() []TaskFile {
	out := make([]TaskFile, len(s.files))
	copy(out, s.files)
	return out
}
