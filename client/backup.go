package client

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"todosync/domain/apperr"
)

// BackupFileName is the conventional name for an exported document.
const BackupFileName = "tasks.json"

// Export serializes tasks to w as an ordered JSON array. The input is
// the caller's in-memory list, written exactly as given, not re-fetched
// and not re-sorted.
func Export(w io.Writer, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode tasks: %v", apperr.ErrStore, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: write backup: %v", apperr.ErrStore, err)
	}
	return nil
}

// ExportFile writes tasks to a file at path.
func ExportFile(path string, tasks []Task) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", apperr.ErrStore, path, err)
	}
	defer f.Close()
	return Export(f, tasks)
}

// Import parses a backup document. It fails with apperr.ErrValidation
// when the top-level value is not an array or any element is missing
// or mistypes id, title, description, or dueDate.
func Import(r io.Reader) ([]Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read backup: %v", apperr.ErrStore, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", apperr.ErrValidation, err)
	}

	records, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: top-level value must be an array of tasks", apperr.ErrValidation)
	}

	tasks := make([]Task, 0, len(records))
	for i, record := range records {
		task, err := taskFromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", apperr.ErrValidation, i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ImportFile parses a backup document from a file at path.
func ImportFile(path string) ([]Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", apperr.ErrStore, path, err)
	}
	defer f.Close()
	return Import(f)
}

// taskFromRecord validates one element structurally. id, title and
// description are required strings; dueDate may be absent, null or a
// string; completed may be absent or a bool.
func taskFromRecord(record any) (Task, error) {
	obj, ok := record.(map[string]any)
	if !ok {
		return Task{}, fmt.Errorf("element is not an object")
	}

	task := Task{}

	id, ok := obj["id"].(string)
	if !ok {
		return Task{}, fmt.Errorf("missing or mistyped %q", "id")
	}
	task.ID = id

	title, ok := obj["title"].(string)
	if !ok {
		return Task{}, fmt.Errorf("missing or mistyped %q", "title")
	}
	task.Title = title

	description, ok := obj["description"].(string)
	if !ok {
		return Task{}, fmt.Errorf("missing or mistyped %q", "description")
	}
	task.Description = description

	if dueDate, present := obj["dueDate"]; present && dueDate != nil {
		s, ok := dueDate.(string)
		if !ok {
			return Task{}, fmt.Errorf("mistyped %q", "dueDate")
		}
		task.DueDate = s
	}

	if completed, present := obj["completed"]; present && completed != nil {
		b, ok := completed.(bool)
		if !ok {
			return Task{}, fmt.Errorf("mistyped %q", "completed")
		}
		task.Completed = b
	}

	if createdAt, present := obj["createdAt"]; present && createdAt != nil {
		s, ok := createdAt.(string)
		if !ok {
			return Task{}, fmt.Errorf("mistyped %q", "createdAt")
		}
		task.CreatedAt = s
	}

	return task, nil
}
