package client

import (
	"sort"
	"time"
)

// sortTasks orders incomplete before completed, newest first within
// each group. This mirrors the server's ordering contract so the
// local-file store and the remote store agree.
func sortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		return createdAt(tasks[i]).After(createdAt(tasks[j]))
	})
}

func createdAt(t Task) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, t.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return ts
}
