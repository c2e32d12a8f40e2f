package bridge

import (
	"errors"
	"fmt"
	"time"

	"github.com/olbridge/outlook-mcp/internal/store"
)

// Task status codes used by the store.
const (
	taskStatusNotStarted = 0
	taskStatusInProgress = 1
	taskStatusComplete   = 2
)

// ListTasks lists tasks, incomplete only unless includeCompleted is set.
// Completion filtering is pushed to the store when possible and re-checked
// locally.
func (b *Bridge) ListTasks(includeCompleted bool) []Task {
	tasks := []Task{}

	folder, err := b.acc.FolderByName(store.FolderTasks)
	if err != nil {
		b.log.Error().Err(err).Msg("tasks folder lookup failed")
		return tasks
	}
	items, err := folder.Items()
	if err != nil {
		b.log.Error().Err(err).Msg("tasks items lookup failed")
		return tasks
	}

	if !includeCompleted {
		if restricted, err := items.Restrict("[Complete] = False"); err == nil {
			items = restricted
		}
	}

	cursor := items.Cursor()
	faults := 0
	for {
		item, err := cursor.Next()
		if err != nil {
			faults++
			if faults >= cursorFaultLimit {
				b.log.Error().Err(err).Msg("task iteration aborted, cursor keeps failing")
				break
			}
			continue
		}
		faults = 0
		if item == nil {
			break
		}

		task, ok := taskFromItem(item)
		if !ok {
			continue
		}
		if !includeCompleted && task.Complete {
			continue
		}
		tasks = append(tasks, task)
	}

	return tasks
}

// GetTask returns full task details by identity.
func (b *Bridge) GetTask(id string) (*Task, error) {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("item lookup failed: %w", err)
	}
	task, ok := taskFromItem(item)
	if !ok {
		return nil, fmt.Errorf("task fields unreadable")
	}
	return &task, nil
}

func taskFromItem(item store.Item) (Task, bool) {
	id, err := item.ID()
	if err != nil || id == "" {
		return Task{}, false
	}

	due := ""
	if t := optTime(item, "DueDate"); !t.IsZero() {
		due = t.Format("2006-01-02")
	}

	return Task{
		ID:              id,
		Subject:         optString(item, "Subject", "(No Subject)"),
		Body:            optString(item, "Body", ""),
		DueDate:         due,
		Status:          optInt(item, "Status", 0),
		Priority:        optInt(item, "Importance", 1),
		Complete:        optBool(item, "Complete", false),
		PercentComplete: optInt(item, "PercentComplete", 0),
	}, true
}

// CreateTask creates a task and returns its identity. Due dates are pinned
// to noon to avoid timezone boundary drift.
func (b *Bridge) CreateTask(subject, body string, dueDate string, importance int) (string, error) {
	item, err := b.createTaskItem()
	if err != nil {
		return "", fmt.Errorf("task creation failed: %w", err)
	}

	if err := item.Set("Subject", subject); err != nil {
		return "", fmt.Errorf("setting Subject failed: %w", err)
	}
	if err := item.Set("Body", body); err != nil {
		return "", fmt.Errorf("setting Body failed: %w", err)
	}
	if dueDate != "" {
		due, err := time.ParseInLocation("2006-01-02", dueDate, time.Local)
		if err != nil {
			return "", fmt.Errorf("due date %q invalid: %w", dueDate, err)
		}
		due = due.Add(12 * time.Hour)
		if err := item.Set("DueDate", due); err != nil {
			return "", fmt.Errorf("setting DueDate failed: %w", err)
		}
	}
	if err := item.Set("Importance", importance); err != nil {
		return "", fmt.Errorf("setting Importance failed: %w", err)
	}

	if err := item.Save(); err != nil {
		return "", fmt.Errorf("save failed: %w", err)
	}
	id, err := item.ID()
	if err != nil {
		return "", fmt.Errorf("identity read failed: %w", err)
	}
	return id, nil
}

func (b *Bridge) createTaskItem() (store.Item, error) {
	if folder, err := b.acc.FolderByName(store.FolderTasks); err == nil {
		if item, err := folder.AddItem(); err == nil {
			return item, nil
		}
	}
	return b.acc.CreateItem(store.ClassTask)
}

// CompleteTask marks a task complete.
func (b *Bridge) CompleteTask(id string) error {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	if err := item.Set("Complete", true); err != nil {
		return fmt.Errorf("setting Complete failed: %w", err)
	}
	if err := item.Set("PercentComplete", 100); err != nil {
		return fmt.Errorf("setting PercentComplete failed: %w", err)
	}
	if err := item.Set("Status", taskStatusComplete); err != nil {
		return fmt.Errorf("setting Status failed: %w", err)
	}
	if err := item.Save(); err != nil {
		return fmt.Errorf("save failed: %w", err)
	}
	return nil
}

// DeleteTask deletes a task by identity.
func (b *Bridge) DeleteTask(id string) error {
	item, err := b.acc.ItemByID(id)
	if err != nil {
		return fmt.Errorf("item lookup failed: %w", err)
	}
	if err := item.Delete(); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
