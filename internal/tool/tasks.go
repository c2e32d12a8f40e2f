package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olbridge/outlook-mcp/internal/bridge"
	"github.com/olbridge/outlook-mcp/internal/store"
)

// ListTasksRequest selects which tasks to include.
type ListTasksRequest struct {
	IncludeCompleted bool `json:"include_completed,omitempty" jsonschema:"include completed tasks"`
}

// ListTasksResponse contains the task list.
type ListTasksResponse struct {
	Tasks        []bridge.Task `json:"tasks" jsonschema:"array of tasks"`
	TotalResults int           `json:"total_results" jsonschema:"number of tasks returned"`
}

type listTasksSvc interface {
	ListTasks(ctx context.Context, includeCompleted bool) ([]bridge.Task, error)
}

// NewListTasks creates a new ListTasks tool.
func NewListTasks(svc listTasksSvc) *ListTasks {
	return &ListTasks{svc: svc}
}

// ListTasks lists tasks, open ones by default.
type ListTasks struct {
	svc listTasksSvc
}

// ListTasks returns the tasks.
func (t *ListTasks) ListTasks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTasksRequest,
) (*mcp.CallToolResult, ListTasksResponse, error) {
	tasks, err := t.svc.ListTasks(ctx, input.IncludeCompleted)
	if err != nil {
		return nil, ListTasksResponse{}, fmt.Errorf("svc.ListTasks failed: %w", err)
	}
	return nil, ListTasksResponse{Tasks: tasks, TotalResults: len(tasks)}, nil
}

// GetTaskRequest identifies a task.
type GetTaskRequest struct {
	EntryID string `json:"entry_id" jsonschema:"task entry ID"`
}

// GetTaskResponse carries the task, or found=false when the entry ID does
// not resolve.
type GetTaskResponse struct {
	Found bool         `json:"found" jsonschema:"whether the task was found"`
	Task  *bridge.Task `json:"task,omitempty" jsonschema:"task details"`
}

type getTaskSvc interface {
	GetTask(ctx context.Context, id string) (*bridge.Task, error)
}

// NewGetTask creates a new GetTask tool.
func NewGetTask(svc getTaskSvc) *GetTask {
	return &GetTask{svc: svc}
}

// GetTask retrieves one task.
type GetTask struct {
	svc getTaskSvc
}

// GetTask reads a task by entry ID.
func (t *GetTask) GetTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetTaskRequest,
) (*mcp.CallToolResult, GetTaskResponse, error) {
	task, err := t.svc.GetTask(ctx, input.EntryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, GetTaskResponse{Found: false}, nil
		}
		return nil, GetTaskResponse{}, fmt.Errorf("svc.GetTask failed: %w", err)
	}
	return nil, GetTaskResponse{Found: true, Task: task}, nil
}

// CreateTaskRequest describes a new task.
type CreateTaskRequest struct {
	Subject string `json:"subject" jsonschema:"task subject"`
	Body    string `json:"body,omitempty" jsonschema:"task body"`
	DueDate string `json:"due_date,omitempty" jsonschema:"due date, YYYY-MM-DD"`
	// Importance is 0 low, 1 normal, 2 high.
	Importance int `json:"importance,omitempty" jsonschema:"importance: 0 low, 1 normal, 2 high"`
}

// CreateTaskResponse reports the new task identity.
type CreateTaskResponse struct {
	Status  string `json:"status" jsonschema:"created on success"`
	EntryID string `json:"entry_id" jsonschema:"entry ID of the new task"`
}

type createTaskSvc interface {
	CreateTask(ctx context.Context, subject, body, dueDate string, importance int) (string, error)
}

// NewCreateTask creates a new CreateTask tool.
func NewCreateTask(svc createTaskSvc) *CreateTask {
	return &CreateTask{svc: svc}
}

// CreateTask creates a task item.
type CreateTask struct {
	svc createTaskSvc
}

// CreateTask creates the task.
func (t *CreateTask) CreateTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateTaskRequest,
) (*mcp.CallToolResult, CreateTaskResponse, error) {
	if input.Subject == "" {
		return nil, CreateTaskResponse{}, fmt.Errorf("subject is required")
	}
	if input.Importance < 0 || input.Importance > 2 {
		return nil, CreateTaskResponse{}, fmt.Errorf("importance must be 0, 1 or 2")
	}

	id, err := t.svc.CreateTask(ctx, input.Subject, input.Body, input.DueDate, input.Importance)
	if err != nil {
		return nil, CreateTaskResponse{}, fmt.Errorf("svc.CreateTask failed: %w", err)
	}
	return nil, CreateTaskResponse{Status: "created", EntryID: id}, nil
}

// CompleteTaskRequest marks a task complete.
type CompleteTaskRequest struct {
	EntryID string `json:"entry_id" jsonschema:"task entry ID"`
}

// CompleteTaskResponse reports the outcome.
type CompleteTaskResponse struct {
	Status string `json:"status" jsonschema:"completed on success"`
}

type completeTaskSvc interface {
	CompleteTask(ctx context.Context, id string) error
}

// NewCompleteTask creates a new CompleteTask tool.
func NewCompleteTask(svc completeTaskSvc) *CompleteTask {
	return &CompleteTask{svc: svc}
}

// CompleteTask marks a task as done.
type CompleteTask struct {
	svc completeTaskSvc
}

// CompleteTask marks the task complete.
func (t *CompleteTask) CompleteTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompleteTaskRequest,
) (*mcp.CallToolResult, CompleteTaskResponse, error) {
	if err := t.svc.CompleteTask(ctx, input.EntryID); err != nil {
		return nil, CompleteTaskResponse{}, fmt.Errorf("svc.CompleteTask failed: %w", err)
	}
	return nil, CompleteTaskResponse{Status: "completed"}, nil
}

// DeleteTaskRequest deletes a task.
type DeleteTaskRequest struct {
	EntryID string `json:"entry_id" jsonschema:"task entry ID"`
}

// DeleteTaskResponse reports the outcome.
type DeleteTaskResponse struct {
	Status string `json:"status" jsonschema:"deleted on success"`
}

type deleteTaskSvc interface {
	DeleteTask(ctx context.Context, id string) error
}

// NewDeleteTask creates a new DeleteTask tool.
func NewDeleteTask(svc deleteTaskSvc) *DeleteTask {
	return &DeleteTask{svc: svc}
}

// DeleteTask removes a task.
type DeleteTask struct {
	svc deleteTaskSvc
}

// DeleteTask performs the deletion.
func (t *DeleteTask) DeleteTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteTaskRequest,
) (*mcp.CallToolResult, DeleteTaskResponse, error) {
	if err := t.svc.DeleteTask(ctx, input.EntryID); err != nil {
		return nil, DeleteTaskResponse{}, fmt.Errorf("svc.DeleteTask failed: %w", err)
	}
	return nil, DeleteTaskResponse{Status: "deleted"}, nil
}
