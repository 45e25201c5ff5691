// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the taskdesk task store as MCP tools for AI coding assistants.
//
// The store is in-memory, so the working set of tasks lives for the duration
// of one server session. Tool errors distinguish invalid input from missing
// tasks in their message text so callers can map them the way an HTTP layer
// would map 400 vs 404.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/petshow73/taskdesk/internal/core"
	"github.com/petshow73/taskdesk/internal/observability"
	"github.com/petshow73/taskdesk/pkg/models"
)

// Server wraps a TaskStore and exposes it as MCP tools.
type Server struct {
	server      *gomcp.Server
	store       *core.TaskStore
	metricsCalc observability.MetricsCalculator
}

// NewServer creates a new MCP server over the given store. metricsCalc may
// be nil if observability is disabled.
func NewServer(store *core.TaskStore, metricsCalc observability.MetricsCalculator, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		store:       store,
		metricsCalc: metricsCalc,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "taskdesk", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type createTaskInput struct {
	Title       string `json:"title" jsonschema:"required,the task title (must not be blank)"`
	Description string `json:"description,omitempty" jsonschema:"optional free-form description"`
	Priority    string `json:"priority,omitempty" jsonschema:"task priority (low, medium, high). Defaults to medium."`
	ProjectKey  string `json:"project_key,omitempty" jsonschema:"project key for code generation (2-10 uppercase alphanumerics starting with a letter). Defaults to TASK."`
}

type getTaskInput struct {
	ID int64 `json:"id" jsonschema:"required,the numeric task id"`
}

type findTaskByCodeInput struct {
	Code string `json:"code" jsonschema:"required,the task code (e.g. PROJ-3)"`
}

type taskOutput struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Created     string `json:"created"`
	Updated     string `json:"updated"`
	Completed   string `json:"completed,omitempty"`
}

type listTasksInput struct {
	Status   string `json:"status,omitempty" jsonschema:"filter tasks by status (todo, in_progress, done)"`
	Priority string `json:"priority,omitempty" jsonschema:"filter tasks by priority (low, medium, high)"`
}

type listTasksOutput struct {
	Tasks []taskOutput `json:"tasks"`
	Count int          `json:"count"`
}

type updateTaskInput struct {
	ID          int64   `json:"id" jsonschema:"required,the numeric task id"`
	Title       *string `json:"title,omitempty" jsonschema:"new title (must not be blank if provided)"`
	Description *string `json:"description,omitempty" jsonschema:"new description"`
	Priority    *string `json:"priority,omitempty" jsonschema:"new priority (low, medium, high)"`
}

type changeTaskStatusInput struct {
	ID     int64  `json:"id" jsonschema:"required,the numeric task id"`
	Status string `json:"status" jsonschema:"required,the new status (todo, in_progress, done)"`
}

type removeTaskInput struct {
	ID int64 `json:"id" jsonschema:"required,the numeric task id"`
}

type removeTaskOutput struct {
	Message string `json:"message"`
}

type searchTasksInput struct {
	Query string `json:"query" jsonschema:"required,case-insensitive substring to match against task titles"`
}

type countByStatusInput struct{}

type countByStatusOutput struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type peekSequenceInput struct {
	ProjectKey string `json:"project_key" jsonschema:"required,the project key whose counter to inspect"`
}

type peekSequenceOutput struct {
	ProjectKey string `json:"project_key"`
	Counter    int    `json:"counter"`
}

type getMetricsInput struct {
	Since string `json:"since,omitempty" jsonschema:"time window for metrics (e.g. 7d, 30d, 24h). Defaults to 7d."`
}

type metricsOutput struct {
	TasksCreated    int            `json:"tasks_created"`
	TasksCompleted  int            `json:"tasks_completed"`
	TasksRemoved    int            `json:"tasks_removed"`
	StatusChanges   map[string]int `json:"status_changes"`
	TasksByPriority map[string]int `json:"tasks_by_priority"`
	EventCount      int            `json:"event_count"`
	OldestEvent     string         `json:"oldest_event,omitempty"`
	NewestEvent     string         `json:"newest_event,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "create_task",
		Description: "Create a new task. Allocates the next numeric id and a per-project code, and starts the task in todo status.",
	}, s.handleCreateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_task",
		Description: "Get task details by numeric id.",
	}, s.handleGetTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "find_task_by_code",
		Description: "Find a task by its per-project code (e.g. PROJ-3). The code is trimmed and uppercased before lookup.",
	}, s.handleFindTaskByCode)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks in insertion order, optionally filtered by status or priority.",
	}, s.handleListTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "update_task",
		Description: "Update a task's title, description, or priority. Status cannot be changed here; use change_task_status.",
	}, s.handleUpdateTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "change_task_status",
		Description: "Change a task's lifecycle status (todo, in_progress, done). Entering done records the completion time; leaving done clears it.",
	}, s.handleChangeTaskStatus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "remove_task",
		Description: "Permanently remove a task by numeric id. Id and code counters are never reused.",
	}, s.handleRemoveTask)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "search_tasks",
		Description: "Search tasks whose title contains the query as a case-insensitive substring.",
	}, s.handleSearchTasks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "count_by_status",
		Description: "Count tasks per status. All three statuses are always present in the result.",
	}, s.handleCountByStatus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "peek_sequence",
		Description: "Inspect the current code counter for a project key without allocating.",
	}, s.handlePeekSequence)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_metrics",
		Description: "Get aggregated metrics from the event log: tasks created, completed, removed, and status change counts.",
	}, s.handleGetMetrics)
}

// --- Tool handlers ---

func (s *Server) handleCreateTask(_ context.Context, _ *gomcp.CallToolRequest, input createTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.store.CreateTask(core.CreateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		Priority:    models.Priority(input.Priority),
		ProjectKey:  input.ProjectKey,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("creating task: %s", err)), taskOutput{}, nil
	}

	return nil, taskToOutput(task), nil
}

func (s *Server) handleGetTask(_ context.Context, _ *gomcp.CallToolRequest, input getTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	task, err := s.store.GetTask(input.ID)
	if err != nil {
		return errorResult(fmt.Sprintf("getting task %d: %s", input.ID, err)), taskOutput{}, nil
	}

	return nil, taskToOutput(task), nil
}

func (s *Server) handleFindTaskByCode(_ context.Context, _ *gomcp.CallToolRequest, input findTaskByCodeInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Code == "" {
		return errorResult("code is required"), taskOutput{}, nil
	}

	task, err := s.store.FindByCode(input.Code)
	if err != nil {
		return errorResult(fmt.Sprintf("finding task %s: %s", input.Code, err)), taskOutput{}, nil
	}

	return nil, taskToOutput(task), nil
}

func (s *Server) handleListTasks(_ context.Context, _ *gomcp.CallToolRequest, input listTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	var tasks []models.Task
	var err error

	switch {
	case input.Status != "":
		tasks, err = s.store.FilterByStatus(models.Status(input.Status))
	case input.Priority != "":
		tasks, err = s.store.FilterByPriority(models.Priority(input.Priority))
	default:
		tasks = s.store.ListTasks()
	}

	if err != nil {
		return errorResult(fmt.Sprintf("listing tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i := range tasks {
		out.Tasks[i] = taskToOutput(&tasks[i])
	}

	return nil, out, nil
}

func (s *Server) handleUpdateTask(_ context.Context, _ *gomcp.CallToolRequest, input updateTaskInput) (*gomcp.CallToolResult, taskOutput, error) {
	changes := core.TaskUpdate{
		Title:       input.Title,
		Description: input.Description,
	}
	if input.Priority != nil {
		priority := models.Priority(*input.Priority)
		changes.Priority = &priority
	}

	task, err := s.store.UpdateTask(input.ID, changes)
	if err != nil {
		return errorResult(fmt.Sprintf("updating task %d: %s", input.ID, err)), taskOutput{}, nil
	}

	return nil, taskToOutput(task), nil
}

func (s *Server) handleChangeTaskStatus(_ context.Context, _ *gomcp.CallToolRequest, input changeTaskStatusInput) (*gomcp.CallToolResult, taskOutput, error) {
	if input.Status == "" {
		return errorResult("status is required"), taskOutput{}, nil
	}

	task, err := s.store.ChangeStatus(input.ID, models.Status(input.Status))
	if err != nil {
		return errorResult(fmt.Sprintf("changing task %d status: %s", input.ID, err)), taskOutput{}, nil
	}

	return nil, taskToOutput(task), nil
}

func (s *Server) handleRemoveTask(_ context.Context, _ *gomcp.CallToolRequest, input removeTaskInput) (*gomcp.CallToolResult, removeTaskOutput, error) {
	if err := s.store.RemoveTask(input.ID); err != nil {
		return errorResult(fmt.Sprintf("removing task %d: %s", input.ID, err)), removeTaskOutput{}, nil
	}

	out := removeTaskOutput{
		Message: fmt.Sprintf("task %d removed", input.ID),
	}
	return nil, out, nil
}

func (s *Server) handleSearchTasks(_ context.Context, _ *gomcp.CallToolRequest, input searchTasksInput) (*gomcp.CallToolResult, listTasksOutput, error) {
	tasks, err := s.store.SearchByTitle(input.Query)
	if err != nil {
		return errorResult(fmt.Sprintf("searching tasks: %s", err)), listTasksOutput{}, nil
	}

	out := listTasksOutput{
		Tasks: make([]taskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i := range tasks {
		out.Tasks[i] = taskToOutput(&tasks[i])
	}

	return nil, out, nil
}

func (s *Server) handleCountByStatus(_ context.Context, _ *gomcp.CallToolRequest, _ countByStatusInput) (*gomcp.CallToolResult, countByStatusOutput, error) {
	counts := s.store.CountByStatus()

	out := countByStatusOutput{Counts: make(map[string]int, len(counts))}
	for status, count := range counts {
		out.Counts[string(status)] = count
		out.Total += count
	}

	return nil, out, nil
}

func (s *Server) handlePeekSequence(_ context.Context, _ *gomcp.CallToolRequest, input peekSequenceInput) (*gomcp.CallToolResult, peekSequenceOutput, error) {
	if input.ProjectKey == "" {
		return errorResult("project_key is required"), peekSequenceOutput{}, nil
	}

	counter, err := s.store.PeekSequence(input.ProjectKey)
	if err != nil {
		return errorResult(fmt.Sprintf("peeking sequence %s: %s", input.ProjectKey, err)), peekSequenceOutput{}, nil
	}

	out := peekSequenceOutput{
		ProjectKey: input.ProjectKey,
		Counter:    counter,
	}
	return nil, out, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *gomcp.CallToolRequest, input getMetricsInput) (*gomcp.CallToolResult, metricsOutput, error) {
	if s.metricsCalc == nil {
		return errorResult("metrics calculator not available (observability may be disabled)"), emptyMetricsOutput(), nil
	}

	sinceStr := input.Since
	if sinceStr == "" {
		sinceStr = "7d"
	}

	sinceTime, err := parseSince(sinceStr)
	if err != nil {
		return errorResult(fmt.Sprintf("parsing since duration: %s", err)), emptyMetricsOutput(), nil
	}

	metrics, err := s.metricsCalc.Calculate(sinceTime)
	if err != nil {
		return errorResult(fmt.Sprintf("calculating metrics: %s", err)), emptyMetricsOutput(), nil
	}

	out := metricsOutput{
		TasksCreated:    metrics.TasksCreated,
		TasksCompleted:  metrics.TasksCompleted,
		TasksRemoved:    metrics.TasksRemoved,
		StatusChanges:   metrics.StatusChanges,
		TasksByPriority: metrics.TasksByPriority,
		EventCount:      metrics.EventCount,
	}
	if metrics.OldestEvent != nil {
		out.OldestEvent = metrics.OldestEvent.Format(time.RFC3339)
	}
	if metrics.NewestEvent != nil {
		out.NewestEvent = metrics.NewestEvent.Format(time.RFC3339)
	}

	return nil, out, nil
}

// --- Helpers ---

func taskToOutput(t *models.Task) taskOutput {
	out := taskOutput{
		ID:          t.ID,
		Code:        t.Code,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Created:     t.Created.Format(time.RFC3339),
		Updated:     t.Updated.Format(time.RFC3339),
	}
	if t.Completed != nil {
		out.Completed = t.Completed.Format(time.RFC3339)
	}
	return out
}

func emptyMetricsOutput() metricsOutput {
	return metricsOutput{
		StatusChanges:   make(map[string]int),
		TasksByPriority: make(map[string]int),
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}

// parseSince parses a human-friendly duration string like "7d", "30d", or "24h"
// into the corresponding time in the past.
func parseSince(s string) (time.Time, error) {
	now := time.Now().UTC()

	if len(s) < 2 {
		return time.Time{}, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]
	var num int
	if _, err := fmt.Sscanf(numStr, "%d", &num); err != nil {
		return time.Time{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return now.AddDate(0, 0, -num), nil
	case 'h':
		return now.Add(-time.Duration(num) * time.Hour), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported duration suffix %q (use d or h)", string(suffix))
	}
}
