package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/petshow73/taskdesk/pkg/models"
)

// validCodePattern matches normalized task codes: a project key followed by
// a dash and the allocated sequence number.
var validCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,9}-[0-9]+$`)

// CreateTaskInput carries the caller-supplied fields for a new task.
// Description, Priority and ProjectKey are optional; zero values fall back
// to "", DefaultPriority and DefaultProjectKey respectively.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.Priority
	ProjectKey  string
}

// TaskUpdate carries optional field changes for UpdateTask. Nil fields are
// left untouched. Status is deliberately absent: status only changes through
// ChangeStatus so the completion timestamp stays coupled to it.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *models.Priority
}

// TaskStore owns an insertion-ordered in-memory task collection, the numeric
// id counter, and a SequenceAllocator for per-project codes. All operations
// are guarded by a single mutex so one store can be shared across goroutines.
//
// Multiple independent stores can coexist in one process; there is no hidden
// shared state. The store does not persist anything: it is a session-scoped
// structure intended to be replaced by a real storage backend later.
type TaskStore struct {
	mu     sync.Mutex
	tasks  []*models.Task
	byID   map[int64]*models.Task
	byCode map[string]*models.Task
	nextID int64
	seq    SequenceAllocator
	events EventLogger

	defaultProjectKey string
	defaultPriority   models.Priority
}

// TaskStoreOpts configures the fallback values a TaskStore applies when
// CreateTask input omits them. Zero values fall back to the package defaults.
type TaskStoreOpts struct {
	DefaultProjectKey string
	DefaultPriority   models.Priority
}

// NewTaskStore creates an empty TaskStore. seq may be nil, in which case a
// fresh in-memory allocator is used. events may be nil to disable event
// recording; event write failures never fail the operation that caused them.
func NewTaskStore(seq SequenceAllocator, events EventLogger, opts TaskStoreOpts) *TaskStore {
	if seq == nil {
		seq = NewSequenceAllocator()
	}
	if opts.DefaultProjectKey == "" {
		opts.DefaultProjectKey = DefaultProjectKey
	}
	if opts.DefaultPriority == "" {
		opts.DefaultPriority = models.DefaultPriority
	}
	return &TaskStore{
		byID:              make(map[int64]*models.Task),
		byCode:            make(map[string]*models.Task),
		nextID:            1,
		seq:               seq,
		events:            events,
		defaultProjectKey: opts.DefaultProjectKey,
		defaultPriority:   opts.DefaultPriority,
	}
}

// CreateTask validates input, allocates the next id and per-project code, and
// appends the new task to the collection. New tasks always start in todo
// status with Created == Updated and no completion timestamp.
func (s *TaskStore) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidInput("title must not be empty")
	}

	priority := input.Priority
	if priority == "" {
		priority = s.defaultPriority
	}
	if !priority.Valid() {
		return nil, invalidInput(fmt.Sprintf("priority %q must be one of low, medium, high", input.Priority))
	}

	projectKey := input.ProjectKey
	if strings.TrimSpace(projectKey) == "" {
		projectKey = s.defaultProjectKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.seq.Next(projectKey)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &models.Task{
		ID:          s.nextID,
		Code:        code,
		Title:       title,
		Description: input.Description,
		Status:      models.StatusTodo,
		Priority:    priority,
		Created:     now,
		Updated:     now,
	}
	s.nextID++

	s.tasks = append(s.tasks, task)
	s.byID[task.ID] = task
	s.byCode[task.Code] = task

	s.logEvent(EventTaskCreated, map[string]any{
		"task_id":  task.ID,
		"code":     task.Code,
		"priority": string(task.Priority),
	})

	return copyTask(task), nil
}

// ListTasks returns a snapshot of all tasks in insertion order. The returned
// slice and its elements are independent copies; mutating them does not
// affect the store.
func (s *TaskStore) ListTasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		result = append(result, *copyTask(t))
	}
	return result
}

// GetTask returns the task with the given id, or a NotFoundError.
func (s *TaskStore) GetTask(id int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return copyTask(task), nil
}

// FindByCode returns the task with the given code after trimming and
// uppercasing it. Malformed codes yield InvalidInputError; well-formed codes
// with no matching task yield NotFoundError.
func (s *TaskStore) FindByCode(code string) (*models.Task, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !validCodePattern.MatchString(normalized) {
		return nil, invalidInput(fmt.Sprintf("code %q must have the form KEY-N", code))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.byCode[normalized]
	if !ok {
		return nil, notFound(normalized)
	}
	return copyTask(task), nil
}

// UpdateTask applies the provided title/description/priority changes to the
// task with the given id. All provided fields are validated before any is
// applied, so a failed update leaves the task exactly as it was. Updated is
// refreshed on success.
func (s *TaskStore) UpdateTask(id int64, changes TaskUpdate) (*models.Task, error) {
	// Validate everything up front; no partial writes survive a failure.
	var title string
	if changes.Title != nil {
		title = strings.TrimSpace(*changes.Title)
		if title == "" {
			return nil, invalidInput("title must not be empty")
		}
	}
	if changes.Priority != nil && !changes.Priority.Valid() {
		return nil, invalidInput(fmt.Sprintf("priority %q must be one of low, medium, high", *changes.Priority))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	if changes.Title != nil {
		task.Title = title
	}
	if changes.Description != nil {
		task.Description = *changes.Description
	}
	if changes.Priority != nil {
		task.Priority = *changes.Priority
	}
	task.Updated = time.Now().UTC()

	s.logEvent(EventTaskUpdated, map[string]any{"task_id": task.ID, "code": task.Code})

	return copyTask(task), nil
}

// ChangeStatus moves the task with the given id to status. Any transition is
// allowed, including to the current status. Completed is set when entering
// done and cleared on every other target status. The task is looked up
// first, so a missing id reports NotFound even when status is also invalid.
func (s *TaskStore) ChangeStatus(id int64, status models.Status) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	if !status.Valid() {
		return nil, invalidInput(fmt.Sprintf("status %q must be one of todo, in_progress, done", status))
	}

	now := time.Now().UTC()
	task.Status = status
	if status == models.StatusDone {
		completed := now
		task.Completed = &completed
	} else {
		task.Completed = nil
	}
	task.Updated = now

	s.logEvent(EventTaskStatusChanged, map[string]any{
		"task_id":    task.ID,
		"code":       task.Code,
		"new_status": string(status),
	})
	if status == models.StatusDone {
		s.logEvent(EventTaskCompleted, map[string]any{"task_id": task.ID, "code": task.Code})
	}

	return copyTask(task), nil
}

// RemoveTask permanently removes the task with the given id. The id and
// sequence counters are not reclaimed.
func (s *TaskStore) RemoveTask(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookup(id)
	if err != nil {
		return err
	}

	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	delete(s.byID, id)
	delete(s.byCode, task.Code)

	s.logEvent(EventTaskRemoved, map[string]any{"task_id": id, "code": task.Code})

	return nil
}

// FilterByStatus returns snapshot copies of all tasks with the given status,
// in insertion order. An empty result is not an error.
func (s *TaskStore) FilterByStatus(status models.Status) ([]models.Task, error) {
	if !status.Valid() {
		return nil, invalidInput(fmt.Sprintf("status %q must be one of todo, in_progress, done", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.Status == status {
			result = append(result, *copyTask(t))
		}
	}
	return result, nil
}

// FilterByPriority returns snapshot copies of all tasks with the given
// priority, in insertion order.
func (s *TaskStore) FilterByPriority(priority models.Priority) ([]models.Task, error) {
	if !priority.Valid() {
		return nil, invalidInput(fmt.Sprintf("priority %q must be one of low, medium, high", priority))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Task, 0)
	for _, t := range s.tasks {
		if t.Priority == priority {
			result = append(result, *copyTask(t))
		}
	}
	return result, nil
}

// SearchByTitle returns snapshot copies of all tasks whose title contains
// query as a case-insensitive substring, in insertion order.
func (s *TaskStore) SearchByTitle(query string) ([]models.Task, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, invalidInput("search query must not be empty")
	}
	needle := strings.ToLower(trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]models.Task, 0)
	for _, t := range s.tasks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			result = append(result, *copyTask(t))
		}
	}
	return result, nil
}

// CountByStatus returns the number of tasks in each status. All three
// statuses are always present as keys, defaulting to 0.
func (s *TaskStore) CountByStatus() map[models.Status]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[models.Status]int, len(models.Statuses))
	for _, status := range models.Statuses {
		counts[status] = 0
	}
	for _, t := range s.tasks {
		counts[t.Status]++
	}
	return counts
}

// PeekSequence returns the current sequence counter for key without
// allocating, for diagnostics.
func (s *TaskStore) PeekSequence(key string) (int, error) {
	return s.seq.Peek(key)
}

// lookup finds a task by id. Callers must hold s.mu.
func (s *TaskStore) lookup(id int64) (*models.Task, error) {
	task, ok := s.byID[id]
	if !ok {
		return nil, notFound(strconv.FormatInt(id, 10))
	}
	return task, nil
}

// logEvent records a lifecycle event if an event logger is attached.
// Recording is best effort: failures never surface to the caller.
func (s *TaskStore) logEvent(eventType string, data map[string]any) {
	if s.events == nil {
		return
	}
	_ = s.events.LogEvent(eventType, data)
}

// copyTask returns an independent copy of t, including the completion
// timestamp, so callers cannot mutate stored state.
func copyTask(t *models.Task) *models.Task {
	copied := *t
	if t.Completed != nil {
		completed := *t.Completed
		copied.Completed = &completed
	}
	return &copied
}
