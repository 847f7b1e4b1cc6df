package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"taskmanager/internal/domain"
	"taskmanager/internal/repository"
)

// TaskStore is the slice of the task repository the service needs.
type TaskStore interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

type TaskService struct {
	users UserStore
	tasks TaskStore
}

func NewTaskService(users UserStore, tasks TaskStore) *TaskService {
	return &TaskService{users: users, tasks: tasks}
}

// TaskInput carries the raw task fields of an add/edit request. Dates
// arrive as strings and are parsed during validation.
type TaskInput struct {
	Title        string `json:"title"`
	StartingDate string `json:"startingDate"`
	EndingDate   string `json:"endingDate"`
	Priority     int    `json:"priority"`
	TaskStatus   string `json:"taskStatus"`
}

// BulkDeleteResult reports which ids a bulk delete actually removed and
// which it passed over, so partial success is observable by the caller.
type BulkDeleteResult struct {
	Deleted []int64  `json:"deleted"`
	Skipped []string `json:"skipped"`
}

func (s *TaskService) List(ctx context.Context, callerID int64) ([]*domain.Task, error) {
	if err := s.checkCaller(ctx, callerID); err != nil {
		return nil, err
	}
	return s.tasks.ListByUser(ctx, callerID)
}

func (s *TaskService) Create(ctx context.Context, callerID int64, in TaskInput) (int64, error) {
	if err := s.checkCaller(ctx, callerID); err != nil {
		return 0, err
	}

	start, end, verr := validateTask(in)
	if verr != nil {
		return 0, verr
	}

	t := &domain.Task{
		UserID:       callerID,
		Title:        strings.TrimSpace(in.Title),
		StartingDate: start,
		EndingDate:   end,
		Priority:     domain.Priority(in.Priority),
		Status:       domain.Status(in.TaskStatus),
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return 0, err
	}
	return t.ID, nil
}

// Update replaces every mutable field of the task. The owner never
// changes; a caller touching someone else's task gets ErrForbidden.
func (s *TaskService) Update(ctx context.Context, callerID int64, taskID string, in TaskInput) error {
	if err := s.checkCaller(ctx, callerID); err != nil {
		return err
	}

	id, err := ParseTaskID(taskID)
	if err != nil {
		return newValidationError([]FieldError{{Field: "taskId", Message: "Not a valid task id."}})
	}

	start, end, verr := validateTask(in)
	if verr != nil {
		return verr
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	if t.UserID != callerID {
		return ErrForbidden
	}

	t.Title = strings.TrimSpace(in.Title)
	t.StartingDate = start
	t.EndingDate = end
	t.Priority = domain.Priority(in.Priority)
	t.Status = domain.Status(in.TaskStatus)

	return s.tasks.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, callerID int64, taskID string) error {
	if err := s.checkCaller(ctx, callerID); err != nil {
		return err
	}

	id, err := ParseTaskID(taskID)
	if err != nil {
		return newValidationError([]FieldError{{Field: "taskId", Message: "Not a valid task id."}})
	}

	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	if t.UserID != callerID {
		return ErrForbidden
	}

	return s.tasks.Delete(ctx, id)
}

// DeleteMany removes the caller's tasks among the given ids. Malformed
// ids, missing tasks and tasks owned by someone else are skipped, never
// fatal; the batch is not atomic. Store failures abort the batch.
func (s *TaskService) DeleteMany(ctx context.Context, callerID int64, taskIDs []string) (*BulkDeleteResult, error) {
	if err := s.checkCaller(ctx, callerID); err != nil {
		return nil, err
	}

	res := &BulkDeleteResult{Deleted: []int64{}, Skipped: []string{}}
	for _, raw := range taskIDs {
		id, err := ParseTaskID(raw)
		if err != nil {
			res.Skipped = append(res.Skipped, raw)
			continue
		}

		t, err := s.tasks.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				res.Skipped = append(res.Skipped, raw)
				continue
			}
			return nil, err
		}
		if t.UserID != callerID {
			res.Skipped = append(res.Skipped, raw)
			continue
		}

		if err := s.tasks.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				res.Skipped = append(res.Skipped, raw)
				continue
			}
			return nil, err
		}
		res.Deleted = append(res.Deleted, id)
	}
	return res, nil
}

// checkCaller guards every task operation against deleted or forged
// identities: the token may outlive the user row.
func (s *TaskService) checkCaller(ctx context.Context, callerID int64) error {
	if _, err := s.users.GetByID(ctx, callerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ParseTaskID accepts positive integer ids only.
func ParseTaskID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidTaskID
	}
	return id, nil
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func validateTask(in TaskInput) (time.Time, time.Time, *ValidationError) {
	var fields []FieldError

	if len(strings.TrimSpace(in.Title)) < 3 {
		fields = append(fields, FieldError{Field: "title", Message: "Title must be at least 3 characters long."})
	}

	start, startOK := parseDate(in.StartingDate)
	if !startOK {
		fields = append(fields, FieldError{Field: "startingDate", Message: "Starting date must be a valid date in ISO8601 format."})
	}

	end, endOK := parseDate(in.EndingDate)
	if !endOK {
		fields = append(fields, FieldError{Field: "endingDate", Message: "Ending date must be a valid date in ISO8601 format."})
	}

	// endingDate == startingDate is allowed
	if startOK && endOK && end.Before(start) {
		fields = append(fields, FieldError{Field: "endingDate", Message: "Ending date must be after the starting date."})
	}

	if !domain.Priority(in.Priority).Valid() {
		fields = append(fields, FieldError{Field: "priority", Message: "Priority must be a number between 1 and 5."})
	}

	if !domain.Status(in.TaskStatus).Valid() {
		fields = append(fields, FieldError{Field: "taskStatus", Message: "Task status must be either 'pending' or 'completed'."})
	}

	if len(fields) > 0 {
		return time.Time{}, time.Time{}, newValidationError(fields)
	}
	return start, end, nil
}
