package service

import (
	"database/sql"
	"errors"
	"time"

	"active-teams-api/common"
	"active-teams-api/model"
	"active-teams-api/repository"
)

// TaskService handles follow-up tasks (calls and visits) and the date-window
// queries the dashboard uses.
type TaskService struct {
	repo       repository.ITaskRepository
	personRepo repository.IPersonRepository
}

func NewTaskService(repo repository.ITaskRepository, personRepo repository.IPersonRepository) *TaskService {
	return &TaskService{repo: repo, personRepo: personRepo}
}

func (s *TaskService) CreateTask(task *model.Task) error {
	if _, err := s.personRepo.GetPersonByID(task.PersonID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	if task.Status == "" {
		task.Status = model.TaskPending
	}
	return s.repo.CreateTask(task)
}

// ListOpenTasks applies the same visibility policy as the other listings:
// plain users see only tasks assigned to them.
func (s *TaskService) ListOpenTasks(callerID int, callerRole string) ([]*model.Task, error) {
	switch callerRole {
	case string(model.RoleAdmin), string(model.RoleRegistrant):
		return s.repo.GetOpenTasks()
	default:
		return s.repo.GetOpenTasksByAssignee(callerID)
	}
}

func (s *TaskService) CompleteTask(taskID int) error {
	if err := s.repo.UpdateTaskStatus(taskID, model.TaskDone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}

// TasksForDay returns tasks whose follow-up date falls on the given day.
func (s *TaskService) TasksForDay(callerID int, callerRole string, day time.Time) ([]*model.Task, error) {
	start := truncateToDay(day)
	return s.tasksBetween(callerID, callerRole, start, start.AddDate(0, 0, 1))
}

// TasksLastSevenDays covers the window [now-7d, now).
func (s *TaskService) TasksLastSevenDays(callerID int, callerRole string, now time.Time) ([]*model.Task, error) {
	return s.tasksBetween(callerID, callerRole, now.AddDate(0, 0, -7), now)
}

// TasksThisWeek covers Monday of the current week up to now.
func (s *TaskService) TasksThisWeek(callerID int, callerRole string, now time.Time) ([]*model.Task, error) {
	// time.Weekday counts Sunday as 0; shift so Monday starts the week.
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	start := truncateToDay(now).AddDate(0, 0, -daysSinceMonday)
	return s.tasksBetween(callerID, callerRole, start, now)
}

// TasksPreviousMonth covers the whole calendar month before the current one.
func (s *TaskService) TasksPreviousMonth(callerID int, callerRole string, now time.Time) ([]*model.Task, error) {
	firstOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	start := firstOfThisMonth.AddDate(0, -1, 0)
	return s.tasksBetween(callerID, callerRole, start, firstOfThisMonth)
}

// tasksBetween applies the same visibility rule as ListOpenTasks to the
// date-window queries.
func (s *TaskService) tasksBetween(callerID int, callerRole string, start, end time.Time) ([]*model.Task, error) {
	switch callerRole {
	case string(model.RoleAdmin), string(model.RoleRegistrant):
		return s.repo.GetTasksBetween(start, end)
	default:
		return s.repo.GetTasksBetweenByAssignee(callerID, start, end)
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
