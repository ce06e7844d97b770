package repository

import (
	"database/sql"
	"time"

	"active-teams-api/logger"
	"active-teams-api/model"

	"github.com/sirupsen/logrus"
)

type ITaskRepository interface {
	CreateTask(task *model.Task) error
	GetOpenTasks() ([]*model.Task, error)
	GetOpenTasksByAssignee(userID int) ([]*model.Task, error)
	GetTasksBetween(start, end time.Time) ([]*model.Task, error)
	GetTasksBetweenByAssignee(userID int, start, end time.Time) ([]*model.Task, error)
	UpdateTaskStatus(taskID int, status model.TaskStatus) error
}

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

const taskColumns = `id, person_id, assigned_to, kind, status, follow_up_date, notes, created_at`

func (r *TaskRepository) CreateTask(task *model.Task) error {
	log := logger.Log.WithFields(logrus.Fields{
		"person_id":   task.PersonID,
		"assigned_to": task.AssignedTo,
		"kind":        task.Kind,
	})
	log.Info("Executing query to create a new task")

	query := `INSERT INTO tasks (person_id, assigned_to, kind, status, follow_up_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.DB.QueryRow(query,
		task.PersonID, task.AssignedTo, task.Kind, task.Status, task.FollowUpDate, task.Notes,
	).Scan(&task.ID, &task.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create task query")
		return err
	}
	return nil
}

func (r *TaskRepository) GetOpenTasks() ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = 'pending' ORDER BY follow_up_date`
	return r.queryTasks(query)
}

func (r *TaskRepository) GetOpenTasksByAssignee(userID int) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = 'pending' AND assigned_to = $1 ORDER BY follow_up_date`
	return r.queryTasks(query, userID)
}

// GetTasksBetween returns tasks whose follow-up date falls in [start, end).
func (r *TaskRepository) GetTasksBetween(start, end time.Time) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE follow_up_date >= $1 AND follow_up_date < $2 ORDER BY follow_up_date`
	return r.queryTasks(query, start, end)
}

func (r *TaskRepository) GetTasksBetweenByAssignee(userID int, start, end time.Time) ([]*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 AND follow_up_date >= $2 AND follow_up_date < $3 ORDER BY follow_up_date`
	return r.queryTasks(query, userID, start, end)
}

func (r *TaskRepository) UpdateTaskStatus(taskID int, status model.TaskStatus) error {
	query := `UPDATE tasks SET status = $1 WHERE id = $2`
	result, err := r.DB.Exec(query, status, taskID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *TaskRepository) queryTasks(query string, args ...interface{}) ([]*model.Task, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute task query")
		return nil, err
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		task := &model.Task{}
		if err := rows.Scan(
			&task.ID, &task.PersonID, &task.AssignedTo, &task.Kind, &task.Status,
			&task.FollowUpDate, &task.Notes, &task.CreatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
