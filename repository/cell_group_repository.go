package repository

import (
	"database/sql"
	"errors"

	"active-teams-api/logger"
	"active-teams-api/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyMember is returned when a person is added to a cell group twice.
var ErrAlreadyMember = errors.New("person already a member of this group")

type ICellGroupRepository interface {
	CreateCellGroup(group *model.CellGroup) error
	GetCellGroupByID(id int) (*model.CellGroup, error)
	GetAllCellGroups() ([]*model.CellGroup, error)
	GetCellGroupsByLeader(leaderID int) ([]*model.CellGroup, error)

	AddMember(groupID, personID int) error
	RemoveMember(groupID, personID int) error
	GetMembers(groupID int) ([]*model.CellGroupMember, error)
}

type CellGroupRepository struct {
	DB *sql.DB
}

func NewCellGroupRepository(db *sql.DB) *CellGroupRepository {
	return &CellGroupRepository{DB: db}
}

const cellGroupColumns = `id, name, leader_id, weekday, interval_weeks, created_at`

func (r *CellGroupRepository) CreateCellGroup(group *model.CellGroup) error {
	log := logger.Log.WithFields(logrus.Fields{
		"name":      group.Name,
		"leader_id": group.LeaderID,
	})
	log.Info("Executing query to create a new cell group")

	query := `INSERT INTO cell_groups (name, leader_id, weekday, interval_weeks)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.DB.QueryRow(query, group.Name, group.LeaderID, group.Weekday, group.IntervalWeeks).
		Scan(&group.ID, &group.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create cell group query")
		return err
	}
	return nil
}

func (r *CellGroupRepository) GetCellGroupByID(id int) (*model.CellGroup, error) {
	query := `SELECT ` + cellGroupColumns + ` FROM cell_groups WHERE id = $1`
	group := &model.CellGroup{}
	err := r.DB.QueryRow(query, id).Scan(
		&group.ID, &group.Name, &group.LeaderID, &group.Weekday, &group.IntervalWeeks, &group.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *CellGroupRepository) GetAllCellGroups() ([]*model.CellGroup, error) {
	query := `SELECT ` + cellGroupColumns + ` FROM cell_groups ORDER BY name`
	return r.queryCellGroups(query)
}

func (r *CellGroupRepository) GetCellGroupsByLeader(leaderID int) ([]*model.CellGroup, error) {
	query := `SELECT ` + cellGroupColumns + ` FROM cell_groups WHERE leader_id = $1 ORDER BY name`
	return r.queryCellGroups(query, leaderID)
}

func (r *CellGroupRepository) queryCellGroups(query string, args ...interface{}) ([]*model.CellGroup, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute cell group query")
		return nil, err
	}
	defer rows.Close()

	var groups []*model.CellGroup
	for rows.Next() {
		group := &model.CellGroup{}
		if err := rows.Scan(
			&group.ID, &group.Name, &group.LeaderID, &group.Weekday, &group.IntervalWeeks, &group.CreatedAt,
		); err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

func (r *CellGroupRepository) AddMember(groupID, personID int) error {
	query := `INSERT INTO cell_group_members (group_id, person_id) VALUES ($1, $2)`
	_, err := r.DB.Exec(query, groupID, personID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyMember
		}
		logger.Log.WithError(err).Error("Failed to execute add member query")
		return err
	}
	return nil
}

func (r *CellGroupRepository) RemoveMember(groupID, personID int) error {
	query := `DELETE FROM cell_group_members WHERE group_id = $1 AND person_id = $2`
	result, err := r.DB.Exec(query, groupID, personID)
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

func (r *CellGroupRepository) GetMembers(groupID int) ([]*model.CellGroupMember, error) {
	query := `SELECT m.group_id, m.person_id, p.name, p.surname, m.added_at
		FROM cell_group_members m
		JOIN people p ON p.id = m.person_id
		WHERE m.group_id = $1
		ORDER BY p.surname, p.name`
	rows, err := r.DB.Query(query, groupID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute member query")
		return nil, err
	}
	defer rows.Close()

	var members []*model.CellGroupMember
	for rows.Next() {
		m := &model.CellGroupMember{}
		if err := rows.Scan(&m.GroupID, &m.PersonID, &m.Name, &m.Surname, &m.AddedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
