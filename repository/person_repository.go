package repository

import (
	"database/sql"

	"active-teams-api/logger"
	"active-teams-api/model"
)

type IPersonRepository interface {
	CreatePerson(person *model.Person) error
	GetPersonByID(id int) (*model.Person, error)
	UpdatePerson(person *model.Person) error
	DeletePerson(id int) error
	SearchPeopleByName(pattern string) ([]*model.Person, error)
	GetAllPeople() ([]*model.Person, error)
}

type PersonRepository struct {
	DB *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

const personColumns = `id, name, surname, date_of_birth, home_address, phone_number, gender, invited_by, email, created_by, created_at`

func scanPerson(row *sql.Row) (*model.Person, error) {
	p := &model.Person{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Surname, &p.DateOfBirth, &p.HomeAddress, &p.PhoneNumber,
		&p.Gender, &p.InvitedBy, &p.Email, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PersonRepository) CreatePerson(person *model.Person) error {
	query := `INSERT INTO people (name, surname, date_of_birth, home_address, phone_number, gender, invited_by, email, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at`
	return r.DB.QueryRow(query,
		person.Name, person.Surname, person.DateOfBirth, person.HomeAddress,
		person.PhoneNumber, person.Gender, person.InvitedBy, person.Email, person.CreatedBy,
	).Scan(&person.ID, &person.CreatedAt)
}

func (r *PersonRepository) GetPersonByID(id int) (*model.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people WHERE id=$1`
	return scanPerson(r.DB.QueryRow(query, id))
}

func (r *PersonRepository) UpdatePerson(person *model.Person) error {
	query := `UPDATE people SET name = $1, surname = $2, date_of_birth = $3, home_address = $4,
		phone_number = $5, gender = $6, invited_by = $7, email = $8 WHERE id = $9`
	result, err := r.DB.Exec(query,
		person.Name, person.Surname, person.DateOfBirth, person.HomeAddress,
		person.PhoneNumber, person.Gender, person.InvitedBy, person.Email, person.ID,
	)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute update person query")
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

func (r *PersonRepository) DeletePerson(id int) error {
	result, err := r.DB.Exec(`DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete person query")
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

// SearchPeopleByName matches names case-insensitively against the given
// pattern. The pattern is a POSIX regular expression, so "ann" matches
// Anna, Joanne and Susanna alike.
func (r *PersonRepository) SearchPeopleByName(pattern string) ([]*model.Person, error) {
	log := logger.Log.WithField("pattern", pattern)
	log.Info("Executing query to search people by name")

	query := `SELECT ` + personColumns + ` FROM people WHERE name ~* $1 OR surname ~* $1 ORDER BY surname, name`
	return r.queryPeople(query, pattern)
}

func (r *PersonRepository) GetAllPeople() ([]*model.Person, error) {
	query := `SELECT ` + personColumns + ` FROM people ORDER BY surname, name`
	return r.queryPeople(query)
}

func (r *PersonRepository) queryPeople(query string, args ...interface{}) ([]*model.Person, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute people query")
		return nil, err
	}
	defer rows.Close()

	var people []*model.Person
	for rows.Next() {
		p := &model.Person{}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Surname, &p.DateOfBirth, &p.HomeAddress, &p.PhoneNumber,
			&p.Gender, &p.InvitedBy, &p.Email, &p.CreatedBy, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		people = append(people, p)
	}
	return people, rows.Err()
}
