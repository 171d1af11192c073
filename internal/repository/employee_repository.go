package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type Employee struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	EmployeeID       string
	Category         string
	HireDate         *time.Time
	DepartmentNumber string
	Supervisor       string
	State            string
	Grade            string
	Email            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Name is always derived, never persisted.
func (e Employee) Name() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

type EmployeeRepository interface {
	List(ctx context.Context, limit, offset int, search string) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresEmployeeRepository struct {
	db database.DB
}

func NewPostgresEmployeeRepository(db database.DB) *PostgresEmployeeRepository {
	return &PostgresEmployeeRepository{db: db}
}

const employeeColumns = `id, first_name, last_name, employee_id, category, hire_date,
	 department_number, supervisor, state, grade, email, created_at, updated_at`

func (r *PostgresEmployeeRepository) List(ctx context.Context, limit, offset int, search string) ([]Employee, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}

	search = strings.TrimSpace(search)
	pattern := "%" + search + "%"

	rows, err := r.db.Query(ctx,
		`SELECT `+employeeColumns+`
		 FROM employees
		 WHERE $1 = '' OR first_name ILIKE $2 OR last_name ILIKE $2 OR employee_id ILIKE $2 OR email ILIKE $2
		 ORDER BY last_name ASC, first_name ASC
		 LIMIT $3 OFFSET $4`,
		search, pattern, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (Employee, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`,
		id,
	)
	e, err := scanEmployee(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, ErrEmployeeNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

func (r *PostgresEmployeeRepository) Create(ctx context.Context, e Employee) (Employee, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO employees (id, first_name, last_name, employee_id, category, hire_date,
		 department_number, supervisor, state, grade, email)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.FirstName, e.LastName, e.EmployeeID, e.Category, e.HireDate,
		e.DepartmentNumber, e.Supervisor, e.State, e.Grade, e.Email,
	)
	if err != nil {
		return Employee{}, err
	}
	return r.FindByID(ctx, e.ID)
}

func (r *PostgresEmployeeRepository) Update(ctx context.Context, e Employee) (Employee, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE employees
		 SET first_name = $1, last_name = $2, employee_id = $3, category = $4, hire_date = $5,
		     department_number = $6, supervisor = $7, state = $8, grade = $9, email = $10,
		     updated_at = now()
		 WHERE id = $11`,
		e.FirstName, e.LastName, e.EmployeeID, e.Category, e.HireDate,
		e.DepartmentNumber, e.Supervisor, e.State, e.Grade, e.Email,
		e.ID,
	)
	if err != nil {
		return Employee{}, err
	}
	if affected == 0 {
		return Employee{}, ErrEmployeeNotFound
	}
	return r.FindByID(ctx, e.ID)
}

func (r *PostgresEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func scanEmployee(row database.Row) (Employee, error) {
	var e Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.EmployeeID, &e.Category, &e.HireDate,
		&e.DepartmentNumber, &e.Supervisor, &e.State, &e.Grade, &e.Email,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}
