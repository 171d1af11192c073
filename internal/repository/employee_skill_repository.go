package repository

import (
	"context"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

// EmployeeSkill is one row of the normalized per-(employee, skill) table.
// The table is the preferred representation but may be unpopulated for any
// given employee; readers fall back to the matrix members_data blob.
type EmployeeSkill struct {
	ID             uuid.UUID
	EmployeeID     uuid.UUID
	SkillID        string
	Level          int
	AssessmentDate time.Time
}

type EmployeeSkillRepository interface {
	FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkill, error)
	Exists(ctx context.Context, employeeID uuid.UUID, skillID string) (bool, error)
	Insert(ctx context.Context, es EmployeeSkill) error
	UpdateLevel(ctx context.Context, employeeID uuid.UUID, skillID string, level int) error
}

type PostgresEmployeeSkillRepository struct {
	db database.DB
}

func NewPostgresEmployeeSkillRepository(db database.DB) *PostgresEmployeeSkillRepository {
	return &PostgresEmployeeSkillRepository{db: db}
}

func (r *PostgresEmployeeSkillRepository) FindByEmployeeID(ctx context.Context, employeeID uuid.UUID) ([]EmployeeSkill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, employee_id, skill_id, level, assessment_date
		 FROM employee_skills
		 WHERE employee_id = $1
		 ORDER BY skill_id ASC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EmployeeSkill, 0)
	for rows.Next() {
		var es EmployeeSkill
		if err := rows.Scan(&es.ID, &es.EmployeeID, &es.SkillID, &es.Level, &es.AssessmentDate); err != nil {
			return nil, err
		}
		out = append(out, es)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEmployeeSkillRepository) Exists(ctx context.Context, employeeID uuid.UUID, skillID string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employee_skills WHERE employee_id = $1 AND skill_id = $2)`,
		employeeID, skillID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresEmployeeSkillRepository) Insert(ctx context.Context, es EmployeeSkill) error {
	if es.ID == uuid.Nil {
		es.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO employee_skills (id, employee_id, skill_id, level, assessment_date)
		 VALUES ($1, $2, $3, $4, now())`,
		es.ID, es.EmployeeID, es.SkillID, es.Level,
	)
	return err
}

func (r *PostgresEmployeeSkillRepository) UpdateLevel(ctx context.Context, employeeID uuid.UUID, skillID string, level int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE employee_skills
		 SET level = $1, assessment_date = now()
		 WHERE employee_id = $2 AND skill_id = $3`,
		level, employeeID, skillID,
	)
	return err
}
