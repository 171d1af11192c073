package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrMatrixNotFound  = errors.New("matrix not found")
	ErrVersionConflict = errors.New("matrix version conflict")
)

// DefaultMatrixName is the single matrix record the service operates on.
const DefaultMatrixName = "default"

type MatrixSkill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CategoryID  string `json:"category_id"`
	TargetLevel int    `json:"target_level"`
}

type MatrixMember struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	EmployeeID string         `json:"employee_id"`
	Skills     map[string]int `json:"skills"`
}

type MatrixRecord struct {
	ID          uuid.UUID
	Name        string
	SkillsData  []MatrixSkill
	MembersData []MatrixMember
	Version     int64
	UpdatedAt   time.Time
}

type MatrixRepository interface {
	FindByName(ctx context.Context, name string) (MatrixRecord, error)
	// UpdateCatalog writes skills_data and members_data in one statement,
	// conditional on the version the caller read.
	UpdateCatalog(ctx context.Context, id uuid.UUID, version int64, skills []MatrixSkill, members []MatrixMember) error
	// UpdateMembers writes members_data only, conditional on version.
	UpdateMembers(ctx context.Context, id uuid.UUID, version int64, members []MatrixMember) error
}

type PostgresMatrixRepository struct {
	db     database.DB
	logger *log.Logger
}

func NewPostgresMatrixRepository(db database.DB, logger *log.Logger) *PostgresMatrixRepository {
	if logger == nil {
		logger = log.Default()
	}
	return &PostgresMatrixRepository{db: db, logger: logger}
}

func (r *PostgresMatrixRepository) FindByName(ctx context.Context, name string) (MatrixRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, skills_data, members_data, version, updated_at
		 FROM skill_matrices
		 WHERE name = $1`,
		name,
	)

	var rec MatrixRecord
	var skillsRaw, membersRaw []byte
	if err := row.Scan(&rec.ID, &rec.Name, &skillsRaw, &membersRaw, &rec.Version, &rec.UpdatedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return MatrixRecord{}, ErrMatrixNotFound
		}
		return MatrixRecord{}, err
	}

	rec.SkillsData = r.decodeSkills(skillsRaw)
	rec.MembersData = r.decodeMembers(membersRaw)
	return rec, nil
}

func (r *PostgresMatrixRepository) UpdateCatalog(ctx context.Context, id uuid.UUID, version int64, skills []MatrixSkill, members []MatrixMember) error {
	skillsRaw, err := json.Marshal(emptyIfNilSkills(skills))
	if err != nil {
		return err
	}
	membersRaw, err := json.Marshal(emptyIfNilMembers(members))
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE skill_matrices
		 SET skills_data = $1, members_data = $2, version = version + 1, updated_at = now()
		 WHERE id = $3 AND version = $4`,
		skillsRaw, membersRaw, id, version,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (r *PostgresMatrixRepository) UpdateMembers(ctx context.Context, id uuid.UUID, version int64, members []MatrixMember) error {
	membersRaw, err := json.Marshal(emptyIfNilMembers(members))
	if err != nil {
		return err
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE skill_matrices
		 SET members_data = $1, version = version + 1, updated_at = now()
		 WHERE id = $2 AND version = $3`,
		membersRaw, id, version,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	return nil
}

// decodeSkills tolerates null or drifted skills_data by coercing to an empty
// catalog. A read must never fail because of a malformed blob.
func (r *PostgresMatrixRepository) decodeSkills(raw []byte) []MatrixSkill {
	if len(raw) == 0 || string(raw) == "null" {
		return []MatrixSkill{}
	}
	var out []MatrixSkill
	if err := json.Unmarshal(raw, &out); err != nil {
		r.logger.Printf("[Matrix] malformed skills_data, coercing to empty | error=%v", err)
		return []MatrixSkill{}
	}
	if out == nil {
		return []MatrixSkill{}
	}
	return out
}

func (r *PostgresMatrixRepository) decodeMembers(raw []byte) []MatrixMember {
	if len(raw) == 0 || string(raw) == "null" {
		return []MatrixMember{}
	}
	var out []MatrixMember
	if err := json.Unmarshal(raw, &out); err != nil {
		r.logger.Printf("[Matrix] malformed members_data, coercing to empty | error=%v", err)
		return []MatrixMember{}
	}
	if out == nil {
		return []MatrixMember{}
	}
	return out
}

func emptyIfNilSkills(s []MatrixSkill) []MatrixSkill {
	if s == nil {
		return []MatrixSkill{}
	}
	return s
}

func emptyIfNilMembers(m []MatrixMember) []MatrixMember {
	if m == nil {
		return []MatrixMember{}
	}
	return m
}
