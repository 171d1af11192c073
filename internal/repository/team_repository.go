package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrTeamNotFound = errors.New("team not found")

type Team struct {
	ID        uuid.UUID
	Name      string
	MemberIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TeamRepository interface {
	List(ctx context.Context) ([]Team, error)
	FindByID(ctx context.Context, id uuid.UUID) (Team, error)
	Create(ctx context.Context, name string) (Team, error)
	UpdateMembers(ctx context.Context, id uuid.UUID, memberIDs []string) (Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresTeamRepository struct {
	db database.DB
}

func NewPostgresTeamRepository(db database.DB) *PostgresTeamRepository {
	return &PostgresTeamRepository{db: db}
}

func (r *PostgresTeamRepository) List(ctx context.Context) ([]Team, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, member_ids, created_at, updated_at FROM teams ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresTeamRepository) FindByID(ctx context.Context, id uuid.UUID) (Team, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, member_ids, created_at, updated_at FROM teams WHERE id = $1`,
		id,
	)
	t, err := scanTeam(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Team{}, ErrTeamNotFound
		}
		return Team{}, err
	}
	return t, nil
}

func (r *PostgresTeamRepository) Create(ctx context.Context, name string) (Team, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO teams (id, name, member_ids) VALUES ($1, $2, '[]'::jsonb)`,
		id, name,
	)
	if err != nil {
		return Team{}, err
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresTeamRepository) UpdateMembers(ctx context.Context, id uuid.UUID, memberIDs []string) (Team, error) {
	if memberIDs == nil {
		memberIDs = []string{}
	}
	raw, err := json.Marshal(memberIDs)
	if err != nil {
		return Team{}, err
	}

	affected, err := r.db.Exec(ctx,
		`UPDATE teams SET member_ids = $1, updated_at = now() WHERE id = $2`,
		raw, id,
	)
	if err != nil {
		return Team{}, err
	}
	if affected == 0 {
		return Team{}, ErrTeamNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func scanTeam(row database.Row) (Team, error) {
	var t Team
	var raw []byte
	if err := row.Scan(&t.ID, &t.Name, &raw, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Team{}, err
	}
	t.MemberIDs = []string{}
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &t.MemberIDs); err != nil {
			t.MemberIDs = []string{}
		}
	}
	return t, nil
}
