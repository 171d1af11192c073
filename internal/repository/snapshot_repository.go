package repository

import (
	"context"
	"encoding/json"
	"time"

	"skill-matrix/internal/database"

	"github.com/google/uuid"
)

// Snapshot is a point-in-time copy of a matrix's members_data, taken
// periodically to feed the progress-over-time chart.
type Snapshot struct {
	ID          uuid.UUID
	MatrixID    uuid.UUID
	TakenAt     time.Time
	MembersData []MatrixMember
}

type SnapshotRepository interface {
	Insert(ctx context.Context, matrixID uuid.UUID, members []MatrixMember) (Snapshot, error)
	ListByMatrix(ctx context.Context, matrixID uuid.UUID, limit int) ([]Snapshot, error)
}

type PostgresSnapshotRepository struct {
	db database.DB
}

func NewPostgresSnapshotRepository(db database.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) Insert(ctx context.Context, matrixID uuid.UUID, members []MatrixMember) (Snapshot, error) {
	if members == nil {
		members = []MatrixMember{}
	}
	raw, err := json.Marshal(members)
	if err != nil {
		return Snapshot{}, err
	}

	id := uuid.New()
	takenAt := time.Now().UTC()
	_, err = r.db.Exec(ctx,
		`INSERT INTO matrix_snapshots (id, matrix_id, taken_at, members_data) VALUES ($1, $2, $3, $4)`,
		id, matrixID, takenAt, raw,
	)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{ID: id, MatrixID: matrixID, TakenAt: takenAt, MembersData: members}, nil
}

func (r *PostgresSnapshotRepository) ListByMatrix(ctx context.Context, matrixID uuid.UUID, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, matrix_id, taken_at, members_data
		 FROM matrix_snapshots
		 WHERE matrix_id = $1
		 ORDER BY taken_at ASC
		 LIMIT $2`,
		matrixID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Snapshot, 0)
	for rows.Next() {
		var s Snapshot
		var raw []byte
		if err := rows.Scan(&s.ID, &s.MatrixID, &s.TakenAt, &raw); err != nil {
			return nil, err
		}
		s.MembersData = []MatrixMember{}
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &s.MembersData); err != nil {
				s.MembersData = []MatrixMember{}
			}
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
