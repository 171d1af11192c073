package seeder

import (
	"context"
	"encoding/json"
	"fmt"

	"skill-matrix/internal/database"
	"skill-matrix/internal/repository"

	"github.com/google/uuid"
)

type MatrixSeeder struct{}

func (MatrixSeeder) Name() string { return "matrix" }

// Run guarantees the default matrix record exists. A fresh install gets a
// starter catalog; an existing record is left untouched.
func (MatrixSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skill_matrices", "id", "name", "skills_data", "members_data", "version"); err != nil {
		return err
	}

	skills := defaultCatalog()
	raw, err := json.Marshal(skills)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO skill_matrices (id, name, skills_data, members_data)
		 VALUES (gen_random_uuid(), $1, $2, '[]'::jsonb)
		 ON CONFLICT (name) DO NOTHING`,
		repository.DefaultMatrixName, raw,
	)
	if err != nil {
		return fmt.Errorf("insert default matrix: %w", err)
	}
	return nil
}

func defaultCatalog() []repository.MatrixSkill {
	items := []struct {
		Name       string
		CategoryID string
		Target     int
	}{
		{Name: "Welding", CategoryID: "production", Target: 2},
		{Name: "Assembly", CategoryID: "production", Target: 2},
		{Name: "Quality Inspection", CategoryID: "quality", Target: 3},
		{Name: "Machine Setup", CategoryID: "maintenance", Target: 2},
		{Name: "Preventive Maintenance", CategoryID: "maintenance", Target: 3},
		{Name: "Forklift Operation", CategoryID: "logistics", Target: 1},
	}

	out := make([]repository.MatrixSkill, 0, len(items))
	for _, it := range items {
		out = append(out, repository.MatrixSkill{
			ID:          "skill-" + uuid.NewString(),
			Name:        it.Name,
			CategoryID:  it.CategoryID,
			TargetLevel: it.Target,
		})
	}
	return out
}
