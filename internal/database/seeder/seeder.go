package seeder

import (
	"context"

	"skill-matrix/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Default returns the seeders every deployment needs: the service assumes
// exactly one matrix record exists.
func Default() []Seeder {
	return []Seeder{
		MatrixSeeder{},
	}
}
