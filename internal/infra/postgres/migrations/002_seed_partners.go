package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// seedPartners loads the initial partner portfolio so a fresh deployment
// renders a populated chart.
//
// | Name   | Lead | Investment | Engagement | Alignment | Size |
// |--------|------|------------|------------|-----------|------|
// | VTEX   | 5    | 4          | 5          | 5         | GG   |
// | Koin   | 4    | 5          | 4          | 4         | G    |
// | Google | 5    | 1          | 1          | 1         | GG   |
// | Wake   | 4    | 3          | 4          | 5         | G    |
// | Uappi  | 5    | 3          | 4          | 4         | G    |
func seedPartners() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "002_seed_partners",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				INSERT INTO partners
					(name, lead_potential, investment_potential, engagement, strategic_alignment, size, source)
				VALUES
					('VTEX',   5, 4, 5, 5, 'GG', 'local'),
					('Koin',   4, 5, 4, 4, 'G',  'local'),
					('Google', 5, 1, 1, 1, 'GG', 'local'),
					('Wake',   4, 3, 4, 5, 'G',  'local'),
					('Uappi',  5, 3, 4, 4, 'G',  'local')
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`
				DELETE FROM partners
				WHERE source = 'local' AND name IN ('VTEX', 'Koin', 'Google', 'Wake', 'Uappi')
			`).Error
		},
	}
}
