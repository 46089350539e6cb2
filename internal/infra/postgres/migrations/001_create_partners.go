package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// createPartnersTable creates the partners table. Ratings and size are
// constrained in the database as well as in the domain.
func createPartnersTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "001_create_partners",
		Migrate: func(tx *gorm.DB) error {
			err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS partners (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name VARCHAR(120) NOT NULL,

					-- Ratings (0..5)
					lead_potential INTEGER NOT NULL DEFAULT 0,
					investment_potential INTEGER NOT NULL DEFAULT 0,
					engagement INTEGER NOT NULL DEFAULT 0,
					strategic_alignment INTEGER NOT NULL DEFAULT 0,

					size VARCHAR(2) NOT NULL,

					-- Origin
					source VARCHAR(50) NOT NULL DEFAULT 'local',
					external_id VARCHAR(100),

					-- Timestamps
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

					CONSTRAINT chk_partners_lead CHECK (lead_potential BETWEEN 0 AND 5),
					CONSTRAINT chk_partners_investment CHECK (investment_potential BETWEEN 0 AND 5),
					CONSTRAINT chk_partners_engagement CHECK (engagement BETWEEN 0 AND 5),
					CONSTRAINT chk_partners_alignment CHECK (strategic_alignment BETWEEN 0 AND 5),
					CONSTRAINT chk_partners_size CHECK (size IN ('PP','P','M','G','GG'))
				);
			`).Error
			if err != nil {
				return err
			}

			indexes := []string{
				"CREATE UNIQUE INDEX IF NOT EXISTS uq_partners_source_external ON partners(source, external_id);",
				"CREATE INDEX IF NOT EXISTS idx_partners_name ON partners(name);",
			}

			for _, idx := range indexes {
				if err := tx.Exec(idx).Error; err != nil {
					return err
				}
			}

			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec("DROP TABLE IF EXISTS partners;").Error
		},
	}
}
