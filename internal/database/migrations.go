package database

import (
	"database/sql"
	"fmt"
	"sort"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Up      string
	Down    string
}

// Migrations contains all database migrations
var Migrations = []Migration{
	{
		Version: 1,
		Up: `
			CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				email VARCHAR(254) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				role VARCHAR(30) NOT NULL DEFAULT 'USER',
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
		`,
		Down: `
			DROP TABLE IF EXISTS users;
		`,
	},
	{
		Version: 2,
		Up: `
			CREATE TABLE IF NOT EXISTS categories (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				name VARCHAR(255) NOT NULL,
				slug VARCHAR(255) UNIQUE NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMP NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug);

			INSERT INTO categories (name, slug, description) VALUES
				('Slang', 'slang', 'Generational slang terms and what they mean'),
				('Memes', 'memes', 'Meme formats and their origins'),
				('Social Media', 'social-media', 'Platforms, trends and behaviors'),
				('Gaming', 'gaming', 'Gaming culture and vocabulary')
			ON CONFLICT (slug) DO NOTHING;
		`,
		Down: `
			DROP TABLE IF EXISTS categories;
		`,
	},
	{
		Version: 3,
		Up: `
			CREATE TABLE IF NOT EXISTS content (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				title VARCHAR(255) NOT NULL,
				term VARCHAR(255) NOT NULL,
				body TEXT NOT NULL,
				category_id UUID NOT NULL REFERENCES categories(id),
				created_by UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				status VARCHAR(20) NOT NULL DEFAULT 'DRAFT'
					CHECK (status IN ('DRAFT', 'PENDING', 'APPROVED', 'REJECTED')),
				created_at TIMESTAMP NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_content_status ON content(status);
			CREATE INDEX IF NOT EXISTS idx_content_created_by ON content(created_by);
		`,
		Down: `
			DROP TABLE IF EXISTS content;
		`,
	},
	{
		Version: 4,
		Up: `
			CREATE TABLE IF NOT EXISTS content_reviews (
				id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
				content_id UUID NOT NULL,
				decision VARCHAR(20) NOT NULL CHECK (decision IN ('APPROVED', 'REJECTED')),
				reason VARCHAR(50),
				comment TEXT,
				reviewed_by UUID NOT NULL REFERENCES users(id),
				reviewed_at TIMESTAMP NOT NULL DEFAULT NOW()
			);

			-- content_id has no FK on purpose: ledger entries outlive deleted content.
			CREATE INDEX IF NOT EXISTS idx_content_reviews_content ON content_reviews(content_id, reviewed_at DESC);
			CREATE INDEX IF NOT EXISTS idx_content_reviews_reviewer ON content_reviews(reviewed_by, decision, reviewed_at DESC);
		`,
		Down: `
			DROP TABLE IF EXISTS content_reviews;
		`,
	},
}

// RunMigrations runs all pending migrations
func RunMigrations(db *sql.DB) error {
	// Ensure migrations table exists
	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	// Get current version
	currentVersion, err := getCurrentVersion(db)
	if err != nil {
		return err
	}

	// Run pending migrations in ascending order by version
	sorted := make([]Migration, len(Migrations))
	copy(sorted, Migrations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })

	for _, migration := range sorted {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d...\n", migration.Version)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if _, err := tx.Exec(migration.Up); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to run migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("Migration %d completed\n", migration.Version)
	}

	return nil
}

// RollbackLast reverts the most recently applied migration.
func RollbackLast(db *sql.DB) error {
	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	currentVersion, err := getCurrentVersion(db)
	if err != nil {
		return err
	}
	if currentVersion == 0 {
		return fmt.Errorf("no migrations to roll back")
	}

	var target *Migration
	for i := range Migrations {
		if Migrations[i].Version == currentVersion {
			target = &Migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration %d not found in code", currentVersion)
	}

	fmt.Printf("Rolling back migration %d...\n", target.Version)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(target.Down); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to roll back migration %d: %w", target.Version, err)
	}

	if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", target.Version); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to unrecord migration %d: %w", target.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rollback %d: %w", target.Version, err)
	}

	fmt.Printf("Migration %d rolled back\n", target.Version)
	return nil
}

func ensureMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

func getCurrentVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}
