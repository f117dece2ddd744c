package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	schema := flag.Bool("schema", false, "Auto-migrate the models before applying SQL files")
	dir := flag.String("dir", "", "Directory holding the .sql migrations (default MIGRATIONS_DIR)")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.For("migrate")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.DBDriver != config.DriverPostgres {
		log.Fatalf("SQL migrations need postgres, DB_DRIVER is %q", cfg.DBDriver)
	}
	migrationsDir := cfg.MigrationsDir
	if *dir != "" {
		migrationsDir = *dir
	}

	if *schema {
		gdb, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := database.RunMigrations(gdb); err != nil {
			log.Fatalf("failed to migrate schema: %v", err)
		}
		log.Info("Schema is up to date")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = cfg.DSN()
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(createMigrationsTable); err != nil {
		log.Fatalf("failed to create schema_migrations: %v", err)
	}

	if *rollback {
		if err := rollbackLast(db, migrationsDir); err != nil {
			log.Fatal(err)
		}
		return
	}

	files, err := migrationFiles(migrationsDir)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}
	for _, file := range files {
		applied, err := apply(db, migrationsDir, file)
		if err != nil {
			log.Fatal(err)
		}
		if applied {
			log.Infof("Applied migration: %s", file)
		} else {
			log.Infof("Migration already applied: %s", file)
		}
	}
}

// migrationFiles lists the forward migrations in dir in the order they
// apply.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, "_rollback.sql") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// version extracts VERSION from a VERSION_NAME.sql file name.
func version(file string) string {
	return strings.Split(file, "_")[0]
}

func apply(db *sql.DB, dir, file string) (bool, error) {
	var applied bool
	if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version(file)).Scan(&applied); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if applied {
		return false, nil
	}

	content, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return false, fmt.Errorf("failed to read migration %s: %w", file, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to apply migration %s: %w", file, err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version(file), file); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to record migration: %w", err)
	}
	return true, tx.Commit()
}

func rollbackLast(db *sql.DB, dir string) error {
	var ver, name string
	err := db.QueryRow("SELECT version, name FROM schema_migrations ORDER BY applied_at DESC LIMIT 1").Scan(&ver, &name)
	if err == sql.ErrNoRows {
		return fmt.Errorf("no migrations to rollback")
	}
	if err != nil {
		return fmt.Errorf("failed to get last migration: %w", err)
	}

	path := filepath.Join(dir, strings.TrimSuffix(name, ".sql")+"_rollback.sql")
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rollback file not found: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute rollback: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", ver); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove migration record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rollback: %w", err)
	}
	logger.For("migrate").Infof("Successfully rolled back migration: %s", name)
	return nil
}
