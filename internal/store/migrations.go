package store

import (
	"cmp"
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// schemaStep is one numbered file under migrations/<dialect>/.
type schemaStep struct {
	version int
	name    string
	sql     string
}

func (st schemaStep) String() string {
	return fmt.Sprintf("%03d_%s", st.version, st.name)
}

// migrate brings the schema up to date. Each pending step runs in its own
// transaction together with its schema_migrations row.
func (s *SQLStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	steps, err := readSchemaSteps(s.driver)
	if err != nil {
		return err
	}

	done := make(map[int]bool)
	rows, err := s.db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		done[v] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	record := s.rebind(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`)
	for _, st := range steps {
		if done[st.version] {
			continue
		}
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("migration %s: %w", st, err)
		}
		if _, err := tx.ExecContext(ctx, st.sql); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %s: %w", st, err)
		}
		if _, err := tx.ExecContext(ctx, record, st.version, st.name); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %s: failed to record: %w", st, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %s: %w", st, err)
		}
	}

	return nil
}

// readSchemaSteps returns the embedded steps for driver in version order.
func readSchemaSteps(driver string) ([]schemaStep, error) {
	dialect := "sqlite"
	if driver == DriverPostgres {
		dialect = "postgres"
	}

	files, err := fs.Glob(migrationsFS, path.Join("migrations", dialect, "*.sql"))
	if err != nil {
		return nil, err
	}

	steps := make([]schemaStep, 0, len(files))
	for _, file := range files {
		version, name, err := splitStepName(path.Base(file))
		if err != nil {
			return nil, err
		}
		body, err := migrationsFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		steps = append(steps, schemaStep{version: version, name: name, sql: string(body)})
	}

	slices.SortFunc(steps, func(a, b schemaStep) int { return cmp.Compare(a.version, b.version) })
	for i := 1; i < len(steps); i++ {
		if steps[i].version == steps[i-1].version {
			return nil, fmt.Errorf("duplicate migration version: %d", steps[i].version)
		}
	}
	return steps, nil
}

// splitStepName parses "<version>_<name>.sql".
func splitStepName(file string) (int, string, error) {
	head, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("invalid migration filename %q: expected '<version>_<name>.sql'", file)
	}
	version, err := strconv.Atoi(head)
	if err != nil {
		return 0, "", fmt.Errorf("invalid migration version in %q: %w", file, err)
	}
	return version, name, nil
}
