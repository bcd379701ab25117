package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"taskmanager/internal/models"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLStore implements the Store interface on top of database/sql.
// Queries are written with ? placeholders and rebound for Postgres.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// NewSQLiteStore creates a new SQLite store with the given database path.
func NewSQLiteStore(dbPath string) (*SQLStore, error) {
	return Open(DriverSQLite, dbPath)
}

// Open connects to the database for driver and applies pending migrations.
func Open(driver, dsn string) (*SQLStore, error) {
	switch driver {
	case DriverSQLite:
		if !strings.Contains(dsn, "?") {
			dsn += "?_foreign_keys=on"
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == DriverSQLite {
		// One connection serializes writers and keeps :memory: databases shared.
		db.SetMaxOpenConns(1)
	}

	store := &SQLStore{db: db, driver: driver}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind converts ? placeholders to $n for Postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const taskColumns = `id, title, description, category, priority, due_date, completed, created_at, user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	var description, dueDate sql.NullString

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.Category,
		&task.Priority,
		&dueDate,
		&task.Completed,
		&task.CreatedAt,
		&task.UserID,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.DueDate = dueDate.String
	return task, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// ListTasks retrieves all tasks of a user ordered by id.
func (s *SQLStore) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT `+taskColumns+`
		FROM tasks WHERE user_id = ? ORDER BY id ASC
	`), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	return tasks, rows.Err()
}

// GetTask retrieves a task by ID.
func (s *SQLStore) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT `+taskColumns+`
		FROM tasks WHERE id = ?
	`), id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return task, nil
}

// CountTasks returns the number of stored tasks across all users.
func (s *SQLStore) CountTasks(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// CreateTask inserts a task and sets its ID and CreatedAt.
func (s *SQLStore) CreateTask(ctx context.Context, task *models.Task) error {
	now := time.Now().UTC()
	if task.UserID == 0 {
		task.UserID = models.DefaultUserID
	}

	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO tasks (title, description, category, priority, due_date, completed, created_at, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), task.Title, nullable(task.Description), task.Category, task.Priority, nullable(task.DueDate),
		task.Completed, now, task.UserID).Scan(&task.ID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	task.CreatedAt = now

	return nil
}

// UpdateTask replaces the mutable fields of an existing task.
// ID, CreatedAt and UserID are never written.
func (s *SQLStore) UpdateTask(ctx context.Context, task *models.Task) error {
	result, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE tasks
		SET title = ?, description = ?, category = ?, priority = ?, due_date = ?, completed = ?
		WHERE id = ?
	`), task.Title, nullable(task.Description), task.Category, task.Priority, nullable(task.DueDate),
		task.Completed, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %d: %w", task.ID, models.ErrNotFound)
	}

	return nil
}

// DeleteTask deletes a task by ID. Deleting a missing task is not an error.
func (s *SQLStore) DeleteTask(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ToggleTaskComplete flips the completed flag and returns the updated task.
func (s *SQLStore) ToggleTaskComplete(ctx context.Context, id int64) (*models.Task, error) {
	result, err := s.db.ExecContext(ctx, s.rebind(`
		UPDATE tasks SET completed = NOT completed WHERE id = ?
	`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle task complete: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to toggle task complete: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}

	return s.GetTask(ctx, id)
}

// GetUser retrieves a user by ID.
func (s *SQLStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, username, password FROM users WHERE id = ?`, id)
}

// GetUserByUsername retrieves a user by username.
func (s *SQLStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `SELECT id, username, password FROM users WHERE username = ?`, username)
}

func (s *SQLStore) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, s.rebind(query), arg).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %v: %w", arg, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// CreateUser inserts a user and sets its ID.
func (s *SQLStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO users (username, password) VALUES (?, ?) RETURNING id
	`), user.Username, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}
