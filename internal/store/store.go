package store

import (
	"context"

	"taskmanager/internal/models"
)

// Store defines the interface for data persistence operations.
type Store interface {
	// Task operations
	ListTasks(ctx context.Context, userID int64) ([]models.Task, error)
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id int64) error
	ToggleTaskComplete(ctx context.Context, id int64) (*models.Task, error)
	CountTasks(ctx context.Context) (int, error)

	// User operations
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
