package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskmanager/internal/models"
)

// SeedDemoTasks fills an empty store with a handful of sample tasks owned by
// userID and dated relative to today. It returns the number of tasks
// inserted, which is zero when the store already holds data.
func SeedDemoTasks(ctx context.Context, s Store, userID int64, today time.Time) (int, error) {
	count, err := s.CountTasks(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	date := func(offset int) string {
		return today.AddDate(0, 0, offset).Format(models.DateLayout)
	}

	demo := []models.Task{
		{
			Title:       "Complete project presentation",
			Description: "Prepare slides and demo for the client meeting",
			Category:    models.CategoryWork,
			Priority:    models.PriorityHigh,
			DueDate:     date(0),
		},
		{
			Title:       "Schedule dentist appointment",
			Description: "Call Dr. Smith's office for cleaning",
			Category:    models.CategoryPersonal,
			Priority:    models.PriorityMedium,
			DueDate:     date(7),
		},
		{
			Title:       "Complete JavaScript tutorial",
			Description: "Finish the advanced section on Udemy",
			Category:    models.CategoryStudy,
			Priority:    models.PriorityLow,
			DueDate:     date(1),
			Completed:   true,
		},
		{
			Title:       "Buy groceries",
			Description: "Get milk, eggs, bread, and vegetables",
			Category:    models.CategoryShopping,
			Priority:    models.PriorityMedium,
			DueDate:     date(0),
		},
		{
			Title:       "Go for a run",
			Description: "30 minutes jogging in the park",
			Category:    models.CategoryHealth,
			Priority:    models.PriorityHigh,
			DueDate:     date(1),
		},
	}

	for i := range demo {
		demo[i].UserID = userID
		if err := s.CreateTask(ctx, &demo[i]); err != nil {
			return i, fmt.Errorf("failed to seed demo task %q: %w", demo[i].Title, err)
		}
	}

	return len(demo), nil
}

// EnsureOwner returns the user named username, creating it with password when
// it does not exist yet. An existing user's password is left untouched.
func EnsureOwner(ctx context.Context, s Store, username, password string, cost int) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	user = &models.User{Username: username}
	if err := user.SetPassword(password, cost); err != nil {
		return nil, err
	}
	if err := s.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
