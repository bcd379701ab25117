// Package service applies task mutations against the store and recomputes
// the dashboard view from the stored collection.
package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"taskmanager/internal/models"
	"taskmanager/internal/store"
	"taskmanager/internal/view"
)

// Dashboard is the decorated visible list plus statistics for one selection.
type Dashboard struct {
	Selection view.Selection `json:"selection"`
	Tasks     []view.Item    `json:"tasks"`
	Stats     view.Stats     `json:"stats"`
}

// TaskService owns every task mutation. Each read of the view fetches the
// collection again, so a dashboard always reflects the latest stored state.
type TaskService struct {
	store  store.Store
	log    *logrus.Entry
	now    func() time.Time
	userID int64

	fetches singleflight.Group // collapses concurrent collection reads
}

// NewTaskService creates a service acting on behalf of userID.
func NewTaskService(s store.Store, log *logrus.Entry, userID int64) *TaskService {
	if userID == 0 {
		userID = models.DefaultUserID
	}
	return &TaskService{
		store:  s,
		log:    log,
		now:    time.Now,
		userID: userID,
	}
}

// List returns every task of the user in id order.
func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	return s.fetch(ctx)
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	return s.owned(ctx, id)
}

// owned loads a task of the acting user. Tasks of other users are reported
// as not found.
func (s *TaskService) owned(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != s.userID {
		return nil, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}
	return task, nil
}

// Create validates input and stores a new task.
func (s *TaskService) Create(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	task := in.Task(s.userID)
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"task_id": task.ID, "category": task.Category}).Info("task created")
	return task, nil
}

// Update applies patch to an existing task.
func (s *TaskService) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	task, err := s.owned(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(task)
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.WithField("task_id", id).Info("task updated")
	return task, nil
}

// Delete removes a task. Deleting a task that is already gone succeeds.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.owned(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.log.WithField("task_id", id).Info("task deleted")
	return nil
}

// ToggleComplete flips the completed flag of a task.
func (s *TaskService) ToggleComplete(ctx context.Context, id int64) (*models.Task, error) {
	if _, err := s.owned(ctx, id); err != nil {
		return nil, err
	}
	task, err := s.store.ToggleTaskComplete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"task_id": id, "completed": task.Completed}).Info("task completion toggled")
	return task, nil
}

// View computes the dashboard for sel from the current collection.
func (s *TaskService) View(ctx context.Context, sel view.Selection) (*Dashboard, error) {
	tasks, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	ref := s.now()
	res := view.Compute(tasks, sel, ref)
	return &Dashboard{
		Selection: sel,
		Tasks:     view.Decorate(res.Tasks, ref),
		Stats:     res.Stats,
	}, nil
}

// Stats aggregates statistics over the whole collection.
func (s *TaskService) Stats(ctx context.Context) (view.Stats, error) {
	tasks, err := s.fetch(ctx)
	if err != nil {
		return view.Stats{}, err
	}
	return view.ComputeStats(tasks, s.now()), nil
}

// Categories lists the categories with their task counts.
func (s *TaskService) Categories(ctx context.Context) ([]view.CategoryCount, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return view.CategoryCounts(stats), nil
}

// fetch loads the collection. Concurrent callers share one store read, which
// runs detached from any single caller's cancellation; each caller still
// stops waiting when its own ctx ends. Shared results are copied per caller.
func (s *TaskService) fetch(ctx context.Context) ([]models.Task, error) {
	key := "tasks:" + strconv.FormatInt(s.userID, 10)
	ch := s.fetches.DoChan(key, func() (any, error) {
		return s.store.ListTasks(context.WithoutCancel(ctx), s.userID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.log.WithError(res.Err).Error("failed to fetch tasks")
			return nil, res.Err
		}
		tasks := res.Val.([]models.Task)
		if res.Shared {
			tasks = slices.Clone(tasks)
		}
		return tasks, nil
	}
}
