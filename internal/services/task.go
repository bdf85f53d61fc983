package services

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-usuarios/internal/models"
	"github.com/diewo77/go-usuarios/validation"
)

// NewTask holds the fields accepted when creating a task.
type NewTask struct {
	Name        string
	Description *string
}

func (in NewTask) validate() error {
	v := make(validation.Violations)
	validation.Required("nombre", in.Name, v)
	validation.MaxLen("nombre", in.Name, models.TaskNameMaxLen, v)
	if in.Description != nil {
		validation.MaxLen("descripcion", *in.Description, models.TaskDescriptionMaxLen, v)
	}
	return violations(v)
}

// TaskService runs task operations inside the session it is given.
// Tasks owned by a deleted user are treated as missing.
type TaskService struct {
	log   zerolog.Logger
	users *UserService
	now   func() time.Time
}

func NewTaskService(log zerolog.Logger, users *UserService) *TaskService {
	return &TaskService{
		log:   log.With().Str("service", "tasks").Logger(),
		users: users,
		now:   time.Now,
	}
}

// Create adds a pending task owned by ownerID.
func (s *TaskService) Create(tx *gorm.DB, ownerID uint, in NewTask) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.users.Get(tx, ownerID); err != nil {
		return nil, err
	}

	task := models.Task{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now(),
		Status:      models.TaskStatusPending,
		UserID:      &ownerID,
	}
	if err := tx.Create(&task).Error; err != nil {
		return nil, storeError(err, "task")
	}

	var stored models.Task
	if err := tx.First(&stored, task.ID).Error; err != nil {
		s.log.Error().Err(err).Uint("task_id", task.ID).Msg("failed to reload created task")
		return nil, err
	}
	s.log.Info().Uint("task_id", stored.ID).Uint("user_id", ownerID).Msg("created task")
	return &stored, nil
}

// ListByUser returns the tasks of a visible user ordered by id.
func (s *TaskService) ListByUser(tx *gorm.DB, ownerID uint) ([]models.Task, error) {
	if _, err := s.users.Get(tx, ownerID); err != nil {
		return nil, err
	}
	tasks := []models.Task{}
	if err := tx.Where("usuario_id = ?", ownerID).Order("id").Find(&tasks).Error; err != nil {
		s.log.Error().Err(err).Uint("user_id", ownerID).Msg("failed to list tasks")
		return nil, err
	}
	return tasks, nil
}

// Get returns a task unless it is missing or its owner is deleted.
func (s *TaskService) Get(tx *gorm.DB, id uint) (*models.Task, error) {
	var task models.Task
	err := tx.Take(&task, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Uint("task_id", id).Msg("failed to get task")
		return nil, err
	}
	if task.UserID != nil {
		if _, err := s.users.Get(tx, *task.UserID); err != nil {
			return nil, err
		}
	}
	return &task, nil
}

// UpdateStatus moves a task to status and stamps its modification time.
func (s *TaskService) UpdateStatus(tx *gorm.DB, id uint, status models.TaskStatus) (*models.Task, error) {
	v := make(validation.Violations)
	validation.OneOf("estado", status.Valid(), v)
	if err := violations(v); err != nil {
		return nil, err
	}

	task, err := s.Get(tx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := tx.Model(task).Updates(map[string]any{
		"estado":             status,
		"fecha_modificacion": now,
	}).Error; err != nil {
		return nil, storeError(err, "task")
	}
	s.log.Info().Uint("task_id", id).Str("estado", string(status)).Msg("updated task status")
	return s.Get(tx, id)
}
