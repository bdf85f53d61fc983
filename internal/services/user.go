package services

import (
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/diewo77/go-usuarios/internal/models"
	"github.com/diewo77/go-usuarios/validation"
)

// NewUser holds the fields accepted when creating a user.
// A zero Status means UserStatusActive.
type NewUser struct {
	Name    string
	Email   string
	Premium bool
	Status  models.UserStatus
}

func (in NewUser) validate() error {
	v := make(validation.Violations)
	validation.Required("nombre", in.Name, v)
	validation.MaxLen("nombre", in.Name, models.UserNameMaxLen, v)
	validation.Required("email", in.Email, v)
	validation.MaxLen("email", in.Email, models.UserEmailMaxLen, v)
	validation.Email("email", in.Email, v)
	validation.OneOf("estado", in.Status.Valid(), v)
	return violations(v)
}

// UserService runs user operations inside the session it is given.
type UserService struct {
	log zerolog.Logger
}

func NewUserService(log zerolog.Logger) *UserService {
	return &UserService{log: log.With().Str("service", "users").Logger()}
}

// Create inserts a user and returns it as stored.
func (s *UserService) Create(tx *gorm.DB, in NewUser) (*models.User, error) {
	if in.Status == "" {
		in.Status = models.UserStatusActive
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	user := models.User{
		Name:    in.Name,
		Email:   in.Email,
		Premium: in.Premium,
		Status:  in.Status,
	}
	if err := tx.Create(&user).Error; err != nil {
		return nil, storeError(err, "email")
	}

	var stored models.User
	if err := tx.First(&stored, user.ID).Error; err != nil {
		s.log.Error().Err(err).Uint("user_id", user.ID).Msg("failed to reload created user")
		return nil, err
	}
	s.log.Info().Uint("user_id", stored.ID).Msg("created user")
	return &stored, nil
}

// List returns every user that is not deleted.
func (s *UserService) List(tx *gorm.DB) ([]models.User, error) {
	users := []models.User{}
	if err := tx.Where("estado <> ?", models.UserStatusDeleted).Find(&users).Error; err != nil {
		s.log.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

// Get returns the user with the given id unless it is missing or deleted.
func (s *UserService) Get(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := tx.Where("id = ? AND estado <> ?", id, models.UserStatusDeleted).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Uint("user_id", id).Msg("failed to get user")
		return nil, err
	}
	return &user, nil
}

// Delete marks the user as deleted. The row and its tasks stay in storage.
func (s *UserService) Delete(tx *gorm.DB, id uint) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND estado <> ?", id, models.UserStatusDeleted).
		Update("estado", models.UserStatusDeleted)
	if res.Error != nil {
		s.log.Error().Err(res.Error).Uint("user_id", id).Msg("failed to delete user")
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.log.Info().Uint("user_id", id).Msg("deleted user")
	return nil
}
