package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petshop/internal/apperrors"
	"petshop/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return &apperrors.PersistenceError{Op: "create user", Err: err}
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "user", ID: username}
		}
		return nil, &apperrors.PersistenceError{Op: "get user by username", Err: err}
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "user", ID: email}
		}
		return nil, &apperrors.PersistenceError{Op: "get user by email", Err: err}
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "user", ID: id}
		}
		return nil, &apperrors.PersistenceError{Op: "get user", Err: err}
	}
	return &user, nil
}

// Update saves profile changes for an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "update user", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "user", ID: user.ID}
	}
	return nil
}
