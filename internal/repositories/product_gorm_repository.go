package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"petshop/internal/apperrors"
	"petshop/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, &apperrors.PersistenceError{Op: "list products", Err: err}
	}
	return products, nil
}

// GetByCategory retrieves all products in a category.
func (r *GORMProductRepository) GetByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("category = ?", category).Find(&products).Error; err != nil {
		return nil, &apperrors.PersistenceError{Op: "list products by category", Err: err}
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "product", ID: id}
		}
		return nil, &apperrors.PersistenceError{Op: "get product", Err: err}
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return &apperrors.PersistenceError{Op: "create product", Err: err}
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product) // Save updates all fields, including zero values
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "update product", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound for an update that
		// matched no rows, so we check RowsAffected.
		return &apperrors.NotFoundError{Resource: "product", ID: product.ID}
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return &apperrors.PersistenceError{Op: "delete product", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "product", ID: id}
	}
	return nil
}
