package repositories

import (
	"errors"

	"taskify_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.Category) error
	FindByID(db *gorm.DB, id string) (*models.Category, error)
	List(db *gorm.DB, teamOnly *bool) ([]models.Category, error)
	ExistsByName(db *gorm.DB, name, excludeID string) (bool, error)
	Update(db *gorm.DB, category *models.Category) error
	Delete(db *gorm.DB, id string) error
}

type categoryRepository struct{}

func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(db *gorm.DB, category *models.Category) error {
	return translate(db.Create(category).Error, ErrCategoryNotFound)
}

func (r *categoryRepository) FindByID(db *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	if err := db.First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err, ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *categoryRepository) List(db *gorm.DB, teamOnly *bool) ([]models.Category, error) {
	query := db.Model(&models.Category{})
	if teamOnly != nil {
		query = query.Where("is_team_category = ?", *teamOnly)
	}
	categories := []models.Category{}
	err := query.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) ExistsByName(db *gorm.DB, name, excludeID string) (bool, error) {
	return exists(db.Model(&models.Category{}).Where("name = ?", name), excludeID)
}

func (r *categoryRepository) Update(db *gorm.DB, category *models.Category) error {
	return translate(db.Save(category).Error, ErrCategoryNotFound)
}

// Delete оставляет задачи без категории.
func (r *categoryRepository) Delete(db *gorm.DB, id string) error {
	if err := db.Model(&models.Task{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
