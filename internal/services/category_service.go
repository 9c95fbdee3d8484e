package services

import (
	"taskify_backend/internal/access"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CategoryService - справочник категорий задач, общий для всех рабочих пространств.
type CategoryService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	List(db *gorm.DB, query *dto.CategoryQuery) ([]*dto.CategoryResponse, error)
	Get(db *gorm.DB, categoryID string) (*dto.CategoryResponse, error)
	Update(db *gorm.DB, userID, categoryID string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(db *gorm.DB, userID, categoryID string) error
}

type CategoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, userRepo repositories.UserRepository) CategoryService {
	return &CategoryServiceImpl{categoryRepo: categoryRepo, userRepo: userRepo}
}

func (s *CategoryServiceImpl) Create(db *gorm.DB, userID string, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := s.authorizeWrite(db, userID); err != nil {
		return nil, err
	}
	if err := s.checkName(db, req.Name, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:           req.Name,
		Description:    req.Description,
		LabelColor:     labelColorOrDefault(req.LabelColor),
		IsTeamCategory: req.IsTeamCategory,
	}
	if err := s.categoryRepo.Create(db, category); err != nil {
		return nil, conflictOr(err, apperrors.ErrCategoryNameTaken)
	}
	return dto.NewCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) List(db *gorm.DB, query *dto.CategoryQuery) ([]*dto.CategoryResponse, error) {
	var teamOnly *bool
	if query != nil {
		teamOnly = query.TeamOnly
	}
	categories, err := s.categoryRepo.List(db, teamOnly)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCategoryList(categories), nil
}

func (s *CategoryServiceImpl) Get(db *gorm.DB, categoryID string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(db, categoryID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return dto.NewCategoryResponse(category), nil
}

func (s *CategoryServiceImpl) Update(db *gorm.DB, userID, categoryID string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := s.authorizeWrite(db, userID); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindByID(db, categoryID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	if req.Name != nil && *req.Name != category.Name {
		if err := s.checkName(db, *req.Name, category.ID); err != nil {
			return nil, err
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.LabelColor != nil {
		category.LabelColor = *req.LabelColor
	}
	if req.IsTeamCategory != nil {
		category.IsTeamCategory = *req.IsTeamCategory
	}

	if err := s.categoryRepo.Update(db, category); err != nil {
		return nil, conflictOr(err, apperrors.ErrCategoryNameTaken)
	}
	return dto.NewCategoryResponse(category), nil
}

// Delete убирает категорию; у задач category_id становится NULL.
func (s *CategoryServiceImpl) Delete(db *gorm.DB, userID, categoryID string) error {
	if err := s.authorizeWrite(db, userID); err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.categoryRepo.Delete(tx, categoryID); err != nil {
		return handleRepositoryError(err)
	}
	return tx.Commit().Error
}

func (s *CategoryServiceImpl) authorizeWrite(db *gorm.DB, userID string) error {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return err
	}
	_, err = authorize(db, user, access.Write, nil, writeRules()...)
	return err
}

func (s *CategoryServiceImpl) checkName(db *gorm.DB, name, excludeID string) error {
	taken, err := s.categoryRepo.ExistsByName(db, name, excludeID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if taken {
		return apperrors.ErrCategoryNameTaken
	}
	return nil
}
