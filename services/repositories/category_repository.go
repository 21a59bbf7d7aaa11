package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

type CategoryRepository struct {
	BaseRepository
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// CategoryWithCount carries the derived post count for popularity ranking.
type CategoryWithCount struct {
	model.Category
	PostCount int64 `json:"post_count"`
}

// UpsertByName creates or updates a category keyed on its globally unique
// name. Identity and existing child links survive an update; the whole
// operation runs in one transaction so concurrent upserts of the same name
// serialize at the store boundary.
func (ds *CategoryRepository) UpsertByName(input *model.Category) (*model.Category, error) {
	var result *model.Category

	err := ds.db.Transaction(func(tx *gorm.DB) error {
		if err := validateHierarchy(tx, input, ""); err != nil {
			return err
		}

		var existing model.Category
		err := tx.Where("name = ?", input.Name).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			id, _ := uuid.NewV7()
			now := time.Now()
			created := model.Category{
				ID:          id.String(),
				Name:        input.Name,
				Description: input.Description,
				Status:      input.Status,
				Level:       input.Level,
				SortOrder:   input.SortOrder,
				ParentID:    input.ParentID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if created.Status == "" {
				created.Status = shared.CategoryStatusActive
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			result = &created
			return nil
		}
		if err != nil {
			return err
		}

		// Demoting a topic that still has subtopics would orphan them;
		// the upsert never cascades.
		if existing.Level == shared.CategoryLevelTopic && input.Level == shared.CategoryLevelSubtopic {
			var childCount int64
			if err := tx.Model(&model.Category{}).Where("parent_id = ?", existing.ID).Count(&childCount).Error; err != nil {
				return err
			}
			if childCount > 0 {
				return shared.NewConflictError(
					fmt.Errorf("category %s has %d subcategories", existing.Name, childCount),
					"Cannot change category level while subcategories reference it")
			}
		}

		if err := validateHierarchy(tx, input, existing.ID); err != nil {
			return err
		}

		existing.Description = input.Description
		existing.Level = input.Level
		existing.SortOrder = input.SortOrder
		existing.ParentID = input.ParentID
		if input.Status != "" {
			existing.Status = input.Status
		}
		existing.UpdatedAt = time.Now()

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		result = &existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// validateHierarchy enforces the two-level shape: topics carry no parent,
// subtopics reference an existing topic (and never themselves).
func validateHierarchy(tx *gorm.DB, c *model.Category, selfID string) error {
	if c.Level == shared.CategoryLevelTopic {
		if c.ParentID != nil {
			return shared.NewConflictError(
				fmt.Errorf("category %s is level 1 with parent %s", c.Name, *c.ParentID),
				"Top-level categories cannot have a parent")
		}
		return nil
	}

	if c.ParentID == nil {
		return shared.NewConflictError(
			fmt.Errorf("category %s is level 2 without parent", c.Name),
			"Subcategories must reference a top-level parent")
	}
	if selfID != "" && *c.ParentID == selfID {
		return shared.NewConflictError(
			fmt.Errorf("category %s references itself", c.Name),
			"A category cannot be its own parent")
	}

	var parent model.Category
	if err := tx.Where("id = ?", *c.ParentID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewConflictError(err, "Parent category does not exist")
		}
		return err
	}
	if parent.Level != shared.CategoryLevelTopic {
		return shared.NewConflictError(
			fmt.Errorf("parent %s is level %d", parent.Name, parent.Level),
			"Subcategories must reference a top-level parent")
	}

	return nil
}

// ListHierarchy returns all top-level categories ordered by sort_order
// (ties by name), each carrying its ordered subcategories.
func (ds *CategoryRepository) ListHierarchy() ([]model.Category, error) {
	var categories []model.Category
	err := ds.db.
		Where("level = ?", shared.CategoryLevelTopic).
		Order("sort_order ASC, name ASC").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, name ASC")
		}).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (ds *CategoryRepository) GetByID(id string) (*model.Category, error) {
	var category model.Category
	if err := ds.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Category not found")
		}
		return nil, err
	}
	return &category, nil
}

func (ds *CategoryRepository) GetSubcategories(parentID string) ([]model.Category, error) {
	var parent model.Category
	if err := ds.db.Where("id = ?", parentID).First(&parent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Parent category not found")
		}
		return nil, err
	}
	if parent.Level != shared.CategoryLevelTopic {
		return nil, shared.NewNotFoundError(
			fmt.Errorf("category %s is level %d", parent.ID, parent.Level),
			"Parent category not found")
	}

	var categories []model.Category
	err := ds.db.
		Where("parent_id = ?", parentID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetPopular ranks categories by their derived post count, descending,
// ties broken by name.
func (ds *CategoryRepository) GetPopular(limit int) ([]CategoryWithCount, error) {
	var categories []CategoryWithCount
	err := ds.db.Model(&model.Category{}).
		Select("categories.*, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id").
		Group("categories.id").
		Order("post_count DESC, categories.name ASC").
		Limit(limit).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
