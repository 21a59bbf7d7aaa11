package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/services/repositories"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

// CategorySeeder installs the two-level content taxonomy. Seeding is
// idempotent: every row is an upsert keyed on name, so re-running updates
// in place instead of duplicating.
type CategorySeeder struct {
	db   *gorm.DB
	repo *repositories.CategoryRepository
}

// NewCategorySeeder creates a new category seeder
func NewCategorySeeder(db *gorm.DB) *CategorySeeder {
	return &CategorySeeder{
		db:   db,
		repo: repositories.NewCategoryRepository(db),
	}
}

type seedCategory struct {
	Name        string
	Description string
	SortOrder   int
	Children    []seedSubcategory
}

type seedSubcategory struct {
	Name        string
	Description string
	SortOrder   int
}

func (s *CategorySeeder) taxonomy() []seedCategory {
	return []seedCategory{
		{
			Name: "Music", Description: "Musical performances and original tracks", SortOrder: 1,
			Children: []seedSubcategory{
				{Name: "Afrobeat", Description: "Afrobeat performances", SortOrder: 1},
				{Name: "Gospel", Description: "Gospel and worship music", SortOrder: 2},
				{Name: "Hip Hop", Description: "Hip hop and rap", SortOrder: 3},
				{Name: "R&B", Description: "Rhythm and blues", SortOrder: 4},
				{Name: "Traditional Music", Description: "Traditional and cultural music", SortOrder: 5},
			},
		},
		{
			Name: "Dance", Description: "Choreography and dance performances", SortOrder: 2,
			Children: []seedSubcategory{
				{Name: "Contemporary Dance", Description: "Contemporary styles", SortOrder: 1},
				{Name: "Street Dance", Description: "Street and urban dance", SortOrder: 2},
				{Name: "Traditional Dance", Description: "Traditional and cultural dance", SortOrder: 3},
			},
		},
		{
			Name: "Comedy", Description: "Skits and stand-up comedy", SortOrder: 3,
			Children: []seedSubcategory{
				{Name: "Skits", Description: "Short comedy skits", SortOrder: 1},
				{Name: "Stand-up", Description: "Stand-up sets", SortOrder: 2},
			},
		},
		{
			Name: "Art", Description: "Visual art and craftsmanship", SortOrder: 4,
			Children: []seedSubcategory{
				{Name: "Digital Art", Description: "Digital illustration and design", SortOrder: 1},
				{Name: "Painting", Description: "Painting and drawing", SortOrder: 2},
				{Name: "Sculpture", Description: "Sculpture and crafts", SortOrder: 3},
			},
		},
		{
			Name: "Sports", Description: "Athletic skills and highlights", SortOrder: 5,
			Children: []seedSubcategory{
				{Name: "Football", Description: "Football skills and highlights", SortOrder: 1},
				{Name: "Basketball", Description: "Basketball skills and highlights", SortOrder: 2},
				{Name: "Fitness", Description: "Training and fitness", SortOrder: 3},
			},
		},
		{
			Name: "Education", Description: "Tutorials and learning content", SortOrder: 6,
			Children: []seedSubcategory{
				{Name: "Science", Description: "Science explainers", SortOrder: 1},
				{Name: "Technology", Description: "Technology tutorials", SortOrder: 2},
				{Name: "Language", Description: "Language learning", SortOrder: 3},
			},
		},
		{
			Name: "Fashion", Description: "Style, design and modeling", SortOrder: 7,
			Children: []seedSubcategory{
				{Name: "Design", Description: "Fashion design", SortOrder: 1},
				{Name: "Modeling", Description: "Modeling and runway", SortOrder: 2},
			},
		},
		{
			Name: "Food", Description: "Cooking and culinary skills", SortOrder: 8,
			Children: []seedSubcategory{
				{Name: "Recipes", Description: "Recipes and cooking", SortOrder: 1},
				{Name: "Baking", Description: "Baking and pastry", SortOrder: 2},
			},
		},
	}
}

// SeedCategories upserts every topic and its subtopics
func (s *CategorySeeder) SeedCategories() error {
	log.Println("Seeding category taxonomy...")

	seeded := 0
	for _, topic := range s.taxonomy() {
		parent, err := s.repo.UpsertByName(&model.Category{
			Name:        topic.Name,
			Description: topic.Description,
			Status:      shared.CategoryStatusActive,
			Level:       shared.CategoryLevelTopic,
			SortOrder:   topic.SortOrder,
		})
		if err != nil {
			return err
		}
		seeded++

		for _, sub := range topic.Children {
			parentID := parent.ID
			_, err := s.repo.UpsertByName(&model.Category{
				Name:        sub.Name,
				Description: sub.Description,
				Status:      shared.CategoryStatusActive,
				Level:       shared.CategoryLevelSubtopic,
				SortOrder:   sub.SortOrder,
				ParentID:    &parentID,
			})
			if err != nil {
				return err
			}
			seeded++
		}
	}

	log.Printf("Seeded %d categories", seeded)
	return nil
}
