package handlers

import (
	"github.com/Talynk/talynk-backend-sub002/dto"
)

type CategoryServiceInterface interface {
	UpsertCategory(input dto.UpsertCategoryInput) (*dto.CategoryResponse, error)
	GetHierarchy() ([]dto.CategoryResponse, error)
	GetSubcategories(parentID string) ([]dto.CategoryResponse, error)
	GetCategory(id string) (*dto.CategoryResponse, error)
	GetPopularCategories(limit int) ([]dto.PopularCategoryResponse, error)
}

type SearchServiceInterface interface {
	SearchPosts(req dto.AdminSearchRequest) (*dto.AdminSearchResponse, error)
}

type ModerationServiceInterface interface {
	GetPosts(req dto.PostQueryRequest) (*dto.PostListResponse, error)
	GetReviewQueue(req dto.ReviewQueueRequest) (*dto.PostListResponse, error)
	ReviewPost(postID, reviewerID string, req dto.PostReviewRequest) (*dto.PostResponse, error)
	GenerateReport(req dto.ReportRequest) (*dto.ReportResponse, error)
}
