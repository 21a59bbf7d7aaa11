package services

import (
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/services/repositories"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

// SearchService dispatches admin post searches to the predicate matching
// the requested mode. Every rejection happens before the store is touched.
type SearchService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	postRepo *repositories.PostRepository
}

const SEARCH_SVC = "search_svc"

const defaultSearchLimit = 10

func (svc SearchService) Id() string {
	return SEARCH_SVC
}

func (svc *SearchService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SearchService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.postRepo = repositories.NewPostRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *SearchService) SearchPosts(req dto.AdminSearchRequest) (*dto.AdminSearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, shared.NewMissingParameterError("query")
	}
	if req.Type == "" {
		return nil, shared.NewMissingParameterError("type")
	}
	if !shared.IsValidSearchType(req.Type) {
		return nil, shared.NewInvalidTypeError(req.Type)
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 50 {
		limit = defaultSearchLimit
	}

	var (
		posts []model.Post
		total int64
		err   error
	)

	switch req.Type {
	case shared.SearchTypePostTitle:
		posts, total, err = svc.postRepo.SearchByTitle(query, page, limit)

	case shared.SearchTypeUsername:
		posts, total, err = svc.postRepo.SearchByUsername(query, page, limit)

	case shared.SearchTypeStatus:
		if !shared.IsValidPostStatus(query) {
			return nil, shared.NewInvalidStatusError(query)
		}
		posts, total, err = svc.postRepo.SearchByStatus(query, page, limit)

	case shared.SearchTypeDate:
		day, parseErr := time.Parse(shared.DateLayout, query)
		if parseErr != nil {
			return nil, shared.NewInvalidDateError(query)
		}
		posts, total, err = svc.postRepo.SearchByDate(day, page, limit)
	}

	if err != nil {
		log.WithFields(log.Fields{
			"type":  req.Type,
			"query": query,
		}).WithError(err).Error("Admin search failed")
		return nil, shared.NewUnavailableError(svc.sqlSvc.HandleError(err))
	}

	adminSearchesTotal.WithLabelValues(req.Type).Inc()

	responses := make([]dto.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = mapPostToResponse(&post)
	}

	return &dto.AdminSearchResponse{
		Posts: responses,
		Pagination: dto.PaginationResponse{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	}, nil
}

func mapPostToResponse(post *model.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Status:      post.Status,
		UserID:      post.UserID,
		Username:    post.User.Username,
		CategoryID:  post.CategoryID,
		MediaURL:    post.MediaURL,
		ReviewedBy:  post.ReviewedBy,
		ReviewedAt:  post.ReviewedAt,
		CreatedAt:   post.CreatedAt,
	}
}
