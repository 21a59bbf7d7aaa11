package services

import (
	goContext "context"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/services/repositories"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

// CategoryService fronts the two-level category catalog. Reads are cached
// in Redis; upserts are rare administrative operations and bust the cache.
type CategoryService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	redisSvc *RedisService

	categoryRepo *repositories.CategoryRepository
}

const CATEGORY_SVC = "category_svc"

const (
	hierarchyCacheKey = "categories:hierarchy"
	popularCacheKey   = "categories:popular"
	categoryCacheTTL  = 5 * time.Minute
)

func (svc CategoryService) Id() string {
	return CATEGORY_SVC
}

func (svc *CategoryService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *CategoryService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.categoryRepo = repositories.NewCategoryRepository(svc.sqlSvc.Db())
	return nil
}

// storeError passes taxonomy errors through untouched and collapses raw
// store failures to the generic unavailable kind after classification.
func (svc *CategoryService) storeError(err error) error {
	if _, ok := shared.GetAppError(err); ok {
		return err
	}
	return shared.NewUnavailableError(svc.sqlSvc.HandleError(err))
}

func (svc *CategoryService) UpsertCategory(input dto.UpsertCategoryInput) (*dto.CategoryResponse, error) {
	category, err := svc.categoryRepo.UpsertByName(&model.Category{
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
		Level:       input.Level,
		SortOrder:   input.SortOrder,
		ParentID:    input.ParentID,
	})
	if err != nil {
		return nil, svc.storeError(err)
	}

	svc.invalidateCache()

	resp := mapCategoryToResponse(category)
	return &resp, nil
}

func (svc *CategoryService) GetHierarchy() ([]dto.CategoryResponse, error) {
	var cached []dto.CategoryResponse
	if svc.cacheGet(hierarchyCacheKey, &cached) {
		return cached, nil
	}

	categories, err := svc.categoryRepo.ListHierarchy()
	if err != nil {
		return nil, svc.storeError(err)
	}

	responses := make([]dto.CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = mapCategoryToResponse(&category)
	}

	svc.cacheSet(hierarchyCacheKey, responses)
	return responses, nil
}

func (svc *CategoryService) GetSubcategories(parentID string) ([]dto.CategoryResponse, error) {
	categories, err := svc.categoryRepo.GetSubcategories(parentID)
	if err != nil {
		return nil, svc.storeError(err)
	}

	responses := make([]dto.CategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = mapCategoryToResponse(&category)
	}
	return responses, nil
}

func (svc *CategoryService) GetCategory(id string) (*dto.CategoryResponse, error) {
	category, err := svc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, svc.storeError(err)
	}

	resp := mapCategoryToResponse(category)
	return &resp, nil
}

func (svc *CategoryService) GetPopularCategories(limit int) ([]dto.PopularCategoryResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	var cached []dto.PopularCategoryResponse
	if limit == 10 && svc.cacheGet(popularCacheKey, &cached) {
		return cached, nil
	}

	categories, err := svc.categoryRepo.GetPopular(limit)
	if err != nil {
		return nil, svc.storeError(err)
	}

	responses := make([]dto.PopularCategoryResponse, len(categories))
	for i, category := range categories {
		responses[i] = dto.PopularCategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Description: category.Description,
			Level:       category.Level,
			Count:       dto.PostCount{Posts: category.PostCount},
		}
	}

	if limit == 10 {
		svc.cacheSet(popularCacheKey, responses)
	}
	return responses, nil
}

// ==================== CACHE HELPERS ====================

// Cache failures are logged and ignored: the catalog read path always
// falls through to the store.

func (svc *CategoryService) cacheGet(key string, dest interface{}) bool {
	if svc.redisSvc == nil || svc.redisSvc.GetClient() == nil {
		return false
	}

	err := svc.redisSvc.Get(goContext.Background(), key, dest)
	if err != nil {
		if err != redis.Nil {
			log.WithField("key", key).WithError(err).Debug("Category cache read failed")
		}
		return false
	}
	return true
}

func (svc *CategoryService) cacheSet(key string, value interface{}) {
	if svc.redisSvc == nil || svc.redisSvc.GetClient() == nil {
		return
	}

	if err := svc.redisSvc.Set(goContext.Background(), key, value, categoryCacheTTL); err != nil {
		log.WithField("key", key).WithError(err).Debug("Category cache write failed")
	}
}

func (svc *CategoryService) invalidateCache() {
	if svc.redisSvc == nil || svc.redisSvc.GetClient() == nil {
		return
	}

	if err := svc.redisSvc.Delete(goContext.Background(), hierarchyCacheKey, popularCacheKey); err != nil {
		log.WithError(err).Debug("Category cache invalidation failed")
	}
}

func mapCategoryToResponse(category *model.Category) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Status:      category.Status,
		Level:       category.Level,
		SortOrder:   category.SortOrder,
		ParentID:    category.ParentID,
	}

	for _, child := range category.Children {
		resp.Children = append(resp.Children, mapCategoryToResponse(&child))
	}

	return resp
}
