package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/services/repositories"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

func newSearchTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Category{}, &model.Post{}))
	return db
}

func newTestSearchService(t *testing.T) (*SearchService, *gorm.DB) {
	t.Helper()

	db := newSearchTestDB(t)
	svc := &SearchService{}
	svc.sqlSvc = &PostgresService{}
	svc.postRepo = repositories.NewPostRepository(db)
	return svc, db
}

func seedSearchFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	users := []model.User{
		{ID: "u1", Username: "alice_dancer", Email: "alice@example.com", Password: "x", Role: "user"},
		{ID: "u2", Username: "bob", Email: "bob@example.com", Password: "x", Role: "user"},
	}
	require.NoError(t, db.Create(&users).Error)

	day1 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	posts := []model.Post{
		{ID: "p1", Title: "Morning Dance Routine", Status: shared.PostStatusApproved, UserID: "u1", CreatedAt: day1.Add(8 * time.Hour)},
		{ID: "p2", Title: "Evening dance battle", Status: shared.PostStatusPending, UserID: "u2", CreatedAt: day1.Add(20 * time.Hour)},
		{ID: "p3", Title: "Cooking tutorial", Status: "approved_review", UserID: "u2", CreatedAt: day1.AddDate(0, 0, 1)},
	}
	require.NoError(t, db.Create(&posts).Error)
}

func TestSearchPosts_RejectsBeforeTouchingStore(t *testing.T) {
	svc := &SearchService{} // no repository wired: a store touch would panic

	cases := []struct {
		name string
		req  dto.AdminSearchRequest
		kind string
	}{
		{"missing query", dto.AdminSearchRequest{Type: shared.SearchTypeStatus}, shared.KindMissingParameter},
		{"blank query", dto.AdminSearchRequest{Query: "   ", Type: shared.SearchTypeStatus}, shared.KindMissingParameter},
		{"missing type", dto.AdminSearchRequest{Query: "dance"}, shared.KindMissingParameter},
		{"invalid type", dto.AdminSearchRequest{Query: "dance", Type: "tags"}, shared.KindInvalidType},
		{"invalid status", dto.AdminSearchRequest{Query: "archived", Type: shared.SearchTypeStatus}, shared.KindInvalidStatus},
		{"invalid date", dto.AdminSearchRequest{Query: "01/06/2025", Type: shared.SearchTypeDate}, shared.KindInvalidDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SearchPosts(tc.req)
			require.Error(t, err)
			appErr, ok := shared.GetAppError(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, appErr.Kind)
		})
	}
}

func TestSearchPosts_ByTitleCaseInsensitive(t *testing.T) {
	svc, db := newTestSearchService(t)
	seedSearchFixtures(t, db)

	resp, err := svc.SearchPosts(dto.AdminSearchRequest{Query: "DANCE", Type: shared.SearchTypePostTitle})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)

	// Newest first
	assert.Equal(t, "p2", resp.Posts[0].ID)
	assert.Equal(t, "p1", resp.Posts[1].ID)
	assert.Equal(t, "bob", resp.Posts[0].Username)
}

func TestSearchPosts_ByUsername(t *testing.T) {
	svc, db := newTestSearchService(t)
	seedSearchFixtures(t, db)

	resp, err := svc.SearchPosts(dto.AdminSearchRequest{Query: "alice", Type: shared.SearchTypeUsername})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "p1", resp.Posts[0].ID)
	assert.Equal(t, "alice_dancer", resp.Posts[0].Username)
}

func TestSearchPosts_ByStatusExactMatch(t *testing.T) {
	svc, db := newTestSearchService(t)
	seedSearchFixtures(t, db)

	// "approved" must not sweep in the "approved_review" row
	resp, err := svc.SearchPosts(dto.AdminSearchRequest{Query: shared.PostStatusApproved, Type: shared.SearchTypeStatus})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "p1", resp.Posts[0].ID)
}

func TestSearchPosts_ByDateFullDay(t *testing.T) {
	svc, db := newTestSearchService(t)
	seedSearchFixtures(t, db)

	resp, err := svc.SearchPosts(dto.AdminSearchRequest{Query: "2025-06-01", Type: shared.SearchTypeDate})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, int64(2), resp.Pagination.Total)

	resp, err = svc.SearchPosts(dto.AdminSearchRequest{Query: "2025-06-02", Type: shared.SearchTypeDate})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "p3", resp.Posts[0].ID)

	// A valid day with no posts is an empty result, not an error
	resp, err = svc.SearchPosts(dto.AdminSearchRequest{Query: "2025-07-15", Type: shared.SearchTypeDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Posts)
	assert.Equal(t, int64(0), resp.Pagination.Total)
}

func TestSearchPosts_Pagination(t *testing.T) {
	svc, db := newTestSearchService(t)

	require.NoError(t, db.Create(&model.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", Password: "x",
	}).Error)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&model.Post{
			ID:        fmt.Sprintf("p%02d", i),
			Title:     fmt.Sprintf("Clip %d", i),
			Status:    shared.PostStatusPending,
			UserID:    "u1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	page1, err := svc.SearchPosts(dto.AdminSearchRequest{Query: "clip", Type: shared.SearchTypePostTitle, Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 5)
	assert.Equal(t, int64(12), page1.Pagination.Total)
	assert.Equal(t, "p11", page1.Posts[0].ID)

	page3, err := svc.SearchPosts(dto.AdminSearchRequest{Query: "clip", Type: shared.SearchTypePostTitle, Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page3.Posts, 2)
	assert.Equal(t, int64(12), page3.Pagination.Total)
	assert.Equal(t, "p00", page3.Posts[1].ID)
}

func TestSearchPosts_StoreFailureMapped(t *testing.T) {
	svc, db := newTestSearchService(t)
	seedSearchFixtures(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A dead store surfaces as the generic unavailable kind, never verbatim
	_, err = svc.SearchPosts(dto.AdminSearchRequest{Query: "dance", Type: shared.SearchTypePostTitle})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindUnavailable, appErr.Kind)
	assert.Equal(t, "Service temporarily unavailable", appErr.Message)
}

func TestSearchPosts_NormalizesPageAndLimit(t *testing.T) {
	svc, db := newTestSearchService(t)
	seedSearchFixtures(t, db)

	resp, err := svc.SearchPosts(dto.AdminSearchRequest{Query: "dance", Type: shared.SearchTypePostTitle, Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, defaultSearchLimit, resp.Pagination.Limit)
}
