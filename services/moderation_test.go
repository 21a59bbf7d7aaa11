package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/services/repositories"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

func newTestModerationService(t *testing.T) (*ModerationService, *gorm.DB) {
	t.Helper()

	db := newSearchTestDB(t)
	svc := &ModerationService{}
	svc.sqlSvc = &PostgresService{}
	svc.postRepo = repositories.NewPostRepository(db)
	return svc, db
}

func TestReviewPost_ApproveAndReject(t *testing.T) {
	svc, db := newTestModerationService(t)
	seedSearchFixtures(t, db)

	resp, err := svc.ReviewPost("p2", "admin-1", dto.PostReviewRequest{Status: shared.PostStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, shared.PostStatusApproved, resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "admin-1", *resp.ReviewedBy)
	assert.NotNil(t, resp.ReviewedAt)

	var stored model.Post
	require.NoError(t, db.First(&stored, "id = ?", "p2").Error)
	assert.Equal(t, shared.PostStatusApproved, stored.Status)
}

func TestReviewPost_AlreadyReviewedConflicts(t *testing.T) {
	svc, db := newTestModerationService(t)
	seedSearchFixtures(t, db)

	// p1 is already approved
	_, err := svc.ReviewPost("p1", "admin-1", dto.PostReviewRequest{
		Status: shared.PostStatusRejected,
		Notes:  "Duplicate submission of p0",
	})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindConflict, appErr.Kind)
}

func TestReviewPost_UnknownPost(t *testing.T) {
	svc, db := newTestModerationService(t)
	seedSearchFixtures(t, db)

	_, err := svc.ReviewPost("no-such-post", "admin-1", dto.PostReviewRequest{Status: shared.PostStatusApproved})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindNotFound, appErr.Kind)
}

func TestGetPosts_StatusFilterAndDefaults(t *testing.T) {
	svc, db := newTestModerationService(t)
	seedSearchFixtures(t, db)

	resp, err := svc.GetPosts(dto.PostQueryRequest{Status: shared.PostStatusPending})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	assert.Equal(t, "p2", resp.Posts[0].ID)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, 20, resp.Pagination.Limit)
}

func TestGetReviewQueue_PendingOldestFirst(t *testing.T) {
	svc, db := newTestModerationService(t)

	require.NoError(t, db.Create(&model.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", Password: "x",
	}).Error)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	posts := []model.Post{
		{ID: "p1", Title: "newest", Status: shared.PostStatusPending, UserID: "u1", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "p2", Title: "oldest", Status: shared.PostStatusPending, UserID: "u1", CreatedAt: base},
		{ID: "p3", Title: "done", Status: shared.PostStatusApproved, UserID: "u1", CreatedAt: base.Add(time.Hour)},
	}
	require.NoError(t, db.Create(&posts).Error)

	resp, err := svc.GetReviewQueue(dto.ReviewQueueRequest{})
	require.NoError(t, err)

	// Only pending posts, longest-waiting first
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "p2", resp.Posts[0].ID)
	assert.Equal(t, "p1", resp.Posts[1].ID)
	assert.Equal(t, int64(2), resp.Pagination.Total)

	// The queue floor is stricter than the general listing: out-of-range
	// limits fall back to the default page size
	resp, err = svc.GetReviewQueue(dto.ReviewQueueRequest{Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Pagination.Limit)
}

func TestGenerateReport_DefaultMetrics(t *testing.T) {
	svc, db := newTestModerationService(t)

	require.NoError(t, db.Create(&model.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", Password: "x",
	}).Error)

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	created := dayStart.Add(time.Minute)
	reviewed := dayStart.Add(2 * time.Minute)
	posts := []model.Post{
		{ID: "p1", Title: "a", Status: shared.PostStatusApproved, UserID: "u1", CreatedAt: created, ReviewedAt: &reviewed},
		{ID: "p2", Title: "b", Status: shared.PostStatusRejected, UserID: "u1", CreatedAt: created, ReviewedAt: &reviewed},
		{ID: "p3", Title: "c", Status: shared.PostStatusPending, UserID: "u1", CreatedAt: created},
	}
	require.NoError(t, db.Create(&posts).Error)

	resp, err := svc.GenerateReport(dto.ReportRequest{
		ReportType: "moderation_activity",
		Format:     "json",
		DateRange:  shared.DateRangeToday,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.Metrics["approvals"])
	assert.Equal(t, int64(1), resp.Metrics["rejections"])
	assert.Equal(t, int64(3), resp.Metrics["submissions"])
	assert.True(t, resp.PeriodEnd.After(resp.PeriodStart))
}
