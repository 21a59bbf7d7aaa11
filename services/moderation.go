package services

import (
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/services/repositories"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

// ModerationService covers the admin post listing, review decisions and
// activity reports.
type ModerationService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	postRepo *repositories.PostRepository
}

const MODERATION_SVC = "moderation_svc"

func (svc ModerationService) Id() string {
	return MODERATION_SVC
}

func (svc *ModerationService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ModerationService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.postRepo = repositories.NewPostRepository(svc.sqlSvc.Db())
	return nil
}

func (svc *ModerationService) GetPosts(req dto.PostQueryRequest) (*dto.PostListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 || limit > 50 {
		limit = 20
	}

	posts, total, err := svc.postRepo.List(&repositories.PostFilter{
		Status: req.Status,
		Search: req.Search,
		Sort:   req.Sort,
		Order:  req.Order,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.WithError(err).Error("Admin post listing failed")
		return nil, shared.NewUnavailableError(svc.sqlSvc.HandleError(err))
	}

	responses := make([]dto.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = mapPostToResponse(&post)
	}

	return &dto.PostListResponse{
		Posts: responses,
		Pagination: dto.PaginationResponse{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	}, nil
}

// GetReviewQueue pages through posts awaiting review, oldest first so the
// longest-waiting submissions surface at the top of the queue.
func (svc *ModerationService) GetReviewQueue(req dto.ReviewQueueRequest) (*dto.PostListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 5 || limit > 50 {
		limit = 20
	}

	posts, total, err := svc.postRepo.List(&repositories.PostFilter{
		Status: shared.PostStatusPending,
		Sort:   "created_at",
		Order:  "asc",
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		log.WithError(err).Error("Review queue listing failed")
		return nil, shared.NewUnavailableError(svc.sqlSvc.HandleError(err))
	}

	responses := make([]dto.PostResponse, len(posts))
	for i, post := range posts {
		responses[i] = mapPostToResponse(&post)
	}

	return &dto.PostListResponse{
		Posts: responses,
		Pagination: dto.PaginationResponse{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	}, nil
}

func (svc *ModerationService) ReviewPost(postID, reviewerID string, req dto.PostReviewRequest) (*dto.PostResponse, error) {
	post, err := svc.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}

	if post.Status != shared.PostStatusPending {
		return nil, shared.NewConflictError(
			fmt.Errorf("post %s is %s", post.ID, post.Status),
			"Post has already been reviewed")
	}

	now := time.Now()
	post.Status = req.Status
	post.ReviewNotes = req.Notes
	post.ReviewedBy = &reviewerID
	post.ReviewedAt = &now

	if err := svc.postRepo.Update(post); err != nil {
		log.WithField("post_id", postID).WithError(err).Error("Post review failed")
		return nil, shared.NewUnavailableError(svc.sqlSvc.HandleError(err))
	}

	reviewDecisionsTotal.WithLabelValues(req.Status).Inc()

	resp := mapPostToResponse(post)
	return &resp, nil
}

// GenerateReport aggregates the requested metrics over the resolved date
// window. An empty metrics list means all of them.
func (svc *ModerationService) GenerateReport(req dto.ReportRequest) (*dto.ReportResponse, error) {
	now := time.Now()
	start, end := req.Resolve(now)

	metrics := req.Metrics
	if len(metrics) == 0 {
		metrics = []string{"approvals", "rejections", "submissions"}
	}

	values := make(map[string]int64, len(metrics))
	for _, metric := range metrics {
		var (
			count int64
			err   error
		)

		switch metric {
		case "approvals":
			count, err = svc.postRepo.CountReviewedByStatus(shared.PostStatusApproved, start, end)
		case "rejections":
			count, err = svc.postRepo.CountReviewedByStatus(shared.PostStatusRejected, start, end)
		case "submissions":
			count, err = svc.postRepo.CountCreated(start, end)
		case "searches", "active_users":
			// Tracked by the metrics pipeline, not the relational store.
			count = 0
		}

		if err != nil {
			log.WithField("metric", metric).WithError(err).Error("Report aggregation failed")
			return nil, shared.NewUnavailableError(svc.sqlSvc.HandleError(err))
		}
		values[metric] = count
	}

	return &dto.ReportResponse{
		ReportType:  req.ReportType,
		Format:      req.Format,
		PeriodStart: start,
		PeriodEnd:   end,
		Metrics:     values,
		GeneratedAt: now,
	}, nil
}
