package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Talynk/talynk-backend-sub002/dto"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

type AdminHandler struct {
	searchSvc     SearchServiceInterface
	moderationSvc ModerationServiceInterface
}

func NewAdminHandler(searchSvc SearchServiceInterface, moderationSvc ModerationServiceInterface) *AdminHandler {
	return &AdminHandler{
		searchSvc:     searchSvc,
		moderationSvc: moderationSvc,
	}
}

// @Summary Search Posts (Admin)
// @Description Search posts by title, username, status or creation date
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param query query string true "Search query"
// @Param type query string true "Search type" Enums(post_title, username, status, date)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} shared.Response{data=dto.AdminSearchResponse}
// @Router /api/admin/posts/search [get]
func (h *AdminHandler) SearchPosts(c *fiber.Ctx) error {
	var req dto.AdminSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return shared.NewValidationError("Validation failed", dto.FormatValidationErrors(err))
	}

	results, err := h.searchSvc.SearchPosts(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", results)
}

// @Summary List Posts (Admin)
// @Description List posts with status, sort and free-text filters
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param sort query string false "Sort field" Enums(created_at, updated_at, title, status)
// @Param order query string false "Sort order" Enums(asc, desc)
// @Param search query string false "Title search term"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} shared.Response{data=dto.PostListResponse}
// @Router /api/admin/posts [get]
func (h *AdminHandler) GetPosts(c *fiber.Ctx) error {
	var req dto.PostQueryRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return shared.NewValidationError("Validation failed", dto.FormatValidationErrors(err))
	}

	posts, err := h.moderationSvc.GetPosts(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", posts)
}

// @Summary Review Queue (Admin)
// @Description List posts awaiting review, oldest first
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (5-50)" default(20)
// @Success 200 {object} shared.Response{data=dto.PostListResponse}
// @Router /api/admin/posts/review-queue [get]
func (h *AdminHandler) GetReviewQueue(c *fiber.Ctx) error {
	var req dto.ReviewQueueRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := req.Validate(); err != nil {
		return shared.NewValidationError("Validation failed", dto.FormatValidationErrors(err))
	}

	posts, err := h.moderationSvc.GetReviewQueue(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", posts)
}

// @Summary Review Post (Admin)
// @Description Approve or reject a pending post
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param postId path string true "Post ID"
// @Param reviewRequest body dto.PostReviewRequest true "Review decision"
// @Success 200 {object} shared.Response{data=dto.PostResponse}
// @Router /api/admin/posts/{postId}/review [put]
func (h *AdminHandler) ReviewPost(c *fiber.Ctx) error {
	postID := c.Params("postId")
	if postID == "" {
		return shared.ResponseJSON(c, fiber.StatusBadRequest, "Post ID is required", nil)
	}

	var req dto.PostReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return shared.NewValidationError("Validation failed", dto.FormatValidationErrors(err))
	}

	reviewerID, _ := c.Locals(shared.UserID).(string)

	post, err := h.moderationSvc.ReviewPost(postID, reviewerID, req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Post reviewed", post)
}

// @Summary Generate Report (Admin)
// @Description Generate a moderation activity report over a date range
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param reportRequest body dto.ReportRequest true "Report parameters"
// @Success 200 {object} shared.Response{data=dto.ReportResponse}
// @Router /api/admin/reports [post]
func (h *AdminHandler) GenerateReport(c *fiber.Ctx) error {
	var req dto.ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		return shared.NewValidationError("Validation failed", dto.FormatValidationErrors(err))
	}

	report, err := h.moderationSvc.GenerateReport(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Report generated", report)
}
