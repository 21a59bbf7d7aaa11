package dto

import (
	"strings"
	"time"

	"github.com/Talynk/talynk-backend-sub002/shared"
)

// PostQueryRequest filters the admin post listing.
type PostQueryRequest struct {
	Page   int    `json:"page" query:"page" validate:"omitempty,min=1"`
	Limit  int    `json:"limit" query:"limit" validate:"omitempty,min=1,max=50"`
	Status string `json:"status" query:"status" validate:"omitempty,oneof=pending approved rejected"`
	Sort   string `json:"sort" query:"sort" validate:"omitempty,oneof=created_at updated_at title status"`
	Order  string `json:"order" query:"order" validate:"omitempty,oneof=asc desc"`
	Search string `json:"search" query:"search" validate:"omitempty,max=255,safe_text"`
}

func (r PostQueryRequest) Validate() error {
	return GetValidator().Struct(r)
}

// PostReviewRequest approves or rejects a single post. The reviewer-facing
// listing variant uses the stricter 5-50 page size.
type PostReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=500,safe_text"`
}

func (r PostReviewRequest) Validate() error {
	var fieldErrors FieldErrors

	if err := GetValidator().Struct(r); err != nil {
		fieldErrors = append(fieldErrors, FormatValidationErrors(err)...)
	}

	// Rejections require substantive notes so the submitter gets an
	// actionable reason.
	if r.Status == shared.PostStatusRejected && len(strings.TrimSpace(r.Notes)) < 10 {
		fieldErrors = append(fieldErrors, ValidationError{
			Field:   "Notes",
			Message: "Notes must be at least 10 characters when rejecting a post",
		})
	}

	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// ReviewQueueRequest pages through posts awaiting review.
type ReviewQueueRequest struct {
	Page  int `json:"page" query:"page" validate:"omitempty,min=1"`
	Limit int `json:"limit" query:"limit" validate:"omitempty,min=5,max=50"`
}

func (r ReviewQueueRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ReportRequest describes an admin activity report. When DateRange is
// "custom" both dates are re-parsed and the end must strictly exceed the
// start; the other presets resolve their own window.
type ReportRequest struct {
	ReportType string   `json:"report_type" validate:"required,oneof=moderation_activity content_summary user_activity"`
	Format     string   `json:"format" validate:"required,oneof=json csv pdf"`
	DateRange  string   `json:"date_range" validate:"required,oneof=today last_7_days last_30_days custom"`
	StartDate  string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate    string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Metrics    []string `json:"metrics" validate:"omitempty,dive,oneof=approvals rejections submissions searches active_users"`
}

func (r ReportRequest) Validate() error {
	var fieldErrors FieldErrors

	if err := GetValidator().Struct(r); err != nil {
		fieldErrors = append(fieldErrors, FormatValidationErrors(err)...)
	}

	if r.DateRange == shared.DateRangeCustom {
		fieldErrors = append(fieldErrors, r.validateCustomRange()...)
	}

	if len(fieldErrors) > 0 {
		return fieldErrors
	}
	return nil
}

// validateCustomRange only runs for the custom preset: both bounds are
// required, re-parsed, and the end date must strictly exceed the start.
func (r ReportRequest) validateCustomRange() FieldErrors {
	var fieldErrors FieldErrors

	start, startErr := time.Parse(shared.DateLayout, r.StartDate)
	if startErr != nil {
		fieldErrors = append(fieldErrors, ValidationError{
			Field:   "StartDate",
			Message: "StartDate must be a valid date in YYYY-MM-DD format",
		})
	}

	end, endErr := time.Parse(shared.DateLayout, r.EndDate)
	if endErr != nil {
		fieldErrors = append(fieldErrors, ValidationError{
			Field:   "EndDate",
			Message: "EndDate must be a valid date in YYYY-MM-DD format",
		})
	}

	if startErr == nil && endErr == nil && !end.After(start) {
		fieldErrors = append(fieldErrors, ValidationError{
			Field:   "EndDate",
			Message: "EndDate must be after StartDate",
		})
	}

	return fieldErrors
}

// Resolve returns the inclusive start and exclusive end of the requested
// window, relative to now for the fixed presets.
func (r ReportRequest) Resolve(now time.Time) (time.Time, time.Time) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch r.DateRange {
	case shared.DateRangeToday:
		return dayStart, dayStart.AddDate(0, 0, 1)
	case shared.DateRangeLast7Days:
		return dayStart.AddDate(0, 0, -7), dayStart.AddDate(0, 0, 1)
	case shared.DateRangeLast30Days:
		return dayStart.AddDate(0, 0, -30), dayStart.AddDate(0, 0, 1)
	default:
		start, _ := time.Parse(shared.DateLayout, r.StartDate)
		end, _ := time.Parse(shared.DateLayout, r.EndDate)
		return start, end.AddDate(0, 0, 1)
	}
}

type ReportResponse struct {
	ReportType  string           `json:"report_type"`
	Format      string           `json:"format"`
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	Metrics     map[string]int64 `json:"metrics"`
	GeneratedAt time.Time        `json:"generated_at"`
}

type PostListResponse struct {
	Posts      []PostResponse     `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}
