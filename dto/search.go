package dto

import "time"

// AdminSearchRequest drives the multi-criteria admin post search. Exactly
// one search mode applies per request; the dispatcher owns the
// missing-parameter and unknown-type rejections so they stay machine
// distinguishable from field validation.
type AdminSearchRequest struct {
	Query string `json:"query" query:"query"`
	Type  string `json:"type" query:"type"`
	Page  int    `json:"page" query:"page" validate:"omitempty,min=1"`
	Limit int    `json:"limit" query:"limit" validate:"omitempty,min=1,max=50"`
}

func (r AdminSearchRequest) Validate() error {
	return GetValidator().Struct(r)
}

type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type PostResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	UserID      string     `json:"user_id"`
	Username    string     `json:"username"`
	CategoryID  *string    `json:"category_id"`
	MediaURL    string     `json:"media_url,omitempty"`
	ReviewedBy  *string    `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AdminSearchResponse struct {
	Posts      []PostResponse     `json:"posts"`
	Pagination PaginationResponse `json:"pagination"`
}
