package dto

type CategoryResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Level       int                `json:"level"`
	SortOrder   int                `json:"sort_order"`
	ParentID    *string            `json:"parent_id"`
	Children    []CategoryResponse `json:"children,omitempty"`
}

type PostCount struct {
	Posts int64 `json:"posts"`
}

// PopularCategoryResponse mirrors the `_count.posts` shape the admin
// dashboard consumes.
type PopularCategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Level       int       `json:"level"`
	Count       PostCount `json:"_count"`
}

// UpsertCategoryInput is the seeding/administration payload; the upsert is
// keyed on Name and idempotent under repeated identical calls.
type UpsertCategoryInput struct {
	Name        string  `json:"name" validate:"required,max=100,safe_text"`
	Description string  `json:"description" validate:"max=500,safe_text"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive"`
	Level       int     `json:"level" validate:"required,oneof=1 2"`
	SortOrder   int     `json:"sort_order" validate:"min=0"`
	ParentID    *string `json:"parent_id,omitempty"`
}

func (u UpsertCategoryInput) Validate() error {
	return GetValidator().Struct(u)
}
