package repositories

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

type PostRepository struct {
	BaseRepository
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// stableOrder keeps pagination deterministic across calls against a static
// data set: newest first, id as the final tiebreaker.
func stableOrder(db *gorm.DB) *gorm.DB {
	return db.Order("posts.created_at DESC, posts.id DESC")
}

func (ds *PostRepository) paginate(query *gorm.DB, page, limit int) ([]model.Post, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := stableOrder(query).
		Preload("User").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (ds *PostRepository) SearchByTitle(q string, page, limit int) ([]model.Post, int64, error) {
	query := ds.db.Model(&model.Post{}).
		Where("LOWER(posts.title) LIKE ?", "%"+strings.ToLower(q)+"%")
	return ds.paginate(query, page, limit)
}

func (ds *PostRepository) SearchByUsername(q string, page, limit int) ([]model.Post, int64, error) {
	query := ds.db.Model(&model.Post{}).
		Joins("JOIN users ON users.id = posts.user_id").
		Where("LOWER(users.username) LIKE ?", "%"+strings.ToLower(q)+"%")
	return ds.paginate(query, page, limit)
}

func (ds *PostRepository) SearchByStatus(status string, page, limit int) ([]model.Post, int64, error) {
	query := ds.db.Model(&model.Post{}).Where("posts.status = ?", status)
	return ds.paginate(query, page, limit)
}

// SearchByDate matches posts created on the given calendar day, regardless
// of time-of-day component.
func (ds *PostRepository) SearchByDate(day time.Time, page, limit int) ([]model.Post, int64, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	query := ds.db.Model(&model.Post{}).
		Where("posts.created_at >= ? AND posts.created_at < ?", dayStart, dayStart.AddDate(0, 0, 1))
	return ds.paginate(query, page, limit)
}

func (ds *PostRepository) List(req *PostFilter) ([]model.Post, int64, error) {
	query := ds.db.Model(&model.Post{})

	if req.Status != "" {
		query = query.Where("posts.status = ?", req.Status)
	}
	if req.Search != "" {
		query = query.Where("LOWER(posts.title) LIKE ?", "%"+strings.ToLower(req.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := req.Sort
	if sort == "" {
		sort = "created_at"
	}
	order := req.Order
	if order == "" {
		order = "desc"
	}

	var posts []model.Post
	err := query.
		Order("posts." + sort + " " + strings.ToUpper(order)).
		Order("posts.id DESC").
		Preload("User").
		Offset((req.Page - 1) * req.Limit).
		Limit(req.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// PostFilter carries an already-validated admin listing query.
type PostFilter struct {
	Status string
	Search string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

func (ds *PostRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := ds.db.Preload("User").Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Post not found")
		}
		return nil, err
	}
	return &post, nil
}

func (ds *PostRepository) Update(post *model.Post) error {
	post.UpdatedAt = time.Now()
	return ds.db.Save(post).Error
}

// CountByStatus counts posts in a status within [start, end).
func (ds *PostRepository) CountByStatus(status string, start, end time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Post{}).
		Where("status = ? AND created_at >= ? AND created_at < ?", status, start, end).
		Count(&count).Error
	return count, err
}

// CountReviewedByStatus counts review decisions made within [start, end).
func (ds *PostRepository) CountReviewedByStatus(status string, start, end time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Post{}).
		Where("status = ? AND reviewed_at >= ? AND reviewed_at < ?", status, start, end).
		Count(&count).Error
	return count, err
}

func (ds *PostRepository) CountCreated(start, end time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Post{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}
