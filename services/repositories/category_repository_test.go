package repositories

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Talynk/talynk-backend-sub002/model"
	"github.com/Talynk/talynk-backend-sub002/shared"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Category{}, &model.Post{}))
	return db
}

func strPtr(s string) *string {
	return &s
}

func TestUpsertByName_CreatesThenUpdates(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	created, err := repo.UpsertByName(&model.Category{
		Name:        "Music",
		Description: "Performances and covers",
		Level:       shared.CategoryLevelTopic,
		SortOrder:   1,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, shared.CategoryStatusActive, created.Status)

	updated, err := repo.UpsertByName(&model.Category{
		Name:        "Music",
		Description: "All things musical",
		Level:       shared.CategoryLevelTopic,
		SortOrder:   3,
	})
	require.NoError(t, err)

	// Same name resolves to the same row: identity survives the update
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "All things musical", updated.Description)
	assert.Equal(t, 3, updated.SortOrder)

	var count int64
	require.NoError(t, repo.db.Model(&model.Category{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertByName_TopicWithParentRejected(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	parent, err := repo.UpsertByName(&model.Category{Name: "Music", Level: shared.CategoryLevelTopic})
	require.NoError(t, err)

	_, err = repo.UpsertByName(&model.Category{
		Name:     "Dance",
		Level:    shared.CategoryLevelTopic,
		ParentID: strPtr(parent.ID),
	})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindConflict, appErr.Kind)
}

func TestUpsertByName_SubtopicNeedsExistingTopicParent(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	_, err := repo.UpsertByName(&model.Category{Name: "Hip Hop", Level: shared.CategoryLevelSubtopic})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindConflict, appErr.Kind)

	_, err = repo.UpsertByName(&model.Category{
		Name:     "Hip Hop",
		Level:    shared.CategoryLevelSubtopic,
		ParentID: strPtr("no-such-id"),
	})
	require.Error(t, err)
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindConflict, appErr.Kind)

	// A subtopic cannot parent another subtopic
	music, err := repo.UpsertByName(&model.Category{Name: "Music", Level: shared.CategoryLevelTopic})
	require.NoError(t, err)
	rnb, err := repo.UpsertByName(&model.Category{
		Name:     "RnB",
		Level:    shared.CategoryLevelSubtopic,
		ParentID: strPtr(music.ID),
	})
	require.NoError(t, err)

	_, err = repo.UpsertByName(&model.Category{
		Name:     "Soul",
		Level:    shared.CategoryLevelSubtopic,
		ParentID: strPtr(rnb.ID),
	})
	require.Error(t, err)
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindConflict, appErr.Kind)
}

func TestUpsertByName_LevelDemotionWithChildrenRejected(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	music, err := repo.UpsertByName(&model.Category{Name: "Music", Level: shared.CategoryLevelTopic})
	require.NoError(t, err)
	dance, err := repo.UpsertByName(&model.Category{Name: "Dance", Level: shared.CategoryLevelTopic})
	require.NoError(t, err)
	_, err = repo.UpsertByName(&model.Category{
		Name:     "Hip Hop",
		Level:    shared.CategoryLevelSubtopic,
		ParentID: strPtr(music.ID),
	})
	require.NoError(t, err)

	// Music still has Hip Hop under it; demoting it would orphan the child
	_, err = repo.UpsertByName(&model.Category{
		Name:     "Music",
		Level:    shared.CategoryLevelSubtopic,
		ParentID: strPtr(dance.ID),
	})
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindConflict, appErr.Kind)

	// The row is untouched
	got, err := repo.GetByID(music.ID)
	require.NoError(t, err)
	assert.Equal(t, shared.CategoryLevelTopic, got.Level)
	assert.Nil(t, got.ParentID)
}

func TestListHierarchy_Ordering(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	music, err := repo.UpsertByName(&model.Category{Name: "Music", Level: shared.CategoryLevelTopic, SortOrder: 2})
	require.NoError(t, err)
	_, err = repo.UpsertByName(&model.Category{Name: "Dance", Level: shared.CategoryLevelTopic, SortOrder: 1})
	require.NoError(t, err)
	_, err = repo.UpsertByName(&model.Category{Name: "Art", Level: shared.CategoryLevelTopic, SortOrder: 2})
	require.NoError(t, err)

	_, err = repo.UpsertByName(&model.Category{Name: "RnB", Level: shared.CategoryLevelSubtopic, ParentID: strPtr(music.ID), SortOrder: 2})
	require.NoError(t, err)
	_, err = repo.UpsertByName(&model.Category{Name: "Hip Hop", Level: shared.CategoryLevelSubtopic, ParentID: strPtr(music.ID), SortOrder: 1})
	require.NoError(t, err)

	topics, err := repo.ListHierarchy()
	require.NoError(t, err)
	require.Len(t, topics, 3)

	// sort_order ascending, ties broken by name
	assert.Equal(t, "Dance", topics[0].Name)
	assert.Equal(t, "Art", topics[1].Name)
	assert.Equal(t, "Music", topics[2].Name)

	require.Len(t, topics[2].Children, 2)
	assert.Equal(t, "Hip Hop", topics[2].Children[0].Name)
	assert.Equal(t, "RnB", topics[2].Children[1].Name)
}

func TestGetSubcategories(t *testing.T) {
	repo := NewCategoryRepository(newTestDB(t))

	music, err := repo.UpsertByName(&model.Category{Name: "Music", Level: shared.CategoryLevelTopic})
	require.NoError(t, err)
	rnb, err := repo.UpsertByName(&model.Category{Name: "RnB", Level: shared.CategoryLevelSubtopic, ParentID: strPtr(music.ID)})
	require.NoError(t, err)

	subs, err := repo.GetSubcategories(music.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "RnB", subs[0].Name)

	_, err = repo.GetSubcategories("no-such-id")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindNotFound, appErr.Kind)

	// A subtopic is not a valid parent to enumerate under
	_, err = repo.GetSubcategories(rnb.ID)
	appErr, ok = shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindNotFound, appErr.Kind)
}

func TestGetPopular_RanksByPostCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)

	music, err := repo.UpsertByName(&model.Category{Name: "Music", Level: shared.CategoryLevelTopic})
	require.NoError(t, err)
	dance, err := repo.UpsertByName(&model.Category{Name: "Dance", Level: shared.CategoryLevelTopic})
	require.NoError(t, err)
	_, err = repo.UpsertByName(&model.Category{Name: "Art", Level: shared.CategoryLevelTopic})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.Post{
			ID:         fmt.Sprintf("p-music-%d", i),
			Title:      "clip",
			UserID:     "u1",
			CategoryID: strPtr(music.ID),
		}).Error)
	}
	require.NoError(t, db.Create(&model.Post{
		ID:         "p-dance-0",
		Title:      "clip",
		UserID:     "u1",
		CategoryID: strPtr(dance.ID),
	}).Error)

	popular, err := repo.GetPopular(2)
	require.NoError(t, err)
	require.Len(t, popular, 2)

	assert.Equal(t, "Music", popular[0].Name)
	assert.Equal(t, int64(3), popular[0].PostCount)
	assert.Equal(t, "Dance", popular[1].Name)
	assert.Equal(t, int64(1), popular[1].PostCount)
}
