package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/blog_go_server/internal/model"
	"github.com/qs3c/blog_go_server/internal/repository"
	"github.com/qs3c/blog_go_server/internal/testutil"
)

func setupLikeService(t *testing.T) (*LikeService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	likeRepo := repository.NewLikeRepository(db)
	postRepo := repository.NewPostRepository(db)

	service := NewLikeService(likeRepo, postRepo)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestLikeService_Toggle_Like(t *testing.T) {
	service, db, cleanup := setupLikeService(t)
	defer cleanup()

	author := testutil.TestUser(t, db)
	liker := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, author.ID)

	result, likedPost, err := service.Toggle(liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(1), result.LikeCount)
	assert.Equal(t, post.ID, likedPost.ID)
	assert.Equal(t, author.ID, likedPost.AuthorID)
}

func TestLikeService_Toggle_Unlike(t *testing.T) {
	service, db, cleanup := setupLikeService(t)
	defer cleanup()

	author := testutil.TestUser(t, db)
	liker := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, author.ID)
	testutil.TestLike(t, db, liker.ID, post.ID)

	result, _, err := service.Toggle(liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Zero(t, result.LikeCount)
}

func TestLikeService_Toggle_RoundTrip(t *testing.T) {
	service, db, cleanup := setupLikeService(t)
	defer cleanup()

	author := testutil.TestUser(t, db)
	liker := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, author.ID)

	// 两次切换回到初始状态
	result, _, err := service.Toggle(liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)

	result, _, err = service.Toggle(liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Zero(t, result.LikeCount)

	var count int64
	db.Model(&model.Like{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Zero(t, count)
}

func TestLikeService_Toggle_CountsOtherUsers(t *testing.T) {
	service, db, cleanup := setupLikeService(t)
	defer cleanup()

	author := testutil.TestUser(t, db)
	liker := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, author.ID)
	testutil.TestLike(t, db, other.ID, post.ID)

	result, _, err := service.Toggle(liker.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, int64(2), result.LikeCount)

	// 取消后只剩他人的点赞
	result, _, err = service.Toggle(liker.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, int64(1), result.LikeCount)
}

func TestLikeService_Toggle_PostNotFound(t *testing.T) {
	service, _, cleanup := setupLikeService(t)
	defer cleanup()

	_, _, err := service.Toggle(1, 99999)
	assert.Equal(t, ErrPostNotFound, err)
}

func TestLikeService_Toggle_NeverDuplicates(t *testing.T) {
	service, db, cleanup := setupLikeService(t)
	defer cleanup()

	author := testutil.TestUser(t, db)
	liker := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, author.ID)

	for i := 0; i < 5; i++ {
		_, _, err := service.Toggle(liker.ID, post.ID)
		require.NoError(t, err)
	}

	// 奇数次切换后恰好一行
	var count int64
	db.Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", liker.ID, post.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}
