package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/blog_go_server/internal/model"
	"github.com/qs3c/blog_go_server/internal/testutil"
)

func TestLikeRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLikeRepository(db)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)

	rows, err := repo.Create(&model.Like{UserID: user.ID, PostID: post.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestLikeRepository_Create_DuplicateIsNoop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLikeRepository(db)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)

	rows, err := repo.Create(&model.Like{UserID: user.ID, PostID: post.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// 唯一索引冲突落为 no-op，不报错也不产生重复行
	rows, err = repo.Create(&model.Like{UserID: user.ID, PostID: post.ID})
	require.NoError(t, err)
	assert.Zero(t, rows)

	count, err := repo.CountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLikeRepository(db)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)
	testutil.TestLike(t, db, user.ID, post.ID)

	rows, err := repo.Delete(user.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	exists, err := repo.Exists(user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLikeRepository_Delete_Gone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLikeRepository(db)

	rows, err := repo.Delete(1, 99999)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestLikeRepository_Exists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLikeRepository(db)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)
	testutil.TestLike(t, db, user.ID, post.ID)

	exists, err := repo.Exists(user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(other.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLikeRepository_CountByPostID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewLikeRepository(db)
	author := testutil.TestUser(t, db)
	u1 := testutil.TestUser(t, db)
	u2 := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, author.ID)

	testutil.TestLike(t, db, u1.ID, post.ID)
	testutil.TestLike(t, db, u2.ID, post.ID)

	count, err := repo.CountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
