package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/skillmatch/internal/model"
	appErr "github.com/xxxsen/skillmatch/internal/pkg/errors"
	"github.com/xxxsen/skillmatch/internal/repo"
	"github.com/xxxsen/skillmatch/internal/testutil"
)

func TestUserRepo(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	ctx := context.Background()
	users := repo.NewUserRepo(conn)

	user := &model.User{ID: uuid.NewString(), Username: "testuser", Email: "testuser@example.com", PasswordHash: "h", Ctime: 1, Mtime: 1}
	require.NoError(t, users.Create(ctx, user))

	dup := *user
	dup.ID = uuid.NewString()
	require.ErrorIs(t, users.Create(ctx, &dup), appErr.ErrConflict)

	exists, err := users.ExistsByUsernameOrEmail(ctx, "testuser", "other@example.com")
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = users.ExistsByUsernameOrEmail(ctx, "nobody", "nobody@example.com")
	require.NoError(t, err)
	require.False(t, exists)

	got, err := users.GetByEmail(ctx, "testuser@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	require.NoError(t, users.UpdateLastLogin(ctx, user.ID, 42))
	got, err = users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(42), got.LastLogin)

	_, err = users.GetByID(ctx, "missing")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.ErrorIs(t, users.UpdateLastLogin(ctx, "missing", 1), appErr.ErrNotFound)
}

func TestProfileRepo(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	ctx := context.Background()
	users := repo.NewUserRepo(conn)
	profiles := repo.NewProfileRepo(conn)

	userID := uuid.NewString()
	require.NoError(t, users.Create(ctx, &model.User{ID: userID, Username: "p", Email: "p@example.com", PasswordHash: "h", Ctime: 1, Mtime: 1}))

	require.NoError(t, profiles.ReplaceSkills(ctx, userID, []model.UserSkill{
		{ID: uuid.NewString(), Name: "coding", Ctime: 1},
		{ID: uuid.NewString(), Name: "writing", Ctime: 2},
	}))
	require.NoError(t, profiles.ReplaceSkills(ctx, userID, []model.UserSkill{
		{ID: uuid.NewString(), Name: "design", Ctime: 3},
	}))
	skills, err := profiles.ListSkills(ctx, userID)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	require.Equal(t, "design", skills[0].Name)

	require.NoError(t, profiles.ReplaceHabits(ctx, userID, []model.UserHabit{
		{ID: uuid.NewString(), Description: "Write 500 words daily", Ctime: 1},
	}))
	habits, err := profiles.ListHabits(ctx, userID)
	require.NoError(t, err)
	require.Len(t, habits, 1)

	require.NoError(t, profiles.ReplaceHabits(ctx, userID, nil))
	habits, err = profiles.ListHabits(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, habits)
}

func TestEmbeddingCacheRepo(t *testing.T) {
	conn := testutil.OpenTestDB(t)
	ctx := context.Background()
	cache := repo.NewEmbeddingCacheRepo(conn)

	_, ok, err := cache.Get(ctx, "hash/local", "abc")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.Save(ctx, &model.EmbeddingCache{ModelName: "hash/local", ContentHash: "abc", Embedding: []float32{0.1, 0.2}, Ctime: 10}))
	values, ok, err := cache.Get(ctx, "hash/local", "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float32{0.1, 0.2}, values)

	deleted, err := cache.DeleteBefore(ctx, 11)
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}
