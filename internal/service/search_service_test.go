package service

import (
	"context"
	"testing"

	"marketplace/internal/config"
	"marketplace/internal/featureflags"
	"marketplace/internal/feed"
	"marketplace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_EmptyQueryNeverQueries(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.searchFn = func(_ context.Context, _ feed.Viewer, _ string, _ feed.Page) ([]*models.Post, error) {
		t.Fatal("post search must not run for a blank query")
		return nil, nil
	}
	accounts := noopAccountRepo()
	accounts.searchFn = func(_ context.Context, _ feed.Viewer, _ string, _ feed.Page) ([]*models.Account, error) {
		t.Fatal("people search must not run for a blank query")
		return nil, nil
	}
	svc := NewSearchService(posts, accounts, config.DefaultPageSizes(), nil)
	ctx := context.Background()

	for _, q := range []string{"", "   ", "&|!"} {
		envPosts, err := svc.SearchPosts(ctx, "me", q, 3)
		require.NoError(t, err)
		assert.Empty(t, envPosts.Items)
		assert.NotNil(t, envPosts.Items)
		assert.True(t, envPosts.Last)
		assert.Equal(t, 20, envPosts.Offset)

		envPeople, err := svc.SearchUsers(ctx, "", q, 1)
		require.NoError(t, err)
		assert.Empty(t, envPeople.Items)
		assert.True(t, envPeople.Last)
	}
}

func TestSearchService_SearchPosts(t *testing.T) {
	t.Parallel()

	var gotQuery string
	posts := noopPostRepo()
	posts.searchFn = func(_ context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Post, error) {
		gotQuery = tsquery
		assert.True(t, v.IsAnonymous())
		assert.Equal(t, 10, page.Limit)
		return makePosts(2, "alice"), nil
	}
	svc := NewSearchService(posts, noopAccountRepo(), config.DefaultPageSizes(), nil)

	env, err := svc.SearchPosts(context.Background(), "", "  Blue Car ", 1)
	require.NoError(t, err)
	assert.Equal(t, "blue:* | car:*", gotQuery)
	assert.Len(t, env.Items, 2)
	assert.True(t, env.Last)
	assert.False(t, env.Items[0].You)
}

func TestSearchService_MatchAllFlag(t *testing.T) {
	t.Parallel()

	var gotQuery string
	accounts := noopAccountRepo()
	accounts.searchFn = func(_ context.Context, v feed.Viewer, tsquery string, _ feed.Page) ([]*models.Account, error) {
		gotQuery = tsquery
		return []*models.Account{{Hash: "me"}, {Hash: "ann", IsFollowing: true}}, nil
	}
	flags := featureflags.NewManager(featureflags.SearchMatchAll + "=on")
	svc := NewSearchService(noopPostRepo(), accounts, config.DefaultPageSizes(), flags)

	env, err := svc.SearchUsers(context.Background(), "me", "Ann Lee", 1)
	require.NoError(t, err)
	assert.Equal(t, "ann:* & lee:*", gotQuery)
	require.Len(t, env.Items, 2)
	assert.True(t, env.Items[0].You)
	assert.True(t, env.Items[1].IsFollowing)
}
