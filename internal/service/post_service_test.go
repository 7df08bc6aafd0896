package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"marketplace/internal/analytics"
	"marketplace/internal/cache"
	"marketplace/internal/feed"
	"marketplace/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publisherStub struct {
	events []analytics.PostViewEvent
	err    error
}

func (p *publisherStub) PostViewed(_ context.Context, e analytics.PostViewEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *publisherStub) Close() error { return nil }

func validPostInput() CreatePostInput {
	return CreatePostInput{
		Kind:     models.PostKindProduct,
		Name:     "Road bike",
		Content:  "Aluminium frame, 54cm, recently serviced",
		Location: "Porto",
		Price:    25000,
	}
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	svc := NewPostService(noopPostRepo(), nil, nil, 10)
	ctx := context.Background()

	mutate := func(f func(*CreatePostInput)) CreatePostInput {
		in := validPostInput()
		f(&in)
		return in
	}
	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"invalid kind", mutate(func(in *CreatePostInput) { in.Kind = "rental" })},
		{"missing name", mutate(func(in *CreatePostInput) { in.Name = " " })},
		{"short content", mutate(func(in *CreatePostInput) { in.Content = "too short" })},
		{"long content", mutate(func(in *CreatePostInput) { in.Content = strings.Repeat("x", 5001) })},
		{"missing location", mutate(func(in *CreatePostInput) { in.Location = "" })},
		{"negative price", mutate(func(in *CreatePostInput) { in.Price = -1 })},
		{"negative end", mutate(func(in *CreatePostInput) { in.EndDays = -3 })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, "alice", tt.input)
			assertAppErrorCode(t, err, models.CodeValidation)
		})
	}

	_, err := svc.CreatePost(ctx, "", validPostInput())
	assertAppErrorCode(t, err, models.CodeUnauthorized)
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	var stored *models.Post
	repo := noopPostRepo()
	repo.createFn = func(_ context.Context, p *models.Post) error {
		stored = p
		return nil
	}
	svc := NewPostService(repo, nil, nil, 10)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	in := validPostInput()
	in.EndDays = 7
	post, err := svc.CreatePost(context.Background(), "alice", in)
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.NotEmpty(t, post.Hash)
	assert.Equal(t, "alice", post.Author)
	assert.True(t, post.Published)
	assert.True(t, post.You)
	assert.Equal(t, "250.00", post.PriceDisplay)
	require.NotNil(t, post.End)
	assert.Equal(t, fixed.Add(7*24*time.Hour), *post.End)

	draft := false
	in = validPostInput()
	in.Published = &draft
	post, err = svc.CreatePost(context.Background(), "alice", in)
	require.NoError(t, err)
	assert.False(t, post.Published)
	assert.Nil(t, post.End)
}

func TestPostService_InvalidatesAnonymousFeed(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	svc := NewPostService(noopPostRepo(), nil, rdb, 10)
	ctx := context.Background()
	key := cache.AnonymousFeedKey(1, 10)

	require.NoError(t, mr.Set(key, "[]"))
	_, err := svc.CreatePost(ctx, "alice", validPostInput())
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	require.NoError(t, mr.Set(key, "[]"))
	require.NoError(t, svc.RemovePost(ctx, "alice", "p1"))
	assert.False(t, mr.Exists(key))

	require.NoError(t, mr.Set(key, "[]"))
	_, err = svc.Publish(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))
}

func TestPostService_EditInvalidatesAnonymousFeedWhenPublished(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	published := true
	repo := noopPostRepo()
	repo.getByHashFn = func(_ context.Context, _ feed.Viewer, hash string) (*models.Post, error) {
		return &models.Post{Hash: hash, Author: "alice", Published: published, Price: 500}, nil
	}
	svc := NewPostService(repo, nil, rdb, 10)
	ctx := context.Background()
	key := cache.AnonymousFeedKey(1, 10)

	require.NoError(t, mr.Set(key, "[]"))
	_, err := svc.EditPrice(ctx, "alice", "p1", 500)
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	require.NoError(t, mr.Set(key, "[]"))
	_, err = svc.EditName(ctx, "alice", "p1", "Touring bike")
	require.NoError(t, err)
	assert.False(t, mr.Exists(key))

	published = false
	require.NoError(t, mr.Set(key, "[]"))
	_, err = svc.EditLocation(ctx, "alice", "p1", "Lisbon")
	require.NoError(t, err)
	assert.True(t, mr.Exists(key), "draft edits leave the cached feed alone")

	_, err = svc.EditPrice(ctx, "mallory", "p1", -1)
	assertAppErrorCode(t, err, models.CodeValidation)
	assert.True(t, mr.Exists(key))
}

func TestPostService_EditMatchesAuthorAndHash(t *testing.T) {
	t.Parallel()

	repo := noopPostRepo()
	repo.updateFieldsFn = func(_ context.Context, author, hash string, fields map[string]interface{}) error {
		if author != "alice" {
			return models.NewNotFoundError("Post", hash)
		}
		assert.Equal(t, map[string]interface{}{"price": int64(990)}, fields)
		return nil
	}
	repo.getByHashFn = func(_ context.Context, v feed.Viewer, hash string) (*models.Post, error) {
		assert.True(t, v.IsSelf())
		return &models.Post{Hash: hash, Author: "alice", Price: 990}, nil
	}
	svc := NewPostService(repo, nil, nil, 10)
	ctx := context.Background()

	post, err := svc.EditPrice(ctx, "alice", "p1", 990)
	require.NoError(t, err)
	assert.Equal(t, "9.90", post.PriceDisplay)
	assert.True(t, post.You)

	_, err = svc.EditPrice(ctx, "mallory", "p1", 990)
	assertAppErrorCode(t, err, models.CodeNotFound)

	_, err = svc.EditPrice(ctx, "alice", "p1", -5)
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.EditContent(ctx, "alice", "p1", "short")
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.EditEnd(ctx, "alice", "p1", 0)
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestPostService_EditEndSetsDeadline(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := noopPostRepo()
	repo.updateFieldsFn = func(_ context.Context, _, _ string, fields map[string]interface{}) error {
		assert.Equal(t, fixed.Add(3*24*time.Hour), fields["end_at"])
		return nil
	}
	svc := NewPostService(repo, nil, nil, 10)
	svc.now = func() time.Time { return fixed }

	_, err := svc.EditEnd(context.Background(), "alice", "p1", 3)
	require.NoError(t, err)
}

func TestPostService_ViewPost(t *testing.T) {
	t.Parallel()

	newRepo := func(published bool, increments *int) *postRepoStub {
		repo := noopPostRepo()
		repo.getByHashFn = func(_ context.Context, _ feed.Viewer, hash string) (*models.Post, error) {
			return &models.Post{Hash: hash, Author: "alice", Published: published, Views: 4}, nil
		}
		repo.incrementViewsFn = func(_ context.Context, _ string) error {
			*increments++
			return nil
		}
		return repo
	}
	ctx := context.Background()

	t.Run("reader counts a view and emits an event", func(t *testing.T) {
		increments := 0
		pub := &publisherStub{}
		svc := NewPostService(newRepo(true, &increments), pub, nil, 10)

		post, err := svc.ViewPost(ctx, "bob", "p1")
		require.NoError(t, err)
		assert.Equal(t, 1, increments)
		assert.Equal(t, int64(5), post.Views)
		assert.False(t, post.You)
		require.Len(t, pub.events, 1)
		assert.Equal(t, "p1", pub.events[0].Post)
		assert.Equal(t, "bob", pub.events[0].Viewer)
	})

	t.Run("author view is not counted", func(t *testing.T) {
		increments := 0
		pub := &publisherStub{}
		svc := NewPostService(newRepo(false, &increments), pub, nil, 10)

		post, err := svc.ViewPost(ctx, "alice", "p1")
		require.NoError(t, err)
		assert.Equal(t, 0, increments)
		assert.True(t, post.You)
		assert.Empty(t, pub.events)
	})

	t.Run("draft hidden from others", func(t *testing.T) {
		increments := 0
		svc := NewPostService(newRepo(false, &increments), nil, nil, 10)

		_, err := svc.ViewPost(ctx, "bob", "p1")
		assertAppErrorCode(t, err, models.CodeNotFound)
		_, err = svc.ViewPost(ctx, "", "p1")
		assertAppErrorCode(t, err, models.CodeNotFound)
		assert.Equal(t, 0, increments)
	})

	t.Run("analytics failure is not fatal", func(t *testing.T) {
		increments := 0
		pub := &publisherStub{err: errors.New("stream unavailable")}
		svc := NewPostService(newRepo(true, &increments), pub, nil, 10)

		post, err := svc.ViewPost(ctx, "", "p1")
		require.NoError(t, err)
		assert.Equal(t, int64(5), post.Views)
	})
}
