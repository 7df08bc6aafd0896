package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marketplace/internal/analytics"
	"marketplace/internal/cache"
	"marketplace/internal/feed"
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/repository"
	"marketplace/internal/validation"

	"github.com/redis/go-redis/v9"
)

// PostService owns the listing lifecycle: create, publish, edit, remove and view.
type PostService struct {
	posts     repository.PostRepository
	publisher analytics.Publisher
	rdb       *redis.Client
	feedLimit int
	now       func() time.Time
}

type CreatePostInput struct {
	Kind      models.PostKind `json:"kind"`
	Name      string          `json:"name"`
	Content   string          `json:"content"`
	Location  string          `json:"location"`
	Price     int64           `json:"price"`
	Published *bool           `json:"published"`
	EndDays   int             `json:"end"`
}

// NewPostService wires the post lifecycle. rdb and feedLimit locate the cached
// anonymous feed page that new or removed posts invalidate; rdb may be nil.
func NewPostService(
	posts repository.PostRepository,
	publisher analytics.Publisher,
	rdb *redis.Client,
	feedLimit int,
) *PostService {
	if publisher == nil {
		publisher = analytics.Noop{}
	}
	return &PostService{
		posts:     posts,
		publisher: publisher,
		rdb:       rdb,
		feedLimit: feedLimit,
		now:       time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, authorHash string, in CreatePostInput) (*models.Post, error) {
	if authorHash == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := validatePostInput(in); err != nil {
		return nil, err
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}
	post := &models.Post{
		Hash:      models.NewHash(),
		Kind:      in.Kind,
		Author:    authorHash,
		Name:      strings.TrimSpace(in.Name),
		Content:   strings.TrimSpace(in.Content),
		Location:  strings.TrimSpace(in.Location),
		Price:     in.Price,
		Published: published,
	}
	if in.EndDays != 0 {
		end := s.now().Add(time.Duration(in.EndDays) * 24 * time.Hour).UTC()
		post.End = &end
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	if published {
		cache.InvalidateAnonymousFeed(ctx, s.rdb, s.feedLimit)
	}
	feed.AnnotatePosts(feed.ResolveViewer(authorHash, authorHash), []*models.Post{post})
	return post, nil
}

func validatePostInput(in CreatePostInput) error {
	checks := []error{
		validation.ValidatePostKind(in.Kind),
		validation.ValidatePostName(in.Name),
		validation.ValidateContent(in.Content),
		validation.ValidateLocation(in.Location),
		validation.ValidatePrice(in.Price),
	}
	if in.EndDays != 0 {
		checks = append(checks, validation.ValidateEndDays(in.EndDays))
	}
	for _, err := range checks {
		if err != nil {
			return models.NewValidationError(err.Error())
		}
	}
	return nil
}

// Publish makes a draft visible to everyone.
func (s *PostService) Publish(ctx context.Context, authorHash, postHash string) (*models.Post, error) {
	return s.edit(ctx, authorHash, postHash, map[string]interface{}{"published": true})
}

func (s *PostService) EditContent(ctx context.Context, authorHash, postHash, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.edit(ctx, authorHash, postHash, map[string]interface{}{"content": content})
}

func (s *PostService) EditName(ctx context.Context, authorHash, postHash, name string) (*models.Post, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidatePostName(name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.edit(ctx, authorHash, postHash, map[string]interface{}{"name": name})
}

func (s *PostService) EditLocation(ctx context.Context, authorHash, postHash, location string) (*models.Post, error) {
	location = strings.TrimSpace(location)
	if err := validation.ValidateLocation(location); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.edit(ctx, authorHash, postHash, map[string]interface{}{"location": location})
}

func (s *PostService) EditPrice(ctx context.Context, authorHash, postHash string, price int64) (*models.Post, error) {
	if err := validation.ValidatePrice(price); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	return s.edit(ctx, authorHash, postHash, map[string]interface{}{"price": price})
}

// EditEnd closes the listing days from now.
func (s *PostService) EditEnd(ctx context.Context, authorHash, postHash string, days int) (*models.Post, error) {
	if err := validation.ValidateEndDays(days); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	end := s.now().Add(time.Duration(days) * 24 * time.Hour).UTC()
	return s.edit(ctx, authorHash, postHash, map[string]interface{}{"end_at": end})
}

func (s *PostService) edit(ctx context.Context, authorHash, postHash string, fields map[string]interface{}) (*models.Post, error) {
	if authorHash == "" {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := s.posts.UpdateFields(ctx, authorHash, postHash, fields); err != nil {
		return nil, err
	}
	v := feed.ResolveViewer(authorHash, authorHash)
	post, err := s.posts.GetByHash(ctx, v, postHash)
	if err != nil {
		return nil, err
	}
	if _, publishing := fields["published"]; publishing || post.Published {
		cache.InvalidateAnonymousFeed(ctx, s.rdb, s.feedLimit)
	}
	feed.AnnotatePosts(v, []*models.Post{post})
	return post, nil
}

// RemovePost deletes a post owned by authorHash. Someone else's post is reported as not found.
func (s *PostService) RemovePost(ctx context.Context, authorHash, postHash string) error {
	if authorHash == "" {
		return models.NewUnauthorizedError("Authentication required")
	}
	if err := s.posts.Delete(ctx, authorHash, postHash); err != nil {
		return err
	}
	cache.InvalidateAnonymousFeed(ctx, s.rdb, s.feedLimit)
	return nil
}

// ViewPost returns one post and counts the view. Drafts are visible to their author only,
// and an author reading their own post is not counted.
func (s *PostService) ViewPost(ctx context.Context, callerHash, postHash string) (*models.Post, error) {
	if strings.TrimSpace(postHash) == "" {
		return nil, models.NewValidationError("Post hash is required")
	}
	v := feed.ResolveViewer(callerHash, "")
	post, err := s.posts.GetByHash(ctx, v, postHash)
	if err != nil {
		return nil, err
	}

	isAuthor := callerHash != "" && post.Author == callerHash
	if !post.Published && !isAuthor {
		return nil, models.NewNotFoundError("Post", postHash)
	}

	if !isAuthor {
		if err := s.posts.IncrementViews(ctx, postHash); err != nil {
			return nil, err
		}
		post.Views++
		s.publishView(ctx, post, callerHash)
	}

	feed.AnnotatePosts(v, []*models.Post{post})
	return post, nil
}

func (s *PostService) publishView(ctx context.Context, post *models.Post, viewer string) {
	err := s.publisher.PostViewed(ctx, analytics.PostViewEvent{
		Post:     post.Hash,
		Author:   post.Author,
		Viewer:   viewer,
		Views:    post.Views,
		ViewedAt: s.now().UTC(),
	})
	if err != nil {
		middleware.Logger.WarnContext(ctx, "post view event dropped",
			slog.String("post", post.Hash),
			slog.String("error", err.Error()),
		)
	}
}
