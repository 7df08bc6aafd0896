package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"marketplace/internal/cache"
	"marketplace/internal/config"
	"marketplace/internal/featureflags"
	"marketplace/internal/feed"
	"marketplace/internal/middleware"
	"marketplace/internal/models"
	"marketplace/internal/observability"
	"marketplace/internal/repository"

	"github.com/redis/go-redis/v9"
)

// FeedService serves the paginated feeds: the home feed, trending accounts,
// one author's posts, and follower/following lists.
type FeedService struct {
	posts    repository.PostRepository
	accounts repository.AccountRepository
	sizes    config.PageSizes

	rdb      *redis.Client
	cacheTTL time.Duration
	flags    *featureflags.Manager
}

// FeedOption configures optional FeedService behaviour.
type FeedOption func(*FeedService)

// WithAnonymousFeedCache serves the anonymous first feed page from Redis for ttl.
// A zero ttl or nil client leaves caching off.
func WithAnonymousFeedCache(rdb *redis.Client, ttl time.Duration, flags *featureflags.Manager) FeedOption {
	return func(s *FeedService) {
		s.rdb = rdb
		s.cacheTTL = ttl
		s.flags = flags
	}
}

func NewFeedService(
	posts repository.PostRepository,
	accounts repository.AccountRepository,
	sizes config.PageSizes,
	opts ...FeedOption,
) *FeedService {
	s := &FeedService{posts: posts, accounts: accounts, sizes: sizes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FeedService) cacheEnabled() bool {
	if s.rdb == nil || s.cacheTTL <= 0 {
		return false
	}
	if s.flags.Configured(featureflags.AnonymousFeedCache) {
		return s.flags.Enabled(featureflags.AnonymousFeedCache, "")
	}
	return true
}

// FetchFeed returns published posts, newest first.
func (s *FeedService) FetchFeed(ctx context.Context, callerHash string, pageNum int) (feed.Envelope[*models.Post], error) {
	v := feed.ResolveViewer(callerHash, "")
	page := feed.NewPage(pageNum, s.sizes.Feed)

	return assemble(ctx, "feed", v, page, func(ctx context.Context) ([]*models.Post, error) {
		if v.IsAnonymous() && page.Number == 1 && s.cacheEnabled() {
			return s.cachedFeed(ctx, v, page)
		}
		return s.posts.Feed(ctx, v, page)
	}, feed.AnnotatePosts)
}

func (s *FeedService) cachedFeed(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Post, error) {
	var posts []*models.Post
	res, err := cache.Aside(ctx, s.rdb, cache.AnonymousFeedKey(page.Number, page.Limit), &posts, s.cacheTTL, func() error {
		var err error
		posts, err = s.posts.Feed(ctx, v, page)
		return err
	})
	observability.FeedCacheResults.WithLabelValues(string(res)).Inc()
	if res == cache.Error {
		middleware.Logger.WarnContext(ctx, "anonymous feed cache unavailable, served from database")
	}
	return posts, err
}

// FetchTrendingUsers lists accounts by follower count. An authenticated caller is left out.
func (s *FeedService) FetchTrendingUsers(ctx context.Context, callerHash string, pageNum int) (feed.Envelope[*models.Account], error) {
	v := feed.ResolveViewer(callerHash, "")
	page := feed.NewPage(pageNum, s.sizes.Trending)

	return assemble(ctx, "trending", v, page, func(ctx context.Context) ([]*models.Account, error) {
		return s.accounts.Trending(ctx, v, page)
	}, feed.AnnotateAccounts)
}

// FetchPostsByAuthor lists one author's posts. The author themselves also sees unpublished posts.
func (s *FeedService) FetchPostsByAuthor(ctx context.Context, callerHash, subjectHash string, pageNum int) (feed.Envelope[*models.Post], error) {
	if err := s.requireSubject(ctx, subjectHash); err != nil {
		return feed.Envelope[*models.Post]{}, err
	}
	v := feed.ResolveViewer(callerHash, subjectHash)
	page := feed.NewPage(pageNum, s.sizes.AuthorPosts)

	return assemble(ctx, "author_posts", v, page, func(ctx context.Context) ([]*models.Post, error) {
		return s.posts.ByAuthor(ctx, v, subjectHash, page)
	}, feed.AnnotatePosts)
}

// FetchFollowers lists accounts following subjectHash, most recent first.
func (s *FeedService) FetchFollowers(ctx context.Context, callerHash, subjectHash string, pageNum int) (feed.Envelope[*models.Account], error) {
	if err := s.requireSubject(ctx, subjectHash); err != nil {
		return feed.Envelope[*models.Account]{}, err
	}
	v := feed.ResolveViewer(callerHash, subjectHash)
	page := feed.NewPage(pageNum, s.sizes.Followers)

	return assemble(ctx, "followers", v, page, func(ctx context.Context) ([]*models.Account, error) {
		return s.accounts.Followers(ctx, v, subjectHash, page)
	}, feed.AnnotateAccounts)
}

// FetchFollowing lists accounts subjectHash follows, most recent first.
func (s *FeedService) FetchFollowing(ctx context.Context, callerHash, subjectHash string, pageNum int) (feed.Envelope[*models.Account], error) {
	if err := s.requireSubject(ctx, subjectHash); err != nil {
		return feed.Envelope[*models.Account]{}, err
	}
	v := feed.ResolveViewer(callerHash, subjectHash)
	page := feed.NewPage(pageNum, s.sizes.Following)

	return assemble(ctx, "following", v, page, func(ctx context.Context) ([]*models.Account, error) {
		return s.accounts.Following(ctx, v, subjectHash, page)
	}, feed.AnnotateAccounts)
}

func (s *FeedService) requireSubject(ctx context.Context, subjectHash string) error {
	if strings.TrimSpace(subjectHash) == "" {
		return models.NewValidationError("Account hash is required")
	}
	ok, err := s.accounts.Exists(ctx, subjectHash)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "account lookup failed",
			slog.String("subject", subjectHash),
			slog.String("error", err.Error()),
		)
		return err
	}
	if !ok {
		return models.NewNotFoundError("Account", subjectHash)
	}
	return nil
}
