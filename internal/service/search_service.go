package service

import (
	"context"

	"marketplace/internal/config"
	"marketplace/internal/featureflags"
	"marketplace/internal/feed"
	"marketplace/internal/models"
	"marketplace/internal/observability"
	"marketplace/internal/repository"
)

// SearchService runs ranked full-text search over posts and accounts.
type SearchService struct {
	posts    repository.PostRepository
	accounts repository.AccountRepository
	sizes    config.PageSizes
	flags    *featureflags.Manager
}

func NewSearchService(
	posts repository.PostRepository,
	accounts repository.AccountRepository,
	sizes config.PageSizes,
	flags *featureflags.Manager,
) *SearchService {
	return &SearchService{posts: posts, accounts: accounts, sizes: sizes, flags: flags}
}

func (s *SearchService) matchMode(callerHash string) feed.MatchMode {
	if s.flags.Enabled(featureflags.SearchMatchAll, callerHash) {
		return feed.MatchAll
	}
	return feed.MatchAny
}

// SearchPosts ranks published posts against query. A blank query is an empty last page.
func (s *SearchService) SearchPosts(ctx context.Context, callerHash, query string, pageNum int) (feed.Envelope[*models.Post], error) {
	page := feed.NewPage(pageNum, s.sizes.SearchPosts)
	tsquery := feed.BuildTSQuery(query, s.matchMode(callerHash))
	if tsquery == "" {
		observability.SearchQueries.WithLabelValues("posts", "empty_query").Inc()
		return feed.Empty[*models.Post](page), nil
	}

	v := feed.ResolveViewer(callerHash, "")
	env, err := assemble(ctx, "search_posts", v, page, func(ctx context.Context) ([]*models.Post, error) {
		return s.posts.Search(ctx, v, tsquery, page)
	}, feed.AnnotatePosts)
	observability.SearchQueries.WithLabelValues("posts", searchOutcome(len(env.Items), err)).Inc()
	return env, err
}

// SearchUsers ranks accounts by name against query.
func (s *SearchService) SearchUsers(ctx context.Context, callerHash, query string, pageNum int) (feed.Envelope[*models.Account], error) {
	page := feed.NewPage(pageNum, s.sizes.SearchPeople)
	tsquery := feed.BuildTSQuery(query, s.matchMode(callerHash))
	if tsquery == "" {
		observability.SearchQueries.WithLabelValues("people", "empty_query").Inc()
		return feed.Empty[*models.Account](page), nil
	}

	v := feed.ResolveViewer(callerHash, "")
	env, err := assemble(ctx, "search_people", v, page, func(ctx context.Context) ([]*models.Account, error) {
		return s.accounts.Search(ctx, v, tsquery, page)
	}, feed.AnnotateAccounts)
	observability.SearchQueries.WithLabelValues("people", searchOutcome(len(env.Items), err)).Inc()
	return env, err
}

func searchOutcome(items int, err error) string {
	switch {
	case err != nil:
		return "error"
	case items == 0:
		return "no_results"
	default:
		return "results"
	}
}
