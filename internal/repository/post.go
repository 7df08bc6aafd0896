package repository

import (
	"context"

	"marketplace/internal/feed"
	"marketplace/internal/models"
	"marketplace/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByHash(ctx context.Context, v feed.Viewer, hash string) (*models.Post, error)
	Feed(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Post, error)
	ByAuthor(ctx context.Context, v feed.Viewer, author string, page feed.Page) ([]*models.Post, error)
	Search(ctx context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Post, error)
	IncrementViews(ctx context.Context, hash string) error
	UpdateFields(ctx context.Context, author, hash string, fields map[string]interface{}) error
	Delete(ctx context.Context, author, hash string) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Post already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetByHash loads a single post regardless of published state; callers enforce visibility.
func (r *postRepository) GetByHash(ctx context.Context, v feed.Viewer, hash string) (*models.Post, error) {
	defer observability.TrackQuery("get", "posts")()
	var post models.Post
	err := r.db.WithContext(ctx).
		Scopes(withPostAuthor(v)).
		Where("posts.hash = ?", hash).
		First(&post).Error
	if err != nil {
		return nil, storeError(err, "Post", hash)
	}
	return &post, nil
}

// Feed returns published posts, newest first.
func (r *postRepository) Feed(ctx context.Context, v feed.Viewer, page feed.Page) ([]*models.Post, error) {
	defer observability.TrackQuery("feed", "posts")()
	var posts []*models.Post
	err := readDB(r.db).WithContext(ctx).
		Scopes(visiblePosts(v), withPostAuthor(v), paginate(page)).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ByAuthor lists one author's posts. A Self viewer also sees unpublished posts.
func (r *postRepository) ByAuthor(ctx context.Context, v feed.Viewer, author string, page feed.Page) ([]*models.Post, error) {
	defer observability.TrackQuery("by_author", "posts")()
	var posts []*models.Post
	err := readDB(r.db).WithContext(ctx).
		Scopes(visiblePosts(v), withPostAuthor(v), paginate(page)).
		Where("posts.author = ?", author).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Search ranks published posts by ts_rank_cd against a prepared tsquery, newest first on ties.
func (r *postRepository) Search(ctx context.Context, v feed.Viewer, tsquery string, page feed.Page) ([]*models.Post, error) {
	defer observability.TrackQuery("search", "posts")()
	ctx, span := observability.TraceRepositoryMethod(ctx, "search", "posts")
	defer span.End()
	span.SetAttributes(attribute.String("search.tsquery", tsquery))
	var posts []*models.Post
	cols := &selectColumns{}
	cols.add("posts.*").
		add("ts_rank_cd(posts.search, to_tsquery('english', ?)) AS rank", tsquery)

	err := cols.apply(readDB(r.db).WithContext(ctx)).
		Scopes(visiblePosts(v), withPostAuthor(v), paginate(page)).
		Where("posts.search @@ to_tsquery('english', ?)", tsquery).
		Order("rank DESC, posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, models.NewInternalError(err)
	}
	span.SetAttributes(attribute.Int("search.results", len(posts)))
	return posts, nil
}

func (r *postRepository) IncrementViews(ctx context.Context, hash string) error {
	defer observability.TrackQuery("increment_views", "posts")()
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("hash = ?", hash).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", hash)
	}
	return nil
}

// UpdateFields applies a partial update matched by (author, hash); no match is NotFound.
func (r *postRepository) UpdateFields(ctx context.Context, author, hash string, fields map[string]interface{}) error {
	defer observability.TrackQuery("update", "posts")()
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author = ? AND hash = ?", author, hash).
		Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", hash)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, author, hash string) error {
	defer observability.TrackQuery("delete", "posts")()
	res := r.db.WithContext(ctx).
		Where("author = ? AND hash = ?", author, hash).
		Delete(&models.Post{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", hash)
	}
	return nil
}
