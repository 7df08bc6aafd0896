package seed

import (
	"context"
	"fmt"
	"log"
	"strings"

	"marketplace/internal/models"
	"marketplace/internal/repository"

	"gorm.io/gorm"
)

// Options configure how the seeder writes.
type Options struct {
	// DraftRatio is the share of generated posts left unpublished.
	DraftRatio float64
	MaxDays    int
	BatchSize  int
	SkipBcrypt bool
	DryRun     bool
}

// Summary counts what a run created.
type Summary struct {
	Accounts    int
	Posts       int
	Connections int
}

// Seeder populates the database with accounts, listings and follow edges.
type Seeder struct {
	db          *gorm.DB
	factory     *Factory
	connections repository.ConnectionRepository
	opts        Options
}

// NewSeeder creates a Seeder. db may be nil in DryRun mode.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	s := &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
	if db != nil {
		s.connections = repository.NewConnectionRepository(db)
	}
	return s
}

// ClearAll removes every account, post and connection.
func (s *Seeder) ClearAll(ctx context.Context) error {
	if s.opts.DryRun {
		log.Println("[dry-run] ClearAll skipped")
		return nil
	}
	log.Println("clearing existing data...")
	if s.db.Dialector.Name() == "postgres" {
		return s.db.WithContext(ctx).
			Exec(`TRUNCATE TABLE connections, posts, accounts RESTART IDENTITY CASCADE`).Error
	}
	for _, model := range []interface{}{&models.Connection{}, &models.Post{}, &models.Account{}} {
		if err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run applies a preset: fixed accounts first, then generated accounts, posts and follows.
func (s *Seeder) Run(ctx context.Context, p Preset) (Summary, error) {
	var sum Summary
	if err := p.Validate(); err != nil {
		return sum, err
	}
	if p.DraftRatio > 0 {
		s.factory.opts.DraftRatio = p.DraftRatio
	}
	if p.MaxDays > 0 {
		s.factory.opts.MaxDays = p.MaxDays
	}

	accounts, err := s.SeedAccounts(ctx, p.Accounts, p.Fixed)
	if err != nil {
		return sum, fmt.Errorf("seed accounts: %w", err)
	}
	sum.Accounts = len(accounts)
	log.Printf("✓ %d accounts created", sum.Accounts)

	posts, err := s.SeedPosts(ctx, accounts, p.Posts)
	if err != nil {
		return sum, fmt.Errorf("seed posts: %w", err)
	}
	sum.Posts = len(posts)
	log.Printf("✓ %d posts created", sum.Posts)

	sum.Connections, err = s.SeedConnections(ctx, accounts, p.FollowsPerAccount)
	if err != nil {
		return sum, fmt.Errorf("seed connections: %w", err)
	}
	log.Printf("✓ %d connections created", sum.Connections)
	return sum, nil
}

// SeedAccounts creates the fixed accounts plus generated ones up to total.
func (s *Seeder) SeedAccounts(ctx context.Context, total int, fixed []FixedAccount) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0, max(total, len(fixed)))
	for _, fa := range fixed {
		a, err := s.factory.BuildAccount(func(a *models.Account) {
			a.Name = fa.Name
			a.Email = strings.ToLower(strings.TrimSpace(fa.Email))
			if fa.Bio != "" {
				a.Bio = fa.Bio
			}
			a.Verified = true
		})
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	for len(accounts) < total {
		a, err := s.factory.BuildAccount()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := s.factory.CreateAccountsBatch(ctx, accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// SeedPosts spreads count posts over authors at random.
func (s *Seeder) SeedPosts(ctx context.Context, authors []*models.Account, count int) ([]*models.Post, error) {
	if len(authors) == 0 || count <= 0 {
		return nil, nil
	}
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := authors[s.factory.rnd.Intn(len(authors))]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// SeedConnections makes every account follow perAccount others. Follows go through
// the connection repository so follower counts stay consistent.
func (s *Seeder) SeedConnections(ctx context.Context, accounts []*models.Account, perAccount int) (int, error) {
	created := 0
	for i, from := range accounts {
		for _, j := range s.factory.pickTargets(i, len(accounts), perAccount) {
			if s.opts.DryRun {
				created++
				continue
			}
			res, err := s.connections.Toggle(ctx, from.Hash, accounts[j].Hash)
			if err != nil {
				return created, err
			}
			if res.NowFollowing {
				created++
			}
		}
	}
	return created, nil
}
