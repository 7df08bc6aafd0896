// Package seed provides helpers to create demo data for the marketplace
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"marketplace/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every generated account.
const DefaultPassword = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	// #nosec G404: acceptable for seeding
	rnd *rand.Rand

	hashOnce     sync.Once
	passwordHash string
	hashErr      error

	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB. db may be nil in DryRun mode.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:     db,
		opts:   opts,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID: 1000,
	}
}

func (f *Factory) password() (string, error) {
	if f.opts.SkipBcrypt {
		return DefaultPassword, nil
	}
	f.hashOnce.Do(func() {
		hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
		f.passwordHash, f.hashErr = string(hashed), err
	})
	return f.passwordHash, f.hashErr
}

// pastTime spreads created_at over the last MaxDays days.
func (f *Factory) pastTime() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	back := time.Duration(f.rnd.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24))*time.Hour +
		time.Duration(f.rnd.Intn(60))*time.Minute
	return time.Now().Add(-back).UTC()
}

// BuildAccount constructs an account without persisting it.
func (f *Factory) BuildAccount(overrides ...func(*models.Account)) (*models.Account, error) {
	password, err := f.password()
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	hash := models.NewHash()
	account := &models.Account{
		Hash:      hash,
		Name:      gofakeit.Name(),
		Email:     strings.ToLower(fmt.Sprintf("%s.%s@example.com", gofakeit.Username(), hash[len(hash)-6:])),
		Password:  password,
		Bio:       gofakeit.Sentence(10),
		Picture:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", hash),
		Verified:  f.rnd.Float32() < 0.5,
		CreatedAt: f.pastTime(),
	}
	if f.rnd.Float32() < 0.3 {
		account.Contact = &models.Contact{
			Phone:   gofakeit.Phone(),
			Website: gofakeit.URL(),
			Address: gofakeit.City(),
		}
	}
	for _, override := range overrides {
		override(account)
	}
	return account, nil
}

// BuildPost constructs a listing for author without persisting it.
func (f *Factory) BuildPost(author *models.Account, overrides ...func(*models.Post)) *models.Post {
	kind := models.PostKindProduct
	name := gofakeit.ProductName()
	if f.rnd.Intn(3) == 0 {
		kind = models.PostKindService
		name = fmt.Sprintf("Looking for %s %s", gofakeit.JobDescriptor(), strings.ToLower(gofakeit.JobTitle()))
	}

	post := &models.Post{
		Hash:      models.NewHash(),
		Kind:      kind,
		Author:    author.Hash,
		Name:      name,
		Content:   gofakeit.Paragraph(1, 3, 12, " "),
		Location:  gofakeit.City(),
		Price:     int64(gofakeit.Number(100, 250000)),
		Views:     int64(f.rnd.Intn(500)),
		Published: f.rnd.Float64() >= f.opts.DraftRatio,
		CreatedAt: f.pastTime(),
	}
	if f.rnd.Intn(4) == 0 {
		end := time.Now().Add(time.Duration(1+f.rnd.Intn(60)) * 24 * time.Hour).UTC()
		post.End = &end
	}
	post.UpdatedAt = post.CreatedAt

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreateAccountsBatch persists accounts in chunks of BatchSize.
func (f *Factory) CreateAccountsBatch(ctx context.Context, accounts []*models.Account) error {
	if f.opts.DryRun {
		for _, a := range accounts {
			f.nextID++
			a.ID = f.nextID
		}
		log.Printf("[dry-run] CreateAccountsBatch: %d accounts (no DB write)", len(accounts))
		return nil
	}
	if len(accounts) == 0 {
		return nil
	}
	return f.db.WithContext(ctx).CreateInBatches(accounts, f.batchSize()).Error
}

// CreatePostsBatch persists posts in chunks of BatchSize.
func (f *Factory) CreatePostsBatch(ctx context.Context, posts []*models.Post) error {
	if f.opts.DryRun {
		for _, p := range posts {
			f.nextID++
			p.ID = f.nextID
		}
		log.Printf("[dry-run] CreatePostsBatch: %d posts (no DB write)", len(posts))
		return nil
	}
	if len(posts) == 0 {
		return nil
	}
	return f.db.WithContext(ctx).CreateInBatches(posts, f.batchSize()).Error
}

func (f *Factory) batchSize() int {
	if f.opts.BatchSize > 0 {
		return f.opts.BatchSize
	}
	return 100
}

// pickTargets returns up to n distinct indexes in [0,total) other than self.
func (f *Factory) pickTargets(self, total, n int) []int {
	if n > total-1 {
		n = total - 1
	}
	if n <= 0 {
		return nil
	}
	picked := make([]int, 0, n)
	for _, idx := range f.rnd.Perm(total) {
		if idx == self {
			continue
		}
		picked = append(picked, idx)
		if len(picked) == n {
			break
		}
	}
	return picked
}
