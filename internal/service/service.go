package service

import (
	"context"
	"time"

	"guidehub/internal/models"
	"guidehub/internal/repository"
)

// Identity is the decoded session token payload attached to gated requests.
type Identity struct {
	ID   int
	Name string
}

type Authorization interface {
	Register(ctx context.Context, name, password string) (int, error)
	Login(ctx context.Context, name, password string) (string, error)
	ParseToken(accessToken string) (Identity, error)
}

// GuideFilter narrows the public listing. Zero values impose no filter.
type GuideFilter struct {
	Search     string // case-insensitive substring match on title
	CategoryID string // exact match on the referenced category
}

// Guides exposes the document management operations behind the public and
// admin routes.
type Guides interface {
	List(ctx context.Context, f GuideFilter) ([]models.Guide, error)
	GetByName(ctx context.Context, name string) (*models.Guide, error)
	GetByID(ctx context.Context, id string) (*models.Guide, error)
	Create(ctx context.Context, g models.Guide) (string, error)
	Update(ctx context.Context, g models.Guide) error
	Delete(ctx context.Context, id string) error
}

type Categories interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, c models.Category) (string, error)
	Delete(ctx context.Context, id string) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	Guides
	Categories
}

// AuthConfig carries the token-signing material injected at startup.
type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Admins, auth),
		Guides:        NewGuideService(repos.Guides),
		Categories:    NewCategoryService(repos.Categories),
	}
}
