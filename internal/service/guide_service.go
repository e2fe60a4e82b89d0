package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"guidehub/internal/models"
	"guidehub/internal/repository"
)

// Validation errors for guide input.
var (
	ErrGuideMissingField   = errors.New("guide name, title, author and category are required")
	ErrSectionMissingField = errors.New("section title and content are required")
)

type GuideService struct {
	guideRepo repository.Guides
}

func NewGuideService(repo repository.Guides) *GuideService {
	return &GuideService{guideRepo: repo}
}

// now is swapped in tests to make synthesized section ids deterministic.
var now = time.Now

// List returns guides matching the filter with categories resolved.
func (s *GuideService) List(ctx context.Context, f GuideFilter) ([]models.Guide, error) {
	return s.guideRepo.List(ctx, strings.TrimSpace(f.Search), strings.TrimSpace(f.CategoryID))
}

// GetByName returns the guide with the given slug, or (nil, nil) if absent.
func (s *GuideService) GetByName(ctx context.Context, name string) (*models.Guide, error) {
	return s.guideRepo.GetByName(ctx, strings.TrimSpace(name))
}

// GetByID returns the guide with the given id, or (nil, nil) if absent.
func (s *GuideService) GetByID(ctx context.Context, id string) (*models.Guide, error) {
	return s.guideRepo.GetByID(ctx, id)
}

// Create validates and stores a new guide. Section ids missing from the
// input are synthesized before storage.
func (s *GuideService) Create(ctx context.Context, g models.Guide) (string, error) {
	g, err := normalizeGuide(g, true)
	if err != nil {
		return "", err
	}
	return s.guideRepo.Create(ctx, g)
}

// Update validates and atomically replaces the guide's name, title, category
// and sections. The author is set at creation and not part of an update.
func (s *GuideService) Update(ctx context.Context, g models.Guide) error {
	g, err := normalizeGuide(g, false)
	if err != nil {
		return err
	}
	return s.guideRepo.Update(ctx, g)
}

// Delete removes a guide by id. Deleting an unknown id is an error, not a
// silent success.
func (s *GuideService) Delete(ctx context.Context, id string) error {
	return s.guideRepo.Delete(ctx, id)
}

// normalizeGuide trims fields, checks required ones and fills in missing
// section ids.
func normalizeGuide(g models.Guide, requireAuthor bool) (models.Guide, error) {
	g.Name = strings.TrimSpace(g.Name)
	g.Title = strings.TrimSpace(g.Title)
	g.Author = strings.TrimSpace(g.Author)
	g.CategoryID = strings.TrimSpace(g.CategoryID)

	if g.Name == "" || g.Title == "" || g.CategoryID == "" || (requireAuthor && g.Author == "") {
		return models.Guide{}, ErrGuideMissingField
	}

	sections, err := normalizeSections(g.Sections)
	if err != nil {
		return models.Guide{}, err
	}
	g.Sections = sections
	return g, nil
}

// normalizeSections validates each section and synthesizes an id from the
// current time plus the section's position when one is missing, so two
// sections submitted together never collide.
func normalizeSections(sections []models.Section) ([]models.Section, error) {
	stamp := now().UnixNano()
	out := make([]models.Section, len(sections))
	for i, sec := range sections {
		sec.Title = strings.TrimSpace(sec.Title)
		sec.Content = strings.TrimSpace(sec.Content)
		if sec.Title == "" || sec.Content == "" {
			return nil, ErrSectionMissingField
		}
		if sec.ID == "" {
			sec.ID = fmt.Sprintf("%d-%d", stamp, i)
		}
		out[i] = sec
	}
	return out, nil
}
