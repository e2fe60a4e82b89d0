package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"guidehub/internal/models"
)

// mockGuideRepo is a lightweight in-test mock for repository.Guides.
type mockGuideRepo struct {
	ListFn   func(search, categoryID string) ([]models.Guide, error)
	CreateFn func(g models.Guide) (string, error)
	UpdateFn func(g models.Guide) error
	DeleteFn func(id string) error

	lastSearch   string
	lastCategory string
	lastGuide    models.Guide
}

func (m *mockGuideRepo) List(_ context.Context, search, categoryID string) ([]models.Guide, error) {
	m.lastSearch = search
	m.lastCategory = categoryID
	if m.ListFn != nil {
		return m.ListFn(search, categoryID)
	}
	return nil, nil
}

func (m *mockGuideRepo) GetByName(_ context.Context, name string) (*models.Guide, error) {
	return nil, nil
}

func (m *mockGuideRepo) GetByID(_ context.Context, id string) (*models.Guide, error) {
	return nil, nil
}

func (m *mockGuideRepo) Create(_ context.Context, g models.Guide) (string, error) {
	m.lastGuide = g
	if m.CreateFn != nil {
		return m.CreateFn(g)
	}
	return g.ID, nil
}

func (m *mockGuideRepo) Update(_ context.Context, g models.Guide) error {
	m.lastGuide = g
	if m.UpdateFn != nil {
		return m.UpdateFn(g)
	}
	return nil
}

func (m *mockGuideRepo) Delete(_ context.Context, id string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	return nil
}

func TestGuideService_List_TrimsFilter(t *testing.T) {
	mock := &mockGuideRepo{}
	svc := NewGuideService(mock)

	if _, err := svc.List(context.Background(), GuideFilter{Search: "  foo ", CategoryID: " cat-1 "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastSearch != "foo" || mock.lastCategory != "cat-1" {
		t.Fatalf("filter not trimmed: search=%q category=%q", mock.lastSearch, mock.lastCategory)
	}
}

func TestGuideService_Create_MissingFields(t *testing.T) {
	svc := NewGuideService(&mockGuideRepo{})

	cases := []models.Guide{
		{Title: "t", Author: "a", CategoryID: "c"},
		{Name: "n", Author: "a", CategoryID: "c"},
		{Name: "n", Title: "t", CategoryID: "c"},
		{Name: "n", Title: "t", Author: "a"},
	}
	for _, g := range cases {
		if _, err := svc.Create(context.Background(), g); !errors.Is(err, ErrGuideMissingField) {
			t.Fatalf("Create(%+v): expected ErrGuideMissingField, got %v", g, err)
		}
	}
}

func TestGuideService_Update_SynthesizesDistinctSectionIDs(t *testing.T) {
	mock := &mockGuideRepo{}
	svc := NewGuideService(mock)

	// Pin the clock so the synthesized ids are predictable.
	fixed := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	restore := now
	now = func() time.Time { return fixed }
	defer func() { now = restore }()

	g := models.Guide{
		ID: "g-1", Name: "first", Title: "Foo", Author: "ann", CategoryID: "cat-1",
		Sections: []models.Section{
			{Title: "A", Content: "B"},
			{Title: "C", Content: "D"},
		},
	}
	if err := svc.Update(context.Background(), g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := mock.lastGuide.Sections
	if len(got) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got))
	}
	if got[0].Title != "A" || got[1].Title != "C" {
		t.Fatalf("section order not preserved: %+v", got)
	}
	if got[0].ID == "" || got[1].ID == "" {
		t.Fatalf("expected synthesized ids, got %+v", got)
	}
	if got[0].ID == got[1].ID {
		t.Fatalf("synthesized ids must be distinct, both were %q", got[0].ID)
	}
}

func TestGuideService_Update_KeepsProvidedSectionIDs(t *testing.T) {
	mock := &mockGuideRepo{}
	svc := NewGuideService(mock)

	g := models.Guide{
		ID: "g-1", Name: "first", Title: "Foo", Author: "ann", CategoryID: "cat-1",
		Sections: []models.Section{{ID: "s-1", Title: "A", Content: "B"}},
	}
	if err := svc.Update(context.Background(), g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.lastGuide.Sections[0].ID != "s-1" {
		t.Fatalf("existing section id must survive, got %q", mock.lastGuide.Sections[0].ID)
	}
}

func TestGuideService_Update_SectionMissingFields(t *testing.T) {
	svc := NewGuideService(&mockGuideRepo{})

	g := models.Guide{
		ID: "g-1", Name: "first", Title: "Foo", Author: "ann", CategoryID: "cat-1",
		Sections: []models.Section{{Title: "", Content: "B"}},
	}
	if err := svc.Update(context.Background(), g); !errors.Is(err, ErrSectionMissingField) {
		t.Fatalf("expected ErrSectionMissingField, got %v", err)
	}
}

func TestGuideService_Delete_PropagatesError(t *testing.T) {
	want := errors.New("boom")
	mock := &mockGuideRepo{DeleteFn: func(id string) error { return want }}
	svc := NewGuideService(mock)

	if err := svc.Delete(context.Background(), "g-1"); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
