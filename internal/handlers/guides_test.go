package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"guidehub/internal/models"
	"guidehub/internal/service"
)

func testGuide() models.Guide {
	return models.Guide{
		ID:          "g-1",
		Name:        "install-linux",
		Title:       "Installing Linux",
		Author:      "alice",
		CategoryID:  "c-1",
		Category:    &models.Category{ID: "c-1", Name: "Systems"},
		DateCreated: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Sections: []models.Section{
			{ID: "s-1", Title: "Prepare", Content: "Download the image."},
		},
	}
}

func TestIndex_ForwardsFilter(t *testing.T) {
	guides := &mockGuides{listResp: []models.Guide{testGuide()}}
	s := &service.Service{Authorization: &mockAuth{}, Guides: guides, Categories: &mockCategories{}}
	r := newTestRouter(s)

	w := get(r, "/?search=linux&category=c-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}
	if guides.lastFilter.Search != "linux" || guides.lastFilter.CategoryID != "c-1" {
		t.Fatalf("filter not forwarded: %+v", guides.lastFilter)
	}
	if !strings.Contains(w.Body.String(), "Installing Linux") {
		t.Fatalf("expected guide title in listing, body=%s", w.Body.String())
	}
}

func TestGuideDetail(t *testing.T) {
	t.Run("published guide renders sections", func(t *testing.T) {
		g := testGuide()
		guides := &mockGuides{getNameResp: &g}
		s := &service.Service{Authorization: &mockAuth{}, Guides: guides, Categories: &mockCategories{}}
		r := newTestRouter(s)

		w := get(r, "/guides/install-linux", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Download the image.") {
			t.Fatalf("expected section content, body=%s", w.Body.String())
		}
	})

	t.Run("unknown slug renders 404", func(t *testing.T) {
		s := &service.Service{Authorization: &mockAuth{}, Guides: &mockGuides{}, Categories: &mockCategories{}}
		r := newTestRouter(s)

		w := get(r, "/guides/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestNoRoute_Renders404(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}, Guides: &mockGuides{}, Categories: &mockCategories{}}
	r := newTestRouter(s)

	w := get(r, "/no/such/page", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAddGuide(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{ID: 1, Name: "alice"}}
	guides := &mockGuides{createID: "g-9"}
	s := &service.Service{Authorization: auth, Guides: guides, Categories: &mockCategories{}}
	r := newTestRouter(s)

	form := url.Values{
		"name":     {"deploy-nginx"},
		"title":    {"Deploying nginx"},
		"author":   {"alice"},
		"category": {"c-1"},
	}
	w := postForm(r, "/admin/add", form, "tok")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d, body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/admin" {
		t.Fatalf("expected redirect to /admin, got %q", loc)
	}
	if guides.lastCreated.Name != "deploy-nginx" || guides.lastCreated.Author != "alice" {
		t.Fatalf("form not forwarded: %+v", guides.lastCreated)
	}
}

func TestAddGuide_ServiceError(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{ID: 1, Name: "alice"}}
	guides := &mockGuides{createErr: errors.New("db down")}
	s := &service.Service{Authorization: auth, Guides: guides, Categories: &mockCategories{}}
	r := newTestRouter(s)

	w := postForm(r, "/admin/add", url.Values{"name": {"x"}}, "tok")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestEditGuide_ParsesSections(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{ID: 1, Name: "alice"}}
	guides := &mockGuides{}
	s := &service.Service{Authorization: auth, Guides: guides, Categories: &mockCategories{}}
	r := newTestRouter(s)

	form := url.Values{
		"name":            {"install-linux"},
		"title":           {"Installing Linux"},
		"category":        {"c-2"},
		"section_id":      {"s-1", ""},
		"section_title":   {"Prepare", "Boot"},
		"section_content": {"Download the image.", "Boot from USB."},
	}
	w := postForm(r, "/admin/edit/g-1", form, "tok")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d, body=%s", w.Code, w.Body.String())
	}

	got := guides.lastUpdated
	if got.ID != "g-1" || got.CategoryID != "c-2" {
		t.Fatalf("identity or category not forwarded: %+v", got)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got.Sections))
	}
	// order follows the form, existing ids kept, new rows left blank
	if got.Sections[0].ID != "s-1" || got.Sections[0].Title != "Prepare" {
		t.Fatalf("first section mangled: %+v", got.Sections[0])
	}
	if got.Sections[1].ID != "" || got.Sections[1].Content != "Boot from USB." {
		t.Fatalf("second section mangled: %+v", got.Sections[1])
	}
}

func TestEditGuideForm_UnknownID(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{ID: 1, Name: "alice"}}
	s := &service.Service{Authorization: auth, Guides: &mockGuides{}, Categories: &mockCategories{}}
	r := newTestRouter(s)

	w := get(r, "/admin/edit/missing", "tok")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteGuide(t *testing.T) {
	t.Run("forwards id and redirects", func(t *testing.T) {
		auth := &mockAuth{parseIdent: service.Identity{ID: 1, Name: "alice"}}
		guides := &mockGuides{}
		s := &service.Service{Authorization: auth, Guides: guides, Categories: &mockCategories{}}
		r := newTestRouter(s)

		w := postForm(r, "/admin/delete/g-1", url.Values{}, "tok")
		if w.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", w.Code)
		}
		if guides.lastDeleted != "g-1" {
			t.Fatalf("expected delete of g-1, got %q", guides.lastDeleted)
		}
	})

	t.Run("service error renders 500", func(t *testing.T) {
		auth := &mockAuth{parseIdent: service.Identity{ID: 1, Name: "alice"}}
		guides := &mockGuides{deleteErr: errors.New("no such guide")}
		s := &service.Service{Authorization: auth, Guides: guides, Categories: &mockCategories{}}
		r := newTestRouter(s)

		w := postForm(r, "/admin/delete/missing", url.Values{}, "tok")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestCategories(t *testing.T) {
	auth := &mockAuth{parseIdent: service.Identity{ID: 1, Name: "alice"}}

	t.Run("add forwards form and redirects", func(t *testing.T) {
		cats := &mockCategories{createID: "c-9"}
		s := &service.Service{Authorization: auth, Guides: &mockGuides{}, Categories: cats}
		r := newTestRouter(s)

		w := postForm(r, "/admin/categories/add", url.Values{"name": {"Systems"}, "description": {"OS guides"}}, "tok")
		if w.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", w.Code)
		}
		if cats.lastCreated.Name != "Systems" || cats.lastCreated.Description != "OS guides" {
			t.Fatalf("form not forwarded: %+v", cats.lastCreated)
		}
	})

	t.Run("add without name is rejected", func(t *testing.T) {
		cats := &mockCategories{createErr: service.ErrCategoryMissingName}
		s := &service.Service{Authorization: auth, Guides: &mockGuides{}, Categories: cats}
		r := newTestRouter(s)

		w := postForm(r, "/admin/categories/add", url.Values{}, "tok")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("delete of referenced category is rejected", func(t *testing.T) {
		cats := &mockCategories{deleteErr: service.ErrCategoryInUse}
		s := &service.Service{Authorization: auth, Guides: &mockGuides{}, Categories: cats}
		r := newTestRouter(s)

		w := postForm(r, "/admin/categories/delete/c-1", url.Values{}, "tok")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "still referenced") {
			t.Fatalf("expected explanation in body, got %s", w.Body.String())
		}
	})

	t.Run("delete redirects on success", func(t *testing.T) {
		cats := &mockCategories{}
		s := &service.Service{Authorization: auth, Guides: &mockGuides{}, Categories: cats}
		r := newTestRouter(s)

		w := postForm(r, "/admin/categories/delete/c-1", url.Values{}, "tok")
		if w.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", w.Code)
		}
		if cats.lastDeleted != "c-1" {
			t.Fatalf("expected delete of c-1, got %q", cats.lastDeleted)
		}
	})
}
