package handlers

import (
	"net/http"

	"guidehub/internal/models"
	"guidehub/internal/service"

	"github.com/gin-gonic/gin"
)

// index is the public listing: optional ?search= (case-insensitive substring
// on title) and ?category= (exact id match) narrow the result; absent
// parameters impose no filter.
func (h *Handler) index(c *gin.Context) {
	ctx := c.Request.Context()
	filter := service.GuideFilter{
		Search:     c.Query("search"),
		CategoryID: c.Query("category"),
	}

	guides, err := h.services.Guides.List(ctx, filter)
	if err != nil {
		h.render500(c, "guide_list_failed", err)
		return
	}
	categories, err := h.services.Categories.List(ctx)
	if err != nil {
		h.render500(c, "category_list_failed", err)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Guides":       guides,
		"Categories":   categories,
		"Search":       filter.Search,
		"CategoryID":   filter.CategoryID,
		"CurrentAdmin": currentAdmin(c),
	})
}

func (h *Handler) guideDetail(c *gin.Context) {
	guide, err := h.services.Guides.GetByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.render500(c, "guide_detail_failed", err, "name", c.Param("name"))
		return
	}
	if guide == nil {
		h.notFound(c)
		return
	}
	c.HTML(http.StatusOK, "guide.html", gin.H{
		"Guide":        guide,
		"CurrentAdmin": currentAdmin(c),
	})
}

// dashboard is the management view: all guides and all categories.
func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	guides, err := h.services.Guides.List(ctx, service.GuideFilter{})
	if err != nil {
		h.render500(c, "dashboard_guides_failed", err)
		return
	}
	categories, err := h.services.Categories.List(ctx)
	if err != nil {
		h.render500(c, "dashboard_categories_failed", err)
		return
	}
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Guides":       guides,
		"Categories":   categories,
		"CurrentAdmin": currentAdmin(c),
	})
}

func (h *Handler) addGuide(c *gin.Context) {
	g := models.Guide{
		Name:       c.PostForm("name"),
		Title:      c.PostForm("title"),
		Author:     c.PostForm("author"),
		CategoryID: c.PostForm("category"),
	}

	if _, err := h.services.Guides.Create(c.Request.Context(), g); err != nil {
		h.render500(c, "guide_create_failed", err, "name", g.Name)
		return
	}

	h.publishActivity("created", "guide", g.Name)
	c.Redirect(http.StatusFound, "/admin")
}

func (h *Handler) editGuideForm(c *gin.Context) {
	ctx := c.Request.Context()
	guide, err := h.services.Guides.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.render500(c, "guide_edit_load_failed", err, "id", c.Param("id"))
		return
	}
	if guide == nil {
		h.notFound(c)
		return
	}
	categories, err := h.services.Categories.List(ctx)
	if err != nil {
		h.render500(c, "category_list_failed", err)
		return
	}
	c.HTML(http.StatusOK, "edit.html", gin.H{
		"Guide":        guide,
		"Categories":   categories,
		"CurrentAdmin": currentAdmin(c),
	})
}

func (h *Handler) editGuide(c *gin.Context) {
	g := models.Guide{
		ID:         c.Param("id"),
		Name:       c.PostForm("name"),
		Title:      c.PostForm("title"),
		CategoryID: c.PostForm("category"),
		Sections:   parseSections(c),
	}

	if err := h.services.Guides.Update(c.Request.Context(), g); err != nil {
		h.render500(c, "guide_update_failed", err, "id", g.ID)
		return
	}

	h.publishActivity("updated", "guide", g.Name)
	c.Redirect(http.StatusFound, "/admin")
}

func (h *Handler) deleteGuide(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Guides.Delete(c.Request.Context(), id); err != nil {
		h.render500(c, "guide_delete_failed", err, "id", id)
		return
	}

	h.publishActivity("deleted", "guide", id)
	c.Redirect(http.StatusFound, "/admin")
}

// parseSections reads the parallel ordered form arrays (section_id,
// section_title, section_content) into a typed section list once, at the
// boundary. Titles drive the count; a missing id stays empty and is
// synthesized downstream.
func parseSections(c *gin.Context) []models.Section {
	ids := c.PostFormArray("section_id")
	titles := c.PostFormArray("section_title")
	contents := c.PostFormArray("section_content")

	sections := make([]models.Section, 0, len(titles))
	for i := range titles {
		var s models.Section
		if i < len(ids) {
			s.ID = ids[i]
		}
		s.Title = titles[i]
		if i < len(contents) {
			s.Content = contents[i]
		}
		sections = append(sections, s)
	}
	return sections
}
