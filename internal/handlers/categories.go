package handlers

import (
	"errors"
	"net/http"

	"guidehub/internal/models"
	"guidehub/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) addCategory(c *gin.Context) {
	cat := models.Category{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}

	if _, err := h.services.Categories.Create(c.Request.Context(), cat); err != nil {
		if errors.Is(err, service.ErrCategoryMissingName) {
			c.HTML(http.StatusBadRequest, "500.html", gin.H{"Message": err.Error()})
			return
		}
		h.render500(c, "category_create_failed", err, "name", cat.Name)
		return
	}

	h.publishActivity("created", "category", cat.Name)
	c.Redirect(http.StatusFound, "/admin")
}

// deleteCategory refuses to remove a category while guides still reference
// it, so published guides never lose their grouping.
func (h *Handler) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Categories.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCategoryInUse) {
			c.HTML(http.StatusBadRequest, "500.html", gin.H{"Message": err.Error()})
			return
		}
		h.render500(c, "category_delete_failed", err, "id", id)
		return
	}

	h.publishActivity("deleted", "category", id)
	c.Redirect(http.StatusFound, "/admin")
}
