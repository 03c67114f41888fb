package bookings

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// List returns every booking in insertion order ([] when empty).
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
