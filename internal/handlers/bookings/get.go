package bookings

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get returns a single booking by id, or 404 with an empty body.
func (h *Handler) Get(c *gin.Context) {
	b, err := h.repo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
