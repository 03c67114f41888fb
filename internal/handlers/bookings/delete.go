package bookings

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Delete removes a booking by id.
// 200 with an empty body when removed, 404 when nothing matched.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete", err)
		return
	}
	c.Status(http.StatusOK)
}
