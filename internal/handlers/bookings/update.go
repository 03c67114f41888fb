package bookings

import (
	"net/http"

	"github.com/Jeomhps/hotelbooking-api/internal/booking"
	"github.com/gin-gonic/gin"
)

// Update merges the body into the stored booking.
// Keys present in the body overwrite, new keys are added, id never changes.
func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")

	in, err := readFields(c)
	if err == nil {
		err = booking.ValidatePatch(in)
	}
	if err != nil {
		h.fail(c, "update", err)
		return
	}

	b, err := h.repo.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
