package bookings

import (
	"net/http"

	"github.com/Jeomhps/hotelbooking-api/internal/booking"
	"github.com/gin-gonic/gin"
)

// Create stores a new booking under a generated id.
// name and email are required; any other keys are kept verbatim.
// A caller-supplied id is ignored.
func (h *Handler) Create(c *gin.Context) {
	in, err := readFields(c)
	if err == nil {
		err = booking.ValidateCreate(in)
	}
	if err != nil {
		h.fail(c, "create", err)
		return
	}

	b, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	h.log.WithField("id", b.ID()).Debug("bookings: created")
	c.JSON(http.StatusOK, b)
}
