package bookings

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Jeomhps/hotelbooking-api/internal/booking"
	"github.com/Jeomhps/hotelbooking-api/internal/store"
	"github.com/gin-gonic/gin"
)

// readFields decodes the request body as a JSON object.
// Numbers are kept as json.Number so they are stored exactly as sent.
func readFields(c *gin.Context) (map[string]any, error) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var in map[string]any
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &booking.ValidationError{Msg: "request body is empty"}
		}
		return nil, &booking.ValidationError{Msg: "body must be a JSON object", Err: err}
	}
	if in == nil {
		return nil, &booking.ValidationError{Msg: "body must be a JSON object"}
	}
	if dec.More() {
		return nil, &booking.ValidationError{Msg: "body must contain a single JSON object"}
	}
	return in, nil
}

// fail maps an error to its HTTP response:
// - not found        -> 404, empty body
// - validation error -> 400 {"error":"invalid_request","message":...}
// - anything else    -> 500 {"error": detail}
func (h *Handler) fail(c *gin.Context, op string, err error) {
	var ve *booking.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": ve.Error()})
	default:
		_ = c.Error(err)
		h.log.WithError(err).WithField("op", op).Error("bookings: store failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
