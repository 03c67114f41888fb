package bookings

import (
	"github.com/Jeomhps/hotelbooking-api/internal/store"
	"github.com/sirupsen/logrus"
)

// Package bookings exposes the booking record store over HTTP.
// KISS: one route per store operation, bodies passed through as JSON objects.
//
// This file defines the handler type and constructor only.
// The HTTP methods are split into dedicated, focused files:
// - list.go:   Handler.List
// - get.go:    Handler.Get
// - create.go: Handler.Create
// - update.go: Handler.Update
// - delete.go: Handler.Delete

// Handler wires booking endpoints to a record store.
type Handler struct {
	repo store.Repository
	log  *logrus.Logger
}

// New returns a bookings handler backed by repo.
func New(repo store.Repository, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{repo: repo, log: log}
}
