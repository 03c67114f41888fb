package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Jeomhps/hotelbooking-api/internal/docs"
	"github.com/Jeomhps/hotelbooking-api/internal/handlers/bookings"
	"github.com/Jeomhps/hotelbooking-api/internal/middleware"
	"github.com/Jeomhps/hotelbooking-api/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BasePath is the collection route.
const BasePath = "/Hotelbooking"

// DocsPath serves Swagger UI and the OpenAPI document.
const DocsPath = "/api-docs"

// Options configures the engine.
type Options struct {
	Repo        store.Repository
	Log         *logrus.Logger
	CORSOrigins []string
	// DocsServerURL is advertised in the API description.
	DocsServerURL string
}

type route struct {
	handler gin.HandlerFunc
	doc     docs.Operation
}

// New builds the gin engine: middleware, booking routes, health and docs.
func New(opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(opts.CORSOrigins))

	bh := bookings.New(opts.Repo, log)
	routes := bookingRoutes(bh)
	ops := make([]docs.Operation, 0, len(routes))
	for _, rt := range routes {
		r.Handle(rt.doc.Method, rt.doc.Path, rt.handler)
		ops = append(ops, rt.doc)
	}

	r.GET("/healthz", health(opts.Repo))

	doc := docs.Build(docs.Info{
		Title:       "HotelBooking API",
		Version:     "1.0.0",
		Description: "Airvays Booking API",
		ServerURL:   opts.DocsServerURL,
	}, ops)
	r.GET(DocsPath+"/*any", docs.Handler(DocsPath, doc))

	return r
}

func bookingRoutes(h *bookings.Handler) []route {
	const tag = "Hotelbooking"
	notFound := docs.Response{Code: http.StatusNotFound, Description: "The booking was not found"}
	invalid := docs.Response{Code: http.StatusBadRequest, Description: "The body is not a valid booking"}
	serverErr := docs.Response{Code: http.StatusInternalServerError, Description: "Some server error"}

	return []route{
		{h.List, docs.Operation{
			Method: http.MethodGet, Path: BasePath, Tag: tag,
			Summary: "View list of all the bookings",
			Responses: []docs.Response{
				{Code: http.StatusOK, Description: "The list of the bookings", Body: docs.Bookings},
				serverErr,
			},
		}},
		{h.Get, docs.Operation{
			Method: http.MethodGet, Path: BasePath + "/:id", Tag: tag,
			Summary: "Get the booking by id",
			Responses: []docs.Response{
				{Code: http.StatusOK, Description: "The booking description by id", Body: docs.Booking},
				notFound,
			},
		}},
		{h.Create, docs.Operation{
			Method: http.MethodPost, Path: BasePath, Tag: tag, RequestBody: docs.Booking,
			Summary: "Create a new booking",
			Responses: []docs.Response{
				{Code: http.StatusOK, Description: "The booking was successfully created", Body: docs.Booking},
				invalid, serverErr,
			},
		}},
		{h.Update, docs.Operation{
			Method: http.MethodPut, Path: BasePath + "/:id", Tag: tag, RequestBody: docs.Booking,
			Summary: "Update the booking by the id",
			Responses: []docs.Response{
				{Code: http.StatusOK, Description: "The booking was updated", Body: docs.Booking},
				invalid, notFound, serverErr,
			},
		}},
		{h.Delete, docs.Operation{
			Method: http.MethodDelete, Path: BasePath + "/:id", Tag: tag,
			Summary: "Remove the booking by id",
			Responses: []docs.Response{
				{Code: http.StatusOK, Description: "The booking was deleted"},
				notFound, serverErr,
			},
		}},
	}
}

// health reports whether the record store is reachable.
func health(repo store.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := repo.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
