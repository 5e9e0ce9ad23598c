// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/guestlist/internal/clock"
	"github.com/quixsi/guestlist/internal/db"
)

// NewServer wires the guest and RSVP resources onto gStore. A non-zero
// deadline turns the API read-only once it passed.
func NewServer(
	serviceName string,
	deadline time.Time,
	allowedOrigins []string,
	gStore db.GuestStore,
) *Server {
	s := &Server{
		logger:         slog.Default().WithGroup("http"),
		serviceName:    serviceName,
		deadline:       deadline,
		allowedOrigins: allowedOrigins,
		clock:          clock.Real(),
		gStore:         gStore,
	}
	s.mux = s.routes()
	return s
}

type Server struct {
	serviceName    string
	deadline       time.Time
	allowedOrigins []string
	logger         *slog.Logger
	clock          clock.Clock
	gStore         db.GuestStore
	mux            *gin.Engine
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	mux := gin.New()
	// names may contain escaped slashes
	mux.UseRawPath = true
	mux.UnescapePathValues = true

	mux.Use(
		sloggin.NewWithConfig(s.logger,
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), otelgin.Middleware(s.serviceName), slogAddTraceAttributes,
		cors.New(corsConfig(s.allowedOrigins)),
	)

	if !s.deadline.IsZero() {
		mux.Use(s.readOnly)
	}

	guests := NewGuestHandler(s.gStore)
	mux.GET("/guest", guests.List)
	mux.POST("/guest", guests.Create)
	mux.GET("/guest/firstName/:firstName/lastName/:lastName", requireName, guests.Get)
	mux.DELETE("/guest/firstName/:firstName/lastName/:lastName", requireName, guests.Delete)

	rsvp := NewRSVPHandler(s.gStore)
	mux.GET("/rsvp/firstName/:firstName/lastName/:lastName", requireName, rsvp.Get)
	mux.POST("/rsvp/firstName/:firstName/lastName/:lastName/answer/:answer", requireName, rsvp.Submit)

	mux.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	mux.NoRoute(notFound)
	return mux
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cfg
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"code": "PAGE_NOT_FOUND", "message": "Page not found"})
}

func slogAddTraceAttributes(c *gin.Context) {
	sloggin.AddCustomAttributes(c,
		slog.String("trace-id", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
	)
	sloggin.AddCustomAttributes(c,
		slog.String("span-id", trace.SpanFromContext(c.Request.Context()).SpanContext().SpanID().String()),
	)
	c.Next()
}

// readOnly rejects every mutating request once the RSVP deadline passed.
func (s *Server) readOnly(c *gin.Context) {
	var span trace.Span
	ctx := c.Request.Context()
	ctx, span = tracer.Start(ctx, "Middleware.readOnly")
	defer span.End()

	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodOptions && s.deadline.Before(s.clock.Now()) {
		err := errors.New("request method not allowed")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.WarnContext(ctx, "readOnly-mode", "error", err, "deadline", s.deadline)
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"response": msgDeadlinePassed})
		return
	}
	c.Next()
}

func requireName(c *gin.Context) {
	if blank(c.Param("firstName")) || blank(c.Param("lastName")) {
		msg := msgNameRequired
		if c.Request.Method == http.MethodPost {
			msg = msgAnswerRequired
		}
		c.AbortWithStatusJSON(http.StatusNotAcceptable, gin.H{"response": msg})
		return
	}
	c.Next()
}
