package server

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"helpqueue/pkg/eventlog"
	"helpqueue/pkg/notify"
	"helpqueue/pkg/queue"
	"helpqueue/pkg/roster"
	"helpqueue/pkg/utils"
)

// EventLog accepts records without blocking the caller.
type EventLog interface {
	Add(rec eventlog.Record) error
}

type discardEvents struct{}

func (discardEvents) Add(eventlog.Record) error { return nil }

type Server struct {
	Echo  *echo.Echo
	Queue queue.Queue
	Ctx   context.Context

	// Roster authorizes requesters and helpers. When nil, request bodies
	// are trusted as-is.
	Roster roster.Directory

	Events        EventLog
	Notifier      notify.Notifier
	NotifyTimeout time.Duration

	notifying sync.WaitGroup
}

func NewServer(ctx context.Context, q queue.Queue) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("64K"))

	s := &Server{
		Echo:          e,
		Queue:         q,
		Ctx:           ctx,
		Events:        discardEvents{},
		NotifyTimeout: 10 * time.Second,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)

	// routes consumed by the Discord bot
	api := s.Echo.Group("/api/discord/v1")
	api.POST("/enqueue_help", s.handlePostEnqueue)
	api.GET("/next", s.handleNext)
	api.POST("/next", s.handleNext)
	api.GET("/dismiss_help", s.handleDismiss)
	api.POST("/dismiss_help", s.handleDismiss)
	api.PATCH("/clear_help_queue", s.handlePatchClear)
	api.GET("/help_queue", s.handleGetQueue)
	api.GET("/help_queue/details", s.handleGetQueueDetails)
	api.GET("/schema", s.handleGetSchema)
}

func (s *Server) Start(addr string) error {
	utils.Logf("Server listening at %s", addr)
	return s.Echo.Start(addr)
}

// Shutdown stops accepting requests and waits for pending notifications.
func (s *Server) Shutdown(ctx context.Context) error {
	utils.Logf("Shutting down server...")

	shutDownErr := s.Echo.Shutdown(ctx)

	done := make(chan struct{})
	go func() {
		s.notifying.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		if shutDownErr == nil {
			shutDownErr = ctx.Err()
		}
	}
	return shutDownErr
}
