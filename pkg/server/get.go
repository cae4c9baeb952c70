package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"helpqueue/pkg/schema"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "Help Queue API",
		"status":  "ok",
		"queued":  s.Queue.Len(),
	})
}

// GET /api/discord/v1/help_queue
func (s *Server) handleGetQueue(c echo.Context) error {
	pending := s.Queue.ListQueue()
	groups := make([]uint16, 0, len(pending))
	for _, r := range pending {
		groups = append(groups, uint16(r.Group))
	}
	return c.JSON(http.StatusOK, groups)
}

// GET /api/discord/v1/help_queue/details
func (s *Server) handleGetQueueDetails(c echo.Context) error {
	pending := s.Queue.ListQueue()
	out := make([]schema.HelpRequest, 0, len(pending))
	for _, r := range pending {
		out = append(out, toView(r))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetSchema(c echo.Context) error {
	return c.JSON(http.StatusOK, schema.Requests)
}
