package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"helpqueue/pkg/eventlog"
	"helpqueue/pkg/notify"
	"helpqueue/pkg/queue"
	"helpqueue/pkg/roster"
	"helpqueue/pkg/schema"
)

// POST /api/discord/v1/enqueue_help
func (s *Server) handlePostEnqueue(c echo.Context) error {
	var req schema.EnqueueRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /enqueue_help", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if req.VoiceChannel == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "voice_channel is required")
	}

	group, err := s.resolveGroup(c.Request().Context(), req)
	if err != nil {
		return err
	}

	hr, err := s.Queue.EnqueueHelp(group, req.VoiceChannel)
	if errors.Is(err, queue.ErrDuplicateGroup) {
		return echo.NewHTTPError(http.StatusConflict, fmt.Sprintf("group %d already in queue", group))
	}
	if err != nil {
		log.Error("enqueue failed", "group", group, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "enqueue failed")
	}

	log.Info("group enqueued", "group", hr.Group, "position", hr.Position, "requester", req.Requester)
	s.record(eventlog.Requested(hr))
	s.notify(notify.Notice{
		Event:        notify.EventEnqueued,
		Group:        hr.Group,
		VoiceChannel: hr.VoiceChannel,
		Position:     hr.Position,
	})

	return c.JSON(http.StatusCreated, toView(hr))
}

// resolveGroup decides which group an enqueue is for, checking the
// requester against the roster when one is configured.
func (s *Server) resolveGroup(ctx context.Context, req schema.EnqueueRequest) (queue.GroupID, error) {
	if s.Roster == nil {
		if req.Group == nil {
			return 0, echo.NewHTTPError(http.StatusBadRequest, "group is required")
		}
		return queue.GroupID(*req.Group), nil
	}

	requester := strings.TrimSpace(req.Requester)
	if requester == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "requester is required")
	}
	student, err := s.Roster.Student(ctx, requester)
	if errors.Is(err, roster.ErrNotRegistered) {
		return 0, echo.NewHTTPError(http.StatusForbidden, "not a registered student")
	}
	if err != nil {
		log.Error("roster lookup failed", "requester", requester, "error", err)
		return 0, echo.NewHTTPError(http.StatusServiceUnavailable, "roster unavailable")
	}
	if req.Group != nil && *req.Group != student.Group {
		return 0, echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("requester is not in group %d", *req.Group))
	}
	return queue.GroupID(student.Group), nil
}

// GET|POST /api/discord/v1/next
func (s *Server) handleNext(c echo.Context) error {
	var req schema.NextRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /next", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	helper := strings.TrimSpace(req.Helper)
	if helper == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "helper is required")
	}

	if s.Roster != nil {
		ok, err := s.Roster.IsHelper(c.Request().Context(), helper)
		if err != nil {
			log.Error("roster lookup failed", "helper", helper, "error", err)
			return echo.NewHTTPError(http.StatusServiceUnavailable, "roster unavailable")
		}
		if !ok {
			return echo.NewHTTPError(http.StatusForbidden, "not a registered helper")
		}
	}

	hr, err := s.Queue.AssignNext(helper)
	if errors.Is(err, queue.ErrQueueEmpty) {
		return echo.NewHTTPError(http.StatusNotFound, "no group in queue")
	}
	if err != nil {
		log.Error("next failed", "helper", helper, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "next failed")
	}

	log.Info("group assigned", "group", hr.Group, "helper", helper)
	s.record(eventlog.Provided(hr, helper))
	s.notify(notify.Notice{
		Event:        notify.EventAssigned,
		Group:        hr.Group,
		VoiceChannel: hr.VoiceChannel,
		Helper:       helper,
	})

	return c.JSON(http.StatusOK, schema.HelpRequest{
		Group:        uint16(hr.Group),
		VoiceChannel: hr.VoiceChannel,
	})
}

// GET|POST /api/discord/v1/dismiss_help
func (s *Server) handleDismiss(c echo.Context) error {
	var req schema.DismissRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid JSON in /dismiss_help", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid json")
	}
	if req.Group == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "group is required")
	}

	resp := schema.DismissResponse{Group: *req.Group}
	hr, ok := s.Queue.DismissHelp(queue.GroupID(*req.Group))
	if ok {
		resp.Dismissed = true
		resp.VoiceChannel = &hr.VoiceChannel
		log.Info("group dismissed", "group", hr.Group)
		s.record(eventlog.Dismissed(hr))
	}
	return c.JSON(http.StatusOK, resp)
}

// PATCH /api/discord/v1/clear_help_queue
func (s *Server) handlePatchClear(c echo.Context) error {
	n := s.Queue.ClearQueue()
	log.Info("help queue cleared", "removed", n)
	s.record(eventlog.Cleared(n))
	return c.JSON(http.StatusOK, schema.ClearResponse{Cleared: n})
}

func (s *Server) record(rec eventlog.Record) {
	if err := s.Events.Add(rec); err != nil {
		log.Warn("dropped event", "kind", rec.Kind, "group", rec.Group, "error", err)
	}
}

// notify runs in the background; the queue has already changed and a
// slow or failing notifier must not affect the response.
func (s *Server) notify(n notify.Notice) {
	if s.Notifier == nil {
		return
	}
	s.notifying.Add(1)
	go func() {
		defer s.notifying.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(s.Ctx), s.NotifyTimeout)
		defer cancel()
		if err := s.Notifier.Notify(ctx, n); err != nil {
			log.Warn("notification failed", "event", n.Event, "group", n.Group, "error", err)
		}
	}()
}

func toView(r queue.HelpRequest) schema.HelpRequest {
	at := r.EnqueuedAt
	return schema.HelpRequest{
		Group:        uint16(r.Group),
		VoiceChannel: r.VoiceChannel,
		Position:     r.Position,
		EnqueuedAt:   &at,
	}
}
