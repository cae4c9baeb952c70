package queue

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disgoorg/snowflake/v2"
)

var _ Queue = (*HelpQueue)(nil)

// HelpQueue serves groups in the order they asked for help.
// It is safe for concurrent use.
type HelpQueue struct {
	store  *Store
	logger *log.Logger
	now    func() time.Time
}

type Option func(*HelpQueue)

func WithLogger(l *log.Logger) Option {
	return func(q *HelpQueue) { q.logger = l }
}

// WithClock overrides the time source used for EnqueuedAt.
func WithClock(now func() time.Time) Option {
	return func(q *HelpQueue) { q.now = now }
}

func New(opts ...Option) *HelpQueue {
	q := &HelpQueue{
		store: NewStore(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.logger == nil {
		q.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "queue"})
	}
	return q
}

// EnqueueHelp puts group at the back of the line.
func (q *HelpQueue) EnqueueHelp(group GroupID, voiceChannel snowflake.ID) (HelpRequest, error) {
	req, err := q.store.Insert(HelpRequest{
		Group:        group,
		VoiceChannel: voiceChannel,
		EnqueuedAt:   q.now().UTC(),
	})
	if err != nil {
		return HelpRequest{}, &Error{Op: "enqueue", Group: group, Err: err}
	}
	q.logger.Debug("enqueued group", "group", group, "position", req.Position)
	return req, nil
}

// AssignNext pops the oldest request. helper is only logged.
func (q *HelpQueue) AssignNext(helper string) (HelpRequest, error) {
	req, err := q.store.PopFront()
	if err != nil {
		return HelpRequest{}, &Error{Op: "next", Err: err}
	}
	q.logger.Debug("assigned group", "group", req.Group, "helper", helper)
	return req, nil
}

// DismissHelp withdraws group from the line. The boolean reports whether
// the group was queued; dismissing an absent group is not an error.
func (q *HelpQueue) DismissHelp(group GroupID) (HelpRequest, bool) {
	req, err := q.store.Remove(group)
	if errors.Is(err, ErrNotFound) {
		q.logger.Debug("dismiss of absent group", "group", group)
		return HelpRequest{}, false
	}
	q.logger.Debug("dismissed group", "group", group, "position", req.Position)
	return req, true
}

func (q *HelpQueue) ClearQueue() int {
	n := q.store.Clear()
	q.logger.Debug("cleared queue", "removed", n)
	return n
}

func (q *HelpQueue) ListQueue() []HelpRequest {
	return q.store.Snapshot()
}

func (q *HelpQueue) Len() int {
	return q.store.Len()
}

func (q *HelpQueue) IsEmpty() bool {
	return q.store.Len() == 0
}
