package eventlog

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"helpqueue/pkg/utils"
)

type Sink interface {
	Write(ctx context.Context, rec Record) error
}

type SinkFunc func(ctx context.Context, rec Record) error

func (f SinkFunc) Write(ctx context.Context, rec Record) error { return f(ctx, rec) }

// Discard drops every record.
var Discard Sink = SinkFunc(func(context.Context, Record) error { return nil })

// Tee writes to every sink and joins their errors.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, rec Record) error {
		var errs []error
		for _, s := range sinks {
			if err := s.Write(ctx, rec); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

// FileSink appends records to a JSON lines file.
type FileSink struct {
	Path string
	mu   sync.Mutex
}

func (f *FileSink) Write(_ context.Context, rec Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return utils.AppendLine(f.Path, rec)
}

// RowAppender is the subset of the Sheets client a SheetsSink needs.
type RowAppender interface {
	AppendRow(ctx context.Context, spreadsheetID, sheet string, values ...string) error
}

// SheetsSink appends one row per record, staying under a write quota.
type SheetsSink struct {
	client        RowAppender
	spreadsheetID string
	sheet         string
	limiter       *rate.Limiter
	loc           *time.Location
}

// NewSheetsSink allows perMinute writes per minute; perMinute <= 0 disables
// throttling. loc is the timezone used for the timestamp column.
func NewSheetsSink(client RowAppender, spreadsheetID, sheet string, perMinute int, loc *time.Location) *SheetsSink {
	limit := rate.Inf
	burst := 1
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
		burst = min(perMinute, 5)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SheetsSink{
		client:        client,
		spreadsheetID: spreadsheetID,
		sheet:         sheet,
		limiter:       rate.NewLimiter(limit, burst),
		loc:           loc,
	}
}

func (s *SheetsSink) Write(ctx context.Context, rec Record) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}
	row := rec.Row(s.loc)
	// Rows are appended as USER_ENTERED so the timestamp becomes a date.
	// Helper names come from requests and channel ids overflow a double,
	// so both are forced to text.
	row[3] = textCell(row[3])
	row[4] = textCell(row[4])
	return s.client.AppendRow(ctx, s.spreadsheetID, s.sheet, row...)
}

// textCell makes Sheets store v literally instead of parsing it.
func textCell(v string) string {
	if v == "" {
		return v
	}
	return "'" + v
}
