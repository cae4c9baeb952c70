// Package eventlog records what happened to the help queue in durable
// sinks such as a Google Sheet. Writes are asynchronous and never affect
// the queue itself.
package eventlog

import (
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/segmentio/ksuid"

	"helpqueue/pkg/queue"
)

type Kind string

const (
	KindRequested Kind = "requested"
	KindProvided  Kind = "provided"
	KindDismissed Kind = "dismissed"
	KindCleared   Kind = "cleared"
)

type Record struct {
	ID           string        `json:"id"`
	Kind         Kind          `json:"kind"`
	Group        queue.GroupID `json:"group"`
	VoiceChannel snowflake.ID  `json:"voice_channel,omitempty"`
	Helper       string        `json:"helper,omitempty"`
	Count        int           `json:"count,omitempty"`
	At           time.Time     `json:"at"`
}

func NewRecord(kind Kind, req queue.HelpRequest) Record {
	return Record{
		ID:           ksuid.New().String(),
		Kind:         kind,
		Group:        req.Group,
		VoiceChannel: req.VoiceChannel,
		At:           time.Now().UTC(),
	}
}

func Requested(req queue.HelpRequest) Record { return NewRecord(KindRequested, req) }

func Dismissed(req queue.HelpRequest) Record { return NewRecord(KindDismissed, req) }

func Provided(req queue.HelpRequest, helper string) Record {
	r := NewRecord(KindProvided, req)
	r.Helper = helper
	return r
}

func Cleared(n int) Record {
	r := NewRecord(KindCleared, queue.HelpRequest{})
	r.Count = n
	return r
}

// Row renders the record as a spreadsheet row:
// time, group, status, helper, voice channel.
func (r Record) Row(loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	group := ""
	if r.Kind != KindCleared {
		group = strconv.Itoa(int(r.Group))
	}
	channel := ""
	if r.VoiceChannel != 0 {
		channel = r.VoiceChannel.String()
	}
	return []string{
		r.At.In(loc).Format("2006-01-02 15:04:05"),
		group,
		string(r.Kind),
		r.Helper,
		channel,
	}
}
