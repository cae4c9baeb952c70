package queue

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// GroupID identifies a student group.
type GroupID uint16

// HelpRequest is a pending request for help from a group.
type HelpRequest struct {
	Group        GroupID
	VoiceChannel snowflake.ID
	Seq          uint64
	EnqueuedAt   time.Time

	// Position is the 1-based place in line when the request was read.
	Position int
}

type Queue interface {
	EnqueueHelp(group GroupID, voiceChannel snowflake.ID) (HelpRequest, error)
	AssignNext(helper string) (HelpRequest, error)
	DismissHelp(group GroupID) (HelpRequest, bool)
	ClearQueue() int
	ListQueue() []HelpRequest
	Len() int
}
