package schema

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type EnqueueRequest struct {
	Requester    string       `json:"requester,omitempty" jsonschema_description:"Discord id of the student asking for help; checked against the roster when one is configured"`
	Group        *uint16      `json:"group,omitempty" jsonschema_description:"Group number; optional when the requester is on the roster"`
	VoiceChannel snowflake.ID `json:"voice_channel" jsonschema:"type=string" jsonschema_description:"Discord voice channel where the group is waiting"`
}

type NextRequest struct {
	Helper string `json:"helper" query:"helper" jsonschema_description:"Name or Discord id of the helper taking the next group"`
}

type DismissRequest struct {
	Group *uint16 `json:"group" jsonschema_description:"Group withdrawing its help request"`
}

type HelpRequest struct {
	Group        uint16       `json:"group"`
	VoiceChannel snowflake.ID `json:"voice_channel"`
	Position     int          `json:"position,omitempty"`
	EnqueuedAt   *time.Time   `json:"enqueued_at,omitempty"`
}

type DismissResponse struct {
	Group        uint16        `json:"group"`
	VoiceChannel *snowflake.ID `json:"voice_channel,omitempty"`
	Dismissed    bool          `json:"dismissed"`
}

type ClearResponse struct {
	Cleared int `json:"cleared"`
}
