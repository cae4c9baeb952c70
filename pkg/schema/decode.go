package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
)

// The first bot release sent voice channels as JSON numbers, the helper
// of /next as a bare string and the group of /dismiss_help as a bare
// number. Both forms are accepted.

func (r *EnqueueRequest) UnmarshalJSON(b []byte) error {
	type plain EnqueueRequest
	aux := struct {
		*plain
		VoiceChannel json.RawMessage `json:"voice_channel"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(aux.VoiceChannel) == 0 || string(aux.VoiceChannel) == "null" {
		return nil
	}
	id, err := parseSnowflake(aux.VoiceChannel)
	if err != nil {
		return err
	}
	r.VoiceChannel = id
	return nil
}

// parseSnowflake reads the raw digits so ids past 2^53 keep every bit.
func parseSnowflake(raw json.RawMessage) (snowflake.ID, error) {
	s := string(bytes.Trim(raw, `"`))
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid voice_channel %s", raw)
	}
	return snowflake.ID(n), nil
}

func (r *NextRequest) UnmarshalJSON(b []byte) error {
	if t := bytes.TrimSpace(b); len(t) > 0 && t[0] == '"' {
		return json.Unmarshal(t, &r.Helper)
	}
	type plain NextRequest
	return json.Unmarshal(b, (*plain)(r))
}

func (r *DismissRequest) UnmarshalJSON(b []byte) error {
	if t := bytes.TrimSpace(b); len(t) > 0 && t[0] >= '0' && t[0] <= '9' {
		var g uint16
		if err := json.Unmarshal(t, &g); err != nil {
			return err
		}
		r.Group = &g
		return nil
	}
	type plain DismissRequest
	return json.Unmarshal(b, (*plain)(r))
}
