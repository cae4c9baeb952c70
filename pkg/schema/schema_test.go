package schema

import (
	"encoding/json"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestSchemas(t *testing.T) {
	s, ok := Requests["enqueue_help"]
	require.True(t, ok)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	var doc struct {
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
		Required   []string                  `json:"required"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))
	assert.Equal(t, "object", doc.Type)
	assert.Equal(t, "string", doc.Properties["voice_channel"]["type"])
	assert.Contains(t, doc.Properties, "requester")
	assert.Contains(t, doc.Required, "voice_channel")
	assert.NotContains(t, doc.Required, "group")
}

func TestEnqueueRequestDecodesSnowflake(t *testing.T) {
	var req EnqueueRequest
	require.NoError(t, json.Unmarshal([]byte(`{"group":3,"voice_channel":"887022804183175188"}`), &req))
	require.NotNil(t, req.Group)
	assert.Equal(t, uint16(3), *req.Group)
	assert.Equal(t, snowflake.ID(887022804183175188), req.VoiceChannel)
}

func TestRequestsAcceptBareForms(t *testing.T) {
	var enq EnqueueRequest
	require.NoError(t, json.Unmarshal([]byte(`{"group":3,"voice_channel":887022804183175188}`), &enq))
	assert.Equal(t, snowflake.ID(887022804183175188), enq.VoiceChannel, "numeric ids are not rounded")

	var next NextRequest
	require.NoError(t, json.Unmarshal([]byte(`"Ivan"`), &next))
	assert.Equal(t, "Ivan", next.Helper)
	require.NoError(t, json.Unmarshal([]byte(`{"helper":"Lu"}`), &next))
	assert.Equal(t, "Lu", next.Helper)

	var dismiss DismissRequest
	require.NoError(t, json.Unmarshal([]byte(` 7 `), &dismiss))
	require.NotNil(t, dismiss.Group)
	assert.Equal(t, uint16(7), *dismiss.Group)

	dismiss = DismissRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"group":8}`), &dismiss))
	assert.Equal(t, uint16(8), *dismiss.Group)
}

func TestRequestsRejectBadValues(t *testing.T) {
	var enq EnqueueRequest
	assert.Error(t, json.Unmarshal([]byte(`{"voice_channel":"general"}`), &enq))
	assert.Error(t, json.Unmarshal([]byte(`{"voice_channel":-1}`), &enq))
	assert.Error(t, json.Unmarshal([]byte(`{"group":"one","voice_channel":"1"}`), &enq))

	var dismiss DismissRequest
	assert.Error(t, json.Unmarshal([]byte(`70000`), &dismiss))
}
