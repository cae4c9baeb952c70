package schema

import (
	"github.com/invopop/jsonschema"
)

func generateSchema[T any]() *jsonschema.Schema {
	r := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return r.Reflect(v)
}

// Requests documents the bodies accepted by the API, keyed by route name.
var Requests = map[string]*jsonschema.Schema{
	"enqueue_help": generateSchema[EnqueueRequest](),
	"next":         generateSchema[NextRequest](),
	"dismiss_help": generateSchema[DismissRequest](),
}
