// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"encoding/json"
	"regexp"

	"github.com/pdiddy/narrative-engine/pkg/types"
)

// jsonObjectRe locates the first-to-last brace span in a wrapped reply.
var jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)

// ParseRawNarrative extracts a RawNarrative from the service reply. Direct
// JSON parsing is tried first; when the model wraps the object in prose, the
// first well-formed JSON object found in the reply is parsed instead. A
// reply with no parseable object degrades to an empty narrative with a
// parse-error marker, never an error, so a malformed reply cannot fail the
// whole request.
func ParseRawNarrative(raw string) types.RawNarrative {
	var out types.RawNarrative
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out
	}

	candidate := jsonObjectRe.FindString(raw)
	if candidate == "" {
		return types.RawNarrative{ParseError: "no-json-object-found"}
	}

	out = types.RawNarrative{}
	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		return types.RawNarrative{ParseError: err.Error()}
	}
	return out
}
