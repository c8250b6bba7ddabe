// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"encoding/json"
	"fmt"
)

// PlatformLiteral is the one platform name the narrative may use outside the
// allowed-token set. The lint exemption list depends on it.
const PlatformLiteral = "PS1"

// systemPrompt pins the service to the controlled vocabulary and the
// citation contract. The response must be a bare JSON object with exactly
// the three RawNarrative fields.
const systemPrompt = "You are formatting a literal, first-person narrative from a PlayStation (" + PlatformLiteral + ") SDK perspective. " +
	"Only use the SDK tokens provided in AllowedTokens. " +
	"Do not claim anything not supported by Passages. " +
	"Cite claims like [id]. Keep it concise (90–130 words). Use first-person 'I'. " +
	"Return ONLY JSON with keys: narrative, citationsUsed, tokensUsed. " +
	"Do NOT cite any passage id except those in the provided Passages."

// narrativeTask is appended to the user payload to restate the constraints
// the service most often drifts on.
const narrativeTask = "Describe the event strictly in SDK terms (AllowedTokens). " +
	"Omit notions not present in Passages. Cite each factual claim like [pad.state.p12]. " +
	"Do NOT invent or cite passage ids that are not in the provided Passages."

// userPayload is the user-message body; the service reads it as JSON.
type userPayload struct {
	Request
	NarrativeTask string `json:"NarrativeTask"`
}

// renderUserContent serializes the request into the user-message JSON.
func renderUserContent(req Request) (string, error) {
	payload := userPayload{Request: req, NarrativeTask: narrativeTask}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling generation payload: %w", err)
	}
	return string(data), nil
}
