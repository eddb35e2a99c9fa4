package llm

import (
	"encoding/json"
	"regexp"

	"docintake/internal/logger"
)

var jsonPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseResponseJSON extracts the first brace-delimited JSON object from a
// completion and parses it. Completions are untrusted text that may wrap
// the JSON in prose, so every failure (empty input, no object, invalid
// JSON) is recoverable: it is logged and yields an empty mapping, never an
// error.
func ParseResponseJSON(response string) map[string]any {
	log := logger.WithComponent("llm-parse")

	match := jsonPattern.FindString(response)
	if match == "" {
		log.Error().Int("response_length", len(response)).Msg("No JSON object found in completion")
		return map[string]any{}
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(match), &parsed); err != nil {
		log.Error().Err(err).Msg("Error while decoding completion JSON")
		return map[string]any{}
	}
	return parsed
}
