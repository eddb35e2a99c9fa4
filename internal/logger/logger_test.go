package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogger swaps the global logger for one writing JSON into buf and
// returns a restore func.
func captureLogger(buf *bytes.Buffer) func() {
	prev := log.Logger
	log.Logger = zerolog.New(buf)
	return func() { log.Logger = prev }
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	defer captureLogger(&buf)()

	l := WithRequestID("req-42")
	l.Info().Msg("handled")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log entry: %v", err)
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["message"] != "handled" {
		t.Errorf("message = %v, want handled", entry["message"])
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	defer captureLogger(&buf)()

	l := WithComponent("server")
	l.Info().Msg("starting")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log entry: %v", err)
	}
	if entry["component"] != "server" {
		t.Errorf("component = %v, want server", entry["component"])
	}
}
