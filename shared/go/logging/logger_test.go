package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestWithContextAddsRequestAndUser(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })

	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Level: "debug", Format: "json", Output: &buf}))

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = WithUserID(ctx, "user-1")
	WithContext(ctx).Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["request_id"] != "req-1" || line["user_id"] != "user-1" {
		t.Fatalf("unexpected log fields: %v", line)
	}
}

func TestUserIDRejectsEmpty(t *testing.T) {
	if _, ok := UserID(WithUserID(context.Background(), "")); ok {
		t.Fatalf("expected empty user id to be absent")
	}
	if _, ok := UserID(context.Background()); ok {
		t.Fatalf("expected missing user id to be absent")
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "nonsense", Output: &buf})

	logger.Zerolog().Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered at info level, got %q", buf.String())
	}
}
