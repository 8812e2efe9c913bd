package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"hrportal/internal/requestctx"
)

func TestHandlerAddsContextIDs(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithWriter(&buf, "debug")
	if err != nil {
		t.Fatalf("logger error: %v", err)
	}

	ctx := requestctx.WithUserID(requestctx.WithRequestID(context.Background(), "req-9"), "2")
	l.InfoContext(ctx, "leave approved", "leaveId", "l1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["request_id"] != "req-9" || entry["user_id"] != "2" {
		t.Fatalf("expected context ids in log entry, got %v", entry)
	}
	if entry["leaveId"] != "l1" {
		t.Fatalf("expected attribute in log entry, got %v", entry)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := NewWithWriter(&bytes.Buffer{}, "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
