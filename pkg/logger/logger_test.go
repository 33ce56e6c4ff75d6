package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	prev := log
	prevLevel := zerolog.GlobalLevel()
	buf := &bytes.Buffer{}
	log = zerolog.New(buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	return buf
}

func TestWriteKeyValuePairs(t *testing.T) {
	buf := captureLogs(t)

	Info("cache lookup", "user_id", "u-1", "fingerprint", 3, "hit", true)

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got["message"] != "cache lookup" {
		t.Fatalf("message = %v", got["message"])
	}
	if got["user_id"] != "u-1" {
		t.Fatalf("user_id = %v", got["user_id"])
	}
	if got["fingerprint"] != float64(3) {
		t.Fatalf("fingerprint = %v", got["fingerprint"])
	}
	if got["hit"] != true {
		t.Fatalf("hit = %v", got["hit"])
	}
}

func TestWriteBareError(t *testing.T) {
	buf := captureLogs(t)

	Error("gateway failed", errors.New("boom"))

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got["error"] != "boom" {
		t.Fatalf("error = %v", got["error"])
	}
}

func TestWriteDanglingKey(t *testing.T) {
	buf := captureLogs(t)

	Warn("odd args", "alone")

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if got["arg0"] != "alone" {
		t.Fatalf("arg0 = %v", got["arg0"])
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")
	if got := RequestIDFromContext(ctx); got != "req-42" {
		t.Fatalf("RequestIDFromContext = %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("empty context gave %q", got)
	}
	if ctx := WithRequestID(context.Background(), ""); RequestIDFromContext(ctx) != "" {
		t.Fatal("blank id should not be stored")
	}
}
