package discord

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type webhookRecorder struct {
	mu       sync.Mutex
	messages []WebhookMessage
}

func (r *webhookRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var msg WebhookMessage
		if err := json.NewDecoder(req.Body).Decode(&msg); err != nil {
			t.Errorf("Failed to decode webhook payload: %v", err)
		}
		r.mu.Lock()
		r.messages = append(r.messages, msg)
		r.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}
}

func TestSendLogMessage(t *testing.T) {
	rec := &webhookRecorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	client := NewClient(srv.URL, "smartrail")
	if err := client.SendLogMessage("error", "Failed to load fare model"); err != nil {
		t.Fatalf("SendLogMessage returned error: %v", err)
	}

	if len(rec.messages) != 1 {
		t.Fatalf("Expected 1 webhook message, got %d", len(rec.messages))
	}
	embed := rec.messages[0].Embeds[0]
	if embed.Description != "Failed to load fare model" {
		t.Errorf("Expected description to carry the log message, got %q", embed.Description)
	}
	if embed.Color != 0xFF0000 {
		t.Errorf("Expected red embed for ERROR, got %#x", embed.Color)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Value != "smartrail" {
		t.Errorf("Expected service field, got %+v", embed.Fields)
	}
}

func TestSendMessageWithoutURL(t *testing.T) {
	if err := NewClient("", "").SendLogMessage("error", "ignored"); err != nil {
		t.Errorf("Expected no error without webhook URL, got %v", err)
	}
}

func TestSendMessageBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, "").SendLogMessage("warn", "x"); err == nil {
		t.Error("Expected error for non-2xx webhook response")
	}
}

func TestAlertHookLevelFilter(t *testing.T) {
	rec := &webhookRecorder{}
	srv := httptest.NewServer(rec.handler(t))
	defer srv.Close()

	hook := NewAlertHook(NewClient(srv.URL, ""), zerolog.ErrorLevel)
	hook.Run(nil, zerolog.InfoLevel, "info")
	hook.Run(nil, zerolog.WarnLevel, "warn")
	hook.Run(nil, zerolog.ErrorLevel, "error")
	hook.Close()

	if len(rec.messages) != 1 {
		t.Fatalf("Expected only the error event to be forwarded, got %d", len(rec.messages))
	}
	if rec.messages[0].Embeds[0].Description != "error" {
		t.Errorf("Expected forwarded message 'error', got %q", rec.messages[0].Embeds[0].Description)
	}
}

func TestAlertHookDoesNotBlockOnSlowWebhook(t *testing.T) {
	rec := &webhookRecorder{}
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		<-release
		rec.handler(t)(w, req)
	}))
	defer srv.Close()

	hook := NewAlertHook(NewClient(srv.URL, ""), zerolog.ErrorLevel)

	start := time.Now()
	hook.Run(nil, zerolog.ErrorLevel, "first")
	hook.Run(nil, zerolog.ErrorLevel, "second")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Expected Run to return without waiting on the webhook, took %v", elapsed)
	}

	close(release)
	hook.Close()

	if len(rec.messages) != 2 {
		t.Fatalf("Expected both queued events to be delivered, got %d", len(rec.messages))
	}
	if rec.messages[0].Embeds[0].Description != "first" || rec.messages[1].Embeds[0].Description != "second" {
		t.Errorf("Expected events in order, got %+v", rec.messages)
	}

	hook.Run(nil, zerolog.ErrorLevel, "after close")
	if len(rec.messages) != 2 {
		t.Errorf("Expected events after Close to be dropped, got %d", len(rec.messages))
	}
}
