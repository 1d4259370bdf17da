package discord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type WebhookMessage struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

type Embed struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       int       `json:"color"`
	Timestamp   time.Time `json:"timestamp"`
	Fields      []Field   `json:"fields,omitempty"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type Client struct {
	webhookURL string
	service    string
	httpClient *http.Client
}

func NewClient(webhookURL, service string) *Client {
	return &Client{
		webhookURL: webhookURL,
		service:    service,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SendMessage(msg WebhookMessage) error {
	if c.webhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshalling webhook message: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook request failed with status: %d", resp.StatusCode)
	}

	return nil
}

// SendLogMessage posts a single embed describing a log event.
func (c *Client) SendLogMessage(level, message string) error {
	level = strings.ToUpper(level)
	embed := Embed{
		Title:       fmt.Sprintf("%s log alert", level),
		Description: message,
		Color:       colorForLevel(level),
		Timestamp:   time.Now().UTC(),
	}
	if c.service != "" {
		embed.Fields = append(embed.Fields, Field{Name: "service", Value: c.service, Inline: true})
	}

	return c.SendMessage(WebhookMessage{Embeds: []Embed{embed}})
}

const alertQueueSize = 64

type alert struct {
	level   string
	message string
}

// AlertHook forwards log events at or above minLevel to the webhook. Events
// are queued and posted by a single goroutine so logging never waits on the
// webhook; when the queue is full the event is dropped.
type AlertHook struct {
	client   *Client
	minLevel zerolog.Level

	queue  chan alert
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

func NewAlertHook(client *Client, minLevel zerolog.Level) *AlertHook {
	h := &AlertHook{
		client:   client,
		minLevel: minLevel,
		queue:    make(chan alert, alertQueueSize),
		done:     make(chan struct{}),
	}
	go h.drain()
	return h
}

func (h *AlertHook) drain() {
	defer close(h.done)
	for a := range h.queue {
		_ = h.client.SendLogMessage(a.level, a.message)
	}
}

// Run implements zerolog.Hook. It must never log through the logger it is
// attached to.
func (h *AlertHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	if h.client == nil || level < h.minLevel || level == zerolog.NoLevel || level == zerolog.Disabled {
		return
	}

	// the process exits right after fatal and panic events
	if level >= zerolog.FatalLevel {
		_ = h.client.SendLogMessage(level.String(), msg)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}
	select {
	case h.queue <- alert{level: level.String(), message: msg}:
	default:
	}
}

// Close stops accepting events and waits for queued ones to be sent.
func (h *AlertHook) Close() {
	h.mu.Lock()
	if !h.closed {
		h.closed = true
		close(h.queue)
	}
	h.mu.Unlock()
	<-h.done
}

func colorForLevel(level string) int {
	switch level {
	case "ERROR":
		return 0xFF0000
	case "FATAL", "PANIC":
		return 0x8B0000
	case "WARN":
		return 0xFFA500
	default:
		return 0x808080
	}
}
