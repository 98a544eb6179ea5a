// Package chat implements the outbound chat sinks the notification
// dispatcher delivers through. The Discord sink talks to the Discord REST
// API directly: one endpoint for the shared channel, and the create-DM
// handshake for direct messages.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	apiBase        = "https://discord.com/api/v10"
	requestTimeout = 10 * time.Second
)

// DiscordConfig carries the credentials and target channel for the sink.
type DiscordConfig struct {
	BotToken  string
	ChannelID string
}

// DiscordSink sends messages through a Discord bot account. Every call is a
// single attempt; callers own retry policy (the dispatcher has none).
type DiscordSink struct {
	cfg    DiscordConfig
	client *http.Client
}

func NewDiscordSink(cfg DiscordConfig) *DiscordSink {
	return &DiscordSink{
		cfg:    cfg,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// SendChannel posts text to the configured broadcast channel.
func (s *DiscordSink) SendChannel(ctx context.Context, text string) error {
	return s.postMessage(ctx, s.cfg.ChannelID, text)
}

// SendDirect opens (or reuses) the DM channel with the given user and posts
// text into it.
func (s *DiscordSink) SendDirect(ctx context.Context, discordID, text string) error {
	channelID, err := s.openDM(ctx, discordID)
	if err != nil {
		return fmt.Errorf("open dm: %w", err)
	}
	return s.postMessage(ctx, channelID, text)
}

func (s *DiscordSink) postMessage(ctx context.Context, channelID, text string) error {
	body := map[string]string{"content": text}
	var resp struct{}
	return s.post(ctx, fmt.Sprintf("%s/channels/%s/messages", apiBase, channelID), body, &resp)
}

func (s *DiscordSink) openDM(ctx context.Context, discordID string) (string, error) {
	body := map[string]string{"recipient_id": discordID}
	var resp struct {
		ID string `json:"id"`
	}
	if err := s.post(ctx, apiBase+"/users/@me/channels", body, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (s *DiscordSink) post(ctx context.Context, url string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bot "+s.cfg.BotToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord api: %s returned %d: %s", url, resp.StatusCode, snippet)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// NoopSink discards every message. Used when no bot token is configured so
// the rest of the system behaves identically with notifications disabled.
type NoopSink struct{}

func (NoopSink) SendChannel(context.Context, string) error        { return nil }
func (NoopSink) SendDirect(context.Context, string, string) error { return nil }
