// Файл: pkg/discord/service.go
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// --- ОСНОВНОЙ ИНТЕРФЕЙС СЕРВИСА ---

type ServiceInterface interface {
	SendMessage(ctx context.Context, text string) error
	SendEmbed(ctx context.Context, embed Embed) error
}

// --- СТРУКТУРА СЕРВИСА ---

type Service struct {
	webhookURL string
	httpClient *http.Client
}

func NewService(webhookURL string) ServiceInterface {
	return &Service{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// --- СТРУКТУРЫ ПОЛЕЗНОЙ НАГРУЗКИ (формат webhook Discord) ---

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Цвета эмбедов
const (
	ColorRed    = 0xE74C3C
	ColorGreen  = 0x2ECC71
	ColorYellow = 0xF1C40F
)

func (s *Service) SendMessage(ctx context.Context, text string) error {
	return s.post(ctx, webhookPayload{Content: text})
}

func (s *Service) SendEmbed(ctx context.Context, embed Embed) error {
	if embed.Timestamp == "" {
		embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return s.post(ctx, webhookPayload{Embeds: []Embed{embed}})
}

func (s *Service) post(ctx context.Context, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord: не удалось сериализовать payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord: ошибка отправки webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("discord: webhook ответил статусом %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
