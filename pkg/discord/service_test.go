package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_SendMessage(t *testing.T) {
	var received webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewService(server.URL)
	err := svc.SendMessage(context.Background(), "оборудование просрочено")
	require.NoError(t, err)
	assert.Equal(t, "оборудование просрочено", received.Content)
}

func TestService_SendEmbed(t *testing.T) {
	var received webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewService(server.URL)
	embed := Embed{
		Title: "Новая заявка",
		Color: ColorGreen,
		Fields: []EmbedField{
			{Name: "Оборудование", Value: "NB-0001", Inline: true},
		},
	}
	err := svc.SendEmbed(context.Background(), embed)
	require.NoError(t, err)

	require.Len(t, received.Embeds, 1)
	assert.Equal(t, "Новая заявка", received.Embeds[0].Title)
	assert.Equal(t, ColorGreen, received.Embeds[0].Color)
	assert.NotEmpty(t, received.Embeds[0].Timestamp, "timestamp проставляется автоматически")
}

func TestService_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	svc := NewService(server.URL)
	err := svc.SendMessage(context.Background(), "test")
	assert.Error(t, err)
}
