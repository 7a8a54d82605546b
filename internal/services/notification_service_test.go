package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lending-system/internal/entities"
	"lending-system/pkg/discord"
)

type fakeDiscord struct {
	embeds chan discord.Embed
}

func newFakeDiscord() *fakeDiscord {
	return &fakeDiscord{embeds: make(chan discord.Embed, 8)}
}

func (f *fakeDiscord) SendMessage(ctx context.Context, text string) error { return nil }

func (f *fakeDiscord) SendEmbed(ctx context.Context, embed discord.Embed) error {
	f.embeds <- embed
	return nil
}

func TestNotificationService_DisabledWebhook(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)
	fake := newFakeDiscord()

	svc := NewNotificationService(fake, false, logger)

	// Факт отключения фиксируется один раз при создании
	entries := logs.FilterMessage("Discord webhook не настроен — уведомления отключены").All()
	assert.Len(t, entries, 1)

	svc.LoanRequested(context.Background(), &entities.LoanRequest{ID: 1})
	svc.LoanOverdue(context.Background(), &entities.LoanRequest{ID: 1, DueDate: time.Now()})

	select {
	case embed := <-fake.embeds:
		t.Fatalf("отключенный нотификатор отправил embed: %q", embed.Title)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotificationService_SendsWhenConfigured(t *testing.T) {
	fake := newFakeDiscord()
	svc := NewNotificationService(fake, true, zap.NewNop())

	svc.LoanOverdue(context.Background(), &entities.LoanRequest{ID: 7, DueDate: time.Now()})

	select {
	case embed := <-fake.embeds:
		require.Equal(t, "⏰ Просрочен возврат оборудования", embed.Title)
		assert.Equal(t, discord.ColorRed, embed.Color)
	case <-time.After(time.Second):
		t.Fatal("embed не был отправлен")
	}
}
