package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lending-system/internal/entities"
	"lending-system/pkg/discord"
)

// NotificationServiceInterface — уведомления в Discord-канал администраторов.
// Все методы best-effort: падение webhook не должно ломать бизнес-операцию.
type NotificationServiceInterface interface {
	LoanRequested(ctx context.Context, loan *entities.LoanRequest)
	LoanDecided(ctx context.Context, loan *entities.LoanRequest)
	LoanOverdue(ctx context.Context, loan *entities.LoanRequest)
	LoanReturnedLate(ctx context.Context, loan *entities.LoanRequest)
}

type NotificationService struct {
	discordSvc discord.ServiceInterface
	enabled    bool
	logger     *zap.Logger
}

func NewNotificationService(discordSvc discord.ServiceInterface, webhookConfigured bool, logger *zap.Logger) NotificationServiceInterface {
	if !webhookConfigured {
		logger.Warn("Discord webhook не настроен — уведомления отключены")
	}
	return &NotificationService{
		discordSvc: discordSvc,
		enabled:    webhookConfigured,
		logger:     logger,
	}
}

func (s *NotificationService) LoanRequested(ctx context.Context, loan *entities.LoanRequest) {
	s.send(ctx, discord.Embed{
		Title:       "📥 Новая заявка на выдачу",
		Description: loan.Purpose,
		Color:       discord.ColorYellow,
		Fields:      loanFields(loan),
	})
}

func (s *NotificationService) LoanDecided(ctx context.Context, loan *entities.LoanRequest) {
	embed := discord.Embed{
		Fields: loanFields(loan),
	}
	switch loan.Status {
	case entities.LoanStatusApproved:
		embed.Title = "✅ Заявка одобрена"
		embed.Color = discord.ColorGreen
	case entities.LoanStatusRejected:
		embed.Title = "❌ Заявка отклонена"
		embed.Color = discord.ColorRed
	default:
		return
	}
	if loan.DecisionNote.Valid {
		embed.Description = loan.DecisionNote.String
	}
	s.send(ctx, embed)
}

func (s *NotificationService) LoanOverdue(ctx context.Context, loan *entities.LoanRequest) {
	s.send(ctx, discord.Embed{
		Title: "⏰ Просрочен возврат оборудования",
		Description: fmt.Sprintf("Срок возврата истек %s",
			loan.DueDate.Format("02.01.2006 15:04")),
		Color:  discord.ColorRed,
		Fields: loanFields(loan),
	})
}

func (s *NotificationService) LoanReturnedLate(ctx context.Context, loan *entities.LoanRequest) {
	s.send(ctx, discord.Embed{
		Title:  "⚠️ Оборудование возвращено с опозданием",
		Color:  discord.ColorYellow,
		Fields: loanFields(loan),
	})
}

func (s *NotificationService) send(ctx context.Context, embed discord.Embed) {
	if !s.enabled {
		return
	}
	// Не держим запрос пользователя дольше, чем живет webhook-вызов
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	go func() {
		defer cancel()
		if err := s.discordSvc.SendEmbed(sendCtx, embed); err != nil {
			s.logger.Warn("Не удалось отправить уведомление в Discord", zap.Error(err))
		}
	}()
}

func loanFields(loan *entities.LoanRequest) []discord.EmbedField {
	fields := []discord.EmbedField{
		{Name: "Заявка", Value: fmt.Sprintf("#%d", loan.ID), Inline: true},
	}
	if loan.Equipment != nil {
		fields = append(fields, discord.EmbedField{
			Name:   "Оборудование",
			Value:  fmt.Sprintf("%s (%s)", loan.Equipment.Name, loan.Equipment.InventoryNumber),
			Inline: true,
		})
	}
	if loan.Borrower != nil {
		fields = append(fields, discord.EmbedField{
			Name:   "Заемщик",
			Value:  loan.Borrower.Fio,
			Inline: true,
		})
	}
	return fields
}
