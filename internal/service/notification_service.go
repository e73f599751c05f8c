package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/careerlaunchpad/api/internal/events"
)

// Mailer delivers transactional email. The surrounding system supplies a
// real implementation; the default stub only logs.
type Mailer interface {
	Send(ctx context.Context, to, template string, data map[string]any) error
}

// NewLogMailer returns a Mailer stub that records sends in the log.
func NewLogMailer(logger *zap.Logger) Mailer {
	return &logMailer{logger: logger}
}

type logMailer struct {
	logger *zap.Logger
}

func (m *logMailer) Send(_ context.Context, to, template string, data map[string]any) error {
	m.logger.Info("email send (stub)",
		zap.String("to", to),
		zap.String("template", template),
		zap.Any("data", data),
	)
	return nil
}

// NotificationService turns auth lifecycle events into mail deliveries.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	n.dispatcher.Subscribe(events.EventPasswordResetRequested, n.handlePasswordResetRequested)
	n.dispatcher.Subscribe(events.EventEmailVerified, n.handleEmailVerified)
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserRegisteredPayload)
	if !ok {
		return nil
	}
	return n.mailer.Send(ctx, payload.Email, "verify-email", map[string]any{
		"name":  payload.Name,
		"token": payload.VerificationToken,
	})
}

func (n *NotificationService) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return nil
	}
	return n.mailer.Send(ctx, payload.Email, "reset-password", map[string]any{
		"token":      payload.ResetToken,
		"expires_at": payload.ExpiresAt,
	})
}

func (n *NotificationService) handleEmailVerified(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EmailVerifiedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("email verified", zap.String("user_id", event.UserID), zap.String("email", payload.Email))
	return nil
}
