// internal/service/mailer.go
package service

import (
	"context"
	"log/slog"

	"go_5_note_keep/internal/config"
	"go_5_note_keep/internal/middleware"
)

// Mailer は通知メールの送信口。登録完了メールなどで使う。
//
//go:generate mockery --name Mailer --output ./mocks --outpkg mocks --case=underscore
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer は実際には送信せずログに出すだけの開発用実装
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// NewMailer は設定のドライバに応じた実装を返します
func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	switch cfg.Mailer.Driver {
	case "ses":
		logger.Info("Initializing SES mailer...")
		return NewSESMailer(cfg)
	case "log":
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown mailer driver, defaulting to LogMailer", "driver", cfg.Mailer.Driver)
		return &LogMailer{}
	}
}
