package bootstrap

import (
	appconfig "github.com/wolfman30/maldives-travel-platform/internal/config"
	"github.com/wolfman30/maldives-travel-platform/internal/notify"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// BuildEmailSender picks the sender named by EMAIL_PROVIDER. Misconfigured
// providers fall back to the stub so inquiries are never blocked on e-mail.
func BuildEmailSender(cfg *appconfig.Config, ses notify.SESAPI, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil {
		return notify.NewStubEmailSender(logger)
	}

	switch cfg.EmailProvider {
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger); sender != nil {
			logger.Info("email provider configured", "provider", "sendgrid")
			return sender
		}
		logger.Warn("SENDGRID_API_KEY missing, falling back to stub email sender")
	case "ses":
		if sender := notify.NewSESSender(ses, notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger); sender != nil {
			logger.Info("email provider configured", "provider", "ses")
			return sender
		}
		logger.Warn("SES client unavailable, falling back to stub email sender")
	case "", "stub":
	default:
		logger.Warn("unknown EMAIL_PROVIDER, using stub", "provider", cfg.EmailProvider)
	}
	return notify.NewStubEmailSender(logger)
}
