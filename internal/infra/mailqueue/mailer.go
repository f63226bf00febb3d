package mailqueue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"playa-admin/internal/pkg/config"
	"playa-admin/internal/usecase/commands"
)

// LogMailer renders the invitation mail and writes it to the log. It stands
// in for a real delivery backend behind the Mailer port.
type LogMailer struct {
	from   string
	logger *slog.Logger
}

func NewLogMailer(cfg config.MailConfig, logger *slog.Logger) *LogMailer {
	return &LogMailer{from: cfg.FromAddress, logger: logger}
}

func (m *LogMailer) SendInvitation(_ context.Context, msg commands.InvitationMessage) error {
	body := fmt.Sprintf(
		"%s te invitó como playero de: %s. Aceptá la invitación en %s",
		msg.InviterName, strings.Join(msg.LotNames, ", "), msg.TokenURL)

	m.logger.Info("invitation mail",
		"from", m.from,
		"to", msg.Recipient,
		"body", body)
	return nil
}
