package commands

import (
	"context"

	"github.com/google/uuid"
)

// ReportInvalidator drops cached revenue reports after a payment-producing
// mutation. Invalidation is best-effort; a cache that lags is repriced by
// its TTL.
type ReportInvalidator interface {
	InvalidateReports(ctx context.Context, lotID uuid.UUID)
}

// InvitationMessage is the payload handed to the outbound mail boundary.
// The template itself lives with the sender; the core only guarantees the
// data fields.
type InvitationMessage struct {
	Recipient   string    `json:"recipient"`
	InviterName string    `json:"inviter_name"`
	LotNames    []string  `json:"lot_names"`
	TokenURL    string    `json:"token_url"`
	Token       uuid.UUID `json:"token"`
}

type InvitationPublisher interface {
	PublishInvitation(ctx context.Context, msg InvitationMessage) error
}
