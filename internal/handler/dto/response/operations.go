package response

import (
	"playa-admin/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreatedResponse struct {
	ID string `json:"id"`
}

func Created(id uuid.UUID) *CreatedResponse {
	return &CreatedResponse{ID: id.String()}
}

type SubscriptionCreatedResponse struct {
	ID            string `json:"id"`
	MonthlyAmount int64  `json:"monthly_amount"`
	FirstCharge   int64  `json:"first_charge"`
}

func FromSubscriptionResult(r *commands.CreateSubscriptionResult) *SubscriptionCreatedResponse {
	return &SubscriptionCreatedResponse{
		ID:            r.SubscriptionID.String(),
		MonthlyAmount: r.MonthlyAmount,
		FirstCharge:   r.FirstCharge,
	}
}

type SubscriptionEditedResponse struct {
	MonthlyAmount int64 `json:"monthly_amount"`
	RateChanged   bool  `json:"rate_changed"`
}

func FromEditResult(r *commands.EditSubscriptionResult) *SubscriptionEditedResponse {
	return &SubscriptionEditedResponse{
		MonthlyAmount: r.MonthlyAmount,
		RateChanged:   r.RateChanged,
	}
}

type ExitResponse struct {
	OccupationID string `json:"occupation_id"`
	Amount       int64  `json:"amount"`
	Minutes      int64  `json:"minutes"`
}

func FromExitResult(r *commands.RegisterExitResult) *ExitResponse {
	return &ExitResponse{
		OccupationID: r.OccupationID.String(),
		Amount:       r.Amount,
		Minutes:      r.Minutes,
	}
}
