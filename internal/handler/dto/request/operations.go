package request

import (
	"playa-admin/internal/usecase/commands"

	"github.com/google/uuid"
)

type OpenShiftRequest struct {
	LotID       uuid.UUID `json:"lot_id" binding:"required"`
	OpeningCash int64     `json:"opening_cash" binding:"min=0"`
}

func (r *OpenShiftRequest) ToParams() commands.OpenShiftParams {
	return commands.OpenShiftParams{
		LotID:       r.LotID,
		OpeningCash: r.OpeningCash,
	}
}

type CloseShiftRequest struct {
	ClosingCash int64 `json:"closing_cash" binding:"min=0"`
}

func (r *CloseShiftRequest) ToParams() commands.CloseShiftParams {
	return commands.CloseShiftParams{ClosingCash: r.ClosingCash}
}

type RegisterEntryRequest struct {
	LotID       uuid.UUID `json:"lot_id" binding:"required"`
	SpaceID     uuid.UUID `json:"space_id" binding:"required"`
	Plate       string    `json:"plate" binding:"required,max=10"`
	VehicleType string    `json:"vehicle_type" binding:"required"`
}

func (r *RegisterEntryRequest) ToParams() commands.RegisterEntryParams {
	return commands.RegisterEntryParams{
		LotID:       r.LotID,
		SpaceID:     r.SpaceID,
		Plate:       r.Plate,
		VehicleType: r.VehicleType,
	}
}
