package request

import (
	"time"

	"playa-admin/internal/usecase/commands"

	"github.com/google/uuid"
)

type VehicleRequest struct {
	Plate       string `json:"plate" binding:"required,max=10"`
	VehicleType string `json:"vehicle_type" binding:"required"`
}

type CreateSubscriptionRequest struct {
	SpaceID        uuid.UUID        `json:"space_id" binding:"required"`
	SubscriberName string           `json:"subscriber_name" binding:"required,max=120"`
	Document       string           `json:"document" binding:"required,max=20"`
	Phone          string           `json:"phone" binding:"max=30"`
	Vehicles       []VehicleRequest `json:"vehicles" binding:"required,min=1,dive"`
	StartDate      *time.Time       `json:"start_date"`
}

func (r *CreateSubscriptionRequest) ToParams(lotID uuid.UUID) commands.CreateSubscriptionParams {
	return commands.CreateSubscriptionParams{
		LotID:          lotID,
		SpaceID:        r.SpaceID,
		SubscriberName: r.SubscriberName,
		Document:       r.Document,
		Phone:          r.Phone,
		Vehicles:       toVehicleParams(r.Vehicles),
		StartDate:      r.StartDate,
	}
}

type EditSubscriptionRequest struct {
	SpaceID  *uuid.UUID       `json:"space_id"`
	Vehicles []VehicleRequest `json:"vehicles" binding:"omitempty,min=1,dive"`
}

func (r *EditSubscriptionRequest) ToParams() commands.EditSubscriptionParams {
	return commands.EditSubscriptionParams{
		SpaceID:  r.SpaceID,
		Vehicles: toVehicleParams(r.Vehicles),
	}
}

func toVehicleParams(vs []VehicleRequest) []commands.VehicleParams {
	if vs == nil {
		return nil
	}
	out := make([]commands.VehicleParams, len(vs))
	for i, v := range vs {
		out[i] = commands.VehicleParams{Plate: v.Plate, VehicleType: v.VehicleType}
	}
	return out
}
