package request

import (
	"playa-admin/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateSpaceRequest struct {
	TypeID uuid.UUID `json:"type_id" binding:"required"`
	Label  string    `json:"label" binding:"required,max=30"`
}

func (r *CreateSpaceRequest) ToParams(lotID uuid.UUID) commands.CreateSpaceParams {
	return commands.CreateSpaceParams{
		LotID:  lotID,
		TypeID: r.TypeID,
		Label:  r.Label,
	}
}

type CreateSpaceTypeRequest struct {
	Name            string   `json:"name" binding:"required,max=60"`
	Description     string   `json:"description" binding:"max=300"`
	Characteristics []string `json:"characteristics" binding:"omitempty,dive,max=60"`
}

func (r *CreateSpaceTypeRequest) ToParams(lotID uuid.UUID) commands.CreateSpaceTypeParams {
	return commands.CreateSpaceTypeParams{
		LotID:           lotID,
		Name:            r.Name,
		Description:     r.Description,
		Characteristics: r.Characteristics,
	}
}

type UpdateSpaceTypeRequest struct {
	Name            *string  `json:"name" binding:"omitempty,max=60"`
	Description     *string  `json:"description" binding:"omitempty,max=300"`
	Characteristics []string `json:"characteristics" binding:"omitempty,dive,max=60"`
}

func (r *UpdateSpaceTypeRequest) ToParams() commands.UpdateSpaceTypeParams {
	return commands.UpdateSpaceTypeParams{
		Name:            r.Name,
		Description:     r.Description,
		Characteristics: r.Characteristics,
	}
}

type CreateRateRequest struct {
	SpaceTypeID uuid.UUID `json:"space_type_id" binding:"required"`
	Mode        string    `json:"mode" binding:"required"`
	VehicleType string    `json:"vehicle_type" binding:"required"`
	Price       int64     `json:"price" binding:"required,gt=0"`
}

func (r *CreateRateRequest) ToParams(lotID uuid.UUID) commands.CreateRateParams {
	return commands.CreateRateParams{
		LotID:       lotID,
		SpaceTypeID: r.SpaceTypeID,
		Mode:        r.Mode,
		VehicleType: r.VehicleType,
		Price:       r.Price,
	}
}

type UpdateRatePriceRequest struct {
	Price int64 `json:"price" binding:"required,gt=0"`
}
