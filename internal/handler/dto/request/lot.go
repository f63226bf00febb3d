package request

import (
	"playa-admin/internal/usecase/commands"
)

type CreateLotRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Address string `json:"address" binding:"required,max=200"`
	Hours   string `json:"hours" binding:"required"`
}

func (r *CreateLotRequest) ToParams() commands.CreateLotParams {
	return commands.CreateLotParams{
		Name:    r.Name,
		Address: r.Address,
		Hours:   r.Hours,
	}
}

type UpdateLotRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=120"`
	Address *string `json:"address" binding:"omitempty,max=200"`
	Hours   *string `json:"hours" binding:"omitempty"`
}

func (r *UpdateLotRequest) ToParams() commands.UpdateLotParams {
	return commands.UpdateLotParams{
		Name:    r.Name,
		Address: r.Address,
		Hours:   r.Hours,
	}
}
