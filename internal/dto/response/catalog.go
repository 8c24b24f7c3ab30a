package response

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
)

type ServiceResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	IsActive        bool    `json:"is_active"`
	SortOrder       int     `json:"sort_order"`
	UserBookable    bool    `json:"user_bookable"`
}

type AppointmentTypeResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

func ServiceToResponse(svc *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:              svc.ID.String(),
		Code:            svc.Code,
		Name:            svc.Name,
		Description:     svc.Description,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
		IsActive:        svc.IsActive,
		SortOrder:       svc.SortOrder,
		UserBookable:    svc.UserBookable,
	}
}

func AppointmentTypeToResponse(at *entity.AppointmentType) AppointmentTypeResponse {
	return AppointmentTypeResponse{
		ID:          at.ID.String(),
		Code:        at.Code,
		Name:        at.Name,
		Description: at.Description,
		IsActive:    at.IsActive,
		SortOrder:   at.SortOrder,
	}
}
