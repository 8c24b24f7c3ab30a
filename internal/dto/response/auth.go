package response

import (
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/data/entity"
)

type PatientResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Role      string  `json:"role"`
}

type AuthResponse struct {
	Patient   PatientResponse `json:"patient"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

func PatientToResponse(p *entity.Patient) PatientResponse {
	return PatientResponse{
		ID:        p.ID.String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Role:      string(p.Role),
	}
}
