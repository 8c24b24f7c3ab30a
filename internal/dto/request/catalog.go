package request

type UpsertServiceRequest struct {
	Code            string  `json:"code" validate:"required,max=50"`
	Name            string  `json:"name" validate:"required,max=200"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes" validate:"min=0,max=480"`
	Price           float64 `json:"price" validate:"min=0"`
	IsActive        bool    `json:"is_active"`
	SortOrder       int     `json:"sort_order"`
	UserBookable    bool    `json:"user_bookable"`
}

type UpsertAppointmentTypeRequest struct {
	Code        string `json:"code" validate:"required,max=50"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}
