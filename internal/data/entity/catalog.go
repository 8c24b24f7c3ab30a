package entity

// Service is a bookable clinical service, referenced by code from appointments.
type Service struct {
	BaseNoDelete
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	DurationMinutes int     `db:"duration_minutes"`
	Price           float64 `db:"price"`
	IsActive        bool    `db:"is_active"`
	SortOrder       int     `db:"sort_order"`
	UserBookable    bool    `db:"user_bookable"` // false means admin-only scheduling
}

// AppointmentType is a lookup row for the visit mode options shown in the wizard.
type AppointmentType struct {
	BaseNoDelete
	Code        string `db:"code"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	SortOrder   int    `db:"sort_order"`
}
