package response

import (
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
)

type DraftResponse struct {
	Form    wizard.Form `json:"form"`
	Step    int         `json:"step"`
	SavedAt time.Time   `json:"saved_at"`
}
