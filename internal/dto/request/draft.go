package request

import (
	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
)

type SaveDraftRequest struct {
	Form wizard.Form `json:"form"`
	Step int         `json:"step" validate:"min=0,max=5"`
}
