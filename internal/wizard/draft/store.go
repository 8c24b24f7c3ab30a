// Package draft persists in-progress wizard forms so a half-filled intake
// survives a page reload or a device switch. A draft is the entire answer set
// under one fixed key; it is cleared unconditionally on successful submission.
package draft

import (
	"context"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
)

// Draft is the stored snapshot: the full form plus the step the user was on.
type Draft struct {
	Form    wizard.Form `json:"form"`
	Step    wizard.Step `json:"step"`
	SavedAt time.Time   `json:"savedAt"`
}

// Store is a key-value backend for drafts. Load returns nil when no draft
// exists under the key.
type Store interface {
	Load(ctx context.Context, key string) (*Draft, error)
	Save(ctx context.Context, key string, d Draft) error
	Clear(ctx context.Context, key string) error
}
