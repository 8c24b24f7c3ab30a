package draft

import (
	"context"
	"time"

	"github.com/pellyjosh/psychiatrist-sub000/internal/wizard"
)

// DefaultDebounce matches the one-second quiet period between the last field
// change and the storage write.
const DefaultDebounce = time.Second

// Autosaver mirrors every field change of a wizard machine into a Store. A
// write failure is reported through onError and never interrupts the form;
// the user keeps typing and the next change retries.
type Autosaver struct {
	store    Store
	key      string
	debounce *Debouncer
	timeout  time.Duration
	onError  func(error)
}

func NewAutosaver(store Store, key string, onError func(error)) *Autosaver {
	if onError == nil {
		onError = func(error) {}
	}
	return &Autosaver{
		store:    store,
		key:      key,
		debounce: NewDebouncer(DefaultDebounce),
		timeout:  5 * time.Second,
		onError:  onError,
	}
}

// Changed schedules a debounced write of the full snapshot. All-default forms
// are skipped so an untouched wizard never leaves a draft behind.
func (a *Autosaver) Changed(form wizard.Form, step wizard.Step) {
	if form.IsZero() {
		return
	}

	a.debounce.Trigger(func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		d := Draft{Form: form, Step: step, SavedAt: time.Now()}
		if err := a.store.Save(ctx, a.key, d); err != nil {
			a.onError(err)
		}
	})
}

// Flush writes any pending snapshot immediately.
func (a *Autosaver) Flush() {
	a.debounce.Flush()
}

// Resume loads the stored draft, if any. The caller decides whether to apply
// it; resuming is never automatic.
func (a *Autosaver) Resume(ctx context.Context) (*Draft, error) {
	return a.store.Load(ctx, a.key)
}

// Discard cancels pending writes and removes the stored draft. Called both
// when the user chooses to start fresh and after a successful submission.
func (a *Autosaver) Discard(ctx context.Context) error {
	a.debounce.Stop()
	return a.store.Clear(ctx, a.key)
}
