package wizard

import "time"

// Machine drives the six-step intake flow. All transitions are synchronous;
// the zero value is not usable, construct with NewMachine.
type Machine struct {
	form    Form
	step    Step
	touched map[string]bool
	errors  FieldErrors
	now     func() time.Time
}

func NewMachine() *Machine {
	return &Machine{
		touched: make(map[string]bool),
		now:     time.Now,
	}
}

// NewMachineAt resumes a machine from a stored draft.
func NewMachineAt(form Form, step Step) *Machine {
	m := NewMachine()
	m.form = form
	if step < StepService {
		step = StepService
	}
	if step > StepReviewConfirm {
		step = StepReviewConfirm
	}
	m.step = step
	return m
}

func (m *Machine) Form() Form          { return m.form }
func (m *Machine) Step() Step          { return m.step }
func (m *Machine) Errors() FieldErrors { return m.errors }

// Touched reports whether a field has been visited by a Next attempt.
func (m *Machine) Touched(field string) bool { return m.touched[field] }

// Apply runs the reducer for one field change and clears that field's error
// so the user sees stale messages disappear as they type.
func (m *Machine) Apply(field string, value any) error {
	next, err := Apply(m.form, field, value)
	if err != nil {
		return err
	}
	m.form = next
	if m.errors != nil {
		delete(m.errors, field)
	}
	return nil
}

// Next validates the current step's required fields, marking each as touched.
// On failure the returned FieldErrors is non-nil and the step does not
// advance. On the last step Next performs the full Submit validation instead
// of advancing further.
func (m *Machine) Next() FieldErrors {
	required := RequiredFields(m.step, m.form)
	for _, field := range required {
		m.touched[field] = true
	}

	if m.step.IsLast() {
		return m.Submit()
	}

	if errs := ValidateFields(m.form, required, m.now()); errs != nil {
		m.errors = errs
		return errs
	}

	m.errors = nil
	m.step++
	return nil
}

// Previous moves one step back, saturating at the first step. Going back
// never validates.
func (m *Machine) Previous() {
	if m.step > StepService {
		m.step--
	}
}

// Submit re-validates the union of every step's required-field set, not just
// the current step. This is the safety net for fields a caller could have
// left unvalidated by jumping straight to the review step. All accumulated
// errors are returned together; a nil result means the form is ready to send.
func (m *Machine) Submit() FieldErrors {
	fields := AllRequiredFields(m.form)
	for _, field := range fields {
		m.touched[field] = true
	}

	if errs := ValidateFields(m.form, fields, m.now()); errs != nil {
		m.errors = errs
		return errs
	}

	m.errors = nil
	return nil
}
