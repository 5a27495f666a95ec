package widget

import "sync"

// Input models the text field: its current value and whether it accepts
// submissions.
type Input struct {
	mu       sync.Mutex
	value    string
	disabled bool
}

// Set replaces the field value, as typing would.
func (in *Input) Set(value string) {
	in.mu.Lock()
	in.value = value
	in.mu.Unlock()
}

// Value returns the raw field value.
func (in *Input) Value() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.value
}

// Disabled reports whether the field is locked by a pending request.
func (in *Input) Disabled() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.disabled
}

// take returns the value and clears the field. With lock set it also
// disables the field, and fails if it was already disabled.
func (in *Input) take(lock bool) (string, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if lock && in.disabled {
		return "", false
	}
	value := in.value
	in.value = ""
	if lock {
		in.disabled = true
	}
	return value, true
}

func (in *Input) enable() {
	in.mu.Lock()
	in.disabled = false
	in.mu.Unlock()
}
