package sim

// Activation holds the running flag. Scheduled ticks pass only while it is
// active; forced ticks always pass.
type Activation struct {
	active bool
}

func NewActivation(active bool) *Activation {
	return &Activation{active: active}
}

func (a *Activation) Active() bool { return a.active }

// Toggle flips the flag and returns the new value.
func (a *Activation) Toggle() bool {
	a.active = !a.active
	return a.active
}

func (a *Activation) Admit(t Tick) bool {
	return t.Forced || a.active
}
