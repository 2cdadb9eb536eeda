package hal

// ScriptedButton reports a single press once its clock reaches AtMs.
type ScriptedButton struct {
	clock   Clock
	atMs    uint32
	pressed bool
}

// PressAt returns a button that is pressed once, at atMs.
func PressAt(clock Clock, atMs uint32) *ScriptedButton {
	return &ScriptedButton{clock: clock, atMs: atMs}
}

// WasPressed reports the press exactly once.
func (b *ScriptedButton) WasPressed() bool {
	if b.pressed || b.clock.Now() < b.atMs {
		return false
	}
	b.pressed = true
	return true
}
