package sequence

// Dispatch is scoped to the processing of a single physical key event. It
// carries the handled flag shared by every handler the event completes.
type Dispatch struct {
	consumed bool
	fired    []string
}

// Consumed reports whether a handler already handled this event.
func (d *Dispatch) Consumed() bool {
	return d.consumed
}

// Consume marks the event as handled.
func (d *Dispatch) Consume() {
	d.consumed = true
}

// Completed returns the shortcuts that completed on this event, in
// evaluation order.
func (d *Dispatch) Completed() []string {
	return d.fired
}
