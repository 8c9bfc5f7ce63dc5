package selector

// Focus is the focus flag shared by a selector and its host.
//
// Both sides write it: the host to open the selector (a global shortcut),
// the selector on blur and confirm. Writes are synchronous on the UI
// goroutine, so the last write wins and no locking is needed. Observers run
// synchronously, in subscription order, whenever the value changes.
type Focus struct {
	focused   bool
	observers []focusObserver
	nextID    int
}

type focusObserver struct {
	id int
	fn func(focused bool)
}

// NewFocus creates a focus flag with the given initial value
func NewFocus(focused bool) *Focus {
	return &Focus{focused: focused}
}

// Focused reports the current value
func (f *Focus) Focused() bool {
	return f.focused
}

// Set writes the flag. Observers are notified only when the value changes.
func (f *Focus) Set(focused bool) {
	if f.focused == focused {
		return
	}
	f.focused = focused

	observers := make([]focusObserver, len(f.observers))
	copy(observers, f.observers)
	for _, o := range observers {
		o.fn(focused)
	}
}

// OnChange registers fn to run on every change and returns an unsubscribe func.
func (f *Focus) OnChange(fn func(focused bool)) func() {
	f.nextID++
	id := f.nextID
	f.observers = append(f.observers, focusObserver{id: id, fn: fn})

	return func() {
		for i, o := range f.observers {
			if o.id == id {
				f.observers = append(f.observers[:i], f.observers[i+1:]...)
				return
			}
		}
	}
}
