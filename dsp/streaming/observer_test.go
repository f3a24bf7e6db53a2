package streaming

import (
	"testing"
)

type recordingListener struct {
	updates  []UpdateEvent
	errs     []error
	onUpdate func(UpdateEvent)
}

func (l *recordingListener) OnUpdate(e UpdateEvent) {
	l.updates = append(l.updates, e)
	if l.onUpdate != nil {
		l.onUpdate(e)
	}
}

func (l *recordingListener) OnError(err error, recoverable bool) {
	l.errs = append(l.errs, err)
}

func TestListenerSetDeliversInRegistrationOrder(t *testing.T) {
	var order []int
	var set listenerSet

	mk := func(id int) *recordingListener {
		return &recordingListener{onUpdate: func(UpdateEvent) { order = append(order, id) }}
	}
	l1, l2, l3 := mk(1), mk(2), mk(3)
	set.Add(l1)
	set.Add(l2)
	set.Add(l3)

	set.dispatch(UpdateEvent{DirtyCount: 1})

	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestListenerSetSelfRemoveDuringDispatch(t *testing.T) {
	var set listenerSet
	var secondFired bool

	var self *recordingListener
	self = &recordingListener{onUpdate: func(UpdateEvent) {
		set.Remove(self)
	}}
	second := &recordingListener{onUpdate: func(UpdateEvent) { secondFired = true }}

	set.Add(self)
	set.Add(second)

	set.dispatch(UpdateEvent{DirtyCount: 1})
	if !secondFired {
		t.Fatal("second listener should still fire after first self-removes mid-dispatch")
	}
	if set.Count() != 1 {
		t.Fatalf("Count() = %d, want 1 after self-removal", set.Count())
	}

	// The removal took effect for subsequent dispatches.
	self.updates = nil
	second.updates = nil
	set.dispatch(UpdateEvent{DirtyCount: 2})
	if len(self.updates) != 0 {
		t.Fatalf("removed listener received %d further updates, want 0", len(self.updates))
	}
	if len(second.updates) != 1 {
		t.Fatalf("remaining listener received %d updates, want 1", len(second.updates))
	}
}

func TestListenerSetRecoversPanicAndNotifiesOnError(t *testing.T) {
	var set listenerSet

	panicking := &recordingListener{onUpdate: func(UpdateEvent) { panic("boom") }}
	healthy := &recordingListener{}

	set.Add(panicking)
	set.Add(healthy)

	set.dispatch(UpdateEvent{DirtyCount: 1})

	if len(panicking.errs) != 1 {
		t.Fatalf("panicking listener got %d OnError calls, want 1", len(panicking.errs))
	}
	if len(healthy.updates) != 1 {
		t.Fatal("healthy listener should still have been notified after a sibling panicked")
	}
}

func TestListenerSetClearRemovesAll(t *testing.T) {
	var set listenerSet
	set.Add(&recordingListener{})
	set.Add(&recordingListener{})
	set.Clear()
	if set.Count() != 0 {
		t.Fatalf("Count() = %d after Clear, want 0", set.Count())
	}
}

func TestListenerSetAddNilIsNoop(t *testing.T) {
	var set listenerSet
	set.Add(nil)
	if set.Count() != 0 {
		t.Fatalf("Count() = %d after adding nil, want 0", set.Count())
	}
}
