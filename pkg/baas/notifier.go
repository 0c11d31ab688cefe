package baas

import "sync"

type AuthEvent string

const (
	EventSignedIn  AuthEvent = "SIGNED_IN"
	EventSignedOut AuthEvent = "SIGNED_OUT"
)

// AuthListener receives auth state changes. session is nil on sign-out.
type AuthListener func(event AuthEvent, session *Session)

// StateNotifier fans auth events out to listeners in subscription order. The
// zero value is ready to use.
type StateNotifier struct {
	mu        sync.Mutex
	nextID    int
	listeners []listenerEntry
}

type listenerEntry struct {
	id int
	fn AuthListener
}

func (n *StateNotifier) Subscribe(listener AuthListener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}

	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.listeners = append(n.listeners, listenerEntry{id: id, fn: listener})
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, l := range n.listeners {
			if l.id == id {
				n.listeners = append(n.listeners[:i:i], n.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every listener outside the lock, so listeners may subscribe or
// unsubscribe from inside the callback.
func (n *StateNotifier) Notify(event AuthEvent, session *Session) {
	n.mu.Lock()
	listeners := make([]listenerEntry, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.Unlock()

	for _, l := range listeners {
		l.fn(event, session)
	}
}

func (n *StateNotifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}
