package core

import (
	"reflect"
	"sync"
)

// EventContext carries the payload of a fired event. Payload is set by the
// sender and type-asserted by the listener; the code decides its type.
type EventContext struct {
	Payload interface{}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// The scene file changed on disk and was reloaded.
	/* Context usage:
	 * cfg := data.Payload.(*config.Scene)
	 */
	EVENT_CODE_SCENE_CHANGED SystemEventCode = 0x02

	// A waterfall frame was scrolled into the grid.
	/* Context usage:
	 * frame := data.Payload.(uint64)
	 */
	EVENT_CODE_GRID_SCROLLED SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystemState struct {
	mu         sync.RWMutex
	registered map[SystemEventCode][]*registeredEvent
}

var eventState *eventSystemState = nil
var eventMu sync.Mutex

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listenerInst interface{}, data EventContext) bool

func EventInitialize() bool {
	eventMu.Lock()
	defer eventMu.Unlock()
	if eventState != nil {
		return false
	}
	eventState = &eventSystemState{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
	return true
}

func EventShutdown() error {
	eventMu.Lock()
	defer eventMu.Unlock()
	eventState = nil
	return nil
}

func currentEventState() *eventSystemState {
	eventMu.Lock()
	defer eventMu.Unlock()
	return eventState
}

// comparableListener reports whether listener can be matched with ==.
// Maps, slices and funcs cannot, and neither can structs holding them.
func comparableListener(listener interface{}) bool {
	return listener == nil || reflect.TypeOf(listener).Comparable()
}

// EventRegister listens for events sent with the provided code. A listener
// may register once per code; duplicates return false. Listeners are
// matched by identity, so pass a pointer; uncomparable values return false.
func EventRegister(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	state := currentEventState()
	if state == nil || code < 0 || code >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	if !comparableListener(listener) {
		LogWarn("listener of type %T cannot be registered for event code %d, use a pointer", listener, code)
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	for _, e := range state.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	state.registered[code] = append(state.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

// EventUnregister stops listener from receiving code. Returns false when no
// matching registration is found.
func EventUnregister(code SystemEventCode, listener interface{}) bool {
	state := currentEventState()
	if state == nil || !comparableListener(listener) {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	events := state.registered[code]
	for i, e := range events {
		if e.listener == listener {
			state.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire sends an event to listeners of the given code. If a handler
// returns true the event is considered handled and is not passed on.
func EventFire(code SystemEventCode, sender interface{}, context EventContext) bool {
	state := currentEventState()
	if state == nil {
		return false
	}
	state.mu.RLock()
	events := make([]*registeredEvent, len(state.registered[code]))
	copy(events, state.registered[code])
	state.mu.RUnlock()

	for _, e := range events {
		if e.callback(code, sender, e.listener, context) {
			return true
		}
	}
	return false
}
