package engine

// EventType represents the type of event in the engine.
type EventType string

const (
	// Events raised by the Lua side through the RPC handler.
	EventRefresh      EventType = "refresh"
	EventTextChanged  EventType = "text_changed"
	EventAcceptLeft   EventType = "accept_left"
	EventAcceptRight  EventType = "accept_right"
	EventDiscard      EventType = "discard"
	EventNextConflict EventType = "next_conflict"
	EventPrevConflict EventType = "prev_conflict"

	// Internal events.
	EventDebounceTimeout EventType = "debounce_timeout"
	EventGitChanged      EventType = "git_changed"
	EventMergeReady      EventType = "merge_ready"
	EventMergeError      EventType = "merge_error"
)

// Event is one message on the engine's event loop.
type Event struct {
	Type EventType
	Data any
}

var eventTypeMap map[string]EventType

func init() {
	eventTypeMap = make(map[string]EventType)
	for _, t := range []EventType{
		EventRefresh,
		EventTextChanged,
		EventAcceptLeft,
		EventAcceptRight,
		EventDiscard,
		EventNextConflict,
		EventPrevConflict,
		EventDebounceTimeout,
		EventGitChanged,
		EventMergeReady,
		EventMergeError,
	} {
		eventTypeMap[string(t)] = t
	}
}

// EventTypeFromString converts a string to EventType; unknown names
// yield "".
func EventTypeFromString(s string) EventType {
	return eventTypeMap[s]
}
