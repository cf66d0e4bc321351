package toggler

import (
	"encoding/json"
	"fmt"
)

// Action is the power operation requested by an invocation event.
type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"

	DefaultAction = ActionStart
)

// Valid reports whether the provider has an operation for a.
func (a Action) Valid() bool {
	return a == ActionStart || a == ActionStop
}

// PastTense returns the verb used in success messages.
func (a Action) PastTense() string {
	switch a {
	case ActionStart:
		return "started"
	case ActionStop:
		return "stopped"
	}
	return string(a) + "ed"
}

// Progressive returns the verb used in failure messages. Unknown actions get
// "ing" appended verbatim, e.g. "pause" becomes "pauseing".
func (a Action) Progressive() string {
	switch a {
	case ActionStart:
		return "starting"
	case ActionStop:
		return "stopping"
	}
	return string(a) + "ing"
}

// Event is the invocation payload delivered by the scheduler.
type Event struct {
	Action *string `json:"action,omitempty"`
}

// ResolvedAction returns the requested action or DefaultAction when absent.
func (e Event) ResolvedAction() Action {
	if e.Action == nil {
		return DefaultAction
	}
	return Action(*e.Action)
}

// EventFor builds an event carrying an explicit action.
func EventFor(a Action) Event {
	s := string(a)
	return Event{Action: &s}
}

// ParseEvent decodes a raw invocation payload. Empty and null payloads yield
// an event without an action. Unrelated fields are ignored.
func ParseEvent(raw []byte) (Event, error) {
	var fields map[string]json.RawMessage
	if len(raw) == 0 {
		return Event{}, nil
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Event{}, &InvalidEventError{Err: err}
	}

	actionRaw, ok := fields["action"]
	if !ok || string(actionRaw) == "null" {
		return Event{}, nil
	}

	var action string
	if err := json.Unmarshal(actionRaw, &action); err != nil {
		return Event{}, &InvalidEventError{Err: fmt.Errorf("action must be a string: %w", err)}
	}
	return Event{Action: &action}, nil
}

// Outcome is the success variant of a toggle.
type Outcome struct {
	Action     Action
	InstanceID string
	Payload    any
}

// Response is the structured result returned to the invoker.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// ResponseBody is the decoded form of Response.Body.
type ResponseBody struct {
	Message  string `json:"message"`
	Response any    `json:"response,omitempty"`
}
