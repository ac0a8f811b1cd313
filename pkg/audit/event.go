// Package audit provides audit logging for network configuration changes.
package audit

import (
	"fmt"
	"time"
)

// Event represents one auditable persistence operation against a node's
// interface configuration.
type Event struct {
	ID          string            `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	User        string            `json:"user"`
	Node        string            `json:"node"`
	Operation   string            `json:"operation"`
	Interface   string            `json:"interface,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	Success     bool              `json:"success"`
	Error       string            `json:"error,omitempty"`
	ExecuteMode bool              `json:"execute_mode"` // true if -x was used
	DryRun      bool              `json:"dry_run"`
	Duration    time.Duration     `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Node        string
	User        string
	Operation   string
	Interface   string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event
func NewEvent(user, node, operation string) *Event {
	return &Event{
		ID:        generateID(),
		Timestamp: time.Now(),
		User:      user,
		Node:      node,
		Operation: operation,
	}
}

// WithInterface sets the interface the operation targeted
func (e *Event) WithInterface(iface string) *Event {
	e.Interface = iface
	return e
}

// WithFields sets the operation's parameters
func (e *Event) WithFields(fields map[string]string) *Event {
	e.Fields = fields
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

// WithExecuteMode marks if execute mode was used
func (e *Event) WithExecuteMode(execute bool) *Event {
	e.ExecuteMode = execute
	e.DryRun = !execute
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}
