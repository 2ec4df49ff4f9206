package domain

import (
	"strings"
	"time"
)

// UnknownEmployeeKey groups punches that identify no employee at all
const UnknownEmployeeKey = "unknown"

// Employee identifies the person a punch or shift belongs to
type Employee struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
}

// Key returns the identity used to group punches and to key report maps.
// The badge ID wins over the name when both are present.
func (e Employee) Key() string {
	if id := strings.TrimSpace(e.ID); id != "" {
		return id
	}
	if name := strings.TrimSpace(e.Name); name != "" {
		return name
	}
	return UnknownEmployeeKey
}

// Label returns the human-readable employee name, falling back to the key
func (e Employee) Label() string {
	if name := strings.TrimSpace(e.Name); name != "" {
		return name
	}
	return e.Key()
}

// Identified reports whether the employee carries an ID or a name
func (e Employee) Identified() bool {
	return e.Key() != UnknownEmployeeKey
}

// PunchEvent is a single clock event as delivered by the ingestion collaborator.
// A zero Timestamp means the event had no usable time; RawTimestamp keeps the
// original cell text when it could not be parsed.
type PunchEvent struct {
	Employee     Employee  `json:"employee"`
	Timestamp    time.Time `json:"timestamp"`
	RawTimestamp string    `json:"raw_timestamp,omitempty"`
}

// HasTimestamp reports whether the punch can be placed on a calendar day
func (p PunchEvent) HasTimestamp() bool {
	return !p.Timestamp.IsZero()
}

// Unparseable reports whether the punch arrived with timestamp text that
// could not be interpreted
func (p PunchEvent) Unparseable() bool {
	return p.Timestamp.IsZero() && strings.TrimSpace(p.RawTimestamp) != ""
}
