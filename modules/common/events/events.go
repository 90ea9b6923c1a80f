// Package events defines the lifecycle events published by the status
// server and the Redis event publisher.
package events

import "time"

// Type names a lifecycle event.
type Type string

const (
	AppStart      Type = "app_start"
	AppClose      Type = "app_close"
	AppError      Type = "app_error"
	PlatformClose Type = "platform_close"
)

// Event is a single lifecycle notification.
type Event struct {
	Type  Type      `json:"type"`
	RunID string    `json:"run_id"`
	App   string    `json:"app,omitempty"`
	Time  time.Time `json:"time"`
	// Frames counts updates of the running app when the event was emitted.
	Frames uint64 `json:"frames"`
}

// New stamps an event with the current time.
func New(t Type, runID, app string, frames uint64) Event {
	return Event{Type: t, RunID: runID, App: app, Time: time.Now().UTC(), Frames: frames}
}

// Values flattens the event into string fields, as stored in a Redis stream entry.
func (e Event) Values() map[string]any {
	v := map[string]any{
		"type":   string(e.Type),
		"run_id": e.RunID,
		"time":   e.Time.Format(time.RFC3339Nano),
		"frames": e.Frames,
	}
	if e.App != "" {
		v["app"] = e.App
	}
	return v
}
