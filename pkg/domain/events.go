package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLetter  EventType = "letter"
	EventMessage EventType = "message"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Direction Direction `json:"direction"`
}

// LetterEvent describes one enciphered or deciphered letter.
type LetterEvent struct {
	EventBase
	Index     int       `json:"index"`
	Input     byte      `json:"input"`
	Output    byte      `json:"output"`
	Class     Class     `json:"class"`
	Positions Positions `json:"positions"` // positions used for this letter
	Stepped   []Role    `json:"stepped"`   // twenties roles that advanced afterwards
}

// MessageEvent describes a finished (or aborted) message.
type MessageEvent struct {
	EventBase
	Letters  int       `json:"letters"`
	Skipped  int       `json:"skipped"`
	Final    Positions `json:"final"`
	Duration time.Duration
	Err      error `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnLetter  func(context.Context, *LetterEvent)
	OnMessage func(context.Context, *MessageEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnLetter: func(ctx context.Context, e *LetterEvent) {
			if h.OnLetter != nil {
				h.OnLetter(ctx, e)
			}
			if other.OnLetter != nil {
				other.OnLetter(ctx, e)
			}
		},
		OnMessage: func(ctx context.Context, e *MessageEvent) {
			if h.OnMessage != nil {
				h.OnMessage(ctx, e)
			}
			if other.OnMessage != nil {
				other.OnMessage(ctx, e)
			}
		},
	}
}
