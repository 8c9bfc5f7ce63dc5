package ui

import (
	"showcase/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// demoFinishedMsg is sent when a demo process exits
type demoFinishedMsg struct {
	slug string
	err  error
}

// pagerFinishedMsg is sent when the pager is closed
type pagerFinishedMsg struct {
	err error
}

// clearStatusMsg clears the status line if it is still the one with this id
type clearStatusMsg struct {
	id int
}
