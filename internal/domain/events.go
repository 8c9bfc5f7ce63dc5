package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogChanged EventType = "CatalogChanged"
	EventCatalogLoaded  EventType = "CatalogLoaded"
	EventExampleChosen  EventType = "ExampleChosen"
	EventDemoFinished   EventType = "DemoFinished"
	EventError          EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogChangedEvent is emitted when files in the examples directory change
type CatalogChangedEvent struct {
	Dir   string
	Paths []string
}

func (e CatalogChangedEvent) Type() EventType { return EventCatalogChanged }

// CatalogLoadedEvent carries a freshly loaded pool
type CatalogLoadedEvent struct {
	Examples []Example
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// ExampleChosenEvent is emitted when the user confirms an example
type ExampleChosenEvent struct {
	Index int
	Slug  string
	// Via is "search", "random" or "initial".
	Via string
}

func (e ExampleChosenEvent) Type() EventType { return EventExampleChosen }

// DemoFinishedEvent is emitted after a demo process exits
type DemoFinishedEvent struct {
	Slug string
	Err  error
}

func (e DemoFinishedEvent) Type() EventType { return EventDemoFinished }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
