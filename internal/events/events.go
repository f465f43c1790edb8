// Package events carries the bot's leveled notifications to whatever
// front end is listening (CLI output, a log file, a UI).
package events

import "time"

type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Warning Level = "warning"
	Error   Level = "error"
)

// Event is a single leveled notification.
type Event struct {
	Level   Level
	Time    time.Time
	Message string
	Fields  map[string]any
}

// Sink receives events. Implementations must be safe for use from the
// single worker goroutine plus the caller's goroutine.
type Sink interface {
	Emit(e Event)
}

// FuncSink adapts a function to the Sink interface.
type FuncSink func(e Event)

func (f FuncSink) Emit(e Event) { f(e) }

// Multi fans an event out to several sinks in order.
type Multi []Sink

func (m Multi) Emit(e Event) {
	for _, s := range m {
		s.Emit(e)
	}
}

// Discard drops every event.
var Discard Sink = FuncSink(func(Event) {})

// Emitter wraps a Sink with level helpers and timestamps.
type Emitter struct {
	sink Sink
}

func NewEmitter(sink Sink) *Emitter {
	if sink == nil {
		sink = Discard
	}
	return &Emitter{sink: sink}
}

func (e *Emitter) emit(level Level, msg string, fields map[string]any) {
	e.sink.Emit(Event{Level: level, Time: time.Now().UTC(), Message: msg, Fields: fields})
}

func (e *Emitter) Info(msg string, fields map[string]any)    { e.emit(Info, msg, fields) }
func (e *Emitter) Success(msg string, fields map[string]any) { e.emit(Success, msg, fields) }
func (e *Emitter) Warning(msg string, fields map[string]any) { e.emit(Warning, msg, fields) }
func (e *Emitter) Error(msg string, fields map[string]any)   { e.emit(Error, msg, fields) }
