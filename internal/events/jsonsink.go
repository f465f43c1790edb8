package events

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type entry struct {
	Level   string         `json:"level"`
	Time    string         `json:"time"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// JSONSink writes one JSON object per event.
type JSONSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewJSONSink(w io.Writer) *JSONSink {
	if w == nil {
		w = os.Stdout
	}
	return &JSONSink{w: w}
}

func (s *JSONSink) Emit(e Event) {
	b, _ := json.Marshal(entry{
		Level:   string(e.Level),
		Time:    e.Time.Format(time.RFC3339Nano),
		Message: e.Message,
		Fields:  e.Fields,
	})
	s.mu.Lock()
	fmt.Fprintln(s.w, string(b))
	s.mu.Unlock()
}
