// Package events appends an audit trail of mutations to a JSON-lines log.
package events

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID      string         `json:"id"`
	TS      string         `json:"ts"`
	Type    string         `json:"type"`
	Entity  string         `json:"entity,omitempty"`
	ActorID string         `json:"actor_id"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Writer struct {
	Path string
	Now  func() time.Time
}

// Append records one event at the end of the log.
func (w Writer) Append(evtType, entity, actorID string, payload map[string]any) error {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	e := Event{
		ID:      uuid.NewString(),
		TS:      now().UTC().Format(time.RFC3339),
		Type:    evtType,
		Entity:  entity,
		ActorID: actorID,
		Payload: payload,
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	f, err := os.OpenFile(w.Path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(data, '\n'))
	return err
}

// Tail returns the last n events from the log, oldest first. A missing log
// is an empty log.
func Tail(path string, n int) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	var out []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("decode event log %s: %w", path, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}
