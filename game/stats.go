package game

import (
	"fmt"
	"iter"
	"strings"
)

// Event is a counted simulation event.
type Event uint8

const (
	EventInnerTick Event = iota
	EventCommand
	EventCrabletSpawned
	EventPlanktonSpawned
	EventPlanktonEaten
	EventBounce
	EventSelect
	EventCrash

	numEvents
)

var eventNames = [numEvents]string{
	EventInnerTick:       "inner_tick",
	EventCommand:         "command",
	EventCrabletSpawned:  "crablet_spawned",
	EventPlanktonSpawned: "plankton_spawned",
	EventPlanktonEaten:   "plankton_eaten",
	EventBounce:          "bounce",
	EventSelect:          "select",
	EventCrash:           "crash",
}

func (e Event) String() string {
	if e < numEvents {
		return eventNames[e]
	}
	return fmt.Sprintf("event(%d)", uint8(e))
}

// Stats counts events in the current frame and since start.
type Stats struct {
	Frame [numEvents]uint64 `msgpack:"frame"`
	Total [numEvents]uint64 `msgpack:"total"`
}

func (s *Stats) Inc(e Event) {
	s.Add(e, 1)
}

func (s *Stats) Add(e Event, n uint64) {
	if s == nil || e >= numEvents {
		return
	}
	s.Frame[e] += n
}

// StartFrame folds the frame counters into the totals. Call it once at the
// start of every frame.
func (s *Stats) StartFrame() {
	for i := range s.Frame {
		s.Total[i] += s.Frame[i]
		s.Frame[i] = 0
	}
}

// All yields each event with its frame and total count.
func (s *Stats) All() iter.Seq2[Event, [2]uint64] {
	return func(yield func(Event, [2]uint64) bool) {
		for e := Event(0); e < numEvents; e++ {
			if !yield(e, [2]uint64{s.Frame[e], s.Total[e]}) {
				return
			}
		}
	}
}

func (s *Stats) String() string {
	var b strings.Builder
	for e, n := range s.All() {
		fmt.Fprintf(&b, "%s: %d, %d\n", e, n[0], n[1])
	}
	return b.String()
}
