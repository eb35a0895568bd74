package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/milk9111/flightsim/ecs"
	"github.com/milk9111/flightsim/vmath"
)

// selectRadius is how close a click must land to a crablet to select it.
const selectRadius = 1.0

func (s *State) insertCrablet(pos vmath.Vec2) ecs.ID[Crablet] {
	c := s.CrabletTemplate
	c.Body.Position = pos
	c.Selected = false
	id := s.Crablets.Insert(c)
	if created := s.Crablets.MustGet(id); created.Name == "" {
		created.Name = fmt.Sprintf("crablet %d", id.Index)
	}
	s.Stats.Inc(EventCrabletSpawned)
	return id
}

func (s *State) insertPlankton(pos vmath.Vec2) ecs.ID[Plankton] {
	p := s.PlanktonTemplate
	p.Body.Position = pos
	id := s.Plankton.Insert(p)
	s.Stats.Inc(EventPlanktonSpawned)
	return id
}

// SpawnCrab queues a crablet at a random water tile.
func (s *State) SpawnCrab() {
	s.Commands.PushMaybe(func(s *State) bool {
		pos, ok := s.randomWaterPos()
		if ok {
			s.insertCrablet(pos)
		}
		return ok
	})
}

// SpawnCrabAt queues a crablet at pos.
func (s *State) SpawnCrabAt(pos vmath.Vec2) {
	s.Commands.Push(func(s *State) {
		s.insertCrablet(pos)
	})
}

// SpawnPlankton queues a plankton at a random water tile.
func (s *State) SpawnPlankton() {
	s.Commands.PushMaybe(func(s *State) bool {
		pos, ok := s.randomWaterPos()
		if ok {
			s.insertPlankton(pos)
		}
		return ok
	})
}

func (s *State) SpawnPlanktonAt(pos vmath.Vec2) {
	s.Commands.Push(func(s *State) {
		s.insertPlankton(pos)
	})
}

// ClearPlankton queues the removal of every plankton.
func (s *State) ClearPlankton() {
	s.Commands.PushMaybe(func(s *State) bool {
		n := 0
		for id := range s.Plankton.IDs() {
			s.Plankton.DeferRemove(id)
			n++
		}
		return n > 0
	})
}

// ManualTick queues a single inner tick. It works while paused.
func (s *State) ManualTick() {
	s.Commands.Push(func(s *State) {
		s.innerTick()
	})
}

// SelectAt queues selecting the crablet nearest to pos within selectRadius.
// A click on empty water clears the selection.
func (s *State) SelectAt(pos vmath.Vec2) {
	s.Commands.PushMaybe(func(s *State) bool {
		var (
			best     ecs.ID[Crablet]
			bestDist = selectRadius * selectRadius
		)
		for id, c := range s.Crablets.All() {
			if d := c.Position().Sub(pos).Len2(); d <= bestDist {
				best, bestDist = id, d
			}
		}
		if best == s.Selected {
			return false
		}
		s.selectCrablet(best)
		return true
	})
}

func (s *State) selectCrablet(id ecs.ID[Crablet]) {
	if prev, ok := s.Crablets.Get(s.Selected); ok {
		prev.Selected = false
	}
	s.Selected = id
	if c, ok := s.Crablets.Get(id); ok {
		c.Selected = true
		s.Stats.Inc(EventSelect)
	}
}

// SetFlippers queues taking manual control of crablet id and driving its
// flippers towards left and right, each clamped to [-1, 1].
func (s *State) SetFlippers(id ecs.ID[Crablet], left, right float64) {
	s.Commands.PushMaybe(func(s *State) bool {
		c, ok := s.Crablets.Get(id)
		if !ok {
			return false
		}
		c.ManualControl = true
		c.FlipperTarget = vmath.V2(vmath.Clamp(left, -1, 1), vmath.Clamp(right, -1, 1))
		return true
	})
}

// ReleaseControl queues handing crablet id back to its brain.
func (s *State) ReleaseControl(id ecs.ID[Crablet]) {
	s.Commands.PushMaybe(func(s *State) bool {
		c, ok := s.Crablets.Get(id)
		if !ok || !c.ManualControl {
			return false
		}
		c.ManualControl = false
		return true
	})
}

// Reset queues replacing the whole world with New(opts). The logger,
// diagnostics and viewport survive.
func (s *State) Reset(opts Options) {
	s.Commands.Push(func(s *State) {
		fresh := New(opts)
		fresh.log = s.log
		fresh.Diag = s.Diag
		fresh.Camera.ViewportSize = s.Camera.ViewportSize
		*s = *fresh
		s.log.Info("world reset", zap.Stringer("mode", opts.Mode))
	})
}
