package game

import (
	"github.com/milk9111/flightsim/ecs"
)

// defaultSystems is the inner tick order: plane, crablets in arena order,
// plankton, then respawning in the aquarium.
func (s *State) defaultSystems() *ecs.Scheduler[State] {
	systems := ecs.NewScheduler[State](
		ecs.SystemFunc[State]((*State).tickPlane),
		ecs.SystemFunc[State]((*State).tickCrablets),
		ecs.SystemFunc[State]((*State).tickPlankton),
	)
	if s.Mode == ModeAquarium {
		systems.Add(ecs.SystemFunc[State]((*State).tickRespawn))
	}
	return systems
}

func (s *State) tickPlane(dt float64) {
	if s.Plane == nil {
		return
	}
	if s.Plane.Tick(dt, s.Tilemap).Any() {
		s.Stats.Inc(EventBounce)
	}
}

func (s *State) tickCrablets(dt float64) {
	for c := range s.Crablets.Values() {
		c.Tick(s, dt)
	}
}

func (s *State) tickPlankton(dt float64) {
	for p := range s.Plankton.Values() {
		p.Tick(s, dt)
	}
}

// tickRespawn tops the plankton back up towards PlanktonCap, one at a time,
// every RespawnFrames frames.
func (s *State) tickRespawn(float64) {
	if s.RespawnFrames == 0 {
		return
	}
	if !s.RespawnTimer.Finished(s.Frame) {
		return
	}
	s.RespawnTimer.SetAlarm(s.Frame, s.RespawnFrames)

	inserts, _ := s.Plankton.Pending()
	if s.Plankton.Len()+inserts >= s.PlanktonCap {
		return
	}
	if pos, ok := s.randomWaterPos(); ok {
		p := s.PlanktonTemplate
		p.Body.Position = pos
		s.Plankton.DeferInsert(p)
		s.Stats.Inc(EventPlanktonSpawned)
	}
}
