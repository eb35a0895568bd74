package ecs

// System advances one concern of a state S by dt seconds.
type System[S any] interface {
	Update(s *S, dt float64)
}

// SystemFunc adapts a function to System.
type SystemFunc[S any] func(s *S, dt float64)

func (f SystemFunc[S]) Update(s *S, dt float64) {
	f(s, dt)
}

// Scheduler runs systems in registration order.
type Scheduler[S any] struct {
	systems []System[S]
}

func NewScheduler[S any](systems ...System[S]) *Scheduler[S] {
	copied := append([]System[S](nil), systems...)
	return &Scheduler[S]{systems: copied}
}

func (s *Scheduler[S]) Add(system System[S]) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler[S]) Update(state *S, dt float64) {
	if s == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(state, dt)
	}
}

func (s *Scheduler[S]) Systems() []System[S] {
	systems := make([]System[S], 0, len(s.systems))
	return append(systems, s.systems...)
}
