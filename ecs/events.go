package ecs

// Commands is a FIFO queue of deferred mutations against a state S.
//
// Entities push commands while the state is being iterated; the owner runs
// them once iteration is over.
type Commands[S any] struct {
	items []func(*S) bool
}

// Push adds a command.
func (q *Commands[S]) Push(cmd func(*S)) {
	if q == nil || cmd == nil {
		return
	}
	q.items = append(q.items, func(s *S) bool {
		cmd(s)
		return true
	})
}

// PushMaybe adds a command that reports whether it did anything. Commands
// returning false are not counted by Exec.
func (q *Commands[S]) PushMaybe(cmd func(*S) bool) {
	if q == nil || cmd == nil {
		return
	}
	q.items = append(q.items, cmd)
}

// Len returns the number of queued commands.
func (q *Commands[S]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Exec takes every queued command and runs it against s in push order.
// Commands pushed while executing stay queued for the next call.
func (q *Commands[S]) Exec(s *S) int {
	if q == nil || len(q.items) == 0 {
		return 0
	}
	items := q.items
	q.items = nil
	applied := 0
	for _, cmd := range items {
		if cmd(s) {
			applied++
		}
	}
	return applied
}

// Reset drops queued commands without running them.
func (q *Commands[S]) Reset() {
	if q == nil {
		return
	}
	q.items = nil
}
