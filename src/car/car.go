// Package car drives one elevator car: a private destination queue consumed
// by a single worker goroutine that walks the car floor by floor through its
// motion state machine.
package car

import (
	"log/slog"
	"sync"

	"multilift/src/config"
	"multilift/src/types"
)

// NotifyFunc receives a state update on every floor step and on every stop.
type NotifyFunc func(update types.StateUpdate)

type job struct {
	floor int
	done  func()
}

// Car is mutated only by its own worker. The dispatcher is the only
// enqueuer, so the queue has exactly one writer and one reader.
type Car struct {
	id     int
	jobs   chan job
	notify NotifyFunc

	// pending is only ever appended to or resliced, never mutated in
	// place, so published snapshots stay valid views of old data.
	mu        sync.RWMutex
	floor     int
	behaviour types.CarBehaviour
	pending   []int
}

func New(id, floor int) *Car {
	return &Car{
		id:        id,
		floor:     floor,
		behaviour: types.Idle,
		jobs:      make(chan job, config.QueueCap),
	}
}

// Start wires the notification callback and launches the worker. Must be
// called exactly once, before the first Enqueue.
func (c *Car) Start(notify NotifyFunc) {
	c.notify = notify
	go c.run()
}

// Enqueue appends a destination to the car's queue and returns without
// waiting for the walk. done is called after the destination has been fully
// served; it may be nil.
func (c *Car) Enqueue(floor int, done func()) {
	c.mu.Lock()
	c.pending = append(c.pending, floor)
	c.mu.Unlock()
	c.jobs <- job{floor: floor, done: done}
}

func (c *Car) ID() int {
	return c.id
}

// Snapshot returns a consistent point-in-time view of the car. Pending
// shares the queue's backing array, so callers that mutate it must
// isolate it first (the dispatcher deep-copies the fleet).
func (c *Car) Snapshot() types.CarSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := types.CarSnapshot{
		ID:        c.id,
		Floor:     c.floor,
		Behaviour: c.behaviour,
	}
	if len(c.pending) > 0 {
		snap.Pending = c.pending
	}
	return snap
}

func (c *Car) run() {
	for j := range c.jobs {
		c.serve(j)
	}
}

// serve walks the car to the job's floor one step at a time, emitting an
// update per step, then stops and settles back to Idle.
func (c *Car) serve(j job) {
	c.mu.RLock()
	floor := c.floor
	c.mu.RUnlock()

	slog.Debug("Serving destination", "car", c.id, "from", floor, "to", j.floor)

	switch {
	case j.floor > floor:
		c.transition(moveUp)
	case j.floor < floor:
		c.transition(moveDown)
	}

	for floor != j.floor {
		if j.floor > floor {
			floor++
		} else {
			floor--
		}
		c.mu.Lock()
		c.floor = floor
		b := c.behaviour
		c.mu.Unlock()
		c.emit(types.StateUpdate{Floor: floor, Behaviour: b})
	}

	c.transition(stop)
	c.mu.Lock()
	c.pending = c.pending[1:]
	c.mu.Unlock()

	slog.Debug("Arrived", "car", c.id, "floor", floor)
	c.emit(types.StateUpdate{Floor: floor, Behaviour: types.Idle})

	if j.done != nil {
		j.done()
	}
}

func (c *Car) transition(apply func(types.CarBehaviour) types.CarBehaviour) {
	c.mu.Lock()
	c.behaviour = apply(c.behaviour)
	c.mu.Unlock()
}

func (c *Car) emit(update types.StateUpdate) {
	if c.notify != nil {
		c.notify(update)
	}
}
