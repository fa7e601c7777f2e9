// Package dispatcher owns the fleet: it routes hall calls to cars through a
// pluggable selection strategy and fans car state updates out to sinks.
package dispatcher

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tiendc/go-deepcopy"

	"multilift/src/car"
	"multilift/src/config"
	"multilift/src/types"
)

// ErrInvalidRequest is returned for out-of-range floors and unknown
// directions. No-op conditions (empty fleet, zero-distance calls) are not
// errors.
var ErrInvalidRequest = errors.New("invalid request")

// Sink receives every car state update, synchronously and in registration
// order. Implementations must be safe for calls from multiple car workers.
type Sink interface {
	OnUpdate(floor int, behaviour types.CarBehaviour)
}

type Dispatcher struct {
	cfg config.Config

	mu       sync.RWMutex
	cars     []*car.Car
	sinks    []Sink
	strategy Strategy

	wg sync.WaitGroup
}

func New(cfg config.Config) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		strategy: NearestCar{},
	}
}

// AddCar appends a car to the fleet and starts its worker. The fleet is
// append-only; cars are never removed.
func (d *Dispatcher) AddCar(c *car.Car) {
	d.mu.Lock()
	d.cars = append(d.cars, c)
	d.mu.Unlock()
	c.Start(d.broadcast)
	slog.Debug("Car added to fleet", "car", c.ID())
}

// RegisterSink appends a notification sink. Sinks are notified in
// registration order and never removed.
func (d *Dispatcher) RegisterSink(s Sink) {
	d.mu.Lock()
	d.sinks = append(d.sinks, s)
	d.mu.Unlock()
}

// SetStrategy replaces the active selection strategy. Takes effect on the
// next SubmitRequest.
func (d *Dispatcher) SetStrategy(s Strategy) {
	d.mu.Lock()
	d.strategy = s
	d.mu.Unlock()
}

// SubmitRequest validates a hall call, picks a car through the active
// strategy and forwards the floor to that car's queue. A request on an
// empty fleet is dropped silently.
func (d *Dispatcher) SubmitRequest(floor int, dir types.Direction) error {
	if floor < d.cfg.BottomFloor || floor > d.cfg.TopFloor() {
		return fmt.Errorf("%w: floor %d outside [%d, %d]",
			ErrInvalidRequest, floor, d.cfg.BottomFloor, d.cfg.TopFloor())
	}
	if dir != types.Up && dir != types.Down {
		return fmt.Errorf("%w: unknown direction %d", ErrInvalidRequest, int(dir))
	}

	d.mu.RLock()
	cars := d.cars
	strategy := d.strategy
	d.mu.RUnlock()

	if len(cars) == 0 {
		slog.Debug("Dropping request, fleet is empty", "floor", floor, "dir", dir)
		return nil
	}

	id, ok := strategy.SelectCar(floor, dir, snapshotFleet(cars))
	if !ok {
		return nil
	}

	for _, c := range cars {
		if c.ID() == id {
			slog.Info("Request assigned", "floor", floor, "dir", dir, "car", id)
			d.wg.Add(1)
			c.Enqueue(floor, d.wg.Done)
			return nil
		}
	}

	slog.Error("Strategy picked unknown car", "car", id, "floor", floor)
	return nil
}

// Wait blocks until every accepted request has been fully served.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// snapshotFleet deep-copies the published car states so strategies can
// never alias live fleet data. Each snapshot's Pending shares the car's
// queue backing array until the copy.
func snapshotFleet(cars []*car.Car) []types.CarSnapshot {
	snaps := make([]types.CarSnapshot, 0, len(cars))
	for _, c := range cars {
		snaps = append(snaps, c.Snapshot())
	}

	var fleet []types.CarSnapshot
	if err := deepcopy.Copy(&fleet, &snaps); err != nil {
		panic(err)
	}
	return fleet
}

// broadcast is invoked by car workers on every state-affecting event and
// forwards it to every sink in registration order.
func (d *Dispatcher) broadcast(update types.StateUpdate) {
	d.mu.RLock()
	sinks := make([]Sink, len(d.sinks))
	copy(sinks, d.sinks)
	d.mu.RUnlock()

	for _, s := range sinks {
		s.OnUpdate(update.Floor, update.Behaviour)
	}
}
