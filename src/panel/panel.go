// Package panel implements the floor panels: each one submits hall calls
// for its own floor and displays the car position it last observed.
package panel

import (
	"log/slog"
	"sync"

	"multilift/src/dispatcher"
	"multilift/src/types"
)

// Panel is a notification sink mounted at one floor.
type Panel struct {
	floor int
	disp  *dispatcher.Dispatcher

	mu            sync.Mutex
	displayFloor  int
	displayStatus types.CarBehaviour
}

func New(floor int, d *dispatcher.Dispatcher) *Panel {
	return &Panel{
		floor:        floor,
		disp:         d,
		displayFloor: floor,
	}
}

func (p *Panel) Floor() int {
	return p.floor
}

// RequestLift submits a hall call for this panel's floor.
func (p *Panel) RequestLift(dir types.Direction) error {
	slog.Info("Panel requesting lift", "panel", p.floor, "dir", dir)
	return p.disp.SubmitRequest(p.floor, dir)
}

// OnUpdate implements dispatcher.Sink. Updates arrive from car workers, so
// the display fields are guarded.
func (p *Panel) OnUpdate(floor int, behaviour types.CarBehaviour) {
	p.mu.Lock()
	p.displayFloor = floor
	p.displayStatus = behaviour
	p.mu.Unlock()
	slog.Debug("Panel updated", "panel", p.floor, "carFloor", floor, "state", behaviour)
}

// Display returns the car position and state the panel last observed.
func (p *Panel) Display() (int, types.CarBehaviour) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayFloor, p.displayStatus
}
