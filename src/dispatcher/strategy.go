package dispatcher

import (
	"sync"

	"multilift/src/types"
)

// Strategy picks the car that should serve a hall call. Implementations
// must be side-effect-free over the fleet snapshot. ok is false only when
// the fleet is empty.
type Strategy interface {
	SelectCar(floor int, dir types.Direction, fleet []types.CarSnapshot) (id int, ok bool)
}

// NearestCar prefers the closest idle car, or a car already moving in the
// requested direction that has not yet passed the call floor. The first car
// in the fleet seeds the candidate and stays the fallback when nothing
// better qualifies, so a car moving the wrong way can still be chosen.
type NearestCar struct{}

func (NearestCar) SelectCar(floor int, dir types.Direction, fleet []types.CarSnapshot) (int, bool) {
	if len(fleet) == 0 {
		return 0, false
	}

	best := fleet[0]
	bestDist := abs(floor - best.Floor)

	for _, snap := range fleet[1:] {
		dist := abs(floor - snap.Floor)

		switch {
		case snap.Behaviour == types.Idle && dist < bestDist:
		case dir == types.Up && snap.Behaviour == types.MovingUp &&
			snap.Floor < floor && dist < bestDist:
		case dir == types.Down && snap.Behaviour == types.MovingDown &&
			snap.Floor > floor && dist < bestDist:
		default:
			continue
		}

		best = snap
		bestDist = dist
	}

	return best.ID, true
}

// LeastBusy picks the car with the fewest queued destinations, breaking
// ties by distance to the call floor and then by fleet order.
type LeastBusy struct{}

func (LeastBusy) SelectCar(floor int, dir types.Direction, fleet []types.CarSnapshot) (int, bool) {
	if len(fleet) == 0 {
		return 0, false
	}

	best := fleet[0]
	bestDist := abs(floor - best.Floor)

	for _, snap := range fleet[1:] {
		dist := abs(floor - snap.Floor)
		if len(snap.Pending) < len(best.Pending) ||
			(len(snap.Pending) == len(best.Pending) && dist < bestDist) {
			best = snap
			bestDist = dist
		}
	}

	return best.ID, true
}

// RoundRobin cycles through the fleet in order, ignoring position and
// motion state entirely.
type RoundRobin struct {
	mu   sync.Mutex
	next int
}

func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

func (r *RoundRobin) SelectCar(floor int, dir types.Direction, fleet []types.CarSnapshot) (int, bool) {
	if len(fleet) == 0 {
		return 0, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := fleet[r.next%len(fleet)]
	r.next++
	return snap.ID, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
