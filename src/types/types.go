package types

// Direction of a hall call.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	}
	return "Unknown"
}

// CarBehaviour is the motion state of a single car. The variant set is
// closed, so transitions are plain switches instead of state objects.
type CarBehaviour int

const (
	Idle CarBehaviour = iota
	MovingUp
	MovingDown
)

func (b CarBehaviour) String() string {
	switch b {
	case Idle:
		return "Idle"
	case MovingUp:
		return "MovingUp"
	case MovingDown:
		return "MovingDown"
	}
	return "Unknown"
}

// CarSnapshot is the published point-in-time view of one car. Pending
// holds the queued destination floors in FIFO order. Strategies read
// snapshots and never touch live cars.
type CarSnapshot struct {
	ID        int
	Floor     int
	Behaviour CarBehaviour
	Pending   []int
}

// StateUpdate is broadcast to notification sinks on every floor step and
// on every stop. Sinks observe the value at emission time only; updates are
// never queued or replayed.
type StateUpdate struct {
	Floor     int
	Behaviour CarBehaviour
}
