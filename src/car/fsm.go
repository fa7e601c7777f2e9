// Motion state transitions for a single car.
package car

import "multilift/src/types"

// moveUp requests upward motion. Already moving up keeps going, so the
// transition never resets in-flight motion.
func moveUp(b types.CarBehaviour) types.CarBehaviour {
	switch b {
	case types.Idle, types.MovingDown:
		return types.MovingUp
	}
	return b
}

// moveDown requests downward motion, symmetric to moveUp.
func moveDown(b types.CarBehaviour) types.CarBehaviour {
	switch b {
	case types.Idle, types.MovingUp:
		return types.MovingDown
	}
	return b
}

// stop halts motion. Stopping an idle car is a no-op.
func stop(b types.CarBehaviour) types.CarBehaviour {
	switch b {
	case types.MovingUp, types.MovingDown:
		return types.Idle
	}
	return b
}
