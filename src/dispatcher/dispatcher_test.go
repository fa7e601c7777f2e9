package dispatcher

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"multilift/src/car"
	"multilift/src/config"
	"multilift/src/types"
)

func testConfig() config.Config {
	return config.Config{NumFloors: 9, NumCars: 2, BottomFloor: 1}
}

type orderedSink struct {
	name string
	mu   *sync.Mutex
	log  *[]string
}

func (s orderedSink) OnUpdate(floor int, behaviour types.CarBehaviour) {
	s.mu.Lock()
	*s.log = append(*s.log, s.name)
	s.mu.Unlock()
}

func TestSubmitRequest_EmptyFleetIsSilentNoop(t *testing.T) {
	d := New(testConfig())
	if err := d.SubmitRequest(3, types.Up); err != nil {
		t.Errorf("Empty fleet should drop the request silently, got %v", err)
	}
}

func TestSubmitRequest_InvalidInputFailsFast(t *testing.T) {
	d := New(testConfig())
	d.AddCar(car.New(1, 1))

	cases := []struct {
		name  string
		floor int
		dir   types.Direction
	}{
		{"floor below range", 0, types.Up},
		{"floor above range", 42, types.Down},
		{"unknown direction", 3, types.Direction(7)},
	}

	for _, c := range cases {
		err := d.SubmitRequest(c.floor, c.dir)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("%s: expected ErrInvalidRequest, got %v", c.name, err)
		}
	}
}

// Mirrors the two-car walkthrough: a call at floor 3 going down picks the
// closer idle car, which walks 2->3 and settles idle; the next call at
// floor 1 going up picks the untouched car at zero distance.
func TestSubmitRequest_TwoCarScenario(t *testing.T) {
	d := New(testConfig())
	car1 := car.New(1, 1)
	car2 := car.New(2, 2)
	d.AddCar(car1)
	d.AddCar(car2)

	if err := d.SubmitRequest(3, types.Down); err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}
	d.Wait()

	snap2 := car2.Snapshot()
	want2 := types.CarSnapshot{ID: 2, Floor: 3, Behaviour: types.Idle}
	if !reflect.DeepEqual(snap2, want2) {
		t.Errorf("Car 2 after first call.\nExpected: %+v\nWas: %+v", want2, snap2)
	}
	if snap1 := car1.Snapshot(); snap1.Floor != 1 {
		t.Errorf("Car 1 should not have moved, is at floor %d", snap1.Floor)
	}

	if err := d.SubmitRequest(1, types.Up); err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}
	d.Wait()

	snap1 := car1.Snapshot()
	want1 := types.CarSnapshot{ID: 1, Floor: 1, Behaviour: types.Idle}
	if !reflect.DeepEqual(snap1, want1) {
		t.Errorf("Car 1 after zero-distance call.\nExpected: %+v\nWas: %+v", want1, snap1)
	}
	if snap2 := car2.Snapshot(); snap2.Floor != 3 {
		t.Errorf("Car 2 should have stayed at floor 3, is at %d", snap2.Floor)
	}
}

func TestBroadcast_SinksNotifiedInRegistrationOrder(t *testing.T) {
	d := New(testConfig())
	d.AddCar(car.New(1, 1))

	var mu sync.Mutex
	var log []string
	d.RegisterSink(orderedSink{name: "first", mu: &mu, log: &log})
	d.RegisterSink(orderedSink{name: "second", mu: &mu, log: &log})

	if err := d.SubmitRequest(2, types.Up); err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}
	d.Wait()

	// Two events (step to floor 2, stop), each fanned out in order.
	want := []string{"first", "second", "first", "second"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("Sink order not as expected.\nExpected: %v\nWas: %v", want, log)
	}
}

func TestSetStrategy_TakesEffectOnNextSubmit(t *testing.T) {
	d := New(testConfig())
	car1 := car.New(1, 1)
	car2 := car.New(2, 2)
	d.AddCar(car1)
	d.AddCar(car2)

	// NearestCar would pick car 2 for this call; RoundRobin starts at the
	// first car in the fleet.
	d.SetStrategy(NewRoundRobin())

	if err := d.SubmitRequest(3, types.Down); err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}
	d.Wait()

	if snap := car1.Snapshot(); snap.Floor != 3 {
		t.Errorf("RoundRobin should have sent car 1, it is at floor %d", snap.Floor)
	}
	if snap := car2.Snapshot(); snap.Floor != 2 {
		t.Errorf("Car 2 should not have moved, is at floor %d", snap.Floor)
	}
}

func TestSnapshotFleet_IsolatedFromLiveCars(t *testing.T) {
	// Workers are not started, so the queued destinations stay pending.
	car1 := car.New(1, 4)
	car2 := car.New(2, 6)
	car1.Enqueue(8, nil)
	car1.Enqueue(2, nil)

	fleet := snapshotFleet([]*car.Car{car1, car2})
	fleet[0].Floor = 99
	fleet[0].Pending[0] = 99

	snap := car1.Snapshot()
	if snap.Floor != 4 {
		t.Errorf("Mutating the snapshot leaked into the live car: %+v", snap)
	}
	if !reflect.DeepEqual(snap.Pending, []int{8, 2}) {
		t.Errorf("Mutating the snapshot queue leaked into the live car: %+v", snap.Pending)
	}

	want := types.CarSnapshot{ID: 2, Floor: 6, Behaviour: types.Idle}
	if !reflect.DeepEqual(fleet[1], want) {
		t.Errorf("Snapshot content not as expected: %+v", fleet[1])
	}
}
