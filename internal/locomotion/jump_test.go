package locomotion

import (
	"testing"

	"github.com/Versifine/strider/internal/event"
)

type jumpFixture struct {
	cfg    Config
	mover  *mockMover
	ground *GroundChecker
	jump   *JumpController
	bus    *event.Bus
	now    float32
}

func newJumpFixture() *jumpFixture {
	f := &jumpFixture{cfg: testConfig(), mover: newMockMover(), bus: event.NewBus()}
	f.ground = NewGroundChecker(&f.cfg, f.mover)
	f.jump = NewJumpController(&f.cfg, f.ground, f.bus)
	return f
}

// step advances ground state and the jump controller by one tick.
func (f *jumpFixture) step(in Snapshot) {
	f.now += tick
	f.ground.Update(f.now, tick, f.jump.Velocity())
	f.jump.Update(tick, f.now, in)
}

func TestJumpFiresWhenGrounded(t *testing.T) {
	f := newJumpFixture()
	f.mover.grounded = true
	jumps := countEvents(f.bus, event.Jump)

	f.step(Snapshot{})
	f.step(Snapshot{JumpPressed: true, JumpHeld: true})

	if !f.jump.IsJumping() {
		t.Fatal("grounded jump press should start a jump")
	}
	if f.jump.Velocity() <= 0 {
		t.Fatalf("velocity after impulse = %.2f, want positive", f.jump.Velocity())
	}
	if *jumps != 1 {
		t.Fatalf("jump events = %d, want 1", *jumps)
	}
}

func TestJumpBufferedPressFiresOnLanding(t *testing.T) {
	f := newJumpFixture()
	jumps := countEvents(f.bus, event.Jump)

	// Falling, out of coyote range, press too early.
	f.step(Snapshot{JumpPressed: true})
	if *jumps != 0 {
		t.Fatal("airborne press without coyote eligibility must not fire")
	}
	f.step(Snapshot{})
	f.step(Snapshot{})

	// Land while the buffer is still live.
	f.mover.grounded = true
	f.step(Snapshot{})
	if *jumps != 1 {
		t.Fatalf("buffered press should fire on the landing tick, events = %d", *jumps)
	}
	if f.jump.Velocity() <= 0 {
		t.Fatalf("velocity after buffered jump = %.2f, want positive", f.jump.Velocity())
	}
}

func TestJumpBufferExpires(t *testing.T) {
	f := newJumpFixture()
	jumps := countEvents(f.bus, event.Jump)

	f.step(Snapshot{JumpPressed: true})
	for i := 0; float32(i)*tick < f.cfg.JumpBufferTime+0.05; i++ {
		f.step(Snapshot{})
	}
	f.mover.grounded = true
	f.step(Snapshot{})

	if *jumps != 0 {
		t.Fatal("stale buffered press must not fire on landing")
	}
}

func TestCoyoteJumpFiresOnceAfterLedge(t *testing.T) {
	f := newJumpFixture()
	f.mover.grounded = true
	f.step(Snapshot{})

	f.mover.grounded = false
	f.step(Snapshot{})

	jumps := countEvents(f.bus, event.Jump)
	f.bus.Subscribe(event.Jump, func(evt any) {
		if !evt.(JumpEvent).Coyote {
			t.Error("post-ledge jump should carry the coyote flag")
		}
	})

	f.step(Snapshot{JumpPressed: true})
	if *jumps != 1 {
		t.Fatalf("coyote jump events = %d, want 1", *jumps)
	}

	// A second press in the air must not double jump.
	f.step(Snapshot{JumpPressed: true})
	for i := 0; i < 5; i++ {
		f.step(Snapshot{})
	}
	if *jumps != 1 {
		t.Fatalf("jump events after second airborne press = %d, want 1", *jumps)
	}
}

func TestJumpPressWhileRisingDoesNotRefire(t *testing.T) {
	f := newJumpFixture()
	f.mover.grounded = true
	f.step(Snapshot{})
	jumps := countEvents(f.bus, event.Jump)

	f.step(Snapshot{JumpPressed: true, JumpHeld: true})
	if *jumps != 1 {
		t.Fatalf("jump events = %d, want 1", *jumps)
	}

	// One impulse tick lifts the feet less than the probe distance, so the
	// downward probe would still hit the floor here.
	f.mover.grounded = false
	f.mover.probeHit = true
	f.step(Snapshot{JumpHeld: true})
	if f.ground.Grounded() {
		t.Fatal("rising capsule must not re-ground off the probe")
	}

	f.step(Snapshot{JumpPressed: true, JumpHeld: true})
	for i := 0; i < 5; i++ {
		f.step(Snapshot{JumpHeld: true})
	}
	if *jumps != 1 {
		t.Fatalf("jump events after a mid-air press = %d, want 1", *jumps)
	}
	if f.jump.Velocity() >= f.cfg.JumpForce {
		t.Fatalf("velocity = %.2f, a second impulse fired mid-air", f.jump.Velocity())
	}
}

func TestCoyoteWindowExpiry(t *testing.T) {
	f := newJumpFixture()
	f.mover.grounded = true
	f.step(Snapshot{})

	f.mover.grounded = false
	for i := 0; float32(i)*tick < f.cfg.CoyoteTime+0.05; i++ {
		f.step(Snapshot{})
	}

	jumps := countEvents(f.bus, event.Jump)
	f.step(Snapshot{JumpPressed: true})
	if *jumps != 0 {
		t.Fatal("press past the coyote window must not fire")
	}
}

func TestGroundStickVelocity(t *testing.T) {
	f := newJumpFixture()

	// Build up downward velocity, then land.
	for i := 0; i < 30; i++ {
		f.step(Snapshot{})
	}
	if f.jump.Velocity() >= 0 {
		t.Fatalf("airborne velocity = %.2f, want negative", f.jump.Velocity())
	}

	f.mover.grounded = true
	f.step(Snapshot{})
	approxEqual(t, f.jump.Velocity(), groundStickVelocity, 1e-5, "grounded velocity")

	// The stick value holds steady instead of compounding.
	f.step(Snapshot{})
	approxEqual(t, f.jump.Velocity(), groundStickVelocity, 1e-5, "grounded velocity next tick")
}

func TestTerminalVelocityClamp(t *testing.T) {
	f := newJumpFixture()
	for i := 0; i < 600; i++ {
		f.step(Snapshot{})
	}
	approxEqual(t, f.jump.Velocity(), -f.cfg.TerminalVelocity, 1e-4, "fall velocity")
}

func TestReleasedJumpRisesLess(t *testing.T) {
	held := newJumpFixture()
	released := newJumpFixture()

	for _, f := range []*jumpFixture{held, released} {
		f.mover.grounded = true
		f.step(Snapshot{})
		f.step(Snapshot{JumpPressed: true, JumpHeld: true})
		f.mover.grounded = false
	}

	for i := 0; i < 10; i++ {
		held.step(Snapshot{JumpHeld: true})
		released.step(Snapshot{})
	}

	if released.jump.Velocity() >= held.jump.Velocity() {
		t.Fatalf("released velocity %.3f should decay faster than held %.3f",
			released.jump.Velocity(), held.jump.Velocity())
	}
}

func TestResetVertical(t *testing.T) {
	f := newJumpFixture()
	f.mover.grounded = true
	f.step(Snapshot{})
	f.step(Snapshot{JumpPressed: true, JumpHeld: true})

	f.jump.ResetVertical()
	if f.jump.Velocity() != 0 || f.jump.IsJumping() {
		t.Fatal("reset must zero velocity and clear the jumping state")
	}
}
