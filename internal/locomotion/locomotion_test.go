package locomotion

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Versifine/strider/internal/event"
	"github.com/Versifine/strider/internal/vmath"
)

const tick = float32(1.0 / 60.0)

func approxEqual(t *testing.T, got, want, tol float32, field string) {
	t.Helper()
	if math32.Abs(got-want) > tol {
		t.Fatalf("%s = %.6f, want %.6f (tol=%.6f)", field, got, want, tol)
	}
}

// mockMover scripts the capsule-mover primitive.
type mockMover struct {
	pos          mgl32.Vec3
	height       float32
	radius       float32
	centerOffset float32
	enabled      bool

	grounded    bool
	probeHit    bool
	probeNormal mgl32.Vec3
	clearance   bool

	moves       []mgl32.Vec3
	enableCalls []bool
}

func newMockMover() *mockMover {
	return &mockMover{
		height:      1.8,
		radius:      0.3,
		enabled:     true,
		probeNormal: vmath.Up,
		clearance:   true,
	}
}

func (m *mockMover) Move(delta mgl32.Vec3) {
	if !m.enabled {
		return
	}
	m.moves = append(m.moves, delta)
	m.pos = m.pos.Add(delta)
}

func (m *mockMover) GroundedAfterMove() bool { return m.grounded }

func (m *mockMover) Position() mgl32.Vec3 { return m.pos }

func (m *mockMover) SetPosition(pos mgl32.Vec3) { m.pos = pos }

func (m *mockMover) Height() float32 { return m.height }

func (m *mockMover) SetHeight(h float32) { m.height = h }

func (m *mockMover) CenterOffset() float32 { return m.centerOffset }

func (m *mockMover) SetCenterOffset(off float32) { m.centerOffset = off }

func (m *mockMover) Radius() float32 { return m.radius }

func (m *mockMover) Enabled() bool { return m.enabled }

func (m *mockMover) SetEnabled(enabled bool) {
	m.enabled = enabled
	m.enableCalls = append(m.enableCalls, enabled)
}

func (m *mockMover) ProbeGround(maxDist float32) (mgl32.Vec3, bool) {
	return m.probeNormal, m.probeHit
}

func (m *mockMover) HasClearance(height float32) bool { return m.clearance }

// scriptedInput returns queued snapshots, then repeats the last one.
type scriptedInput struct {
	snaps []Snapshot
	i     int
}

func (s *scriptedInput) Snapshot() Snapshot {
	if len(s.snaps) == 0 {
		return Snapshot{}
	}
	if s.i >= len(s.snaps) {
		return s.snaps[len(s.snaps)-1]
	}
	snap := s.snaps[s.i]
	s.i++
	return snap
}

// fixedRig is a camera with constant directions.
type fixedRig struct {
	forward mgl32.Vec3
	right   mgl32.Vec3
	aiming  bool
}

func (r *fixedRig) Forward() mgl32.Vec3 { return r.forward }

func (r *fixedRig) Right() mgl32.Vec3 { return r.right }

func (r *fixedRig) Aiming() bool { return r.aiming }

// mockVaultable scripts the obstacle descriptor.
type mockVaultable struct {
	height   float32
	duration float32
	landing  mgl32.Vec3
	dir      mgl32.Vec3
	accept   bool
}

func (v *mockVaultable) ObstacleHeight() float32 { return v.height }

func (v *mockVaultable) Duration() float32 { return v.duration }

func (v *mockVaultable) LandingPosition(from mgl32.Vec3) mgl32.Vec3 { return v.landing }

func (v *mockVaultable) VaultDirection(from mgl32.Vec3) mgl32.Vec3 { return v.dir }

func (v *mockVaultable) CanVaultFrom(pos, forward mgl32.Vec3) bool { return v.accept }

func testConfig() Config {
	return DefaultConfig()
}

func countEvents(bus *event.Bus, kind event.Kind) *int {
	n := new(int)
	bus.Subscribe(kind, func(any) { *n++ })
	return n
}
