package world

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Zone is an axis-aligned trigger volume with an attached payload, typically
// a vaultable obstacle descriptor.
type Zone struct {
	ID      string
	Min     mgl32.Vec3
	Max     mgl32.Vec3
	Payload any
}

// Overlaps reports whether the zone intersects the box [min, max].
func (z *Zone) Overlaps(min, max mgl32.Vec3) bool {
	if z == nil {
		return false
	}
	return z.Min.X() < max.X() && z.Max.X() > min.X() &&
		z.Min.Y() < max.Y() && z.Max.Y() > min.Y() &&
		z.Min.Z() < max.Z() && z.Max.Z() > min.Z()
}

// ZoneSet is a registry of trigger zones. Iteration follows insertion order
// so overlap resolution is deterministic when zones overlap each other.
type ZoneSet struct {
	zones *orderedmap.OrderedMap[string, *Zone]
}

func NewZoneSet() *ZoneSet {
	return &ZoneSet{zones: orderedmap.NewOrderedMap[string, *Zone]()}
}

func (s *ZoneSet) Add(z *Zone) {
	if s == nil || z == nil || z.ID == "" {
		return
	}
	s.zones.Set(z.ID, z)
}

func (s *ZoneSet) Remove(id string) {
	if s == nil {
		return
	}
	s.zones.Delete(id)
}

func (s *ZoneSet) Len() int {
	if s == nil {
		return 0
	}
	return s.zones.Len()
}

// FirstOverlapping returns the earliest-registered zone intersecting the box
// [min, max], or nil when none does.
func (s *ZoneSet) FirstOverlapping(min, max mgl32.Vec3) *Zone {
	if s == nil {
		return nil
	}
	for el := s.zones.Front(); el != nil; el = el.Next() {
		if el.Value.Overlaps(min, max) {
			return el.Value
		}
	}
	return nil
}
