package status

import (
	"sync/atomic"

	"github.com/samber/lo"
)

// Flag is a bit position in a Set
type Flag uint32

const (
	Started Flag = iota
	Serving
	Publishing
	Stopped
)

var flagNames = map[Flag]string{
	Started:    "started",
	Serving:    "serving",
	Publishing: "publishing",
	Stopped:    "stopped",
}

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return "unknown"
}

// Set holds node lifecycle flags, safe for concurrent use
type Set struct {
	bits atomic.Uint32
}

func (s *Set) On(flags ...Flag) {
	for _, f := range flags {
		s.TurnOn(f)
	}
}

// TurnOn sets f and reports whether it was off before
func (s *Set) TurnOn(f Flag) bool {
	for {
		old := s.bits.Load()
		if old&(1<<f) != 0 {
			return false
		}
		if s.bits.CompareAndSwap(old, old|(1<<f)) {
			return true
		}
	}
}

func (s *Set) Off(flags ...Flag) {
	for _, f := range flags {
		for {
			old := s.bits.Load()
			if s.bits.CompareAndSwap(old, old&^(1<<f)) {
				break
			}
		}
	}
}

func (s *Set) Has(f Flag) bool {
	return s.bits.Load()&(1<<f) != 0
}

func (s *Set) Any(flags ...Flag) bool {
	return lo.SomeBy(flags, s.Has)
}

// Names lists the flags currently on
func (s *Set) Names() []string {
	on := lo.Filter([]Flag{Started, Serving, Publishing, Stopped}, func(f Flag, _ int) bool {
		return s.Has(f)
	})
	return lo.Map(on, func(f Flag, _ int) string {
		return f.String()
	})
}

func (s *Set) Reset() {
	s.bits.Store(0)
}
