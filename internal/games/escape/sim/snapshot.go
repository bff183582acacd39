package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot is a read-only copy of the session state handed to renderers.
type Snapshot struct {
	Tick      uint64     `json:"tick"`
	Phase     Phase      `json:"phase"`
	Score     Score      `json:"score"`
	Player    Actor      `json:"player"`
	Pursuer   Actor      `json:"pursuer"`
	Obstacles []Obstacle `json:"obstacles"`

	Countdown       float64 `json:"countdown"`
	SpeedMultiplier float64 `json:"speed_multiplier"`
	Elapsed         float64 `json:"elapsed"`
}

func (s *Session) snapshot() Snapshot {
	window := s.stream.Window()
	obstacles := make([]Obstacle, len(window))
	copy(obstacles, window)

	return Snapshot{
		Tick:            s.ticks,
		Phase:           s.phase,
		Score:           s.score.Score(),
		Player:          s.player,
		Pursuer:         s.pursuer,
		Obstacles:       obstacles,
		Countdown:       s.countdown,
		SpeedMultiplier: s.speed,
		Elapsed:         s.elapsed,
	}
}

// CountdownSeconds returns the whole seconds left on the countdown, rounded up.
func (s Snapshot) CountdownSeconds() int {
	return int(math.Ceil(s.Countdown))
}

// Digest hashes every logical field of the snapshot. Two sessions fed the same
// seed, config and inputs produce the same digest sequence.
func (s Snapshot) Digest() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	u := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	f := func(v float64) { u(math.Float64bits(v)) }
	actor := func(a Actor) {
		f(a.Z)
		u(uint64(a.Lane))
		f(a.RenderOffset)
	}

	u(s.Tick)
	u(uint64(s.Phase))
	u(uint64(s.Score.Current))
	u(uint64(s.Score.High))
	actor(s.Player)
	actor(s.Pursuer)
	f(s.Countdown)
	f(s.SpeedMultiplier)
	f(s.Elapsed)
	u(uint64(len(s.Obstacles)))
	for _, o := range s.Obstacles {
		u(o.ID)
		f(o.Z)
		u(uint64(o.Lane))
		u(uint64(o.Kind))
	}
	return h.Sum64()
}
