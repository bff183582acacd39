package sim

// Kind is the visual variant of an obstacle. It has no effect on gameplay.
type Kind int

const (
	KindCylinder Kind = iota
	KindSpotted
)

// Obstacle is a single hazard on the track.
type Obstacle struct {
	ID   uint64  `json:"id"`
	Z    float64 `json:"z"`
	Lane Lane    `json:"lane"`
	Kind Kind    `json:"kind"`
}

// StreamConfig tunes obstacle generation.
type StreamConfig struct {
	MinGap       float64 `json:"min_gap"`
	MaxGap       float64 `json:"max_gap"`
	ViewDistance float64 `json:"view_distance"`
	CullDistance float64 `json:"cull_distance"`
	Kinds        int     `json:"kinds"`
}

// Stream owns the obstacle window: obstacles ordered by Z that are ahead of,
// or at most CullDistance behind, the player.
type Stream struct {
	cfg        StreamConfig
	window     []Obstacle
	lastSpawnZ float64
	nextID     uint64
}

// NewStream creates an empty stream.
func NewStream(cfg StreamConfig) *Stream {
	return &Stream{
		cfg:    cfg,
		window: make([]Obstacle, 0, 32),
	}
}

// Reset clears the window and moves the spawn cursor. IDs keep counting so
// they stay unique for the life of the stream.
func (s *Stream) Reset(cursor float64) {
	s.window = s.window[:0]
	s.lastSpawnZ = cursor
}

// Cursor returns the Z of the last spawned obstacle (or the initial cursor).
func (s *Stream) Cursor() float64 {
	return s.lastSpawnZ
}

// Window returns the active obstacles ordered by Z. The slice is owned by the
// stream and is only valid until the next Spawn, Cull or Reset.
func (s *Stream) Window() []Obstacle {
	return s.window
}

// Spawn fills the track up to ViewDistance ahead of playerZ. Each obstacle is
// placed a uniform gap in [MinGap, MaxGap) beyond the previous one, so several
// may appear in a single call at high speed. Returns the number spawned.
func (s *Stream) Spawn(playerZ float64, rng Source) int {
	spawned := 0
	for s.lastSpawnZ < playerZ+s.cfg.ViewDistance {
		gap := s.cfg.MinGap + rng.Float64()*(s.cfg.MaxGap-s.cfg.MinGap)
		z := s.lastSpawnZ + gap

		o := Obstacle{
			ID:   s.nextID,
			Z:    z,
			Lane: Lane(rng.Intn(LaneCount)),
			Kind: Kind(rng.Intn(s.cfg.Kinds)),
		}
		s.nextID++
		s.window = append(s.window, o)
		s.lastSpawnZ = z
		spawned++
	}
	return spawned
}

// Cull drops every obstacle more than CullDistance behind playerZ. The window
// is sorted, so this only walks the removed prefix. Returns the number removed.
func (s *Stream) Cull(playerZ float64) int {
	limit := playerZ - s.cfg.CullDistance
	k := 0
	for k < len(s.window) && s.window[k].Z < limit {
		k++
	}
	if k > 0 {
		s.window = s.window[k:]
	}
	return k
}
