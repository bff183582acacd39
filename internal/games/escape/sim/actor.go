package sim

import "github.com/vovakirdan/shadow-escape/internal/core"

// Actor is a runner on the track: the player or the pursuing shadow.
type Actor struct {
	Z    float64 `json:"z"`
	Lane Lane    `json:"lane"`

	// RenderOffset eases toward Lane.Offset() for presentation only.
	// Collision uses Lane, never this value.
	RenderOffset float64 `json:"render_offset"`
}

func newActor(z float64, lane Lane) Actor {
	return Actor{Z: z, Lane: lane, RenderOffset: lane.Offset()}
}

func (a *Actor) advance(speed, dt float64) {
	a.Z += speed * dt
}

func (a *Actor) ease(rate, dt float64) {
	a.RenderOffset = core.Lerp(a.RenderOffset, a.Lane.Offset(), rate*dt)
}
