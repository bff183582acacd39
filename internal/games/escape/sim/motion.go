package sim

// laneHopper drives the shadow's lane changes during the countdown: every time
// the accumulated time exceeds interval it hops one lane left or right.
type laneHopper struct {
	interval float64
	timer    float64
}

func (h *laneHopper) reset() {
	h.timer = 0
}

// step returns true when the actor changed lane.
func (h *laneHopper) step(a *Actor, dt float64, rng Source) bool {
	h.timer += dt
	if h.timer <= h.interval {
		return false
	}
	h.timer = 0

	move := -1
	if rng.Float64() > 0.5 {
		move = 1
	}
	before := a.Lane
	a.Lane = a.Lane.Shift(move)
	return a.Lane != before
}

// stepCountdown moves only the shadow; the player waits at the start line.
func (s *Session) stepCountdown(dt float64) {
	s.pursuer.advance(s.cfg.PursuerSpeed*s.speed, dt)
	s.hopper.step(&s.pursuer, dt, s.rng)
	s.easeActors(dt)

	s.countdown -= dt
	if s.countdown <= countdownEpsilon {
		s.countdown = 0
		s.enterChasing()
	}
}

// stepChasing ramps the speed multiplier, moves both runners, persists a
// beaten high score, streams obstacles and checks for a crash.
func (s *Session) stepChasing(dt float64) {
	s.elapsed += dt
	s.speed += s.cfg.RampRate * dt

	s.player.advance(s.cfg.PlayerSpeed*s.speed, dt)
	s.pursuer.advance(s.cfg.PursuerSpeed*s.speed, dt)
	s.easeActors(dt)
	s.score.Observe(s.player.Z)
	s.score.Reconcile()

	s.stream.Spawn(s.player.Z, s.rng)
	s.stream.Cull(s.player.Z)

	if hit, ok := Detect(s.stream.Window(), s.player, s.cfg.ZThreshold); ok {
		s.logger.Debug("collision", "obstacle", hit.ID, "z", hit.Z, "lane", int(hit.Lane), "player_z", s.player.Z)
		s.enterLost()
	}
}

func (s *Session) easeActors(dt float64) {
	s.player.ease(s.cfg.LaneEaseRate, dt)
	s.pursuer.ease(s.cfg.LaneEaseRate, dt)
}
