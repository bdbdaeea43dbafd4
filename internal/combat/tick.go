package combat

// Advance ages every clock by dt seconds. It only decays state: no cast
// resolves here and no events are emitted. The order is fixed because the
// phases that follow in the same tick (cast completion, intent resolution)
// read the freshly aged values.
//
// A dt of zero changes nothing, so re-running the driver within a tick is
// harmless.
func (s *State) Advance(dt float64) {
	if dt <= 0 {
		return
	}

	s.GCDRemaining = floorZero(s.GCDRemaining - dt)

	if s.Cast != nil {
		s.Cast.Remaining = floorZero(s.Cast.Remaining - dt)
	}

	for id, cd := range s.Cooldowns {
		s.Cooldowns[id] = floorZero(cd - dt)
	}

	if s.Buffer != nil {
		s.Buffer.Remaining -= dt
		if s.Buffer.Remaining <= 0 {
			s.Buffer = nil
		}
	}

	s.DebuffRemaining = floorZero(s.DebuffRemaining - dt)
	s.HUDAlertRemaining = floorZero(s.HUDAlertRemaining - dt)
	s.AnimationLockRemaining = floorZero(s.AnimationLockRemaining - dt)
	s.SwiftcastRemaining = floorZero(s.SwiftcastRemaining - dt)
	s.RagingRemaining = floorZero(s.RagingRemaining - dt)
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
