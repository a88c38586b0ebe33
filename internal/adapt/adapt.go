// Package adapt implements use-dependent adaptation: tracts do not learn,
// they remodel. Conductivity improves with use (myelination), jitter falls
// with practice, strength grows under sustained exertion; idle tracts
// demyelinate, lose precision and atrophy. Fatigue accrues with use and
// recovers at rest, both modulated by endurance.
//
// Adaptation is driven purely by the tract's own output activity and its
// rolling density. All rate arithmetic is saturating; properties never
// wrap past 0 or 255.
package adapt

import (
	"math"

	"fibertract/internal/bundle"
	"fibertract/internal/signal"
	"fibertract/internal/tract"
)

// Config holds the per-tick adaptation rates. All values are bounded
// bytes; a zero rate disables the corresponding process.
type Config struct {
	// MyelinationRate raises conductivity per active tick.
	MyelinationRate uint8 `json:"myelination_rate"`
	// DemyelinationRate lowers conductivity per sufficiently idle tick.
	DemyelinationRate uint8 `json:"demyelination_rate"`
	// JitterImprovementRate lowers jitter under sustained high density.
	JitterImprovementRate uint8 `json:"jitter_improvement_rate"`
	// JitterDecayRate raises jitter during disuse.
	JitterDecayRate uint8 `json:"jitter_decay_rate"`
	// FatigueRate raises fatigue per active tick, tempered by endurance.
	FatigueRate uint8 `json:"fatigue_rate"`
	// RecoveryRate lowers fatigue per idle tick, boosted by endurance.
	RecoveryRate uint8 `json:"recovery_rate"`
	// StrengtheningRate raises strength under fatigued, dense activity.
	StrengtheningRate uint8 `json:"strengthening_rate"`
	// AtrophyRate lowers strength once density has fully decayed.
	AtrophyRate uint8 `json:"atrophy_rate"`
	// AtrophyDelay is the approximate idle-tick horizon before atrophy;
	// the density exponential reaches zero on roughly this scale.
	AtrophyDelay uint8 `json:"atrophy_delay"`
	// IdleThreshold is the density below which a tract counts as idle.
	IdleThreshold uint8 `json:"idle_threshold"`
}

// DefaultConfig returns the calibrated per-tick rates. Recovery is
// slightly faster than fatigue accrual (3:2).
func DefaultConfig() Config {
	return Config{
		MyelinationRate:       1,
		DemyelinationRate:     1,
		JitterImprovementRate: 1,
		JitterDecayRate:       1,
		FatigueRate:           2,
		RecoveryRate:          3,
		StrengtheningRate:     1,
		AtrophyRate:           1,
		AtrophyDelay:          50,
		IdleThreshold:         10,
	}
}

// Tick adapts a single tract. Call once per simulation tick, after
// transmission. Branch conditions read the density as it stood at entry,
// not the freshly updated value.
func Tick(t *tract.Tract, cfg Config) {
	density := t.RecentDensity

	if t.IsActive() {
		if t.LifetimeActivations < math.MaxUint64 {
			t.LifetimeActivations++
		}

		// Push rolling density toward 255, at least 1 per tick.
		step := uint8((255 - uint16(density)) / 16)
		if step == 0 {
			step = 1
		}
		t.RecentDensity = signal.SatAdd(density, step)

		// Myelination: conductivity improves with every active tick.
		t.Conductivity = signal.SatAdd(t.Conductivity, cfg.MyelinationRate)

		// Practice effect: only sustained density improves precision,
		// not a single spike.
		if density > 128 {
			t.Jitter = signal.SatSub(t.Jitter, cfg.JitterImprovementRate)
		}

		// Fatigue accrual, tempered by endurance. High endurance can
		// cancel it entirely.
		var rate uint8
		if uint16(cfg.FatigueRate) > uint16(t.Endurance)/32 {
			rate = cfg.FatigueRate - t.Endurance/32
		}
		t.Fatigue = signal.SatAdd(t.Fatigue, rate)

		// Strength grows only under resistance: accumulated fatigue plus
		// sustained density.
		if t.Fatigue > 128 && density > 100 {
			t.Strength = signal.SatAdd(t.Strength, cfg.StrengtheningRate)
		}
		return
	}

	// Idle: decay rolling density toward 0, at least 1 per tick.
	step := density / 16
	if step == 0 {
		step = 1
	}
	t.RecentDensity = signal.SatSub(density, step)

	// Recovery accelerates with endurance.
	t.Fatigue = signal.SatSub(t.Fatigue, signal.SatAdd(cfg.RecoveryRate, t.Endurance/64))

	if density < cfg.IdleThreshold {
		// Demyelination and skill decay.
		t.Conductivity = signal.SatSub(t.Conductivity, cfg.DemyelinationRate)
		t.Jitter = signal.SatAdd(t.Jitter, cfg.JitterDecayRate)
	}

	// Atrophy: only tracts that were ever used waste away.
	if density == 0 && t.LifetimeActivations > 0 {
		t.Strength = signal.SatSub(t.Strength, cfg.AtrophyRate)
	}
}

// TickBundle adapts every tract in a bundle.
func TickBundle(b *bundle.Bundle, cfg Config) {
	for _, t := range b.Tracts {
		Tick(t, cfg)
	}
}
