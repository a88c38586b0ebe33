// Package model holds the persisted record shapes shared by the storage
// layer, the run recorder and the export surface.
package model

import "fibertract/internal/signal"

// Current record versions stamped on newly produced snapshots.
const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// TractRecord is the full serialized state of a single tract, including
// the smoothing buffers so a restored tract resumes bit-exact.
type TractRecord struct {
	Kind uint8 `json:"kind"`
	Dim  int   `json:"dim"`

	MotorSignals   []signal.Signal `json:"motor_signals,omitempty"`
	SensorySignals []int32         `json:"sensory_signals,omitempty"`
	MotorPrev      []signal.Signal `json:"motor_prev,omitempty"`
	SensoryPrev    []int32         `json:"sensory_prev,omitempty"`

	Conductivity uint8 `json:"conductivity"`
	Jitter       uint8 `json:"jitter"`
	Fatigue      uint8 `json:"fatigue"`
	Endurance    uint8 `json:"endurance"`
	Elasticity   uint8 `json:"elasticity"`
	Sensitivity  uint8 `json:"sensitivity"`
	Gain         uint8 `json:"gain"`
	Strength     uint8 `json:"strength"`
	ReceptorMode uint8 `json:"receptor_mode"`

	LifetimeActivations uint64 `json:"lifetime_activations"`
	RecentDensity       uint8  `json:"recent_density"`
}

// BundleRecord is a serialized bundle snapshot.
type BundleRecord struct {
	VersionedRecord
	Name   string        `json:"name"`
	Tracts []TractRecord `json:"tracts"`
}

// RunRecord summarizes one completed simulation run.
type RunRecord struct {
	VersionedRecord
	RunID         string `json:"run_id"`
	CreatedAtUTC  string `json:"created_at_utc"`
	Profile       string `json:"profile"`
	Seed          uint64 `json:"seed"`
	Ticks         int    `json:"ticks"`
	TotalActivity uint64 `json:"total_activity"`
	FinalActivity uint64 `json:"final_activity"`
	PainEvents    int    `json:"pain_events"`
}

// PainRecord is one pain event as observed during a run.
type PainRecord struct {
	Tick          int    `json:"tick"`
	BundleName    string `json:"bundle_name"`
	Source        uint8  `json:"source"`
	Intensity     uint8  `json:"intensity"`
	Onset         uint8  `json:"onset"`
	DurationTicks uint32 `json:"duration_ticks"`
	Habituating   bool   `json:"habituating"`
}
