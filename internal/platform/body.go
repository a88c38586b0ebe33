// Package platform hosts the Body runtime: the container that owns
// bundles, drives them tick by tick, runs use-dependent adaptation and
// records everything to a store.
package platform

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fibertract/internal/adapt"
	"fibertract/internal/bundle"
	"fibertract/internal/model"
	"fibertract/internal/pain"
	"fibertract/internal/signal"
	"fibertract/internal/storage"
)

type Config struct {
	Store  storage.Store
	Logger *zap.Logger
}

// Chemical identifies a systemic modulator applied to a bundle mid-run.
type Chemical string

const (
	ChemicalAdrenaline Chemical = "adrenaline"
	ChemicalEndorphin  Chemical = "endorphin"
	ChemicalCortisol   Chemical = "cortisol"
	ChemicalGABA       Chemical = "gaba"
	ChemicalBaseline   Chemical = "baseline"
)

func ParseChemical(name string) (Chemical, error) {
	switch Chemical(name) {
	case ChemicalAdrenaline, ChemicalEndorphin, ChemicalCortisol, ChemicalGABA, ChemicalBaseline:
		return Chemical(name), nil
	default:
		return "", fmt.Errorf("unknown chemical: %s", name)
	}
}

// ChemicalEvent schedules one chemical application during a run. An
// empty Bundle applies to every bundle.
type ChemicalEvent struct {
	Tick      int
	Bundle    string
	Chemical  Chemical
	Intensity uint8
}

// RunConfig parameterizes one simulation run over the registered
// bundles.
type RunConfig struct {
	RunID      string
	Profile    string
	Ticks      int
	Seed       uint64
	Driver     Driver
	Adaptation adapt.Config
	Chemicals  []ChemicalEvent
}

// RunResult reports what a completed run produced, prior to storage.
type RunResult struct {
	Run             model.RunRecord
	ActivityHistory []uint64
	PainEvents      []model.PainRecord
}

// Body owns a set of bundles and runs simulations over them.
type Body struct {
	store storage.Store
	log   *zap.Logger

	mu        sync.RWMutex
	bundles   map[string]*bundle.Bundle
	detectors map[string]*pain.Detector
	started   bool
}

func NewBody(cfg Config) *Body {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Body{
		store:     cfg.Store,
		log:       logger,
		bundles:   make(map[string]*bundle.Bundle),
		detectors: make(map[string]*pain.Detector),
	}
}

func (b *Body) Init(ctx context.Context) error {
	if b.store == nil {
		return fmt.Errorf("store is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return nil
	}
	if err := b.store.Init(ctx); err != nil {
		return err
	}
	b.started = true
	return nil
}

func (b *Body) AddBundle(bun *bundle.Bundle) error {
	if bun == nil {
		return fmt.Errorf("bundle is nil")
	}
	if bun.Name == "" {
		return fmt.Errorf("bundle name is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.bundles[bun.Name]; exists {
		return fmt.Errorf("duplicate bundle: %s", bun.Name)
	}
	b.bundles[bun.Name] = bun
	b.detectors[bun.Name] = pain.NewDetector(bun.Name)
	return nil
}

func (b *Body) Bundle(name string) (*bundle.Bundle, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bun, ok := b.bundles[name]
	return bun, ok
}

func (b *Body) BundleNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bundleNamesLocked()
}

func (b *Body) bundleNamesLocked() []string {
	names := make([]string, 0, len(b.bundles))
	for name := range b.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run advances every registered bundle through cfg.Ticks simulation
// ticks and persists the outcome. Each tick transmits driver inputs
// through every tract, then applies one adaptation step, then scans for
// pain. Bundles are visited in name order so a given seed always yields
// the same trajectory.
func (b *Body) Run(ctx context.Context, cfg RunConfig) (RunResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started {
		return RunResult{}, fmt.Errorf("body is not initialized")
	}
	if cfg.Ticks <= 0 {
		return RunResult{}, fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if len(b.bundles) == 0 {
		return RunResult{}, fmt.Errorf("no bundles registered")
	}

	runID := cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	driver := cfg.Driver
	if driver == nil {
		driver = DefaultPulseDriver()
	}

	// xorshift has a zero fixed point; never start the stream there.
	rngState := cfg.Seed
	if rngState == 0 {
		rngState = 0x9e3779b97f4a7c15
	}

	names := b.bundleNamesLocked()
	chemicalsByTick := groupChemicals(cfg.Chemicals)

	history := make([]uint64, 0, cfg.Ticks)
	var painRecords []model.PainRecord
	var totalActivity uint64

	for tick := 0; tick < cfg.Ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return RunResult{}, fmt.Errorf("run %s aborted at tick %d: %w", runID, tick, err)
		}

		for _, event := range chemicalsByTick[tick] {
			if err := b.applyChemicalLocked(event); err != nil {
				return RunResult{}, fmt.Errorf("run %s: %w", runID, err)
			}
		}

		var tickActivity uint64
		for _, name := range names {
			bun := b.bundles[name]
			for i, tr := range bun.Tracts {
				rngState = signal.Xorshift(rngState)
				if tr.Kind().IsEfferent() {
					input := driver.MotorCommand(tick, name, i, tr.Dim())
					if input == nil {
						input = make([]signal.Signal, tr.Dim())
					}
					if err := tr.TransmitMotor(input, rngState); err != nil {
						return RunResult{}, fmt.Errorf("run %s: bundle %s tract %d: %w", runID, name, i, err)
					}
				} else {
					input := driver.SensoryStimulus(tick, name, i, tr.Dim())
					if input == nil {
						input = make([]int32, tr.Dim())
					}
					if err := tr.TransmitSensory(input, rngState); err != nil {
						return RunResult{}, fmt.Errorf("run %s: bundle %s tract %d: %w", runID, name, i, err)
					}
				}
			}
			adapt.TickBundle(bun, cfg.Adaptation)

			for _, ev := range b.detectors[name].Observe(bun) {
				painRecords = append(painRecords, model.PainRecord{
					Tick:          tick,
					BundleName:    ev.BundleName,
					Source:        uint8(ev.Source),
					Intensity:     ev.Intensity,
					Onset:         ev.Onset,
					DurationTicks: ev.DurationTicks,
					Habituating:   ev.Habituating,
				})
			}
			tickActivity += bun.TotalActivity()
		}

		history = append(history, tickActivity)
		totalActivity += tickActivity
	}

	run := model.RunRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: model.CurrentSchemaVersion,
			CodecVersion:  model.CurrentCodecVersion,
		},
		RunID:         runID,
		CreatedAtUTC:  time.Now().UTC().Format(time.RFC3339),
		Profile:       cfg.Profile,
		Seed:          cfg.Seed,
		Ticks:         cfg.Ticks,
		TotalActivity: totalActivity,
		FinalActivity: history[len(history)-1],
		PainEvents:    len(painRecords),
	}

	for _, name := range names {
		if err := b.store.SaveBundle(ctx, b.bundles[name].Snapshot()); err != nil {
			return RunResult{}, fmt.Errorf("save bundle %s: %w", name, err)
		}
	}
	if err := b.store.SaveActivityHistory(ctx, runID, history); err != nil {
		return RunResult{}, fmt.Errorf("save activity history: %w", err)
	}
	if err := b.store.SavePainEvents(ctx, runID, painRecords); err != nil {
		return RunResult{}, fmt.Errorf("save pain events: %w", err)
	}
	if err := b.store.SaveRun(ctx, run); err != nil {
		return RunResult{}, fmt.Errorf("save run: %w", err)
	}

	b.log.Info("run complete",
		zap.String("run_id", runID),
		zap.String("profile", cfg.Profile),
		zap.Int("ticks", cfg.Ticks),
		zap.Uint64("total_activity", totalActivity),
		zap.Int("pain_events", len(painRecords)),
	)

	return RunResult{Run: run, ActivityHistory: history, PainEvents: painRecords}, nil
}

// ApplyChemical applies a modulator to one bundle, or to every bundle
// when name is empty.
func (b *Body) ApplyChemical(name string, chem Chemical, intensity uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.applyChemicalLocked(ChemicalEvent{Bundle: name, Chemical: chem, Intensity: intensity})
}

func (b *Body) applyChemicalLocked(event ChemicalEvent) error {
	targets := make([]*bundle.Bundle, 0, 1)
	if event.Bundle == "" {
		for _, name := range b.bundleNamesLocked() {
			targets = append(targets, b.bundles[name])
		}
	} else {
		bun, ok := b.bundles[event.Bundle]
		if !ok {
			return fmt.Errorf("unknown bundle: %s", event.Bundle)
		}
		targets = append(targets, bun)
	}

	for _, bun := range targets {
		switch event.Chemical {
		case ChemicalAdrenaline:
			bun.ApplyAdrenaline(event.Intensity)
		case ChemicalEndorphin:
			bun.ApplyEndorphin(event.Intensity)
		case ChemicalCortisol:
			bun.ApplyCortisol(event.Intensity)
		case ChemicalGABA:
			bun.ApplyGABA(event.Intensity)
		case ChemicalBaseline:
			bun.ResetToBaseline()
		default:
			return fmt.Errorf("unknown chemical: %s", event.Chemical)
		}
	}
	return nil
}

func groupChemicals(events []ChemicalEvent) map[int][]ChemicalEvent {
	if len(events) == 0 {
		return nil
	}
	grouped := make(map[int][]ChemicalEvent)
	for _, event := range events {
		grouped[event.Tick] = append(grouped[event.Tick], event)
	}
	return grouped
}
