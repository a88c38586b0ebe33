// Package fibertract is the public entry point for running peripheral
// pathway simulations: profile selection, run execution, stored run
// inspection and artifact export.
package fibertract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"fibertract/internal/adapt"
	"fibertract/internal/model"
	"fibertract/internal/platform"
	"fibertract/internal/profile"
	"fibertract/internal/storage"
)

const (
	defaultExportsDir = "exports"
	defaultDBPath     = "fibertract.db"
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
	Logger     *zap.Logger
}

type Client struct {
	store storage.Store
	log   *zap.Logger

	exportsDir  string
	initialized bool
}

// SimulateRequest parameterizes one run. Profile names a built-in
// preset; ProfilePath loads a custom YAML profile instead. Exactly one
// of the two must be set.
type SimulateRequest struct {
	Profile     string
	ProfilePath string
	Ticks       int
	Seed        uint64
	RunID       string

	// Pulse drive shape. Zero values fall back to the default driver.
	ActiveTicks int
	RestTicks   int
	Magnitude   uint8
	Stimulus    int32

	Adaptation *adapt.Config
	Chemicals  []ChemicalSpec
}

// ChemicalSpec schedules one chemical dose during a simulation.
type ChemicalSpec struct {
	Tick      int
	Name      string
	Intensity uint8
}

type SimulateSummary struct {
	RunID         string
	Profile       string
	Ticks         int
	Seed          uint64
	TotalActivity uint64
	FinalActivity uint64
	PeakActivity  uint64
	PainEvents    int
}

type RunQuery struct {
	RunID  string
	Latest bool
	Limit  int
}

type ExportRequest struct {
	RunID  string
	Latest bool
	OutDir string
}

type ExportSummary struct {
	RunID     string
	Directory string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		log:        logger,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// Profiles returns the built-in profile names.
func (c *Client) Profiles() []string {
	return profile.Names()
}

// Simulate builds the requested profile, runs it for the requested
// number of ticks and persists the outcome.
func (c *Client) Simulate(ctx context.Context, req SimulateRequest) (SimulateSummary, error) {
	if req.Profile != "" && req.ProfilePath != "" {
		return SimulateSummary{}, errors.New("use either a profile name or a profile path")
	}
	if req.Profile == "" && req.ProfilePath == "" {
		req.Profile = "left_hand"
	}
	if req.Ticks <= 0 {
		req.Ticks = 200
	}

	var prof profile.Profile
	if req.ProfilePath != "" {
		loaded, err := profile.Load(req.ProfilePath)
		if err != nil {
			return SimulateSummary{}, err
		}
		prof = loaded
	} else {
		preset, ok := profile.ByName(req.Profile)
		if !ok {
			return SimulateSummary{}, fmt.Errorf("unknown profile: %s (known: %v)", req.Profile, profile.Names())
		}
		prof = preset
	}

	if err := c.Init(ctx); err != nil {
		return SimulateSummary{}, err
	}

	bun, err := prof.Build()
	if err != nil {
		return SimulateSummary{}, err
	}

	body := platform.NewBody(platform.Config{Store: c.store, Logger: c.log})
	if err := body.Init(ctx); err != nil {
		return SimulateSummary{}, err
	}
	if err := body.AddBundle(bun); err != nil {
		return SimulateSummary{}, err
	}

	var driver platform.Driver
	if req.ActiveTicks > 0 || req.Magnitude > 0 || req.Stimulus > 0 {
		active := req.ActiveTicks
		if active <= 0 {
			active = 8
		}
		rest := req.RestTicks
		magnitude := req.Magnitude
		if magnitude == 0 {
			magnitude = 230
		}
		stimulus := req.Stimulus
		if stimulus == 0 {
			stimulus = 300
		}
		driver = platform.NewPulseDriver(active, rest, magnitude, stimulus)
	}

	adaptation := adapt.DefaultConfig()
	if req.Adaptation != nil {
		adaptation = *req.Adaptation
	}

	chemicals := make([]platform.ChemicalEvent, 0, len(req.Chemicals))
	for _, spec := range req.Chemicals {
		chem, err := platform.ParseChemical(spec.Name)
		if err != nil {
			return SimulateSummary{}, err
		}
		chemicals = append(chemicals, platform.ChemicalEvent{
			Tick:      spec.Tick,
			Bundle:    prof.Name,
			Chemical:  chem,
			Intensity: spec.Intensity,
		})
	}

	result, err := body.Run(ctx, platform.RunConfig{
		RunID:      req.RunID,
		Profile:    prof.Name,
		Ticks:      req.Ticks,
		Seed:       req.Seed,
		Driver:     driver,
		Adaptation: adaptation,
		Chemicals:  chemicals,
	})
	if err != nil {
		return SimulateSummary{}, err
	}

	var peak uint64
	for _, activity := range result.ActivityHistory {
		if activity > peak {
			peak = activity
		}
	}

	return SimulateSummary{
		RunID:         result.Run.RunID,
		Profile:       prof.Name,
		Ticks:         result.Run.Ticks,
		Seed:          result.Run.Seed,
		TotalActivity: result.Run.TotalActivity,
		FinalActivity: result.Run.FinalActivity,
		PeakActivity:  peak,
		PainEvents:    result.Run.PainEvents,
	}, nil
}

// Runs lists stored runs, newest first.
func (c *Client) Runs(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if err := c.Init(ctx); err != nil {
		return nil, err
	}

	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// ActivityHistory returns the per-tick activity curve of a run.
func (c *Client) ActivityHistory(ctx context.Context, req RunQuery) ([]uint64, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	history, ok, err := c.store.GetActivityHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("activity history not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return history, nil
}

// PainEvents returns the pain events detected during a run.
func (c *Client) PainEvents(ctx context.Context, req RunQuery) ([]model.PainRecord, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return nil, err
	}

	events, ok, err := c.store.GetPainEvents(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("pain events not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(events) > req.Limit {
		events = events[:req.Limit]
	}
	return events, nil
}

// Export writes a run's record, activity history and pain events as
// JSON files under OutDir/<run id>.
func (c *Client) Export(ctx context.Context, req ExportRequest) (ExportSummary, error) {
	runID, err := c.resolveRunID(ctx, req.RunID, req.Latest)
	if err != nil {
		return ExportSummary{}, err
	}
	outDir := req.OutDir
	if outDir == "" {
		outDir = c.exportsDir
	}

	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return ExportSummary{}, err
	}
	if !ok {
		return ExportSummary{}, fmt.Errorf("run not found: %s", runID)
	}

	dir := filepath.Join(outDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ExportSummary{}, fmt.Errorf("create export dir: %w", err)
	}

	if err := writeJSONFile(filepath.Join(dir, "run.json"), run); err != nil {
		return ExportSummary{}, err
	}
	if history, ok, err := c.store.GetActivityHistory(ctx, runID); err != nil {
		return ExportSummary{}, err
	} else if ok {
		if err := writeJSONFile(filepath.Join(dir, "activity_history.json"), history); err != nil {
			return ExportSummary{}, err
		}
	}
	if events, ok, err := c.store.GetPainEvents(ctx, runID); err != nil {
		return ExportSummary{}, err
	} else if ok {
		if err := writeJSONFile(filepath.Join(dir, "pain_events.json"), events); err != nil {
			return ExportSummary{}, err
		}
	}
	if bundle, ok, err := c.store.GetBundle(ctx, run.Profile); err != nil {
		return ExportSummary{}, err
	} else if ok {
		if err := writeJSONFile(filepath.Join(dir, "bundle.json"), bundle); err != nil {
			return ExportSummary{}, err
		}
	}

	return ExportSummary{RunID: runID, Directory: filepath.Clean(dir)}, nil
}

func (c *Client) resolveRunID(ctx context.Context, runID string, latest bool) (string, error) {
	if runID != "" && latest {
		return "", errors.New("use either run id or latest")
	}
	if err := c.Init(ctx); err != nil {
		return "", err
	}
	if latest {
		runs, err := c.store.ListRuns(ctx)
		if err != nil {
			return "", err
		}
		if len(runs) == 0 {
			return "", errors.New("no runs available")
		}
		return runs[len(runs)-1].RunID, nil
	}
	if runID == "" {
		return "", errors.New("run id or latest is required")
	}
	return runID, nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
