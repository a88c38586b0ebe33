package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"fibertract/internal/storage"
	fiberapi "fibertract/pkg/fibertract"
)

const exportsDir = "exports"

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "simulate":
		return runSimulate(ctx, args[1:])
	case "profiles":
		return runProfiles(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "pain":
		return runPain(ctx, args[1:])
	case "export":
		return runExport(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: fibertractctl <init|simulate|profiles|runs|history|pain|export> [flags]", msg)
}

func newClient(storeKind, dbPath string, verbose bool) (*fiberapi.Client, error) {
	var logger *zap.Logger
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		logger = l
	}
	return fiberapi.New(fiberapi.Options{
		StoreKind:  storeKind,
		DBPath:     dbPath,
		ExportsDir: exportsDir,
		Logger:     logger,
	})
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "fibertract.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runSimulate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional simulation config JSON path")
	runID := fs.String("run-id", "", "explicit run id (optional)")
	profileName := fs.String("profile", "", "built-in profile name")
	profilePath := fs.String("profile-path", "", "custom profile YAML path")
	ticks := fs.Int("ticks", 200, "simulation tick count")
	seed := fs.Uint64("seed", 1, "rng seed")
	activeTicks := fs.Int("active", 0, "pulse drive active ticks (0 uses default)")
	restTicks := fs.Int("rest", 0, "pulse drive rest ticks")
	magnitude := fs.Uint("magnitude", 0, "motor drive magnitude 0-255 (0 uses default)")
	stimulus := fs.Int("stimulus", 0, "sensory stimulus value (0 uses default)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "fibertract.db", "sqlite database path")
	verbose := fs.Bool("verbose", false, "log run progress")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req, err := loadOrDefaultSimulateRequest(*configPath)
	if err != nil {
		return err
	}
	if setFlags["run-id"] || req.RunID == "" {
		req.RunID = *runID
	}
	if setFlags["profile"] {
		req.Profile = *profileName
	}
	if setFlags["profile-path"] {
		req.ProfilePath = *profilePath
	}
	if setFlags["ticks"] || req.Ticks == 0 {
		req.Ticks = *ticks
	}
	if setFlags["seed"] || req.Seed == 0 {
		req.Seed = *seed
	}
	if setFlags["active"] {
		req.ActiveTicks = *activeTicks
	}
	if setFlags["rest"] {
		req.RestTicks = *restTicks
	}
	if setFlags["magnitude"] {
		if *magnitude > 255 {
			return fmt.Errorf("magnitude must be 0-255, got %d", *magnitude)
		}
		req.Magnitude = uint8(*magnitude)
	}
	if setFlags["stimulus"] {
		req.Stimulus = int32(*stimulus)
	}

	client, err := newClient(*storeKind, *dbPath, *verbose)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Simulate(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("run_id=%s profile=%s ticks=%d seed=%d\n", summary.RunID, summary.Profile, summary.Ticks, summary.Seed)
	fmt.Printf("total_activity=%d peak_activity=%d final_activity=%d pain_events=%d\n",
		summary.TotalActivity, summary.PeakActivity, summary.FinalActivity, summary.PainEvents)
	return nil
}

func runProfiles(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("profiles", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient("memory", "", false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	for _, name := range client.Profiles() {
		fmt.Println(name)
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "fibertract.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%s  %s  profile=%s seed=%d ticks=%d activity=%d pain=%d\n",
			run.RunID, run.CreatedAtUTC, run.Profile, run.Seed, run.Ticks, run.TotalActivity, run.PainEvents)
	}
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "use the most recent run")
	limit := fs.Int("limit", 0, "maximum ticks to print (0 prints all)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "fibertract.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.ActivityHistory(ctx, fiberapi.RunQuery{RunID: *runID, Latest: *latest, Limit: *limit})
	if err != nil {
		return err
	}
	for tick, activity := range history {
		fmt.Printf("%d\t%d\n", tick, activity)
	}
	return nil
}

func runPain(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pain", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "use the most recent run")
	limit := fs.Int("limit", 0, "maximum events to print (0 prints all)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "fibertract.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	events, err := client.PainEvents(ctx, fiberapi.RunQuery{RunID: *runID, Latest: *latest, Limit: *limit})
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("no pain events")
		return nil
	}
	for _, ev := range events {
		fmt.Printf("tick=%d bundle=%s source=%d intensity=%d onset=%d duration=%d habituating=%t\n",
			ev.Tick, ev.BundleName, ev.Source, ev.Intensity, ev.Onset, ev.DurationTicks, ev.Habituating)
	}
	return nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "use the most recent run")
	outDir := fs.String("out", exportsDir, "export output directory")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "fibertract.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := newClient(*storeKind, *dbPath, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Export(ctx, fiberapi.ExportRequest{RunID: *runID, Latest: *latest, OutDir: *outDir})
	if err != nil {
		return err
	}

	fmt.Printf("exported run=%s dir=%s\n", summary.RunID, summary.Directory)
	return nil
}
