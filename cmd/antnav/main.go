package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/antnav/internal/automation"
	"github.com/san-kum/antnav/internal/config"
	"github.com/san-kum/antnav/internal/experiment"
	"github.com/san-kum/antnav/internal/logging"
	"github.com/san-kum/antnav/internal/navigation"
	"github.com/san-kum/antnav/internal/storage"
	"github.com/san-kum/antnav/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	sunAzimuth float64
	noise      float64
	seed       int64
	stepSize   float64
	maxSteps   int
	mode       string
	noSave     bool
	// Logging
	logLevel  string
	logFormat string
	logFile   string
	// Comparison
	comparePreset string
	compareMode   string
	compareSeed   int64
	noiseLevels   []float64
	workers       int
	// Rendering
	svgWidth  int
	svgHeight int
	outFile   string

	logger = zap.NewNop()
)

// main registers the antnav commands and executes the root command, exiting
// with status 1 if it returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "antnav",
		Short:        "path integration navigation lab",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			lc := config.DefaultConfig().Log
			lc.Level, lc.Format, lc.File = logLevel, logFormat, logFile
			logger = logging.New(lc, os.Stderr)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".antnav", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (rotated)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "forage then return home",
		Args:  cobra.NoArgs,
		RunE:  runNavigation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().Float64Var(&sunAzimuth, "sun", config.DefaultSunAzimuth, "sun azimuth in degrees")
	runCmd.Flags().Float64Var(&noise, "noise", config.DefaultNoise, "compass noise stddev (radians)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	runCmd.Flags().Float64Var(&stepSize, "step", config.DefaultStepSize, "homing step size")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "homing step cap (negative disables)")
	runCmd.Flags().StringVar(&mode, "mode", config.ModeTurn, "foraging mode (turn, compass)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare homing across compass noise levels",
		Args:  cobra.NoArgs,
		RunE:  compareNoise,
	}
	compareCmd.Flags().StringVar(&comparePreset, "preset", "comparison", "foraging pattern")
	compareCmd.Flags().Float64SliceVar(&noiseLevels, "levels", []float64{0.01, 0.05, 0.1, 0.2}, "noise levels")
	compareCmd.Flags().Int64Var(&compareSeed, "seed", 42, "seed of the first level")
	compareCmd.Flags().StringVar(&compareMode, "mode", config.ModeCompass, "foraging mode (turn, compass)")
	compareCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = GOMAXPROCS)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "summary, distance plot and path of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and trajectory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	playCmd := &cobra.Command{
		Use:   "play [run_id]",
		Short: "replay a run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  playRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list foraging presets",
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	rootCmd.AddCommand(runCmd, compareCmd, listCmd, showCmd, svgCmd, exportJSONCmd, exportCSVCmd, playCmd, presetsCmd, scenarioCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// Config file overrides preset
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override both
	if cmd.Flags().Changed("sun") {
		cfg.SunAzimuth = sunAzimuth
	}
	if cmd.Flags().Changed("noise") {
		cfg.Noise = noise
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("step") {
		cfg.StepSize = stepSize
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("mode") {
		cfg.Mode = mode
	}

	return cfg, cfg.Validate()
}

// logConfigFor layers explicitly set logging flags over lc.
func logConfigFor(cmd *cobra.Command, lc config.LogConfig) config.LogConfig {
	if cmd.Flags().Changed("log-level") {
		lc.Level = logLevel
	}
	if cmd.Flags().Changed("log-format") {
		lc.Format = logFormat
	}
	if cmd.Flags().Changed("log-file") {
		lc.File = logFile
	}
	return lc
}

func runNavigation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// A config file's log section replaces the flag defaults.
	if configFile != "" {
		_ = logger.Sync()
		logger = logging.New(logConfigFor(cmd, cfg.Log), os.Stderr)
	}

	exp := experiment.New(experiment.FromConfig(cfg), experiment.WithLogger(logger))
	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	runID := ""
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = st.Save(result); err != nil {
			return err
		}
		logger.Info("run saved", zap.String("id", runID))
	}

	printSummary(runID, result)
	return nil
}

func printSummary(runID string, r *experiment.Result) {
	s := r.Summary
	rows := []viz.Row{
		{Label: "Mode", Value: r.Config.Mode},
		viz.Rowf("Seed", "%d", r.Config.Seed),
		viz.Rowf("Noise", "%.3f", r.Config.Noise),
		{Label: "Phase", Value: s.Phase.String()},
		viz.Rowf("Odometer", "%.2f m", s.Odometer),
		viz.Rowf("Final error", "%.3f m", s.StraightLine),
		viz.Rowf("Efficiency", "%.3f", s.Efficiency),
		viz.Rowf("Homing", "%d steps", s.StepsToHome),
	}
	for _, name := range []string{"max_excursion", "mean_heading_change"} {
		if v, ok := r.Metrics[name]; ok {
			rows = append(rows, viz.Rowf(name, "%.3f", v))
		}
	}
	if runID != "" {
		rows = append(rows, viz.Row{Label: "Run", Value: runID})
	}
	fmt.Println(viz.Panel(r.Config.Name, rows))
}

func compareNoise(cmd *cobra.Command, args []string) error {
	cfg := config.GetPreset(comparePreset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", comparePreset, config.ListPresets())
	}
	cfg.Mode = compareMode
	cfg.Seed = compareSeed
	if err := cfg.Validate(); err != nil {
		return err
	}

	sweep := &automation.NoiseSweep{
		Base:    experiment.FromConfig(cfg),
		Levels:  noiseLevels,
		Workers: workers,
	}
	points, err := automation.RunSweep(cmd.Context(), sweep, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NOISE\tSEED\tFINAL ERR\tDISTANCE\tEFFICIENCY\tSTEPS")
	for _, p := range points {
		fmt.Fprintf(w, "%.3f\t%d\t%.3f\t%.2f\t%.3f\t%d\n",
			p.Noise, p.Seed, p.FinalError, p.TotalDistance, p.Efficiency, p.Steps)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, plot := range sweepPlots(points) {
		fmt.Println()
		fmt.Println(plot)
	}
	return nil
}

// sweepPlots charts homing error and total distance per noise level. A
// single level has nothing to compare and gets no plots.
func sweepPlots(points []automation.SweepPoint) []string {
	if len(points) < 2 {
		return nil
	}
	errs := make([]float64, len(points))
	distances := make([]float64, len(points))
	for i, p := range points {
		errs[i] = p.FinalError
		distances[i] = p.TotalDistance
	}
	return []string{
		viz.SeriesPlot(errs, "homing error by noise level", 60, 10),
		viz.SeriesPlot(distances, "total distance by noise level", 60, 10),
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMODE\tNOISE\tODOMETER\tEFFICIENCY\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.2f\t%.3f\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Mode,
			run.Noise,
			run.Odometer,
			run.Efficiency,
			run.StepsToHome,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, navigation.Trajectory, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, navigation.Trajectory{}, err
	}
	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, navigation.Trajectory{}, err
	}
	return meta, tr, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.Panel(meta.ID, []viz.Row{
		{Label: "Mode", Value: meta.Mode},
		viz.Rowf("Sun", "%.1f°", meta.SunAzimuth),
		viz.Rowf("Noise", "%.3f", meta.Noise),
		{Label: "Phase", Value: meta.Phase},
		viz.Rowf("Odometer", "%.2f m", meta.Odometer),
		viz.Rowf("Final error", "%.3f m", meta.StraightLine),
		viz.Rowf("Efficiency", "%.3f", meta.Efficiency),
		viz.Rowf("Snapshots", "%d", tr.Len()),
	}))
	fmt.Println()
	fmt.Println(viz.DistancePlot(tr, 80, 10))
	fmt.Println()
	fmt.Print(viz.PathCanvas(tr, 60, 20).String())
	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	svg := viz.TrajectorySVG(tr, meta.SunAzimuth, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("run %s has too few points to draw", args[0])
	}
	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("svg written", zap.String("file", outFile))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, tr)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, tr)
}

func playRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(args[0])
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewPlayback(meta.ID, tr, meta.HomingStart, meta.SunAzimuth))
	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMODE\tNOISE\tLEGS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%d\n", name, p.Mode, p.Noise, len(p.Moves))
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger.Info("scenario loaded", zap.String("name", sc.Name), zap.Int("steps", len(sc.Steps)))

	results, err := automation.RunScenario(cmd.Context(), sc, logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}
	for _, r := range results {
		runID := ""
		if !noSave {
			if runID, err = st.Save(r); err != nil {
				return err
			}
		}
		printSummary(runID, r)
	}
	return nil
}
