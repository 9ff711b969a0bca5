package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/ecoatom/internal/beamline"
	"github.com/san-kum/ecoatom/internal/config"
	"github.com/san-kum/ecoatom/internal/elements"
	"github.com/san-kum/ecoatom/internal/metrics"
	"github.com/san-kum/ecoatom/internal/storage"
	"github.com/san-kum/ecoatom/internal/viz"
)

var (
	dataDir       string
	configFile    string
	preset        string
	steps         int
	timeStep      float64
	eventInterval int
	seed          int64
	atomicNumber  int
	tablePath     string
	frameRate     int
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ecoatom",
		Short: "didactic particle facility simulator",
		Long: "ecoatom simulates a centrifugal accelerator core and a vacuum chamber,\n" +
			"generating synthetic collision events from their per-tick state.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ecoatom", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a facility simulation",
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with the live control-room view",
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot RPM and pressure curves of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run ticks to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	elementsCmd := &cobra.Command{
		Use:   "elements",
		Short: "list the periodic table",
		RunE:  listElements,
	}
	elementsCmd.Flags().StringVar(&tablePath, "table", "", "periodic table JSON file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.Default()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, elementsCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&steps, "steps", 200, "number of ticks")
	cmd.Flags().Float64Var(&timeStep, "dt", 0.1, "tick size in seconds")
	cmd.Flags().IntVar(&eventInterval, "event-interval", 10, "ticks between events")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	cmd.Flags().IntVar(&atomicNumber, "element", 0, "beam element atomic number")
	cmd.Flags().StringVar(&tablePath, "table", "", "periodic table JSON file")
}

// loadConfig resolves preset, config file and CLI flags, in that order of
// increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("steps") {
		cfg.Simulation.Steps = steps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Simulation.TimeStep = timeStep
	}
	if cmd.Flags().Changed("event-interval") {
		cfg.Simulation.EventIntervalSteps = eventInterval
	}
	if cmd.Flags().Changed("seed") {
		cfg.Simulation.Seed = seed
	}
	if cmd.Flags().Changed("element") {
		cfg.Beam.ElementAtomicNumber = atomicNumber
	}
	if cfg.Simulation.Seed == 0 {
		cfg.Simulation.Seed = time.Now().UnixNano()
	}

	return cfg, nil
}

func loadTable(cfg *config.Config) (elements.Table, error) {
	path := tablePath
	if path == "" {
		path = cfg.Beam.PeriodicTablePath
	}
	if path == "" {
		return elements.Default(), nil
	}
	return elements.Load(path)
}

func buildBeamline(cmd *cobra.Command) (*beamline.Beamline, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	table, err := loadTable(cfg)
	if err != nil {
		return nil, nil, err
	}
	line, err := beamline.NewFromConfig(cfg, table)
	if err != nil {
		return nil, nil, err
	}
	return line, cfg, nil
}

func runConfigFrom(cfg *config.Config) beamline.RunConfig {
	return beamline.RunConfig{
		Steps:              cfg.Simulation.Steps,
		TimeStep:           cfg.Simulation.TimeStep,
		EventIntervalSteps: cfg.Simulation.EventIntervalSteps,
		RealtimeDelay:      cfg.Simulation.RealtimeDelay,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	line, cfg, err := buildBeamline(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	line.AddMetric(metrics.NewStableFraction())
	line.AddMetric(metrics.NewPeakAcceleration())
	line.AddMetric(metrics.NewPumpdownTime(cfg.Vacuum.BasePressurePa * 10))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	beam := line.Beam()
	fmt.Printf("running facility simulation (beam %s, Z=%d)...\n", beam.Symbol, beam.AtomicNumber)
	start := time.Now()

	result, err := line.Run(ctx, runConfigFrom(cfg))
	if err != nil {
		return err
	}

	runID, err := st.Save(beam.Symbol, beam.AtomicNumber, cfg.Simulation.Seed, cfg.Simulation.TimeStep, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d, events: %d\n", len(result.Ticks), len(result.Events))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	line, cfg, err := buildBeamline(cmd)
	if err != nil {
		return err
	}

	m := viz.NewModel(line, runConfigFrom(cfg), frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
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
	fmt.Fprintln(w, "ID\tBEAM\tTIME\tTICKS\tDT\tEVENTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s (Z=%d)\t%s\t%d\t%.3fs\t%d\n",
			run.ID,
			run.BeamSymbol,
			run.BeamZ,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.TimeStep,
			run.EventCount,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	ticks, err := st.LoadTicks(args[0])
	if err != nil {
		return err
	}
	if len(ticks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("beam: %s (Z=%d)\n", meta.BeamSymbol, meta.BeamZ)
	fmt.Printf("samples: %d\n\n", len(ticks))

	rpm := make([]float64, len(ticks))
	pressure := make([]float64, len(ticks))
	for i, rec := range ticks {
		rpm[i] = rec.RPM
		pressure[i] = math.Log10(rec.Pressure)
	}

	fmt.Println(asciigraph.Plot(rpm,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("rpm"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(pressure,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("log10 pressure (Pa)"),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ticks, err := st.LoadTicks(args[0])
	if err != nil {
		return err
	}
	if len(ticks) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "rpm", "angular_velocity", "tangential_velocity", "centrifugal_acceleration", "stable", "pressure_pa"}); err != nil {
		return err
	}
	for _, rec := range ticks {
		row := []string{
			strconv.FormatFloat(rec.Elapsed, 'f', 6, 64),
			strconv.FormatFloat(rec.RPM, 'f', 6, 64),
			strconv.FormatFloat(rec.AngularVelocity, 'f', 6, 64),
			strconv.FormatFloat(rec.TangentialVelocity, 'f', 6, 64),
			strconv.FormatFloat(rec.CentrifugalAcceleration, 'f', 6, 64),
			strconv.FormatBool(rec.Stable),
			strconv.FormatFloat(rec.Pressure, 'e', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func listElements(cmd *cobra.Command, args []string) error {
	table := elements.Default()
	if tablePath != "" {
		loaded, err := elements.Load(tablePath)
		if err != nil {
			return err
		}
		table = loaded
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Z\tSYMBOL\tNAME\tMASS")
	for _, e := range table {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\n", e.AtomicNumber, e.Symbol, e.Name, e.AtomicMass)
	}
	return w.Flush()
}
