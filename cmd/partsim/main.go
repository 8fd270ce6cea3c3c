package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/physics"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/san-kum/partsim/internal/term"
	"github.com/san-kum/partsim/internal/viz"
)

var (
	dataDir    string
	particles  int
	boundary   float32
	speed      float32
	dt         float32
	seed       int64
	steps      int
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "partsim",
		Short: "real-time particle simulation with latency instrumentation",
		RunE:  runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partsim", "data directory")

	addSimFlags := func(cmd *cobra.Command) {
		cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "population size")
		cmd.Flags().Float32Var(&boundary, "boundary", config.DefaultBoundary, "domain side length")
		cmd.Flags().Float32Var(&speed, "speed", config.DefaultSpeed, "velocity scale")
		cmd.Flags().Float32Var(&dt, "dt", config.DefaultDt, "timestep")
		cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless measurement and save the latency profile",
		RunE:  runHeadless,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation with a live latency dashboard",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step latency across population sizes",
		RunE:  benchPopulations,
	}
	benchCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "steps per measurement")
	benchCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the latency profile of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export latency samples as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-10s %d particles, dt %.2f\n", name, cfg.Particles, cfg.Dt)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, config file, and flags, in increasing
// precedence, the same way a flag overrides a file value only when the user
// actually set it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cmd.Flags().Changed("boundary") {
		cfg.Boundary = boundary
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = speed
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runInteractive is the classic mode: fixed constants, terminal display,
// ESC to quit.
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Seed = time.Now().UnixNano()

	fmt.Println("Starting Legacy Simulation...")
	fmt.Println("Press ESC to quit.")

	rng := rand.New(rand.NewSource(cfg.Seed))
	set := particle.NewSet(cfg.Particles, cfg.Boundary, cfg.Speed, rng)
	stepper := physics.NewStepper(cfg.Boundary)

	surface, err := term.New()
	if err != nil {
		return err
	}

	opts := sim.DefaultOptions()
	opts.Dt = cfg.Dt
	opts.CanvasSize = int(cfg.Boundary)
	opts.Radius = cfg.Radius
	opts.PollTimeout = time.Duration(cfg.PollMs) * time.Millisecond

	loop, err := sim.NewLoop(set, stepper, surface, opts)
	if err != nil {
		surface.Close()
		return err
	}

	err = loop.Run(context.Background())
	surface.Close()
	if err != nil {
		return err
	}

	fmt.Println("Simulation finished.")
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.Run(cfg)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	set := particle.NewSet(cfg.Particles, cfg.Boundary, cfg.Speed, rng)
	stepper := physics.NewStepper(cfg.Boundary)

	fmt.Printf("running %d particles for %d steps...\n", cfg.Particles, cfg.Steps)
	start := time.Now()

	result, err := sim.RunSteps(context.Background(), set, stepper, cfg.Dt, cfg.Steps)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Println("\nlatency:")
	fmt.Printf("  instant: %d us\n", result.Latency.Last.Microseconds())
	fmt.Printf("  average: %d us\n", result.Latency.Average.Microseconds())
	fmt.Printf("  max:     %d us\n", result.Latency.Max.Microseconds())
	fmt.Printf("  steps/sec: %.0f\n", result.Latency.StepsPerSecond())
	fmt.Printf("  mean speed: %.1f\n", physics.MeanSpeed(set))

	return nil
}

func benchPopulations(cmd *cobra.Command, args []string) error {
	populations := []int{500, 5000, 50000}
	dts := []float32{0.01, 0.1, 1.0}

	fmt.Println("benchmarking step latency")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tDT\tSTEPS\tAVG\tMAX\tSTEPS/SEC")

	for _, n := range populations {
		for _, d := range dts {
			rng := rand.New(rand.NewSource(seed))
			set := particle.NewSet(n, config.DefaultBoundary, config.DefaultSpeed, rng)
			stepper := physics.NewStepper(config.DefaultBoundary)

			result, err := sim.RunSteps(context.Background(), set, stepper, d, steps)
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%d\t%.2fs\t%d\t%v\t%v\t%.0f\n",
				n, d, result.Steps,
				result.Latency.Average, result.Latency.Max,
				result.Latency.StepsPerSecond())
		}
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tDT\tSTEPS\tAVG µS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%d\t%.0f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Dt,
			run.Steps,
			run.Metrics["average_us"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d\n", meta.Particles)
	fmt.Printf("samples: %d\n\n", len(samples))

	graph := asciigraph.Plot(samples,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("step latency (us) vs step"),
	)
	fmt.Println(graph)

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
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"step", "latency_us"}); err != nil {
		return err
	}
	for i, v := range samples {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(v, 'f', 0, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
