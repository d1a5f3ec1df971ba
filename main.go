package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"roastsim/conf"
	"roastsim/flavor"
	"roastsim/library"
	"roastsim/model"
	"roastsim/server"
	"roastsim/simulator"
)

var (
	configPath string

	simName    string
	simVariant string
	simSpeed   string
	simSave    bool
	simParams  model.RoastParameters
)

var rootCmd = &cobra.Command{
	Use:           "roastsim",
	Short:         "roastsim - coffee roast curve simulator",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket server",
	RunE:  runServe,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one roast and print its curve summary and flavor profile",
	RunE:  runSimulate,
}

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved roasts",
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved roasts",
	RunE:  runLibraryList,
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved roast",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryDelete,
}

var libraryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved roast",
	RunE:  runLibraryClear,
}

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the library as YAML to stdout",
	RunE:  runLibraryExport,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", conf.DefaultPath, "config file")

	f := simulateCmd.Flags()
	f.StringVarP(&simName, "name", "n", "Etiopien G1", "roast name")
	f.StringVar(&simVariant, "variant", "", "empirical | phase (default from config)")
	f.StringVar(&simSpeed, "speed", "", fmt.Sprintf("playback speed, one of %v (default from config)", model.PlaybackSpeeds))
	f.BoolVar(&simSave, "save", false, "save the roast to the library")
	f.Float64Var(&simParams.BatchGrams, "batch", 500, "batch size (g)")
	f.Float64Var(&simParams.ChargeTempC, "charge", 220, "charge temperature (°C)")
	f.Float64Var(&simParams.BeanDensity, "density", 1.0, "bean density: 0.8, 1.0 or 1.2")
	f.Float64Var(&simParams.TotalTimeMin, "time", 10, "total time (min), empirical model")
	f.Float64Var(&simParams.DryTimeMin, "dry", 4, "drying time (min)")
	f.Float64Var(&simParams.MaillardTimeMin, "maillard", 3.5, "maillard time (min)")
	f.Float64Var(&simParams.DevTimeMin, "dev", 1.5, "development time (min)")
	f.Float64Var(&simParams.DropTempC, "drop", 208, "drop temperature (°C)")

	libraryCmd.AddCommand(libraryListCmd, libraryDeleteCmd, libraryClearCmd, libraryExportCmd)
	rootCmd.AddCommand(serveCmd, simulateCmd, libraryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func loadConfig() (*conf.Config, error) {
	cfg, err := conf.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	conf.SetupLogger(cfg.Log)
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	repo, err := library.Open(cfg.Library)
	if err != nil {
		return err
	}
	defer repo.Close()

	upgrader := websocket.Upgrader{
		ReadBufferSize:  cfg.Server.ReadBufferSize,
		WriteBufferSize: cfg.Server.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	return server.NewServer(cfg.Server.Addr, upgrader, repo, cfg.Simulation).Serve()
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if simVariant == "" {
		simVariant = cfg.Simulation.Variant
	}
	if simSpeed == "" {
		simSpeed = cfg.Simulation.Speed
	}
	variant, err := model.ParseVariant(simVariant)
	if err != nil {
		return err
	}
	if simParams.Speed, err = model.ParseSpeed(simSpeed); err != nil {
		return err
	}

	series, err := simulator.Simulate(simParams, variant)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !simParams.Speed.IsInstant() {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = simulator.NewPlayer(cfg.Simulation.WindowSize).Play(ctx, series, simParams.Speed,
			func(point model.SamplePushData) error {
				_, err := fmt.Fprintf(out, "%4ds  %7.2f°C\n", point.Second, point.Temperature)
				return err
			})
		if err != nil {
			return fmt.Errorf("playback: %w", err)
		}
	}

	record := model.NewRecord(simName, variant, simParams, series)
	if err := printRecord(out, record); err != nil {
		return err
	}

	if simSave {
		repo, err := library.Open(cfg.Library)
		if err != nil {
			return err
		}
		defer repo.Close()
		if err := repo.Save(record); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %q\n", record.Name)
	}
	return nil
}

func printRecord(w io.Writer, r *model.RoastRecord) error {
	fmt.Fprintf(w, "%s (%s): %d s, start %.1f°C, end %.2f°C, total %.2f min\n",
		r.Name, r.Variant, r.Series.Len(), r.Series.Start(), r.Series.Last(), r.Metrics.TotalTimeMin)
	markers := simulator.PhaseMarkers(r.Parameters, r.Variant)
	for i, sec := range markers {
		fmt.Fprintf(w, "  phase %d ends at %d s: %.2f°C\n", i+1, sec, r.Series.At(sec))
	}
	if r.Variant != model.PhaseBased {
		return nil
	}
	a, err := flavor.Evaluate(r)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  DTR %.2f%%\n  acidity: %s\n  body: %s\n", r.Metrics.DTR, a.Acidity, a.Body)
	for _, note := range a.Notes() {
		fmt.Fprintf(w, "  - %s\n", note)
	}
	return nil
}

func openLibrary() (library.Repository, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return library.Open(cfg.Library)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	repo, err := openLibrary()
	if err != nil {
		return err
	}
	defer repo.Close()
	records, err := repo.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "library is empty")
		return nil
	}
	for _, d := range library.Details(records) {
		fmt.Fprintf(out, "%-24s %-9s %6.0fg %5.0f°C %6.2f min", d.Name, d.Variant, d.BatchGrams, d.ChargeTempC, d.TotalTimeMin)
		if d.Variant == model.PhaseBased.String() {
			fmt.Fprintf(out, "  DTR %5.2f%%  drop %5.1f°C", d.DTR, d.DropTempC)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runLibraryDelete(cmd *cobra.Command, args []string) error {
	repo, err := openLibrary()
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.Delete(args[0]); err != nil {
		return fmt.Errorf("delete %q: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", args[0])
	return nil
}

func runLibraryClear(cmd *cobra.Command, args []string) error {
	repo, err := openLibrary()
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "library cleared")
	return nil
}

func runLibraryExport(cmd *cobra.Command, args []string) error {
	repo, err := openLibrary()
	if err != nil {
		return err
	}
	defer repo.Close()
	records, err := repo.List()
	if err != nil {
		return err
	}
	return library.Export(cmd.OutOrStdout(), records)
}
