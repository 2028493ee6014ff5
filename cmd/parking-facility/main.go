package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-facility/internal/config"
	"parking-facility/internal/logging"
	"parking-facility/internal/parking"
	"parking-facility/internal/server"
)

var (
	mode    = flag.String("mode", "server", "Mode to run: cli, server, or both")
	pricing = flag.String("pricing", "dynamic", "Pricing policy: dynamic or perhour")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Init(true)
		logging.Logger().Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(cfg.IsDevelopment())
	log := logging.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetry, err := parking.NewTelemetryProvider()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	facility, err := buildFacility(cfg, *pricing)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build facility")
	}

	instrumented, err := parking.NewInstrumentedFacility(facility, telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to instrument facility")
	}

	summary := instrumented.CapacitySummary()
	log.Info().
		Int("floors", len(summary.PerFloor)).
		Int("total_slots", summary.TotalSlots).
		Strs("entry_gates", cfg.EntryGates).
		Strs("exit_gates", cfg.ExitGates).
		Msg("facility ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch *mode {
	case "cli":
		runCLI(ctx, cancel, instrumented, telemetry, sigChan)
	case "server":
		runServer(cfg, instrumented, telemetry, sigChan)
	case "both":
		runBoth(ctx, cfg, instrumented, telemetry, sigChan)
	default:
		log.Fatal().Str("mode", *mode).Msg("invalid mode, must be cli, server, or both")
	}
}

func buildFacility(cfg *config.Config, pricing string) (*parking.Facility, error) {
	var pricer parking.Pricer
	switch pricing {
	case "perhour":
		pricer = parking.PerHourPricer{}
	default:
		pricer = parking.DynamicPricer{}
	}

	layouts := make([]parking.FloorLayout, cfg.Floors)
	for i := range layouts {
		layouts[i] = parking.FloorLayout{
			Small:         cfg.SmallPerFloor,
			Medium:        cfg.MediumPerFloor,
			Large:         cfg.LargePerFloor,
			ChargingRatio: cfg.ChargingRatio,
		}
	}

	// Gates sit on the ground floor.
	var entryGates, exitGates []parking.Gate
	for _, id := range cfg.EntryGates {
		entryGates = append(entryGates, parking.Gate{ID: id, Floor: 0})
	}
	for _, id := range cfg.ExitGates {
		exitGates = append(exitGates, parking.Gate{ID: id, Floor: 0})
	}

	return parking.BuildFacility(parking.NearestSlotAllocator{}, pricer, layouts, entryGates, exitGates)
}

func runCLI(ctx context.Context, cancel context.CancelFunc, facility *parking.InstrumentedFacility, telemetry *parking.TelemetryProvider, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		logging.Logger().Info().Msg("shutting down")
		cancel()
	}()

	shell := parking.NewShell(facility, telemetry)
	shell.Run(ctx)

	shutdownTelemetry(telemetry)
}

func runServer(cfg *config.Config, facility *parking.InstrumentedFacility, telemetry *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(cfg.Port, facility)

	go func() {
		<-sigChan
		logging.Logger().Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("server shutdown error")
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Logger().Error().Err(err).Msg("server error")
	}

	shutdownTelemetry(telemetry)
}

func runBoth(ctx context.Context, cfg *config.Config, facility *parking.InstrumentedFacility, telemetry *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(cfg.Port, facility)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan struct{})
	cliCtx, cliCancel := context.WithCancel(ctx)
	go func() {
		shell := parking.NewShell(facility, telemetry)
		shell.Run(cliCtx)
		close(cliDone)
	}()

	go func() {
		<-sigChan
		logging.Logger().Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("server shutdown error")
		}

		cliCancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger().Error().Err(err).Msg("server error")
		}
	case <-cliDone:
	}

	shutdownTelemetry(telemetry)
}

func shutdownTelemetry(telemetry *parking.TelemetryProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := telemetry.Shutdown(ctx); err != nil {
		logging.Logger().Error().Err(err).Msg("telemetry shutdown error")
	}
}
