package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"codeberg.org/vrekk/battstat/internal/battery"
	"codeberg.org/vrekk/battstat/internal/config"
	"codeberg.org/vrekk/battstat/internal/journal"
	"codeberg.org/vrekk/battstat/internal/logger"
	"codeberg.org/vrekk/battstat/internal/report"
)

const journalTimeout = time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	if level, ok := logger.LevelFromString(cfg.LogLevel); ok && !cfg.Debug && !cfg.Verbose {
		logger.SetLogLevel(level)
	}
	logger.Debug().Msg("Config loaded")

	devices, err := battery.ReadAll(cfg.SysfsPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to read battery telemetry")
	}

	rep := report.Build(devices, cfg.Threshold)

	recordSnapshot(cfg, devices, rep)

	fmt.Println(rep.String())
}

// recordSnapshot writes the run to the journal when enabled. Journal
// failures are warnings: the report line must still be produced.
func recordSnapshot(cfg *config.Config, devices []battery.Device, rep report.Report) {
	recorder, err := journal.NewService(journal.Config{
		Enabled: cfg.Journal,
		DBPath:  cfg.JournalDB,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize journal")
		return
	}
	defer recorder.Close()

	snapshot := &journal.Snapshot{
		Timestamp:    time.Now(),
		Percentage:   rep.Percentage,
		Status:       rep.Status.String(),
		TimeEstimate: rep.TimeEstimate,
		BatteryCount: len(devices),
	}
	for _, device := range devices {
		snapshot.EnergyNow += device.EnergyNow
		snapshot.EnergyFull += device.EnergyFull
		snapshot.PowerNow += device.PowerNow
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()

	if err := recorder.Record(ctx, snapshot); err != nil {
		logger.Warn().Err(err).Msg("failed to record snapshot")
	}
}
