package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"dogstory.ai/internal/persistence/records"
	"dogstory.ai/internal/persistence/snapshot"
	"dogstory.ai/internal/sim/app"
	"dogstory.ai/internal/sim/catalogs"
	"dogstory.ai/internal/sim/tuning"
)

func main() {
	var (
		configPath = flag.String("config", "./data/config.json", "game config path")
		tuningPath = flag.String("tuning", "", "tuning yaml path (optional)")
	)
	flag.Parse()

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		logrus.WithError(err).Fatal("load tuning")
	}

	log := newLogger(tune.LogLevel)

	game, err := catalogs.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("load game config")
	}

	store, err := records.Open(tune.RecordsPath, time.Duration(tune.RecordsTimeoutMs)*time.Millisecond)
	if err != nil {
		log.WithError(err).Fatal("open records db")
	}
	defer store.Close()

	application := app.NewApplication(game, store, app.Options{
		RandomizeSpawns: tune.RandomizeSpawns,
		Log:             log,
	})

	if tune.SnapshotPath != "" {
		if err := restoreSnapshot(tune.SnapshotPath, application, log); err != nil {
			log.WithError(err).Fatal("restore snapshot")
		}
	}

	if tune.SnapshotPath != "" && tune.SnapshotPeriodMs > 0 {
		installSnapshotHook(application, tune, log)
	}

	runtime := app.NewRuntime(application, time.Duration(tune.TickPeriodMs)*time.Millisecond, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"maps":     len(game.Maps()),
		"periodic": runtime.Periodic(),
	}).Info("server started")

	if err := runtime.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("runtime stopped")
	}

	// The strand is down; nothing else touches the application now.
	if tune.SnapshotPath != "" {
		if err := snapshot.Write(tune.SnapshotPath, snapshot.Capture(application)); err != nil {
			log.WithError(err).Error("final snapshot")
		} else {
			log.Info("final snapshot written")
		}
	}
	log.Info("server stopped")
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.SetOutput(os.Stdout)
	return log
}

func restoreSnapshot(path string, application *app.Application, log *logrus.Logger) error {
	state, err := snapshot.Read(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Info("no snapshot, starting fresh")
			return nil
		}
		return err
	}
	if err := snapshot.Restore(state, application); err != nil {
		return err
	}
	log.WithField("path", path).Info("snapshot restored")
	return nil
}

// installSnapshotHook saves the state every SnapshotPeriodMs of simulated
// time. The hook runs on the strand, so capture is consistent; the write
// itself is quick enough for the tick budget at these state sizes.
func installSnapshotHook(application *app.Application, tune tuning.Tuning, log *logrus.Logger) {
	period := time.Duration(tune.SnapshotPeriodMs) * time.Millisecond
	var sinceSave time.Duration
	application.OnTick(func(delta time.Duration) {
		sinceSave += delta
		if sinceSave < period {
			return
		}
		sinceSave = 0
		if err := snapshot.Write(tune.SnapshotPath, snapshot.Capture(application)); err != nil {
			log.WithError(err).Error("periodic snapshot")
		}
	})
}
