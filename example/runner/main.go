package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/pistonsim/scenario"
	"github.com/oomph-ac/pistonsim/settings"
	"github.com/oomph-ac/pistonsim/worker"
	"github.com/sirupsen/logrus"
)

// The following program runs every scenario file passed, or every .yaml file in the directories passed, and
// reports the scenarios that did not meet their expectations.
func main() {
	settingsPath := flag.String("settings", "settings.toml", "path to the settings file, created if it does not exist")
	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Usage: ./runner [-settings settings.toml] <scenario files or directories...>")
		return
	}

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}

	s, err := readSettings(*settingsPath)
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}
	if lvl, err := logrus.ParseLevel(s.Runner.LogLevel); err == nil {
		log.Level = lvl
	}

	if s.Runner.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: s.Runner.SentryDSN}); err != nil {
			log.Fatalf("unable to initialize sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}
	if s.Runner.StatsAddress != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(s.Runner.StatsAddress))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		log.Infof("serving runtime charts on %v", s.Runner.StatsAddress)
	}

	paths, err := scenarioPaths(flag.Args())
	if err != nil {
		log.Fatalf("unable to find scenarios: %v", err)
	}
	simLog := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: s.Level()}))

	var (
		mu     sync.Mutex
		failed int
	)
	fail := func() {
		mu.Lock()
		failed++
		mu.Unlock()
	}

	pool := worker.New(s.Runner.Workers)
	pool.OnPanic = func(name string, v any) {
		log.Errorf("%v: crashed: %v", name, v)
		fail()
	}
	for _, path := range paths {
		pool.Submit(worker.Task{Name: path, Run: func() {
			if !runScenario(path, s, log, simLog) {
				fail()
			}
		}})
	}
	pool.Close()

	if failed > 0 {
		log.Errorf("%v of %v scenarios failed", failed, len(paths))
		sentry.Flush(time.Second * 5)
		os.Exit(1)
	}
	log.Infof("all %v scenarios passed", len(paths))
}

// runScenario loads and runs the scenario at path and returns true if it passed.
func runScenario(path string, s settings.Settings, log *logrus.Logger, simLog *slog.Logger) bool {
	start := time.Now()
	sc, err := scenario.Load(path)
	if err != nil {
		log.Errorf("%v: %v", path, err)
		return false
	}
	res, err := scenario.Run(sc, s, simLog)
	if err != nil {
		log.Errorf("%v: %v", path, err)
		return false
	}

	entry := log.WithFields(logrus.Fields{
		"scenario": res.Name,
		"ticks":    res.Ticks,
		"digest":   fmt.Sprintf("%016x", res.Digest),
		"took":     time.Since(start),
	})
	if res.Passed() {
		entry.Info("passed")
		return true
	}
	entry.Errorf("failed:\n\t%v", strings.Join(res.Mismatches, "\n\t"))

	if s.Runner.SnapshotDir != "" {
		if err := saveSnapshot(s.Runner.SnapshotDir, path, res); err != nil {
			entry.Warnf("unable to save snapshot: %v", err)
		}
	}
	return false
}

// saveSnapshot writes the moving voxels of the final world of res to a file in dir named after the scenario
// file.
func saveSnapshot(dir, path string, res scenario.Result) (err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".snapshot"
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return res.Sim.Save(f)
}

// readSettings loads the settings file at path, writing the default settings to it first if it does not exist.
func readSettings(path string) (settings.Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := settings.SaveDefault(path); err != nil {
			return settings.Settings{}, err
		}
	}
	return settings.Load(path)
}

// scenarioPaths expands every directory in args into the .yaml and .yml files directly inside of it.
func scenarioPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, err
			}
			paths = append(paths, matches...)
		}
	}
	return paths, nil
}
