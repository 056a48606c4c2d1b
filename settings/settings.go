package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/world"
	"github.com/pelletier/go-toml"
)

// Settings contains everything that can be configured for a simulation and the runner driving it.
type Settings struct {
	World struct {
		// MinY and MaxY are the lowest and highest layer of the world.
		MinY int
		MaxY int
		// Border is the horizontal distance from the origin beyond which no voxel can be placed.
		Border int
	}
	Runner struct {
		// Workers is the amount of scenarios run at the same time. Zero uses one worker per CPU.
		Workers int
		// LogLevel is one of debug, info, warn or error.
		LogLevel string
		// StatsAddress is the address runtime charts are served on. Charts are disabled if it is empty.
		StatsAddress string
		// SentryDSN is the DSN crashes are reported to. Reporting is disabled if it is empty.
		SentryDSN string
		// SnapshotDir is the directory the world of every failed scenario is saved to. Nothing is saved if it
		// is empty.
		SnapshotDir string
	}
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	settings := Settings{}
	settings.World.MinY = world.Overworld.Range.Min()
	settings.World.MaxY = world.Overworld.Range.Max()
	settings.World.Border = world.Overworld.Border

	settings.Runner.LogLevel = "info"
	return settings
}

// Dimension returns the world dimension described by the settings.
func (s Settings) Dimension() world.Dimension {
	return world.Dimension{Range: cube.Range{s.World.MinY, s.World.MaxY}, Border: s.World.Border}
}

// Level returns the slog level matching Runner.LogLevel.
func (s Settings) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.Runner.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	s := DefaultSettings()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if data, err := toml.Marshal(s); err != nil {
			return fmt.Errorf("failed encoding default settings: %v", err)
		} else if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed creating settings file: %v", err)
		}
		return nil
	}
	return errors.New("settings file already exists")
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, errors.New("settings file doesn't exist")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %v", err)
	}

	settings := DefaultSettings()
	if err = toml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %v", err)
	}
	if settings.World.MinY > settings.World.MaxY {
		return Settings{}, fmt.Errorf("invalid world range [%v, %v]", settings.World.MinY, settings.World.MaxY)
	}
	return settings, nil
}
