package config

import (
	"errors"
	"fmt"

	"flight-simulator/internal/game/simulation"
	"flight-simulator/pkg/types"

	"github.com/spf13/viper"
)

const CONFIG_NAME = "flightsim.json"

// Load reads configuration from a JSON file in configDir and sets default
// values. A missing file is not an error; defaults apply.
func Load(configDir string) error {
	def := simulation.DefaultConfig()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "")

	viper.SetDefault("sim.tickRate", def.TickRate)
	viper.SetDefault("sim.maxDelta", def.MaxDelta)
	viper.SetDefault("sim.trailPoints", def.TrailPoints)

	viper.SetDefault("camera.projectionDuration", def.ProjectionDuration)
	viper.SetDefault("controls.climbFraction", def.ClimbFraction)

	viper.SetDefault("start.lat", def.Start.Lat)
	viper.SetDefault("start.lng", def.Start.Lng)
	viper.SetDefault("start.altitudeFt", def.AltitudeFt)
	viper.SetDefault("start.speedTier", def.SpeedTier)
	viper.SetDefault("start.headingDeg", def.HeadingDeg)
	viper.SetDefault("start.globe", def.Globe)

	viper.SetDefault("window.width", int(def.Viewport.X))
	viper.SetDefault("window.height", int(def.Viewport.Y))

	viper.SetDefault("replay.record", "")
	viper.SetDefault("replay.play", "")

	viper.SetConfigName(CONFIG_NAME)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Simulation builds the simulation config from the loaded values.
func Simulation() simulation.Config {
	return simulation.Config{
		TickRate:      viper.GetFloat64("sim.tickRate"),
		MaxDelta:      viper.GetFloat64("sim.maxDelta"),
		TrailPoints:   viper.GetInt("sim.trailPoints"),
		ClimbFraction: viper.GetFloat64("controls.climbFraction"),
		Viewport:      types.NewVec2(float64(WindowWidth()), float64(WindowHeight())),

		ProjectionDuration: viper.GetFloat64("camera.projectionDuration"),

		Start:      types.NewLatLng(viper.GetFloat64("start.lat"), viper.GetFloat64("start.lng")),
		AltitudeFt: viper.GetFloat64("start.altitudeFt"),
		SpeedTier:  viper.GetInt("start.speedTier"),
		HeadingDeg: viper.GetFloat64("start.headingDeg"),
		Globe:      viper.GetBool("start.globe"),
	}
}

func WindowWidth() int {
	return viper.GetInt("window.width")
}

func WindowHeight() int {
	return viper.GetInt("window.height")
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
