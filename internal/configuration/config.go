package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/voltlab/regen2go/internal/ui"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// rate at which voltage sources are polled by the daemon
	SourcePollingRate time.Duration `json:"sourcePollingRate"`
	// size of the moving window used to smooth monitored voltage values
	VoltageRollingWindowSize int `json:"voltageRollingWindowSize"`

	Regulators []RegulatorConfig `json:"regulators"`
	Sources    []SourceConfig    `json:"sources"`
	Profiles   []ProfileConfig   `json:"profiles"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("regen2go")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/regen2go/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/regen2go/regen2go.db")
	viper.SetDefault("SourcePollingRate", 200*time.Millisecond)
	viper.SetDefault("VoltageRollingWindowSize", 10)

	viper.SetDefault("regulators", []RegulatorConfig{})
	viper.SetDefault("sources", []SourceConfig{})
	viper.SetDefault("profiles", []ProfileConfig{})
}

// DetectConfigFile returns the path of the config file that viper
// resolved, reading it in the process.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			profilePointsHookFunc(),
		),
	))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
