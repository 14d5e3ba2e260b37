package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/looplab/tarjan"
	"github.com/voltlab/regen2go/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateSources(config)
	if err != nil {
		return err
	}
	err = validateProfiles(config)
	if err != nil {
		return err
	}
	return validateRegulators(config)
}

func validateRegulators(config *Configuration) error {
	if len(config.Regulators) == 0 {
		return errors.New("No regulator configured, add at least one regulators entry")
	}

	seen := map[string]bool{}
	for _, regulatorConfig := range config.Regulators {
		if seen[regulatorConfig.ID] {
			return fmt.Errorf("Regulator %s: duplicate id", regulatorConfig.ID)
		}
		seen[regulatorConfig.ID] = true

		if len(regulatorConfig.Source) <= 0 {
			return fmt.Errorf("Regulator %s: missing source id", regulatorConfig.ID)
		}
		if !sourceIdExists(regulatorConfig.Source, config) {
			return fmt.Errorf("Regulator %s: no source definition with id '%s' found",
				regulatorConfig.ID, regulatorConfig.Source)
		}

		if regulatorConfig.TickInterval <= 0 {
			return fmt.Errorf("Regulator %s: tickInterval must be positive", regulatorConfig.ID)
		}
		if regulatorConfig.MinimumVoltage >= regulatorConfig.ThresholdVoltage {
			return fmt.Errorf("Regulator %s: minimumVoltage (%g) must be below thresholdVoltage (%g)",
				regulatorConfig.ID, regulatorConfig.MinimumVoltage, regulatorConfig.ThresholdVoltage)
		}
		if regulatorConfig.Kp < 0 || regulatorConfig.Ki < 0 || regulatorConfig.Kd < 0 {
			return fmt.Errorf("Regulator %s: gains must not be negative", regulatorConfig.ID)
		}
		if regulatorConfig.Kp == 0 && regulatorConfig.Ki == 0 && regulatorConfig.Kd == 0 {
			return fmt.Errorf("Regulator %s: all PID gains are zero", regulatorConfig.ID)
		}
		if regulatorConfig.MaxCurrent <= 0 {
			return fmt.Errorf("Regulator %s: maxCurrent must be positive", regulatorConfig.ID)
		}
		if regulatorConfig.IntegralLimit < 0 {
			return fmt.Errorf("Regulator %s: integralLimit must not be negative", regulatorConfig.ID)
		}
		if regulatorConfig.EngageCurrent < 0 {
			return fmt.Errorf("Regulator %s: engageCurrent must not be negative", regulatorConfig.ID)
		}
	}

	return nil
}

func validateSources(config *Configuration) error {
	for _, sourceConfig := range config.Sources {
		subConfigs := 0
		if sourceConfig.File != nil {
			subConfigs++
		}
		if sourceConfig.Profile != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("Source %s: only one source type can be used per source definition block", sourceConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("Source %s: sub-configuration for source is missing, use one of: file | profile", sourceConfig.ID)
		}

		if !isSourceConfigInUse(sourceConfig, config.Regulators) {
			ui.Warning("Unused source configuration: %s", sourceConfig.ID)
		}

		if sourceConfig.File != nil {
			if len(sourceConfig.File.Path) <= 0 {
				return fmt.Errorf("Source %s: no file path provided", sourceConfig.ID)
			}
		}

		if sourceConfig.Profile != nil {
			if !profileIdExists(sourceConfig.Profile.Profile, config) {
				return fmt.Errorf("Source %s: no profile definition with id '%s' found",
					sourceConfig.ID, sourceConfig.Profile.Profile)
			}
		}
	}

	return nil
}

func isSourceConfigInUse(config SourceConfig, regulators []RegulatorConfig) bool {
	for _, regulatorConfig := range regulators {
		if regulatorConfig.Source == config.ID {
			return true
		}
	}

	return false
}

func validateProfiles(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	for _, profileConfig := range config.Profiles {
		subConfigs := 0
		if profileConfig.Points != nil {
			subConfigs++
		}
		if profileConfig.Composite != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("Profile %s: only one profile type can be used per profile definition block", profileConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("Profile %s: sub-configuration for profile is missing, use one of: points | composite", profileConfig.ID)
		}

		if profileConfig.Points != nil {
			if profileConfig.Duration <= 0 {
				return fmt.Errorf("Profile %s: duration must be positive", profileConfig.ID)
			}

			for pointTime := range profileConfig.Points {
				if pointTime > profileConfig.Duration.Seconds() {
					return fmt.Errorf("Profile %s: point at %gs exceeds the profile duration of %s",
						profileConfig.ID, pointTime, profileConfig.Duration)
				}
			}

			supportedTypes := []string{InterpolationStep, InterpolationLinear}
			if profileConfig.Interpolation != "" && !slices.Contains(supportedTypes, profileConfig.Interpolation) {
				return fmt.Errorf("Profile %s: unsupported interpolation '%s', use one of: %s",
					profileConfig.ID, profileConfig.Interpolation, strings.Join(supportedTypes, " | "))
			}
		}

		if profileConfig.Composite != nil {
			if len(profileConfig.Composite) == 0 {
				return fmt.Errorf("Profile %s: composite must reference at least one profile", profileConfig.ID)
			}
			var connections []interface{}
			for _, part := range profileConfig.Composite {
				if part == profileConfig.ID {
					return fmt.Errorf("Profile %s: a profile cannot reference itself", profileConfig.ID)
				}
				if !profileIdExists(part, config) {
					return fmt.Errorf("Profile %s: no profile definition with id '%s' found", profileConfig.ID, part)
				}
				connections = append(connections, part)
			}
			graph[profileConfig.ID] = connections
		}
	}

	return validateNoLoops(graph)
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("You have created a profile dependency cycle: %v", items)
		}
	}
	return nil
}

func sourceIdExists(sourceId string, config *Configuration) bool {
	for _, source := range config.Sources {
		if source.ID == sourceId {
			return true
		}
	}

	return false
}

func profileIdExists(profileId string, config *Configuration) bool {
	for _, profile := range config.Profiles {
		if profile.ID == profileId {
			return true
		}
	}

	return false
}
