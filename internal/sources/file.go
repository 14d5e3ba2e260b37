package sources

import (
	"fmt"
	"math"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/util"
)

// FileSource samples the bus voltage from a text file, e.g. a path an
// ADC bridge keeps updated with the latest measurement.
type FileSource struct {
	Config    configuration.SourceConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`
}

func (source *FileSource) GetId() string {
	return source.Config.ID
}

func (source *FileSource) GetConfig() configuration.SourceConfig {
	return source.Config
}

func (source *FileSource) GetValue() (float64, error) {
	filePath := source.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return 0, err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	value, err := util.ReadFloatFromFile(filePath)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("non-finite voltage sample in %s: %v", filePath, value)
	}
	return value, nil
}

func (source *FileSource) GetMovingAvg() (avg float64) {
	return source.MovingAvg
}

func (source *FileSource) SetMovingAvg(avg float64) {
	source.MovingAvg = avg
}
