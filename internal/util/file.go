package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
)

// ReadFloatFromFile reads a single float value from the given file path.
// Used for file based voltage sources, e.g. an ADC bridge exporting
// the sampled bus voltage as text.
func ReadFloatFromFile(path string) (value float64, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	text := string(data)
	if len(text) <= 0 {
		return 0, fmt.Errorf("file is empty: %s", path)
	}
	text = strings.TrimSpace(text)
	value, err = strconv.ParseFloat(text, 64)
	return value, err
}

// WriteStringToFileAtomic writes the given content to the file path
// using a write-to-temp-and-rename strategy, so readers never observe
// a partially written file.
func WriteStringToFileAtomic(content string, path string) error {
	evaluatedPath, err := resolvePath(path)
	if len(evaluatedPath) > 0 && err == nil {
		path = evaluatedPath
	}
	reader := strings.NewReader(content)
	return atomic.WriteFile(path, reader)
}

func resolvePath(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}
