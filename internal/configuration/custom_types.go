package configuration

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// profilePointsHookFunc returns a mapstructure decode hook that converts
// the YAML representation of profile points into ProfilePoints. YAML
// decodes numeric map keys as interface{} values (and viper lowercases
// string keys), so the keys arrive as a mix of float64, int and string.
func profilePointsHookFunc() mapstructure.DecodeHookFuncType {
	pointsType := reflect.TypeOf(ProfilePoints{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != pointsType {
			return data, nil
		}

		points, err := parsePointMap(data)
		if err != nil {
			return nil, err
		}
		return points, nil
	}
}

// parsePointMap converts various map types (from YAML decoding) into ProfilePoints.
func parsePointMap(data interface{}) (ProfilePoints, error) {
	result := ProfilePoints{}
	switch v := data.(type) {
	case map[interface{}]interface{}:
		for k, val := range v {
			key, err := anyToFloat(k)
			if err != nil {
				return nil, fmt.Errorf("invalid point time %v: %w", k, err)
			}
			value, err := anyToFloat(val)
			if err != nil {
				return nil, fmt.Errorf("invalid point voltage %v: %w", val, err)
			}
			result[key] = value
		}
	case map[string]interface{}:
		for k, val := range v {
			key, err := anyToFloat(k)
			if err != nil {
				return nil, fmt.Errorf("invalid point time %q: %w", k, err)
			}
			value, err := anyToFloat(val)
			if err != nil {
				return nil, fmt.Errorf("invalid point voltage %v: %w", val, err)
			}
			result[key] = value
		}
	case map[float64]float64:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported point map type %T", data)
	}
	return result, nil
}

// anyToFloat converts numeric and string values to float64.
func anyToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as float: %w", val, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}
