package platform

// Helpers for reading raw profile maps. Values may come straight from
// typed structs (int, string) or from decoded JSON (float64), so each
// accessor tries the keys in order and handles both shapes.

// GetString returns the first non-empty string value among keys
func GetString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := data[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// GetInt returns the first numeric value among keys, truncated to int
func GetInt(data map[string]any, keys ...string) int {
	for _, key := range keys {
		if v, ok := data[key]; ok {
			switch n := v.(type) {
			case int:
				return n
			case int64:
				return int(n)
			case float64:
				return int(n)
			}
		}
	}
	return 0
}

// GetFloat returns the first numeric value among keys as float64
func GetFloat(data map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := data[key]; ok {
			switch n := v.(type) {
			case float64:
				return n
			case int:
				return float64(n)
			case int64:
				return float64(n)
			}
		}
	}
	return 0
}

// GetMap returns a nested map value, or nil
func GetMap(data map[string]any, key string) map[string]any {
	if v, ok := data[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}
