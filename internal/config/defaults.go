// Package config provides configuration handling for safelvgl.
package config

// DefaultPrefix is prepended to every wrapped function name.
const DefaultPrefix = "safe_"

// DefaultBlacklist returns the stock blacklist, excluding the private lvgl
// API from wrapping.
func DefaultBlacklist() []string {
	return []string{`^(_lv){1}`}
}
