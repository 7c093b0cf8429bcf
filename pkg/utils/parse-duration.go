package utils

import (
	"fmt"
	"time"
)

// ParseDurationString parses duration values from the config file, e.g.
// "30s" or "12h". Day and larger units are not supported.
func ParseDurationString(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid time duration '%s': %s", value, err.Error())
	}
	return d, nil
}
