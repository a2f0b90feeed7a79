package mod

import (
	"strconv"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/errors"
)

// Mute bounds
const (
	DefaultMuteDuration = "10m"
	MaxMuteDuration     = 28 * 24 * time.Hour
)

var durationUnits = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
}

const invalidDuration = "❌ Invalid duration format. Use: 10s, 10m, 1h, or 1d"

// ParseDuration parses "<amount><unit>" with unit one of s, m, h or d.
// The amount must be a positive integer.
func ParseDuration(raw string) (time.Duration, error) {
	if len(raw) < 2 {
		return 0, errors.Parse(invalidDuration)
	}
	unit, ok := durationUnits[raw[len(raw)-1]]
	if !ok {
		return 0, errors.Parse(invalidDuration)
	}
	digits := raw[:len(raw)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, errors.Parse(invalidDuration)
		}
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || amount <= 0 {
		return 0, errors.Parse(invalidDuration)
	}
	if amount > int64(MaxMuteDuration/unit) {
		return 0, errors.Parse("❌ A mute cannot last longer than 28 days.")
	}
	return time.Duration(amount) * unit, nil
}
