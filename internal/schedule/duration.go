package schedule

import (
	"strconv"
	"strings"
	"time"
)

// DefaultActivityDuration используется когда длительность не указана
// или не распознана
const DefaultActivityDuration = time.Hour

// ParseDurationText разбирает свободный формат длительности события:
// "1h", "1h30m", "90m", а также голое число ("90" - минуты).
// Непонятный ввод не считается ошибкой - возвращается дефолтная длительность
func ParseDurationText(text string) time.Duration {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return DefaultActivityDuration
	}

	// Голое число трактуем как минуты
	if n, err := strconv.Atoi(text); err == nil {
		if n <= 0 {
			return DefaultActivityDuration
		}
		return time.Duration(n) * time.Minute
	}

	d, err := time.ParseDuration(text)
	if err != nil || d <= 0 {
		return DefaultActivityDuration
	}
	return d
}
