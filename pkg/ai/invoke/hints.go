package invoke

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// maxHintSeconds caps a provider hint before it is turned into a Duration.
const maxHintSeconds = 3600

// HintMatcher extracts a provider-suggested retry delay from error text.
type HintMatcher func(text string) (time.Duration, bool)

var (
	// "retryDelay": "12s" in Google RPC error details
	retryDelayPattern = regexp.MustCompile(`"?retryDelay"?\s*[:=]\s*"?(\d+(?:\.\d+)?)s`)
	// "Please retry in 12.5s."
	retryInPattern = regexp.MustCompile(`(?i)retry in\s+(\d+(?:\.\d+)?)\s*s`)
)

func RetryDelayHint(text string) (time.Duration, bool) {
	return matchSeconds(retryDelayPattern, text)
}

func RetryInHint(text string) (time.Duration, bool) {
	return matchSeconds(retryInPattern, text)
}

// FirstHint tries each matcher in order and keeps the first hit.
func FirstHint(matchers ...HintMatcher) HintMatcher {
	return func(text string) (time.Duration, bool) {
		for _, m := range matchers {
			if m == nil {
				continue
			}
			if d, ok := m(text); ok {
				return d, true
			}
		}
		return 0, false
	}
}

func DefaultHintMatcher() HintMatcher {
	return FirstHint(RetryDelayHint, RetryInHint)
}

func matchSeconds(re *regexp.Regexp, text string) (time.Duration, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0, false
	}
	secs, err := strconv.ParseFloat(m[1], 64)
	if err != nil || secs < 0 || math.IsInf(secs, 0) {
		return 0, false
	}
	if secs > maxHintSeconds {
		secs = maxHintSeconds
	}
	return time.Duration(secs * float64(time.Second)), true
}
