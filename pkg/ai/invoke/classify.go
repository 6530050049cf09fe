package invoke

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm"
)

type Kind int

const (
	Success Kind = iota
	RetryableFailure
	FatalFailure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case RetryableFailure:
		return "retryable"
	default:
		return "fatal"
	}
}

type Category string

const (
	CategoryQuotaExceeded         Category = "QUOTA_EXCEEDED"
	CategoryOverloaded            Category = "OVERLOADED"
	CategoryProviderError         Category = "PROVIDER_ERROR"
	CategoryDecodeFailure         Category = "DECODE_FAILURE"
	CategoryAttachmentUnavailable Category = "ATTACHMENT_UNAVAILABLE"
)

// Outcome is the result of one attempt, or of the whole bounded call once Invoke returns.
type Outcome struct {
	Kind           Kind
	RawText        string
	Reason         string
	Category       Category
	SuggestedDelay time.Duration
	Attempts       int
}

// Message renders a failure as "[CATEGORY] reason". Empty for a success.
func (o Outcome) Message() string {
	if o.Kind == Success {
		return ""
	}
	return fmt.Sprintf("[%s] %s", o.Category, o.Reason)
}

var quotaMarkers = []string{"quota exceeded", "exceeded your current quota", "resource_exhausted"}

var overloadMarkers = []string{"overloaded", "\"unavailable\""}

// Classify maps a provider error to a retryable or fatal outcome. Reason keeps the error text verbatim.
func Classify(err error) Outcome {
	if err == nil {
		return Outcome{Kind: Success}
	}

	reason := err.Error()
	lower := strings.ToLower(reason)

	status := 0
	var pe *llm.ProviderError
	if errors.As(err, &pe) {
		status = pe.StatusCode
	}

	switch {
	case status == http.StatusTooManyRequests || containsAny(lower, quotaMarkers):
		return Outcome{Kind: RetryableFailure, Category: CategoryQuotaExceeded, Reason: reason}
	case status == http.StatusServiceUnavailable || containsAny(lower, overloadMarkers):
		return Outcome{Kind: RetryableFailure, Category: CategoryOverloaded, Reason: reason}
	default:
		return Outcome{Kind: FatalFailure, Category: CategoryProviderError, Reason: reason}
	}
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
