package invoke

import (
	"context"
	"fmt"
	"time"

	"github.com/Nagchi-Mohamed/MathSophos-sub003/internal/pkg/logger"
	"github.com/Nagchi-Mohamed/MathSophos-sub003/pkg/llm"
)

const module = "InvocationCoordinator"

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

func ContextSleeper(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Config struct {
	MaxRetries   int
	BaseDelay    time.Duration
	SafetyMargin time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxRetries:   3,
		BaseDelay:    15 * time.Second,
		SafetyMargin: 2 * time.Second,
	}
}

type CoordinatorOption func(*Coordinator)

func WithSleeper(s Sleeper) CoordinatorOption {
	return func(c *Coordinator) {
		c.sleep = s
	}
}

func WithHintMatcher(m HintMatcher) CoordinatorOption {
	return func(c *Coordinator) {
		c.hints = m
	}
}

// WithProviderOptions forwards options (model, temperature...) to every attempt.
func WithProviderOptions(opts ...llm.Option) CoordinatorOption {
	return func(c *Coordinator) {
		c.options = append(c.options, opts...)
	}
}

type Coordinator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
	cfg      Config
	sleep    Sleeper
	hints    HintMatcher
	options  []llm.Option
}

func NewCoordinator(provider llm.LLMProvider, logger logger.ILogger, cfg Config, opts ...CoordinatorOption) *Coordinator {
	def := DefaultConfig()
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = def.BaseDelay
	}
	if cfg.SafetyMargin < 0 {
		cfg.SafetyMargin = 0
	}

	c := &Coordinator{
		provider: provider,
		logger:   logger,
		cfg:      cfg,
		sleep:    ContextSleeper,
		hints:    DefaultHintMatcher(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke calls the provider at most MaxRetries+1 times. Only quota and overload
// failures are retried; the raw text of a success is returned untouched.
func (c *Coordinator) Invoke(ctx context.Context, system string, blocks []llm.ContentBlock) Outcome {
	var last Outcome
	maxAttempts := c.cfg.MaxRetries + 1

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := c.provider.Generate(ctx, system, blocks, c.options...)
		if err == nil {
			if attempt > 1 {
				c.logger.Info(module, "Provider call succeeded after retry", map[string]interface{}{
					"attempt": attempt,
				})
			}
			return Outcome{Kind: Success, RawText: raw, Attempts: attempt}
		}

		last = Classify(err)
		last.Attempts = attempt

		if last.Kind == FatalFailure {
			c.logger.Error(module, "Provider call failed", map[string]interface{}{
				"attempt":  attempt,
				"category": string(last.Category),
				"error":    last.Reason,
			})
			return last
		}

		if attempt == maxAttempts {
			break
		}

		delay := c.Delay(attempt, last.Reason)
		last.SuggestedDelay = delay

		c.logger.Warn(module, "Provider call retrying", map[string]interface{}{
			"attempt":     attempt,
			"max_retries": c.cfg.MaxRetries,
			"category":    string(last.Category),
			"sleep":       delay.String(),
			"error":       last.Reason,
		})

		if err := c.sleep(ctx, delay); err != nil {
			return Outcome{
				Kind:     FatalFailure,
				Category: last.Category,
				Reason:   fmt.Sprintf("retry wait interrupted: %v; last error: %s", err, last.Reason),
				Attempts: attempt,
			}
		}
	}

	last.Kind = FatalFailure
	last.SuggestedDelay = 0
	c.logger.Error(module, "Provider retry limit reached", map[string]interface{}{
		"attempts": last.Attempts,
		"category": string(last.Category),
		"error":    last.Reason,
	})
	return last
}

// Delay is hint + SafetyMargin when the error text carries a hint, attempt × BaseDelay otherwise.
// attempt is 1-based.
func (c *Coordinator) Delay(attempt int, errText string) time.Duration {
	if c.hints != nil {
		if hint, ok := c.hints(errText); ok {
			return hint + c.cfg.SafetyMargin
		}
	}
	return time.Duration(attempt) * c.cfg.BaseDelay
}
