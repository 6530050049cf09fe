package llm

import (
	"context"
	"fmt"
	"strings"
)

// ContentBlock is one unit of a multimodal request: TextBlock or AttachmentBlock.
type ContentBlock interface {
	isContentBlock()
}

type TextBlock struct {
	Text string
}

type AttachmentBlock struct {
	Data     []byte
	MimeType string
	Name     string // optional, used by providers that cannot take binary parts
}

func (TextBlock) isContentBlock()       {}
func (AttachmentBlock) isContentBlock() {}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature  float64
	MaxTokens    int
	Model        string // Override default model
	JSONResponse bool
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithJSONResponse asks the provider for a JSON payload when it supports it.
func WithJSONResponse() Option {
	return func(o *Options) {
		o.JSONResponse = true
	}
}

func ApplyOptions(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Generate sends the system instruction and ordered content blocks and returns the text answer
	Generate(ctx context.Context, system string, blocks []ContentBlock, options ...Option) (string, error)
}

// ProviderError is returned for non-2xx answers. Body is kept verbatim because
// retry hints live in it.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error: status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *ProviderError) HTTPStatusCode() int {
	return e.StatusCode
}

// FlattenText renders blocks as a single prompt for text-only backends.
// Attachments are replaced by a short notice.
func FlattenText(blocks []ContentBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		switch b := block.(type) {
		case TextBlock:
			if strings.TrimSpace(b.Text) != "" {
				parts = append(parts, b.Text)
			}
		case AttachmentBlock:
			name := b.Name
			if name == "" {
				name = "document"
			}
			parts = append(parts, fmt.Sprintf("[Pièce jointe non transmise : %s (%s, %d octets)]", name, b.MimeType, len(b.Data)))
		}
	}
	return strings.Join(parts, "\n\n")
}
