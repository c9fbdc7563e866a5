// Package scoring turns free-text CVs into structured suitability assessments
// through an external language model. Every call either yields a validated
// Result or a *Failure describing why it did not.
package scoring

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/JaimeStill/screener/pkg/formatting"
	"github.com/JaimeStill/screener/pkg/metrics"
)

//go:embed prompt.txt
var promptTemplate string

//go:embed schema.json
var responseSchema string

var schema = mustSchema(responseSchema)

// Generator sends a prompt to a text model and returns its raw reply.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Client scores CV text against a job context.
type Client struct {
	gen          Generator
	logger       *slog.Logger
	metrics      *collectors
	maxLogLength int
}

// New creates a Client. maxLogLength bounds how much of a rejected response is logged.
func New(gen Generator, m metrics.System, logger *slog.Logger, maxLogLength int) *Client {
	return &Client{
		gen:          gen,
		logger:       logger.With("system", "scoring"),
		metrics:      newCollectors(m),
		maxLogLength: maxLogLength,
	}
}

// Prompt renders the scoring prompt for the given CV text and job context.
func Prompt(cvText, jobContext string) string {
	return strings.NewReplacer(
		"{{JOB_CONTEXT}}", strings.TrimSpace(jobContext),
		"{{CV_TEXT}}", strings.TrimSpace(cvText),
	).Replace(promptTemplate)
}

// Score makes at most one remote call and never retries. Errors are always *Failure.
func (c *Client) Score(ctx context.Context, cvText, jobContext string) (*Result, error) {
	if strings.TrimSpace(cvText) == "" {
		return nil, c.reject(fail(KindInput, errors.New("cv text is empty")), "")
	}

	start := time.Now()
	raw, err := c.gen.GenerateContent(ctx, Prompt(cvText, jobContext))
	c.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, c.reject(fail(KindRemote, err), "")
	}

	result, failure := Decode(raw)
	if failure != nil {
		return nil, c.reject(failure, raw)
	}

	c.metrics.success()
	c.logger.Debug("cv scored", "score", result.Score, "skills", len(result.Skills))
	return result, nil
}

// Decode strips response envelopes, validates the body against the response
// schema, and converts it into a Result.
func Decode(raw string) (*Result, *Failure) {
	body := strings.TrimSpace(formatting.StripFence(raw))
	if body == "" {
		return nil, fail(KindEmpty, errors.New("response body is blank"))
	}

	if !json.Valid([]byte(body)) {
		return nil, fail(KindMalformed, errors.New("response body is not json"))
	}

	validation, err := schema.Validate(gojsonschema.NewStringLoader(body))
	if err != nil {
		return nil, fail(KindMalformed, err)
	}
	if !validation.Valid() {
		fields := make([]string, 0, len(validation.Errors()))
		for _, desc := range validation.Errors() {
			fields = append(fields, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return nil, &Failure{
			Kind:   KindSchema,
			Fields: fields,
			Err:    errors.New("response does not match schema"),
		}
	}

	wire, err := formatting.Parse[wireResult](body)
	if err != nil {
		return nil, fail(KindSchema, err)
	}

	return wire.result(), nil
}

func (c *Client) reject(f *Failure, raw string) error {
	c.metrics.failure(f.Kind)

	attrs := []any{"kind", f.Kind, "error", f.Err}
	if len(f.Fields) > 0 {
		attrs = append(attrs, "fields", f.Fields)
	}
	if raw != "" {
		attrs = append(attrs, "response", formatting.Truncate(raw, c.maxLogLength))
	}
	c.logger.Warn("scoring failed", attrs...)

	return f
}

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("scoring: invalid response schema: %v", err))
	}
	return s
}
