// Package narrative turns report figures into prose.
//
// A Narrator asks a language model for the text and falls back to a
// fixed template built from the same figures whenever the model is not
// configured, fails or takes too long. Callers always receive a report.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// SourceFallback is the source of reports built from the fallback templates.
const SourceFallback = "fallback"

// DefaultTimeout is used when a Narrator is created without a timeout.
const DefaultTimeout = 30 * time.Second

var (
	ErrNotConfigured = errors.New("no language model is configured")
	ErrEmptyResponse = errors.New("the language model returned an empty response")
)

// system is sent with every prompt.
const system = `You are the financial secretary of a church district.
You receive a JSON document with figures of one or more assemblies and write a short report in plain prose for the district leadership.
Only use the figures contained in the document. Never invent figures and never estimate missing ones.
Reproduce amounts exactly as given. Do not use markdown tables.`

// Generations counts generated reports by source.
var Generations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "narrative_generations_total",
		Help: "How many narrative reports were produced, partitioned by source.",
	},
	[]string{"source"},
)

// Generator produces text with a language model.
type Generator interface {
	Name() string  // Name of the provider, used as source in Metadata
	Model() string // Model used for generation
	Generate(ctx context.Context, instruction, prompt string) (string, error)
}

// Subject is a set of figures that can be narrated.
//
// It is serialized to JSON as the prompt. Instruction describes the
// report to write, Fallback renders it without a language model.
type Subject interface {
	Instruction() string
	Fallback() (string, error)
}

// Metadata describes how a report was produced.
type Metadata struct {
	Source         string    `json:"source" example:"openai"`                                            // openai, gemini or fallback
	Model          string    `json:"model,omitempty" example:"gpt-4o-mini"`                              // Model that wrote the report
	GeneratedAt    time.Time `json:"generatedAt" example:"2025-11-30T18:02:11.291Z"`                     // Time the report was produced
	FallbackReason string    `json:"fallbackReason,omitempty" example:"no language model is configured"` // Why the fallback was used
}

type Narrator struct {
	generator Generator
	timeout   time.Duration
}

// New returns a Narrator. A nil Generator always uses the fallback.
func New(g Generator, timeout time.Duration) *Narrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Narrator{
		generator: g,
		timeout:   timeout,
	}
}

// Source returns the name of the generator in use.
func (n *Narrator) Source() string {
	if n.generator == nil {
		return SourceFallback
	}
	return n.generator.Name()
}

// Narrate writes the report for the subject.
//
// Generator errors never reach the caller, they select the fallback and
// are recorded in the Metadata. The returned error is only set when the
// subject can be neither serialized nor rendered.
func (n *Narrator) Narrate(ctx context.Context, s Subject) (string, Metadata, error) {
	prompt, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", Metadata{}, fmt.Errorf("could not serialize report figures: %w", err)
	}

	if n.generator == nil {
		return n.fallback(s, ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	text, err := n.generator.Generate(ctx, system+"\n\n"+s.Instruction(), string(prompt))
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return n.fallback(s, fmt.Errorf("the language model did not answer within %s", n.timeout))
	}

	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}

	if err != nil {
		return n.fallback(s, err)
	}

	Generations.WithLabelValues(n.generator.Name()).Inc()
	return strings.TrimSpace(text), Metadata{
		Source:      n.generator.Name(),
		Model:       n.generator.Model(),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (n *Narrator) fallback(s Subject, reason error) (string, Metadata, error) {
	text, err := s.Fallback()
	if err != nil {
		return "", Metadata{}, fmt.Errorf("could not render fallback report: %w", err)
	}

	log.Warn().Str("source", n.Source()).Str("reason", reason.Error()).Msg("Using fallback narrative")
	Generations.WithLabelValues(SourceFallback).Inc()

	return text, Metadata{
		Source:         SourceFallback,
		GeneratedAt:    time.Now().UTC(),
		FallbackReason: reason.Error(),
	}, nil
}
