// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

// Package translator turns a natural-language question into dashboard
// filters with an LLM. The model sees dataset metadata, never records, and
// every value it returns is checked against the dataset.
package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/dataset"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/llm"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
)

// ErrEmptyQuestion is returned for a blank question.
var ErrEmptyQuestion = errors.New("question is empty")

// reply is the JSON object the model is asked to produce.
type reply struct {
	From              *int     `json:"from"`
	To                *int     `json:"to"`
	OrganizationTypes []string `json:"organization_types"`
	Methods           []string `json:"methods"`
	Primary           *string  `json:"primary"`
	Summary           string   `json:"summary"`
}

// Result is a validated translation.
type Result struct {
	Options   pipeline.Options
	Selection pipeline.Selection

	// Summary is the model's restatement of the filters.
	Summary string

	// Warnings lists values the model returned that were dropped.
	Warnings []string

	Usage llm.Usage
}

// Translator asks a Provider to translate questions.
type Translator struct {
	provider  llm.Provider
	model     string
	maxTokens int
	logger    *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(t *Translator) { t.model = model }
}

// WithMaxTokens limits the reply length.
func WithMaxTokens(n int) Option {
	return func(t *Translator) { t.maxTokens = n }
}

// WithLogger sets the logger warnings are written to.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) { t.logger = l }
}

// New returns a Translator backed by p.
func New(p llm.Provider, opts ...Option) *Translator {
	t := &Translator{provider: p, logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate asks the model for filters matching question and resolves them
// against ds.
func (t *Translator) Translate(ctx context.Context, ds *dataset.Dataset, question string) (*Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	temperature := 0.0
	resp, err := t.provider.Complete(ctx, llm.Request{
		Prompt:       question,
		SystemPrompt: BuildPrompt(MetadataOf(ds)),
		Model:        t.model,
		MaxTokens:    t.maxTokens,
		Temperature:  &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("translate question: %w", err)
	}

	r, err := parseReply(resp.Content)
	if err != nil {
		return nil, err
	}

	res := &Result{Summary: strings.TrimSpace(r.Summary), Usage: resp.Usage}
	res.Options = t.resolve(ds, r, &res.Warnings)
	if res.Selection, err = res.Options.Selection(ds); err != nil {
		return nil, err
	}
	return res, nil
}

func parseReply(content string) (*reply, error) {
	body := llm.ExtractJSON(content)
	var r reply
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return nil, fmt.Errorf("parse translator reply: %w (reply: %.200s)", err, body)
	}
	return &r, nil
}

// resolve checks every field of r against ds and drops what does not fit.
func (t *Translator) resolve(ds *dataset.Dataset, r *reply, warnings *[]string) pipeline.Options {
	warn := func(msg string, args ...any) {
		s := fmt.Sprintf(msg, args...)
		*warnings = append(*warnings, s)
		t.logger.Warn("translator: "+s)
	}

	o := pipeline.Options{From: r.From, To: r.To}
	if o.From != nil && o.To != nil && *o.From > *o.To {
		warn("swapped reversed year range %d to %d", *o.From, *o.To)
		o.From, o.To = o.To, o.From
	}
	o.OrganizationTypes = matchValues(r.OrganizationTypes, ds.OrganizationTypes(), "organization type", warn)
	o.Methods = matchValues(r.Methods, ds.Methods(), "method", warn)

	if r.Primary != nil && strings.TrimSpace(*r.Primary) != "" {
		if dim, err := pipeline.ParseDimension(*r.Primary); err != nil {
			warn("ignored primary %q", *r.Primary)
		} else {
			o.Primary = string(dim)
		}
	}
	return o
}

// matchValues maps requested values onto known ones case-insensitively.
// Unknown values are dropped. An empty result removes the filter rather than
// selecting zero rows.
func matchValues(requested, known []string, what string, warn func(string, ...any)) []string {
	if requested == nil {
		return nil
	}
	byKey := make(map[string]string, len(known))
	for _, k := range known {
		byKey[strings.ToLower(strings.TrimSpace(k))] = k
	}

	var out []string
	seen := make(map[string]bool)
	for _, v := range requested {
		k, ok := byKey[strings.ToLower(strings.TrimSpace(v))]
		if !ok {
			warn("dropped unknown %s %q", what, v)
			continue
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		if len(requested) > 0 {
			warn("no known %s values left; %s filter removed", what, what)
		}
		return nil
	}
	return out
}
