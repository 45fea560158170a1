// Copyright 2026 The Breachdash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/config"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/llm"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/output"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/pipeline"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/report"
	"github.com/ikmalalfaozi/data-breaches-dashboard/internal/translator"
)

// askSections is what ask prints below the interpretation.
var askSections = []string{"summary", "years", "breakdown"}

// Ask-specific flag values.
var (
	askSel    selectionFlags
	askFormat string
)

// newProvider builds the LLM provider; tests replace it with a mock.
var newProvider = func(cfg *config.Config) (llm.Provider, error) {
	p, err := llm.NewAnthropicProvider(
		llm.WithModel(cfg.LLM.Model),
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// askCmd turns a question into filters and shows the result.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Filter the dataset with a plain-language question",
	Long: `Translate a question into dashboard filters with an LLM and print the
result. Only the dataset's year range and category values are sent to the
model, never records. Values the model invents are dropped with a warning.

Requires ANTHROPIC_API_KEY. The model and reply limit come from llm.model and
llm.max_tokens in config.

Output formats:
  text  interpretation followed by a short report (default)
  json  the JSON export of the translated selection
  url   query string for the serve dashboard

Examples:
  breachdash ask "how many healthcare records were hacked since 2015?"
  breachdash ask "retail breaches by method" --format url`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askSel.register(askCmd.Flags())
	askCmd.Flags().StringVarP(&askFormat, "format", "f", "text", "output format: text, json or url")
}

func runAsk(cmd *cobra.Command, args []string) error {
	switch askFormat {
	case "text", "json", "url":
	default:
		return exitError(ExitInvalidArgs, "breachdash: unsupported ask format %q (use text, json or url)", askFormat)
	}
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return exitError(ExitInvalidArgs, "breachdash: question is empty")
	}

	s, err := askSel.load(cmd)
	if err != nil {
		return err
	}
	provider, err := newProvider(s.cfg)
	if err != nil {
		return exitError(ExitInvalidArgs, "breachdash: %v", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	tr, err := translator.New(provider,
		translator.WithModel(s.cfg.LLM.Model),
		translator.WithMaxTokens(s.cfg.LLM.MaxTokens),
	).Translate(ctx, s.ds, question)
	if err != nil {
		return exitError(ExitRenderFailure, "breachdash: %v", err)
	}

	// The model's filters apply over the flag and config defaults.
	s.options = overlay(s.options, tr.Options)
	res, err := s.compute()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch askFormat {
	case "url":
		_, err = fmt.Fprintf(w, "/?%s\n", res.Selection.Query().Encode())
	case "json":
		err = output.NewJSONFormatter().Format(output.Document{Result: res, Columns: s.columns}, w)
	default:
		err = writeInterpretation(cmd, tr, res)
		if err == nil {
			err = report.Render(w, report.Input{Result: res, Columns: s.columns}, askSections)
		}
	}
	if err != nil {
		return exitError(ExitRenderFailure, "breachdash: %v", err)
	}
	return nil
}

func writeInterpretation(cmd *cobra.Command, tr *translator.Result, res *pipeline.Result) error {
	bold := color.New(color.Bold)
	w := cmd.OutOrStdout()
	if tr.Summary != "" {
		if _, err := fmt.Fprintf(w, "%s %s\n", bold.Sprint("Interpretation:"), tr.Summary); err != nil {
			return err
		}
	}
	sel := res.Selection
	_, err := fmt.Fprintf(w, "%s years %d to %d, organization types %s, methods %s, primary %s\n\n",
		bold.Sprint("Filters:"), sel.Years.Min, sel.Years.Max,
		describe(sel.OrganizationTypes, len(res.OrganizationTypes)),
		describe(sel.Methods, len(res.Methods)),
		sel.Primary.Label())
	if err != nil {
		return err
	}
	warn := color.New(color.FgYellow)
	for _, msg := range tr.Warnings {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", warn.Sprint("warning:"), msg)
	}
	return nil
}

// describe renders a category set as "all", "none" or its sorted values.
func describe(set pipeline.Set, total int) string {
	values := set.Values()
	switch {
	case len(values) == 0:
		return "none"
	case len(values) == total:
		return "all"
	}
	return strings.Join(values, "; ")
}

// overlay applies the fields set in top over base.
func overlay(base, top pipeline.Options) pipeline.Options {
	if top.From != nil {
		base.From = top.From
	}
	if top.To != nil {
		base.To = top.To
	}
	if top.OrganizationTypes != nil {
		base.OrganizationTypes = top.OrganizationTypes
	}
	if top.Methods != nil {
		base.Methods = top.Methods
	}
	if top.Primary != "" {
		base.Primary = top.Primary
	}
	return base
}
