package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sozercan/techtalk-hub/apimodels"
	"github.com/sozercan/techtalk-hub/internal/analyzer"
	"github.com/sozercan/techtalk-hub/internal/jobs"
)

// maxParallel bounds concurrent model calls from one CLI invocation.
const maxParallel = 4

var (
	jobPresets    []string
	jobSkills     string
	jobExperience string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run an analysis from the command line",
	Long: `Run one of the analyses and print the results as JSON, one envelope per
input in input order. Several inputs are analyzed concurrently.`,
}

var analyzeBiasCmd = &cobra.Command{
	Use:   "bias [text...]",
	Short: "Check text for biased or discriminatory language",
	Args:  cobra.MinimumNArgs(1),
	RunE: textCommand(func(ctx context.Context, a *analyzer.Analyzer, text string) (interface{}, analyzer.Outcome) {
		return a.AnalyzeBias(ctx, text)
	}),
}

var analyzePrivacyCmd = &cobra.Command{
	Use:   "privacy [text...]",
	Short: "Scan text for personal data",
	Args:  cobra.MinimumNArgs(1),
	RunE: textCommand(func(ctx context.Context, a *analyzer.Analyzer, text string) (interface{}, analyzer.Outcome) {
		return a.AnalyzePrivacyRisk(ctx, text)
	}),
}

var analyzeMoodCmd = &cobra.Command{
	Use:   "mood [text...]",
	Short: "Read the emotional tone of text",
	Args:  cobra.MinimumNArgs(1),
	RunE: textCommand(func(ctx context.Context, a *analyzer.Analyzer, text string) (interface{}, analyzer.Outcome) {
		return a.AnalyzeMood(ctx, text)
	}),
}

var analyzeAutomationCmd = &cobra.Command{
	Use:   "automation [title...]",
	Short: "Rate how exposed a job is to automation",
	Long: `Rate automation risk for preset jobs (--preset, see 'techtalk jobs') and
custom job titles given as arguments. --skills and --experience apply to the
custom titles.

Example:
  techtalk analyze automation --preset nurse --preset pilot "Sourdough Baker" --experience mid`,
	RunE: runAnalyzeAutomation,
}

func init() {
	analyzeAutomationCmd.Flags().StringSliceVar(&jobPresets, "preset", nil, "Preset job value from the catalog (repeatable)")
	analyzeAutomationCmd.Flags().StringVar(&jobSkills, "skills", "", "Key skills for custom job titles")
	analyzeAutomationCmd.Flags().StringVar(&jobExperience, "experience", "", "Experience level: entry, mid, senior or executive")

	analyzeCmd.AddCommand(analyzeBiasCmd)
	analyzeCmd.AddCommand(analyzePrivacyCmd)
	analyzeCmd.AddCommand(analyzeAutomationCmd)
	analyzeCmd.AddCommand(analyzeMoodCmd)
}

type textAnalysis func(ctx context.Context, a *analyzer.Analyzer, text string) (interface{}, analyzer.Outcome)

func textCommand(run textAnalysis) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for i, text := range args {
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("argument %d: please enter some text to analyze", i+1)
			}
		}

		_, a, err := setup()
		if err != nil {
			return err
		}

		ctx, cancel := withTimeout(cmd)
		defer cancel()

		responses, err := fanOut(ctx, args, func(ctx context.Context, text string) apimodels.AnalysisResponse {
			result, out := run(ctx, a, text)
			return apimodels.AnalysisResponse{Result: result, Metadata: out.Metadata()}
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), responses)
	}
}

func runAnalyzeAutomation(cmd *cobra.Command, args []string) error {
	catalog, err := jobs.Load()
	if err != nil {
		return err
	}

	var descriptors []jobs.Descriptor
	for _, preset := range jobPresets {
		d, err := catalog.Resolve(preset, "", "", "")
		if err != nil {
			return err
		}
		descriptors = append(descriptors, d)
	}
	for _, title := range args {
		d, err := catalog.Resolve("", title, jobSkills, jobExperience)
		if err != nil {
			return fmt.Errorf("job %q: %w", title, err)
		}
		descriptors = append(descriptors, d)
	}
	if len(descriptors) == 0 {
		return fmt.Errorf("please select a job with --preset or enter a custom job title")
	}

	_, a, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := withTimeout(cmd)
	defer cancel()

	responses, err := fanOut(ctx, descriptors, func(ctx context.Context, job jobs.Descriptor) apimodels.AnalysisResponse {
		result, out := a.AnalyzeAutomationRisk(ctx, job)
		return apimodels.AnalysisResponse{
			Result:   result,
			Job:      job.Summary(),
			Metadata: out.Metadata(),
		}
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), responses)
}

// fanOut runs fn for every input with bounded concurrency and returns the
// responses in input order. A timeout shows up as fallback results in the
// responses, not as an error.
func fanOut[In any](ctx context.Context, inputs []In, fn func(context.Context, In) apimodels.AnalysisResponse) ([]apimodels.AnalysisResponse, error) {
	responses := make([]apimodels.AnalysisResponse, len(inputs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallel)
	for i, in := range inputs {
		eg.Go(func() error {
			responses[i] = fn(egCtx, in)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return responses, nil
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}
