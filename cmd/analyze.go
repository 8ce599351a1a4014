package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"churnsynth/sampling"
	"churnsynth/service"

	log "github.com/sirupsen/logrus"
)

// ErrDistributionMismatch is returned when an observed frequency strays beyond tolerance
var ErrDistributionMismatch = errors.New("sampled frequencies deviate from their distributions")

// AnalyzeConfig holds analyze command configuration
type AnalyzeConfig struct {
	Trials    int
	Seed      int64
	Tolerance float64
	Detail    string
}

// ParseAnalyzeConfig parses analyze flags
func ParseAnalyzeConfig(fs *flag.FlagSet, args []string) (AnalyzeConfig, error) {
	cfg := AnalyzeConfig{}
	fs.IntVar(&cfg.Trials, "trials", 100000, "draws per distribution")
	fs.Int64Var(&cfg.Seed, "seed", 42, "sampler seed")
	fs.Float64Var(&cfg.Tolerance, "tolerance", 0.02, "maximum absolute deviation of any observed rate")
	fs.StringVar(&cfg.Detail, "detail", "churn_reason", "distribution to print in detail")
	if err := fs.Parse(args); err != nil {
		return AnalyzeConfig{}, err
	}
	if cfg.Trials <= 0 {
		return AnalyzeConfig{}, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}
	return cfg, nil
}

// Analyze samples every generator distribution and reports how closely the
// observed frequencies match their configured probabilities
func Analyze(args []string, out io.Writer) error {
	cfg, err := ParseAnalyzeConfig(flag.NewFlagSet("analyze", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"trials": cfg.Trials,
		"seed":   cfg.Seed,
	}).Info("Running distribution analysis...")

	s := sampling.New(cfg.Seed)
	checks := service.DistributionChecks(s, cfg.Trials)
	checks = append(checks, sampling.CheckUniform("uniform", s, 10, cfg.Trials))

	fmt.Fprintln(out, "=== Churn Generator Distribution Analysis ===")
	fmt.Fprintln(out)

	failed := 0
	for _, c := range checks {
		verdict := "✓ PASS"
		if !c.Passed(cfg.Tolerance) {
			verdict = "✗ FAIL"
			failed++
		}
		fmt.Fprintf(out, "%-36s | Trials: %d | Max deviation: %.4f | χ²: %8.2f | p: %.4f %s\n",
			c.Name, c.Trials, c.MaxDeviation, c.ChiSquare, c.PValue, verdict)
	}

	for _, c := range checks {
		if c.Name == cfg.Detail {
			printDetail(out, c)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d checks failed", ErrDistributionMismatch, failed, len(checks))
	}
	return nil
}

// printDetail shows observed against expected counts for every outcome with a bar per outcome
func printDetail(out io.Writer, c sampling.FrequencyCheck) {
	fmt.Fprintf(out, "\n=== DETAILED %s ANALYSIS ===\n", strings.ToUpper(c.Name))
	for i, label := range c.Labels {
		expected := c.Expected[i] * float64(c.Trials)
		deviation := 0.0
		if expected > 0 {
			deviation = (float64(c.Observed[i]) - expected) / expected * 100
		}
		bar := strings.Repeat("█", int(c.ObservedRate(i)*50))
		fmt.Fprintf(out, "  %-16s expected %8.0f  observed %8d (%+6.2f%%) %s\n",
			label, expected, c.Observed[i], deviation, bar)
	}
	fmt.Fprintf(out, "  χ² = %.2f, p = %.4f\n", c.ChiSquare, c.PValue)
}
