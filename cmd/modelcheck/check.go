package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"modelcheck/internal/check"
	"modelcheck/internal/node"
	"modelcheck/internal/report"
	"modelcheck/internal/ruleset"
	"modelcheck/internal/settings"
)

var (
	rulesSrc       string
	strictMode     bool
	fuzzyMode      bool
	fuzzyThreshold float64
	reportPath     string
	markdownPath   string
	thorough       bool
)

var checkCmd = &cobra.Command{
	Use:   "check <model file>",
	Short: "Evaluate a rule table against a model",
	Long: `Evaluate every rule in the rule table against the flattened model.

The model file may be JSON or YAML. The rule source comes from --rules,
or from .modelcheck/settings.yaml when the flag is omitted.

Exits nonzero when any rule fails at error severity.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := settings.Load(".")
		if err != nil {
			return err
		}

		src := rulesSrc
		if src == "" {
			src = cfg.RuleSource()
		}
		if src == "" {
			return fmt.Errorf("no rule source: pass --rules or set rules.source in .modelcheck/settings.yaml")
		}

		run, objects, err := runCheck(args[0], src, cfg)
		if err != nil {
			return err
		}

		console := &report.Console{Out: cmd.OutOrStdout()}
		if err := report.Publish(console, run); err != nil {
			return err
		}

		if reportPath != "" || markdownPath != "" {
			rep := report.Build(objects, run, startedAt)
			if reportPath != "" {
				if err := report.Write(rep, reportPath); err != nil {
					return err
				}
			}
			if markdownPath != "" {
				if err := os.WriteFile(markdownPath, []byte(report.Markdown(rep)), 0o644); err != nil {
					return fmt.Errorf("write markdown: %w", err)
				}
			}
		}

		if run.ErrorFailures() > 0 {
			return fmt.Errorf("%d rule(s) failed at error severity", run.ErrorFailures())
		}
		return nil
	},
}

// startedAt anchors the run summary; set at the top of runCheck.
var startedAt time.Time

// loadModel decodes a model file, dispatching on extension.
func loadModel(path string) (*node.Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return node.DecodeYAML(data)
	}
	return node.DecodeJSON(bytes.NewReader(data))
}

// runCheck loads the model and rules and evaluates. Flags override settings.
func runCheck(modelPath, src string, cfg *settings.Settings) (*check.RunResult, int, error) {
	startedAt = time.Now()

	root, err := loadModel(modelPath)
	if err != nil {
		return nil, 0, err
	}

	set, err := ruleset.Load(src)
	if err != nil {
		return nil, 0, err
	}

	var objs []*node.Object
	if thorough {
		var warnings []string
		objs, warnings = node.FlattenThorough(root)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
	} else {
		objs = node.Flatten(root)
	}

	checker := &check.Checker{
		Strict:         strictMode,
		Fuzzy:          fuzzyMode,
		FuzzyThreshold: fuzzyThreshold,
		Skip:           cfg.IsDisabled,
	}
	if cfg != nil {
		if !strictMode {
			checker.Strict = cfg.Checker.Strict
		}
		if !fuzzyMode {
			checker.Fuzzy = cfg.Checker.Fuzzy
		}
		if fuzzyThreshold == 0 {
			checker.FuzzyThreshold = cfg.Checker.FuzzyThreshold
		}
	}

	run, err := checker.Run(objs, set)
	if err != nil {
		return nil, 0, err
	}
	return run, len(objs), nil
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&rulesSrc, "rules", "r", "", "Rule table path or URL (TSV or YAML)")
	checkCmd.Flags().BoolVar(&strictMode, "strict", false, "Propagate predicate errors instead of recording them")
	checkCmd.Flags().BoolVar(&fuzzyMode, "fuzzy", false, "Use edit-distance matching for 'is like'")
	checkCmd.Flags().Float64Var(&fuzzyThreshold, "threshold", 0, "Similarity threshold for fuzzy matching (0 = default)")
	checkCmd.Flags().StringVar(&reportPath, "report", "", "Write a YAML report artifact to this path")
	checkCmd.Flags().StringVar(&markdownPath, "markdown", "", "Write a markdown summary to this path")
	checkCmd.Flags().BoolVar(&thorough, "thorough", false, "Traverse via typed shape detection, stamping parent types")
}
