package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"modelcheck/internal/report"
	"modelcheck/internal/settings"
)

var watchCmd = &cobra.Command{
	Use:   "watch <model file>",
	Short: "Re-run checks whenever the model or rule table changes",
	Long: `Watch the model file (and the rule table, when it is a local file)
and re-evaluate on every write. Runs until interrupted.`,
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

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch parent directories: editors commonly replace files by
		// rename, which drops a watch on the file itself.
		targets := map[string]bool{filepath.Clean(args[0]): true}
		dirs := map[string]bool{filepath.Dir(args[0]): true}
		if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
			targets[filepath.Clean(src)] = true
			dirs[filepath.Dir(src)] = true
		}
		for dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
		}

		runOnce := func() {
			run, _, err := runCheck(args[0], src, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return
			}
			console := &report.Console{Out: cmd.OutOrStdout()}
			if err := report.Publish(console, run); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			}
		}

		runOnce()
		fmt.Fprintln(cmd.OutOrStdout(), "watching for changes (ctrl-c to stop)")

		// Debounce bursts of events from a single save.
		var timer *time.Timer
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if !targets[filepath.Clean(ev.Name)] {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(200*time.Millisecond, runOnce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&rulesSrc, "rules", "r", "", "Rule table path or URL (TSV or YAML)")
	watchCmd.Flags().BoolVar(&thorough, "thorough", false, "Traverse via typed shape detection, stamping parent types")
}
