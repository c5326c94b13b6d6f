// switchboard - composable command-line argument combos for git workflows.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/morganforge/switchboard/internal/combo"
	"github.com/morganforge/switchboard/internal/config"
	"github.com/morganforge/switchboard/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// COMMAND TREE
// =============================================================================

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "switchboard",
		Short:         "Compose git argument lists interactively and dispatch them",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newListCmd(), newConfigCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var prefix bool

	cmd := &cobra.Command{
		Use:   "run <combo>",
		Short: "Invoke a combo, opening the composer or dispatching its default action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.engine.Invoke(args[0], prefix); err != nil {
				return err
			}
			// Direct dispatch leaves no session; the loop is a no-op then.
			return ui.Run(app.engine)
		},
	}
	cmd.Flags().BoolVarP(&prefix, "prefix", "p", false, "set the prefix signal for policy evaluation")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List declared combos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			for _, c := range app.registry.All() {
				bindings := 0
				for _, kind := range []combo.Kind{combo.Switches, combo.Options, combo.Variables, combo.Actions} {
					for _, entry := range c.Entries(kind) {
						if entry.Key != "" {
							bindings++
						}
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %-32s policy=%-8s bindings=%d\n",
					c.Name, c.Description, c.Policy, bindings)
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change configuration",
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			val, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value and save it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			return config.Save(cfg)
		},
	})

	return cfgCmd
}

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// app bundles the loaded configuration with the declared registry and the
// engine driving it.
type app struct {
	cfg      *config.Config
	store    *config.Store
	registry *combo.Registry
	engine   *combo.Engine
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store := config.NewStore(cfg)

	registry := combo.NewRegistry()
	declareCombos(registry, store)

	engine := combo.NewEngine(registry, ui.NewDisplay())
	policy, err := cfg.PolicyMode()
	if err != nil {
		return nil, err
	}
	engine.SetPolicy(policy)

	return &app{cfg: cfg, store: store, registry: registry, engine: engine}, nil
}

// =============================================================================
// COMBO DECLARATIONS
// =============================================================================

// pushRemote is the external state mutated by the push combo's remote
// variable. Commands read it at dispatch time.
var pushRemote = "origin"

// declareCombos registers the built-in git combos. The push bindings are
// issued before the push combo itself is declared; the registry queues them
// and replays on declaration.
func declareCombos(registry *combo.Registry, store *config.Store) {
	// Forward references: bound now, resolved when push is declared below.
	registry.Bind("push", "switches", "f", &combo.SwitchDef{
		Description: "Force with lease",
		Flag:        "--force-with-lease",
	})
	registry.Bind("push", "switches", "d", &combo.SwitchDef{
		Description: "Dry run",
		Flag:        "--dry-run",
	})
	registry.Bind("push", "switches", "t", &combo.SwitchDef{
		Description: "Push tags",
		Flag:        "--tags",
	})
	registry.Bind("push", "variables", "r", &combo.VariableDef{
		Description: "Set remote",
		Flag:        "remote",
		Command:     setRemote,
		Formatter:   func() string { return pushRemote },
	})
	registry.Bind("push", "actions", "p", &combo.ActionDef{
		Description: "Push to remote",
		Command:     pushCommand(),
	})
	registry.Bind("push", "actions", "u", &combo.ActionDef{
		Description: "Push and set upstream",
		Command:     pushCommand("-u"),
	})

	commit := combo.NewCombo("commit", "Record changes to the repository")
	commit.Defaults = store.Cell("commit")
	commit.AddHeading(combo.Switches, "Staging")
	commit.Bind("switches", "a", &combo.SwitchDef{
		Description: "Stage all modified files",
		Flag:        "-a",
	})
	commit.AddHeading(combo.Switches, "Verification")
	commit.Bind("switches", "v", &combo.SwitchDef{
		Description:      "Show diff of changes",
		Flag:             "-v",
		EnabledByDefault: true,
	})
	commit.Bind("switches", "n", &combo.SwitchDef{
		Description: "Bypass hooks",
		Flag:        "--no-verify",
	})
	commit.Bind("options", "m", &combo.OptionDef{
		Description: "Commit message",
		Flag:        "--message=",
	})
	commit.Bind("options", "S", &combo.OptionDef{
		Description: "Sign with key",
		Flag:        "-S",
	})
	commit.Bind("options", "d", &combo.OptionDef{
		Description: "Override author date",
		Flag:        "--date=",
	})
	commit.Bind("actions", "c", &combo.ActionDef{
		Description: "Create commit",
		Command:     gitCommand("commit"),
	})
	commit.Bind("actions", "e", &combo.ActionDef{
		Description: "Amend last commit",
		Command:     gitCommand("commit", "--amend"),
	})
	commit.DefaultAction = gitCommand("commit")
	registry.Declare(commit)

	push := combo.NewCombo("push", "Update remote refs")
	push.Defaults = store.Cell("push")
	push.DefaultAction = pushCommand()
	registry.Declare(push)
}

// =============================================================================
// DISPATCH TARGETS
// =============================================================================

// gitCommand builds a command that runs git with the fixed leading arguments,
// then the composed flags, then any file list carried in the synthetic
// file-list argument.
func gitCommand(fixed ...string) combo.CommandFunc {
	return func(ctx *combo.CommandContext) error {
		flags, files := combo.SplitFiles(ctx.Args)
		args := append([]string{}, fixed...)
		args = append(args, flags...)
		if len(files) > 0 {
			args = append(args, "--")
			args = append(args, files...)
		}
		cmd := exec.Command("git", args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
}

// pushCommand runs git push against the remote variable's current value.
func pushCommand(fixed ...string) combo.CommandFunc {
	return func(ctx *combo.CommandContext) error {
		flags, _ := combo.SplitFiles(ctx.Args)
		args := append([]string{"push"}, fixed...)
		args = append(args, flags...)
		args = append(args, pushRemote)
		cmd := exec.Command("git", args...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
}

// setRemote reads a new remote name. Cancellation and empty input both keep
// the current value.
func setRemote(*combo.CommandContext) error {
	val, ok := combo.LineReader("remote=", pushRemote)
	if !ok || val == "" {
		return nil
	}
	pushRemote = val
	return nil
}
