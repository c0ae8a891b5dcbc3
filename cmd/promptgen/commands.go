package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/jask/promptgen/internal/config"
	"github.com/jask/promptgen/internal/service"
	"github.com/jask/promptgen/internal/settings"
)

func newGenerateCmd(envFn func() *env) *cobra.Command {
	var (
		count int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print prompts using the stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := envFn()
			ctx := cmd.Context()
			s, err := e.settings.Get(ctx)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			if cmd.Flags().Changed("count") {
				s.PromptCount = settings.ClampPromptCount(count)
			}
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			prompts, err := service.NewGenerator(e.vocabulary, seed).Generate(ctx, s)
			if err != nil {
				return err
			}
			for _, p := range prompts {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of prompts (overrides the stored count)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for reproducible output")
	return cmd
}

func newSettingsCmd(envFn func() *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Print the stored settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := envFn().settings.Get(cmd.Context())
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			return printSettings(cmd, s)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set FIELD VALUE",
		Short: "Change one stored setting, e.g. `settings set promptCount 20`",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := settings.ParseField(args[0])
			if err != nil {
				return err
			}
			v, err := settings.ParseValue(f, args[1])
			if err != nil {
				return err
			}
			if f == settings.FieldPromptCount {
				v = settings.IntValue(settings.ClampPromptCount(v.Int()))
			}
			e := envFn()
			ctx := cmd.Context()
			current, err := e.settings.Get(ctx)
			if err != nil {
				return fmt.Errorf("load settings: %w", err)
			}
			next, err := current.With(f, v)
			if err != nil {
				return err
			}
			if err := e.settings.Save(ctx, next); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			e.logger.Info("settings changed", "field", f.String(), "value", v.String())
			return printSettings(cmd, next)
		},
	}
	cmd.AddCommand(setCmd)
	return cmd
}

func printSettings(cmd *cobra.Command, s settings.AppSettings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func newConfigCmd(envFn func() *env) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; pass --force to overwrite", path)
			}
			if err := config.Save(envFn().cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	cfgCmd.AddCommand(initCmd, &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.Path())
			return nil
		},
	})
	return cfgCmd
}

func newVocabCmd(envFn func() *env) *cobra.Command {
	vocab := &cobra.Command{
		Use:   "vocab",
		Short: "Import or export the prompt vocabulary",
	}

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import category,text CSV rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			bar := progressbar.Default(-1, "Importing")
			res, err := envFn().vocabulary.Import(cmd.Context(), f, func(int) { _ = bar.Add(1) })
			_ = bar.Finish()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nimported %d, skipped %d duplicates\n", res.Imported, res.Skipped)
			for _, rowErr := range res.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %v\n", rowErr)
			}
			return nil
		},
	}

	var outPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the vocabulary as category,text CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			n, err := envFn().vocabulary.Export(cmd.Context(), w)
			if err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "exported %d entries to %s\n", n, outPath)
			}
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "write to a file instead of stdout")

	vocab.AddCommand(importCmd, exportCmd)
	return vocab
}

func newResetCmd(envFn func() *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all vocabulary and settings, then restore the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset removes every custom entry; pass --yes to confirm")
			}
			if err := envFn().maintenance.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "vocabulary and settings restored to defaults")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
