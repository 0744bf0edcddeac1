package cmd

import (
	"fmt"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/boltlang/bolt/frontend/check"
	"github.com/boltlang/bolt/frontend/diag"
	"github.com/boltlang/bolt/frontend/treefile"
	"github.com/boltlang/bolt/internal/config"
	"github.com/boltlang/bolt/internal/log"
	"github.com/spf13/cobra"
)

var CheckCmd = newCheckCmd()

type checkFlags struct {
	mode     string
	logLevel string
	sections []string
	color    bool
	bindings bool
}

func newCheckCmd() *cobra.Command {
	flags := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check ./folder|file.yaml...",
		Short: "Type check Bolt syntax trees",
		Long: "Type check Bolt syntax trees written as YAML. The files are checked in order, " +
			"and the declarations of a file are visible to the files after it.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags, args)
		},
	}
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "fail-fast", "fail-fast or collect")
	cmd.Flags().StringVarP(&flags.logLevel, "log-level", "l", "warn", "log level: debug, info, warn or error")
	cmd.Flags().StringSliceVar(&flags.sections, "log-sections", nil, "sections whose debug logs are printed, like check.unify")
	cmd.Flags().BoolVar(&flags.color, "color", false, "force colored diagnostics on or off")
	cmd.Flags().BoolVarP(&flags.bindings, "bindings", "b", false, "print the type of every declaration")
	return cmd
}

// settings merges the config file of the working directory with the flags
// which were set explicitly
func settings(cmd *cobra.Command, flags *checkFlags) (*config.Config, error) {
	cfg, err := config.LoadFrom(".")
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("mode") || cfg.Mode == "" {
		cfg.Mode = flags.mode
	}
	if cmd.Flags().Changed("log-level") || cfg.Log.Level == "" {
		cfg.Log.Level = flags.logLevel
	}
	if cmd.Flags().Changed("log-sections") {
		cfg.Log.Sections = flags.sections
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = &flags.color
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, flags *checkFlags, args []string) error {
	cfg, err := settings(cmd, flags)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if len(cfg.Log.Sections) > 0 {
		log.SetSections(cfg.Log.Sections...)
	}
	mode, err := check.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	logger := log.DefaultLogger.With("section", "cli")

	paths, err := sourcePaths(args)
	if err != nil {
		return err
	}
	logger.Debug("checking", "files", paths, "mode", mode)

	files := token.NewFileSet()
	printer := diag.NewPrinter(cmd.ErrOrStderr(), files)
	if cfg.Color != nil {
		printer.SetColor(*cfg.Color)
	}
	loader := treefile.NewLoader(files)
	checker := check.New(check.Config{Mode: mode, Sink: printer})

	failed := 0
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", path, err)
		}
		file, err := loader.Load(path, content)
		if err != nil {
			return err
		}
		printer.AddSource(path, content)

		if err := checker.RegisterSourceFile(file); err != nil {
			failed++
			logger.Debug("file has errors", "path", path, "errors", checker.Errors())
			if mode == check.FailFast {
				break
			}
		}
	}

	if flags.bindings {
		printBindings(cmd.OutOrStdout(), checker)
	}
	if printer.HasErrors() {
		return fmt.Errorf("type errors found in %d of %d files", failed, len(paths))
	}
	return nil
}

// sourcePaths expands the directories of args into the .yaml files they
// contain, in lexical order
func sourcePaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		stat, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("could not stat target: %w", err)
		}
		if !stat.IsDir() {
			paths = append(paths, arg)
			continue
		}
		var found []string
		err = fs.WalkDir(os.DirFS(arg), ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
				found = append(found, filepath.Join(arg, path))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not list %s: %w", arg, err)
		}
		slices.Sort(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

func printBindings(out io.Writer, checker *check.TypeChecker) {
	for _, b := range checker.Bindings() {
		if b.Scheme == nil {
			_, _ = fmt.Fprintf(out, "%s %s\n", b.Kind, b.Name)
			continue
		}
		_, _ = fmt.Fprintf(out, "%s %s: %s\n", b.Kind, b.Name, b.Scheme)
	}
}
