package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modoterra/seqcheck/internal/buildinfo"
	"github.com/modoterra/seqcheck/internal/settings"
	"github.com/modoterra/seqcheck/pkg/ingest"
	"github.com/modoterra/seqcheck/pkg/profile"
	"github.com/modoterra/seqcheck/pkg/profile/presets"
	"github.com/modoterra/seqcheck/pkg/report"
	"github.com/modoterra/seqcheck/pkg/synth"
	"github.com/modoterra/seqcheck/pkg/validate"
)

// Exit statuses seen by the test harness.
const (
	exitPass  = 0
	exitFail  = 1
	exitError = 2
)

// errValidationFailed is returned when input was read and checked but at
// least one expected key failed.
var errValidationFailed = errors.New("validation failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	switch {
	case err == nil:
		return exitPass
	case errors.Is(err, errValidationFailed):
		return exitFail
	default:
		fmt.Fprintf(stderr, "seqcheck: %v\n", err)
		return exitError
	}
}

type rootOptions struct {
	cfgFile  string
	verbose  bool
	checkAll bool
	jsonOut  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "seqcheck [file|glob|-]...",
		Short: "Check monitor logs for consecutive value runs",
		Long: `seqcheck reads monitor output (one "name ... value ... status" update per line)
from stdin or the given files and checks that every expected name counts up
one step at a time to the expected final value.

Exit status: 0 all names passed, 1 a name failed, 2 malformed input or error.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "settings file (default .seqcheck.yaml in the working directory)")
	cmd.PersistentFlags().String("preset", "ramp", "built-in profile to check against")
	cmd.PersistentFlags().String("profile", "", "profile YAML file, overrides --preset")
	cmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "print failing names and a summary on stderr")
	cmd.Flags().BoolVar(&opts.checkAll, "all", false, "check every name instead of stopping at the first failure")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "write the report as JSON to stdout")

	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// --- Check ---

func runCheck(cmd *cobra.Command, args []string, opts *rootOptions) error {
	st, logger, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	p, err := resolveProfile(st)
	if err != nil {
		return err
	}
	if opts.checkAll {
		p.CheckAll = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputs, err := ingest.Resolve(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	in := ingest.New(ingest.Layout{NameField: p.NameField, ValueField: p.ValueField}, logger)
	if err := in.ReadAll(ctx, inputs); err != nil {
		return err
	}
	logger.Info("input read", "inputs", len(inputs), "lines", in.Lines(), "keys", in.Sequences().Len())

	rep, err := validate.New(p, logger).Run(in.Sequences())
	if err != nil {
		return err
	}

	if opts.jsonOut {
		if err := report.Write(cmd.OutOrStdout(), rep, report.FormatJSON); err != nil {
			return err
		}
	}
	if opts.verbose {
		if err := report.Write(cmd.ErrOrStderr(), rep, report.FormatText); err != nil {
			return err
		}
	}
	if !rep.OK() {
		return errValidationFailed
	}
	return nil
}

func setup(cmd *cobra.Command, opts *rootOptions) (*settings.Settings, *slog.Logger, error) {
	st, err := settings.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	lvl, err := st.Level()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
	return st, logger, nil
}

// resolveProfile loads the profile file if one is set, else the preset, and
// validates it.
func resolveProfile(st *settings.Settings) (*profile.Profile, error) {
	var (
		p   *profile.Profile
		err error
	)
	if st.Profile != "" {
		p, err = profile.Load(st.Profile)
	} else {
		p, err = presets.Lookup(st.Preset)
	}
	if err != nil {
		return nil, err
	}
	if errs := profile.Validate(p); len(errs) > 0 {
		return nil, fmt.Errorf("profile %s: %w", p.Name, errors.Join(errs...))
	}
	return p, nil
}

// --- Profile ---

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and manage validator profiles",
	}
	cmd.AddCommand(newProfileListCmd())
	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileInitCmd())
	cmd.AddCommand(newProfileValidateCmd())
	return cmd
}

func newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range presets.Names() {
				p, err := presets.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s %s\n", name, p.Description)
			}
			return nil
		},
	}
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <preset>",
		Short: "Print a built-in preset as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := presets.Lookup(args[0])
			if err != nil {
				return err
			}
			data, err := profile.Marshal(p)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newProfileInitCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "init <preset>",
		Short: "Write a built-in preset to a profile file for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := presets.Lookup(args[0])
			if err != nil {
				return err
			}
			if err := profile.Save(p, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %s from preset %s (%d keys)\n", output, p.Name, p.Count)
			return nil
		},
	}
	cmd.Flags().StringVar(&output, "output", "seqcheck.yaml", "output file path")
	return cmd
}

func newProfileValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a profile file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "seqcheck.yaml"
			if len(args) > 0 {
				path = args[0]
			}

			p, err := profile.Load(path)
			if err != nil {
				return err
			}

			errs := profile.Validate(p)
			if len(errs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (%d keys, %s mode)\n", path, p.Count, p.Mode)
				return nil
			}

			w := cmd.ErrOrStderr()
			for _, e := range errs {
				fmt.Fprintf(w, "  • %s\n", e)
			}
			return fmt.Errorf("%s: %d error(s)", path, len(errs))
		},
	}
}

// --- Generate ---

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	var (
		gen    synth.Options
		output string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic monitor log for the selected profile",
		Long: `Write a synthetic monitor log in the selected profile's column layout.
Without flags the log passes; --drop-last, --to or --from make it fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			p, err := resolveProfile(st)
			if err != nil {
				return err
			}

			o := synth.DefaultOptions(p)
			flags := cmd.Flags()
			if flags.Changed("from") {
				o.From = gen.From
			}
			if flags.Changed("to") {
				o.To = gen.To
			}
			if flags.Changed("leading") {
				o.Leading = gen.Leading
			}
			if flags.Changed("repeat") {
				o.Repeat = gen.Repeat
			}
			o.DropLast = gen.DropLast

			if output == "" || output == "-" {
				return synth.Write(cmd.OutOrStdout(), p, o)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := synth.Write(f, p, o); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().Int64Var(&gen.From, "from", 0, "first value of the run (default: sentinel in repeat mode, 1 otherwise)")
	cmd.Flags().Int64Var(&gen.To, "to", 0, "last value of the run (default: the profile's terminal value)")
	cmd.Flags().IntVar(&gen.Leading, "leading", 0, "sentinel lines per name before the run (default: 1 in sentinel mode)")
	cmd.Flags().IntVar(&gen.Repeat, "repeat", 1, "times each value is written")
	cmd.Flags().StringVar(&gen.DropLast, "drop-last", "", "name whose final line is omitted")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// --- Version ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "seqcheck %s (%s) built %s\n", buildinfo.Version, buildinfo.Commit, buildinfo.Date)
		},
	}
}
