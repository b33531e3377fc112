package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zephyrtronium/mathparse"
	"github.com/zephyrtronium/mathparse/internal/selftest"
)

const long = `Evaluate an infix arithmetic expression, or run the built-in self-test
when no expression is given.

Expressions consist of numbers, the operators + - * /, and parentheses.
Numbers can be integer (123), floating point (0.5, .5, 1e3), or hexadecimal
(0x1F). Other words are symbols, resolved from the constants table (pi, e,
phi, sqrt2, ln2, ln10, log2e, log10e, inf) and the symbols section of the
config file. Symbol names in config files are case-insensitive.

Each precedence level applies at most one operator: write (1+2)+3, not
1+2+3. There is no unary minus; write 0-1.`

// errSelfTest indicates a self-test failure that has already been reported.
var errSelfTest = errors.New("self-test failed")

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	cmd := newRootCommand(viper.New(), log)
	if err := cmd.Execute(); err != nil {
		if err != errSelfTest {
			fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.Name(), err)
		}
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper, log *logrus.Logger) *cobra.Command {
	var (
		cfgFile string
		asInt   bool
		verb    string
	)
	setDefaults(v)
	cmd := &cobra.Command{
		Use:           "mathparse [EXPRESSION]",
		Short:         "Evaluate an arithmetic expression",
		Long:          long,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := readConfig(v, cfgFile, log); err != nil {
				return err
			}
			if v.GetBool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runSelfTest(cmd.OutOrStdout(), loadSettings(v), log)
			}
			return solve(cmd.OutOrStdout(), loadSettings(v), log, args[0], asInt, verb)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (yaml, toml, or json)")
	pf.Int("max-depth", mathparse.DefaultMaxDepth, "maximum bracket nesting; 0 for no limit")
	pf.Bool("strict-division", false, "treat division by zero as an error")
	pf.Bool("delimit-symbols", false, "end symbols at operators and brackets as well as whitespace")
	pf.Bool("constants", true, "resolve the standard mathematical constants")
	pf.Uint("precision", 64, "precision in bits for computing constants")
	pf.BoolP("verbose", "v", false, "log parse failures")
	for _, name := range []string{"max-depth", "strict-division", "delimit-symbols", "constants", "precision", "verbose"} {
		// BindPFlag only fails for a nil flag.
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), pf.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.Flags().BoolVarP(&asInt, "int", "i", false, "truncate the result to an integer")
	cmd.Flags().StringVar(&verb, "fmt", "%f", "result formatting verb")

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Run the built-in self-test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfTest(cmd.OutOrStdout(), loadSettings(v), log)
		},
	})
	return cmd
}

func solve(w io.Writer, s settings, log *logrus.Logger, expr string, asInt bool, verb string) error {
	tab, err := s.table(log)
	if err != nil {
		return err
	}
	p := mathparse.New(tab.Lookup, s.options(log)...)
	defer p.Close()
	if asInt {
		r, err := p.SolveInt(expr)
		if err != nil {
			return errors.Wrap(err, "could not parse")
		}
		fmt.Fprintln(w, r)
		return nil
	}
	r, err := p.Solve(expr)
	if err != nil {
		return errors.Wrap(err, "could not parse")
	}
	fmt.Fprintf(w, verb+"\n", r)
	return nil
}

func runSelfTest(w io.Writer, s settings, log *logrus.Logger) error {
	p := mathparse.New(nil, s.options(log)...)
	rep := selftest.Run(p, nil, w)
	if !rep.OK() {
		fmt.Fprintf(w, "%d of %d tests failed\n", len(rep.Failed), rep.Total)
		return errSelfTest
	}
	fmt.Fprintln(w, "All tests have passed")
	return nil
}
