// Package cli implements the asm386 command.
package cli

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Urethramancer/asm386/assembler"
	"github.com/Urethramancer/asm386/internal/values"
)

// This is to keep all fields needed for the root command.
type rootCommand struct {
	fs     afero.Fs
	stdout io.Writer
	logger *logrus.Logger
	cmd    *cobra.Command

	output     string
	set        []string
	valuesFile string
	wrap       int
	showSlots  bool
	noColor    bool
	verbose    bool
}

// NewRootCommand builds the asm386 command on top of the given filesystem and output.
func NewRootCommand(fs afero.Fs, stdout io.Writer, logger *logrus.Logger) *cobra.Command {
	c := &rootCommand{
		fs:     fs,
		stdout: stdout,
		logger: logger,
	}
	c.cmd = &cobra.Command{
		Use:   "asm386 [flags] <source-file>",
		Short: "Assemble a small x86 dialect into templated machine code",
		Long: `Assemble a small 32-bit x86 dialect into machine code.

Operands written as $value or [$address] become template slots. Their bytes
can be replaced after assembly with --set or --values, in slot order.`,
		Example: `
  # Print the machine code of a source file.
  asm386 prog.s

  # Patch both template slots and write the raw bytes out.
  asm386 --set 0x10,-1 -o prog.bin prog.s

  # Take the patch values from a file.
  asm386 --values patch.yaml prog.s`[1:],
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.persistentPreRunE,
		RunE:              c.run,
	}
	c.cmd.Flags().AddFlagSet(c.flagSet())
	c.cmd.MarkFlagsMutuallyExclusive("set", "values")
	return c.cmd
}

func (c *rootCommand) flagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false
	flags.StringVarP(&c.output, "output", "o", "", "write the raw machine code to `file`")
	flags.StringSliceVarP(&c.set, "set", "s", nil, "template values, in slot order")
	flags.StringVarP(&c.valuesFile, "values", "f", "", "read template values from a YAML or TOML `file`")
	flags.IntVarP(&c.wrap, "wrap", "w", 8, "bytes per line of the hex dump, 0 for a single line")
	flags.BoolVar(&c.showSlots, "slots", false, "list template slots after the hex dump")
	flags.BoolVar(&c.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	return flags
}

func (c *rootCommand) persistentPreRunE(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.logger.SetLevel(logrus.DebugLevel)
	}
	return nil
}

func (c *rootCommand) run(cmd *cobra.Command, args []string) error {
	src, err := afero.ReadFile(c.fs, args[0])
	if err != nil {
		return err
	}

	asm := assembler.New(assembler.WithLogger(c.logger.WithField("file", args[0])))
	f, err := asm.Assemble(string(src))
	if err != nil {
		return errors.Wrapf(err, "%s", args[0])
	}

	patch, err := c.patchValues(cmd)
	if err != nil {
		return err
	}
	switch {
	case patch != nil:
		if f, err = f.Apply(patch); err != nil {
			return err
		}
		c.logger.WithField("values", patch).Debug("template slots patched")
	case f.SlotCount() > 0:
		c.logger.Debugf("%d template slots keep their assembled values", f.SlotCount())
	}

	if c.output != "" {
		if err := afero.WriteFile(c.fs, c.output, f.Bytes(), 0o644); err != nil {
			return err
		}
		c.logger.WithFields(logrus.Fields{"file": c.output, "size": f.Len()}).Info("machine code written")
	}

	d := newDumper(c.stdout, !c.noColor)
	if err := d.dump(f, c.wrap); err != nil {
		return err
	}
	if c.showSlots {
		return d.slots(f)
	}
	return nil
}

// patchValues returns nil when no values were requested.
func (c *rootCommand) patchValues(cmd *cobra.Command) ([]int32, error) {
	switch {
	case cmd.Flags().Changed("set"):
		return values.ParseList(c.set)
	case c.valuesFile != "":
		return values.Load(c.fs, c.valuesFile)
	}
	return nil, nil
}

// Execute runs the command against the real filesystem. It is called by main.main().
func Execute() {
	logger := &logrus.Logger{
		Out:       os.Stderr,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     logrus.InfoLevel,
	}

	cmd := NewRootCommand(afero.NewOsFs(), os.Stdout, logger)
	if err := cmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
