// Command vybium-snark-asm parses, checks, evaluates, and transcodes
// Vybium SNARKs VM functions.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	vybiumsnarksvm "github.com/vybium/vybium-snarks-vm/pkg/vybium-snarks-vm"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Profile string
}

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// NewRootCommand creates the root command for the assembler CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vybium-snark-asm",
		Short: "Vybium SNARKs VM assembler",
		Long:  "Parse, type check, evaluate, and transcode Vybium SNARKs VM functions.",
	}

	cmd.PersistentFlags().StringVar(&opts.Profile, "profile", "", "path to a YAML network profile")

	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewPrintCommand(opts))
	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))

	return cmd
}

// loadProfile resolves the profile flag, falling back to the default limits.
func loadProfile(opts *RootOptions) (*vybiumsnarksvm.Profile, error) {
	if opts.Profile == "" {
		return vybiumsnarksvm.DefaultProfile(), nil
	}
	return vybiumsnarksvm.LoadProfile(opts.Profile)
}

// loadFunction reads and parses a function from a program text file.
func loadFunction(opts *RootOptions, path string) (*vybiumsnarksvm.Function, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	profile, err := loadProfile(opts)
	if err != nil {
		return nil, err
	}
	return vybiumsnarksvm.ParseFunctionWithProfile(string(text), profile)
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and type check a function",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFunction(rootOpts, args[0])
			if err != nil {
				return err
			}
			if err := vybiumsnarksvm.TypeCheck(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "function %s is well-typed\n", f.Name())
			return nil
		},
	}
}

// NewPrintCommand creates the print command.
func NewPrintCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "print <file>",
		Short:         "Parse a function and print its canonical form",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFunction(rootOpts, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f)
			return nil
		},
	}
}

// NewEncodeCommand creates the encode command.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:           "encode <file>",
		Short:         "Parse a function and emit its binary encoding",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadFunction(rootOpts, args[0])
			if err != nil {
				return err
			}
			raw, err := vybiumsnarksvm.EncodeFunction(f)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			return os.WriteFile(output, raw, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the encoding to a file instead of stdout")
	return cmd
}

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "decode <file>",
		Short:         "Decode a binary function and print its canonical form",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			profile, err := loadProfile(rootOpts)
			if err != nil {
				return err
			}
			f, err := vybiumsnarksvm.DecodeFunctionWithProfile(raw, profile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), f)
			return nil
		},
	}
}

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Inputs []string
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <file>",
		Short: "Evaluate a function on literal arguments",
		Long: `Evaluate a function on literal arguments and print the output values.

Arguments are bound to the input registers in declaration order:

  vybium-snark-asm eval compute.vsv --input 2u8.private --input 3u8.private`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Inputs, "input", nil, "argument literal, repeatable, bound in input order")
	return cmd
}

func runEval(opts *EvalOptions, path string, cmd *cobra.Command) error {
	f, err := loadFunction(opts.RootOptions, path)
	if err != nil {
		return err
	}
	if err := vybiumsnarksvm.TypeCheck(f); err != nil {
		return err
	}

	arguments := make([]vybiumsnarksvm.Value, 0, len(opts.Inputs))
	for _, raw := range opts.Inputs {
		literal, err := vybiumsnarksvm.ParseLiteral(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		arguments = append(arguments, literal)
	}

	outputs, err := vybiumsnarksvm.Evaluate(f, arguments)
	if err != nil {
		return err
	}
	for i, value := range outputs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", f.Outputs()[i].Register(), value)
	}
	return nil
}
