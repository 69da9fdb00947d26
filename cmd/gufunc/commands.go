package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gufunc"
	"github.com/gomlx/gufunc/shapeinference"
	"github.com/gomlx/gufunc/signature"
	"github.com/gomlx/gufunc/types/shapes"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse SIGNATURE",
		Short: "Parse a signature and print its canonical form and arguments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := signature.Parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "signature: %s\n", sig)
			for ii, input := range sig.Inputs {
				fmt.Fprintf(out, "input #%d: %s (rank %d)\n", ii, input, input.Rank())
			}
			fmt.Fprintf(out, "output: %s (rank %d)\n", sig.Output, sig.Output.Rank())
			fmt.Fprintf(out, "names: %s\n", strings.Join(sig.Names(), ","))
			return nil
		},
	}
}

// sampleFlags are the flags of the sample command. Options flags override the values of the config file.
type sampleFlags struct {
	num          int
	seed         int
	config       string
	minSide      int
	maxSide      int
	maxDimsExtra int
}

func newSampleCmd() *cobra.Command {
	var flags sampleFlags
	cmd := &cobra.Command{
		Use:   "sample SIGNATURE",
		Short: "Print shapes sampled for the inputs of a signature, and the resulting output shape",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sampleOptions(cmd, &flags)
			if err != nil {
				return err
			}
			s, err := gufunc.New(args[0], opts)
			if err != nil {
				return err
			}
			gen := s.Shapes()
			out := cmd.OutOrStdout()
			for ii := range flags.num {
				allDims := gen.Example(flags.seed + ii)
				klog.V(2).Infof("sample #%d (seed %d): %v", ii, flags.seed+ii, allDims)
				inputs := make([]shapes.Shape, len(allDims))
				parts := make([]string, len(allDims))
				for arg, dims := range allDims {
					inputs[arg] = shapes.Make(dtypes.Float32, dims...)
					parts[arg] = formatDims(dims)
				}
				output, err := shapeinference.Gufunc(s.Signature(), inputs...)
				if err != nil {
					return errors.WithMessagef(err, "sample #%d", ii)
				}
				fmt.Fprintf(out, "%s -> %s\n", strings.Join(parts, ", "), formatDims(output.Dimensions))
			}
			return nil
		},
	}
	defaults := gufunc.DefaultOptions()
	cmd.Flags().IntVarP(&flags.num, "num", "n", 10, "Number of samples")
	cmd.Flags().IntVar(&flags.seed, "seed", 0, "Seed of the first sample, incremented for each following sample")
	cmd.Flags().StringVar(&flags.config, "config", "", "YAML file with the generation options")
	cmd.Flags().IntVar(&flags.minSide, "min-side", defaults.MinSide, "Minimum size of a dimension")
	cmd.Flags().IntVar(&flags.maxSide, "max-side", defaults.MaxSide, "Maximum size of a dimension")
	cmd.Flags().IntVar(&flags.maxDimsExtra, "max-dims-extra", defaults.MaxDimsExtra,
		"Maximum number of extra broadcast dimensions per input")
	return cmd
}

// sampleOptions loads the options from the config file, if given, and applies the flags explicitly set.
func sampleOptions(cmd *cobra.Command, flags *sampleFlags) (gufunc.Options, error) {
	opts := gufunc.DefaultOptions()
	if flags.config != "" {
		var err error
		opts, err = gufunc.LoadOptions(flags.config)
		if err != nil {
			return opts, err
		}
	}
	if flags.num < 0 {
		return opts, errors.Errorf("invalid number of samples %d", flags.num)
	}
	if cmd.Flags().Changed("min-side") {
		opts.MinSide = flags.minSide
	}
	if cmd.Flags().Changed("max-side") {
		opts.MaxSide = flags.maxSide
	}
	if cmd.Flags().Changed("max-dims-extra") {
		opts.MaxDimsExtra = flags.maxDimsExtra
	}
	return opts, nil
}

func newInferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infer SIGNATURE SHAPE...",
		Short: "Print the output shape of a vectorized gufunc call with the given input shapes",
		Long: `Print the output shape of a vectorized gufunc call with the given input shapes.

Shapes are given as comma separated dimensions, e.g. "4,2,3". Use "" or "()" for scalars.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := signature.Parse(args[0])
			if err != nil {
				return err
			}
			inputs := make([]shapes.Shape, len(args)-1)
			for ii, text := range args[1:] {
				dims, err := parseDims(text)
				if err != nil {
					return err
				}
				inputs[ii] = shapes.Make(dtypes.Float32, dims...)
			}
			sizes, loopDims, err := shapeinference.CoreSizes(sig, inputs...)
			if err != nil {
				return err
			}
			output := shapeinference.Output(sig, dtypes.Float32, sizes, loopDims)
			out := cmd.OutOrStdout()
			for _, name := range sig.Names() {
				fmt.Fprintf(out, "%s=%d\n", name, sizes[name])
			}
			fmt.Fprintf(out, "output: %s\n", formatDims(output.Dimensions))
			return nil
		},
	}
}

// parseDims parses comma separated dimensions, like "4,2,3". Empty or "()" is a scalar.
func parseDims(text string) ([]int, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")
	if strings.TrimSpace(text) == "" {
		return []int{}, nil
	}
	parts := strings.Split(text, ",")
	dims := make([]int, len(parts))
	for ii, part := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || dim < 0 {
			return nil, errors.Errorf("invalid dimension %q in shape %q", part, text)
		}
		dims[ii] = dim
	}
	return dims, nil
}

// formatDims is the inverse of parseDims.
func formatDims(dims []int) string {
	parts := make([]string, len(dims))
	for ii, dim := range dims {
		parts[ii] = strconv.Itoa(dim)
	}
	return "(" + strings.Join(parts, ",") + ")"
}
