// Package gufunc generates inputs for property-based tests of functions following a NumPy
// generalized-ufunc (gufunc) signature, like "(m,n),(n,p)->(m,p)" for matrix multiplication.
//
// It plugs into pgregory.net/rapid: a Strategy yields rapid generators of shapes or of arrays
// (see Strategy.Shapes, Args and ArgsWithExample) whose dimensions satisfy the signature:
// every dimension name resolves to the same size everywhere it appears. Optionally each argument
// also gets extra leading dimensions that are mutually broadcast compatible, following the rules
// NumPy uses when vectorizing a gufunc.
//
// Example:
//
//	func TestMatMul(t *testing.T) {
//		s := gufunc.MustNew("(m,n),(n,p)->(m,p)", gufunc.Options{MaxSide: 4, MaxDimsExtra: 2})
//		args := must.M1(gufunc.Args(s, rapid.Float64Range(-10, 10)))
//		rapid.Check(t, func(t *rapid.T) {
//			xy := args.Draw(t, "xy")
//			...
//		})
//	}
//
// All configuration errors are reported by New, before any sampling. Generation itself never fails
// and never rejects samples: sizes are drawn so that they are consistent by construction, which keeps
// rapid's shrinking fast and effective.
package gufunc

import (
	"slices"

	"github.com/gomlx/gufunc/signature"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultMaxSide is the default maximum size of a generated dimension.
const DefaultMaxSide = 5

// Bounds of the size of a dimension, both inclusive.
type Bounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (b Bounds) validate(what string) error {
	if b.Min < 0 {
		return errors.Errorf("%s: minimum side %d must be >= 0", what, b.Min)
	}
	if b.Min > b.Max {
		return errors.Errorf("%s: minimum side %d is larger than maximum side %d", what, b.Min, b.Max)
	}
	return nil
}

// Options configure the shapes generated by a Strategy. Use DefaultOptions as a starting point:
// the zero value only generates empty dimensions.
type Options struct {
	// MinSide and MaxSide bound the size of every named dimension and of every extra dimension.
	// Extra dimensions are never empty: their sizes are drawn from [max(1, MinSide), MaxSide].
	MinSide int `yaml:"min_side"`
	MaxSide int `yaml:"max_side"`

	// MinDimsExtra and MaxDimsExtra bound the number of extra broadcast dimensions prepended to each
	// argument. MaxDimsExtra == 0 (the default) generates exactly the core shapes of the signature.
	MinDimsExtra int `yaml:"min_dims_extra"`
	MaxDimsExtra int `yaml:"max_dims_extra"`

	// DimSides overrides MinSide and MaxSide for specific dimension names. An override replaces
	// both global bounds for that name. Names must appear in the signature inputs.
	DimSides map[string]Bounds `yaml:"dim_sides,omitempty"`

	// ArgMaxDimsExtra overrides MaxDimsExtra for specific arguments, indexed by input position.
	// It must not be smaller than MinDimsExtra.
	ArgMaxDimsExtra map[int]int `yaml:"arg_max_dims_extra,omitempty"`

	// Excluded lists input positions that never get extra dimensions, for arguments the function
	// under test doesn't broadcast over (e.g.: an axis or a weights vector).
	Excluded []int `yaml:"excluded,omitempty"`

	// Unique requires the elements within each generated array to be distinct.
	Unique bool `yaml:"unique,omitempty"`
}

// DefaultOptions returns the default options: sides in [0, DefaultMaxSide] and no extra dimensions.
func DefaultOptions() Options {
	return Options{MinSide: 0, MaxSide: DefaultMaxSide}
}

// Strategy holds a parsed signature and validated options. It is immutable and can be shared by
// concurrent tests: all generation state lives in the rapid.T of each draw.
type Strategy struct {
	sig  *signature.Signature
	opts Options

	// names are the distinct input dimension names, and nameBounds their bounds, in the same order.
	names      []string
	nameBounds []Bounds

	// argMinExtra and argMaxExtra bound the number of extra dimensions per input.
	argMinExtra, argMaxExtra []int
	minSlots, maxSlots       int

	// extraSides bound the sizes of extra dimensions.
	extraSides Bounds
}

// New parses the signature and validates the options, returning a Strategy from which generators
// can be created.
//
// It fails with a *signature.ParseError for malformed signatures, or with an error describing
// invalid options: negative or inverted bounds, overrides of unknown dimension names or of
// out-of-range arguments.
func New(sig string, opts Options) (*Strategy, error) {
	parsed, err := signature.Parse(sig)
	if err != nil {
		return nil, err
	}
	return NewFromSignature(parsed, opts)
}

// MustNew is like New but panics on error.
func MustNew(sig string, opts Options) *Strategy {
	return must.M1(New(sig, opts))
}

// NewFromSignature is like New, for an already parsed signature.
func NewFromSignature(sig *signature.Signature, opts Options) (*Strategy, error) {
	if sig == nil || sig.NumInputs() == 0 {
		return nil, errors.New("gufunc signature must have at least one input")
	}
	global := Bounds{Min: opts.MinSide, Max: opts.MaxSide}
	if err := global.validate("gufunc options"); err != nil {
		return nil, err
	}
	extra := Bounds{Min: opts.MinDimsExtra, Max: opts.MaxDimsExtra}
	if extra.Min < 0 || extra.Min > extra.Max {
		return nil, errors.Errorf("gufunc options: invalid number of extra dimensions [%d, %d]", extra.Min, extra.Max)
	}

	s := &Strategy{sig: sig, opts: opts, names: sig.Names()}
	s.nameBounds = make([]Bounds, len(s.names))
	for ii, name := range s.names {
		s.nameBounds[ii] = global
		if override, found := opts.DimSides[name]; found {
			s.nameBounds[ii] = override
		}
	}
	for name, override := range opts.DimSides {
		if !slices.Contains(s.names, name) {
			return nil, errors.Errorf("gufunc options: dimension %q in DimSides is not an input dimension of %q (names: %v)",
				name, sig, s.names)
		}
		if err := override.validate("gufunc options for dimension " + name); err != nil {
			return nil, err
		}
	}

	numInputs := sig.NumInputs()
	s.argMinExtra = make([]int, numInputs)
	s.argMaxExtra = make([]int, numInputs)
	for ii := range numInputs {
		s.argMinExtra[ii] = opts.MinDimsExtra
		s.argMaxExtra[ii] = opts.MaxDimsExtra
	}
	for arg, maxExtra := range opts.ArgMaxDimsExtra {
		if arg < 0 || arg >= numInputs {
			return nil, errors.Errorf("gufunc options: ArgMaxDimsExtra refers to argument #%d, but %q has %d inputs",
				arg, sig, numInputs)
		}
		if maxExtra < opts.MinDimsExtra {
			return nil, errors.Errorf("gufunc options: ArgMaxDimsExtra[%d]=%d is smaller than MinDimsExtra=%d",
				arg, maxExtra, opts.MinDimsExtra)
		}
		s.argMaxExtra[arg] = maxExtra
	}
	for _, arg := range opts.Excluded {
		if arg < 0 || arg >= numInputs {
			return nil, errors.Errorf("gufunc options: Excluded refers to argument #%d, but %q has %d inputs",
				arg, sig, numInputs)
		}
		s.argMinExtra[arg] = 0
		s.argMaxExtra[arg] = 0
	}
	s.minSlots = slices.Max(s.argMinExtra)
	s.maxSlots = slices.Max(s.argMaxExtra)
	s.extraSides = Bounds{Min: max(1, opts.MinSide), Max: opts.MaxSide}
	if s.maxSlots > 0 && s.extraSides.Max < 1 {
		return nil, errors.Errorf("gufunc options: extra dimensions have sizes >= 1, but MaxSide=%d", opts.MaxSide)
	}

	klog.V(1).Infof("gufunc strategy for %q: names=%v bounds=%v, extra dims per argument in [%v, %v]",
		sig, s.names, s.nameBounds, s.argMinExtra, s.argMaxExtra)
	return s, nil
}

// Signature returns the parsed signature of the strategy.
func (s *Strategy) Signature() *signature.Signature {
	return s.sig
}

// Options returns the options the strategy was created with.
func (s *Strategy) Options() Options {
	return s.opts
}

// NumInputs returns the number of arrays generated per example.
func (s *Strategy) NumInputs() int {
	return s.sig.NumInputs()
}
