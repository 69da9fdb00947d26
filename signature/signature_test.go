package signature

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// must1 panics if there is an error.
func must1[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func args(templates ...[]DimRef) []ArgTemplate {
	result := make([]ArgTemplate, len(templates))
	for i, dims := range templates {
		result[i] = ArgTemplate{Dims: dims}
	}
	return result
}

func TestParse(t *testing.T) {
	m, n, p := Named("m"), Named("n"), Named("p")
	testCases := []struct {
		signature string
		want      *Signature
		canonical string
	}{
		{
			signature: "(m,n),(n,p)->(m,p)",
			want:      &Signature{Inputs: args([]DimRef{m, n}, []DimRef{n, p}), Output: ArgTemplate{Dims: []DimRef{m, p}}},
			canonical: "(m,n),(n,p)->(m,p)",
		},
		{
			signature: "(n),(n)->()",
			want:      &Signature{Inputs: args([]DimRef{n}, []DimRef{n})},
			canonical: "(n),(n)->()",
		},
		{
			signature: " ( m , n ) -> ( n ) ",
			want:      &Signature{Inputs: args([]DimRef{m, n}), Output: ArgTemplate{Dims: []DimRef{n}}},
			canonical: "(m,n)->(n)",
		},
		{
			signature: "(),()->()",
			want:      &Signature{Inputs: args(nil, nil)},
			canonical: "(),()->()",
		},
		{
			signature: "(n,3),(3)->(n)",
			want:      &Signature{Inputs: args([]DimRef{n, Fixed(3)}, []DimRef{Fixed(3)}), Output: ArgTemplate{Dims: []DimRef{n}}},
			canonical: "(n,3),(3)->(n)",
		},
		{
			signature: "(n,n)->()",
			want:      &Signature{Inputs: args([]DimRef{n, n})},
			canonical: "(n,n)->()",
		},
		{
			signature: "(batch_1,_x)->(2)",
			want:      &Signature{Inputs: args([]DimRef{Named("batch_1"), Named("_x")}), Output: ArgTemplate{Dims: []DimRef{Fixed(2)}}},
			canonical: "(batch_1,_x)->(2)",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.signature, func(t *testing.T) {
			sig, err := Parse(tc.signature)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, sig); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.signature, diff)
			}
			assert.Equal(t, tc.canonical, sig.String())
			assert.True(t, sig.Equal(must1(Parse(sig.String()))))
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		signature string
		wantMsg   string
		wantPos   int
	}{
		{"(m,n),(n,p)", "missing", 11},
		{"(m)->(m)->(m)", "duplicated", 8},
		{"->()", "at least one input", 0},
		{"(m),->(m)", "expected an argument", 4},
		{"(m,n->(m)", "unbalanced", 0},
		{"(m,n),(n,p->(m,p)", "unbalanced", 6},
		{"(m,n)->(m", "unbalanced", 7},
		{"(m,n))->(m)", "expected ','", 5},
		{"(m,(n))->(m)", "unexpected '('", 3},
		{"(m,)->(m)", "empty dimension", 3},
		{"(m n)->(m)", "unexpected", 3},
		{"m,n->()", "expected '('", 0},
		{"(n)->", "end of signature", 5},
		{"(n?)->()", "not a valid identifier", 1},
		{"(1n)->()", "not a valid identifier", 1},
		{"(n)->(n),(n)", "only one output", 8},
		{"(n)->(n)x", "trailing", 8},
		{"(m,n)->(p)", "output dimension \"p\"", 8},
		{"(99999999999999999999)->()", "invalid fixed dimension", 1},
	}
	for _, tc := range testCases {
		t.Run(tc.signature, func(t *testing.T) {
			_, err := Parse(tc.signature)
			require.Error(t, err)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "error %v is not a *ParseError", err)
			assert.Contains(t, parseErr.Msg, tc.wantMsg)
			assert.Equal(t, tc.wantPos, parseErr.Pos)
			assert.Equal(t, tc.signature, parseErr.Signature)
		})
	}
	require.Panics(t, func() { MustParse("(m") })
}

func TestNames(t *testing.T) {
	sig := MustParse("(m,n),(n,3,p),(q)->(m,p)")
	assert.Equal(t, []string{"m", "n", "p", "q"}, sig.Names())
	assert.Equal(t, 3, sig.NumInputs())
	assert.True(t, sig.HasName("q"))
	assert.False(t, sig.HasName("3"))
	assert.Equal(t, 3, sig.Inputs[1].Rank())
	assert.Equal(t, "Named", DimNamed.String())
	assert.Equal(t, "Fixed", sig.Inputs[1].Dims[1].Kind.String())
	assert.Empty(t, MustParse("(),()->()").Names())
}

// signatureGen generates random valid signatures, in canonical form.
func signatureGen() *rapid.Generator[string] {
	names := []string{"a", "b", "n", "m", "p", "batch_1", "2", "0"}
	argGen := rapid.Custom(func(t *rapid.T) []string {
		return rapid.SliceOfN(rapid.SampledFrom(names), 0, 4).Draw(t, "dims")
	})
	return rapid.Custom(func(t *rapid.T) string {
		inputs := rapid.SliceOfN(argGen, 1, 4).Draw(t, "inputs")
		var sig Signature
		for _, input := range inputs {
			var arg ArgTemplate
			for _, name := range input {
				arg.Dims = append(arg.Dims, must1(new(parser).parseDim(0, name)))
			}
			sig.Inputs = append(sig.Inputs, arg)
		}
		defined := sig.Names()
		if len(defined) > 0 {
			for _, name := range rapid.SliceOfN(rapid.SampledFrom(defined), 0, 3).Draw(t, "output") {
				sig.Output.Dims = append(sig.Output.Dims, Named(name))
			}
		}
		return sig.String()
	})
}

func TestParseIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := signatureGen().Draw(t, "signature")
		sig1, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %+v", text, err)
		}
		sig2 := must1(Parse(text))
		if diff := cmp.Diff(sig1, sig2); diff != "" {
			t.Fatalf("parsing %q twice differs (-first +second):\n%s", text, diff)
		}
		if got := sig1.String(); got != text {
			t.Fatalf("Parse(%q).String() = %q", text, got)
		}
	})
}
