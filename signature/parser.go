package signature

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/gufunc/internal/utils"
	"github.com/pkg/errors"
)

// ParseError is returned (wrapped with a stack trace) by Parse for malformed signatures.
// Use errors.As to retrieve it.
type ParseError struct {
	Signature string
	Pos       int // Byte offset in Signature where the problem was found.
	Msg       string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid gufunc signature %q at position %d: %s", e.Signature, e.Pos, e.Msg)
}

const arrow = "->"

// Parse a gufunc signature like "(m,n),(n,p)->(m,p)".
//
// It fails with a *ParseError if the "->" separator is missing or duplicated, if parentheses are
// unbalanced, if a dimension is not an identifier or integer, if there isn't exactly one output,
// or if the output uses a dimension name that no input defines.
func Parse(signature string) (*Signature, error) {
	p := &parser{signature: signature}
	sig, err := p.parse()
	if err != nil {
		return nil, err
	}
	return sig, nil
}

type parser struct {
	signature string
	pos       int
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return errors.WithStack(&ParseError{Signature: p.signature, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.signature)
}

func (p *parser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.signature[p.pos]
}

func (p *parser) atArrow() bool {
	return strings.HasPrefix(p.signature[p.pos:], arrow)
}

func (p *parser) skipSpaces() {
	for !p.atEnd() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) parse() (*Signature, error) {
	first := strings.Index(p.signature, arrow)
	if first < 0 {
		return nil, p.errorf(len(p.signature), "missing %q separating inputs from the output", arrow)
	}
	if second := strings.Index(p.signature[first+len(arrow):], arrow); second >= 0 {
		return nil, p.errorf(first+len(arrow)+second, "duplicated %q separator", arrow)
	}

	sig := &Signature{}
	for {
		p.skipSpaces()
		if p.atArrow() {
			if len(sig.Inputs) == 0 {
				return nil, p.errorf(p.pos, "at least one input argument is required")
			}
			return nil, p.errorf(p.pos, "expected an argument after ',', got %q", arrow)
		}
		input, _, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		sig.Inputs = append(sig.Inputs, input)
		p.skipSpaces()
		if p.peek() == ',' {
			p.pos++
			continue
		}
		break
	}
	if !p.atArrow() {
		return nil, p.errorf(p.pos, "expected ',' or %q after argument, got %q", arrow, p.rest())
	}
	p.pos += len(arrow)

	p.skipSpaces()
	var outputPositions []int
	var err error
	sig.Output, outputPositions, err = p.parseArg()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.peek() == ',' {
		return nil, p.errorf(p.pos, "only one output argument is supported")
	}
	if !p.atEnd() {
		return nil, p.errorf(p.pos, "unexpected trailing %q", p.rest())
	}

	inputNames := utils.SetWith(sig.Names()...)
	for ii, dim := range sig.Output.Dims {
		if dim.Kind == DimNamed && !inputNames.Has(dim.Name) {
			return nil, p.errorf(outputPositions[ii], "output dimension %q is not defined by any input", dim.Name)
		}
	}
	return sig, nil
}

func (p *parser) rest() string {
	return p.signature[p.pos:]
}

// parseArg parses one parenthesized list of dimensions. It returns the template and the position
// of each of its dimensions.
func (p *parser) parseArg() (arg ArgTemplate, positions []int, err error) {
	if p.peek() != '(' {
		if p.atEnd() {
			err = p.errorf(p.pos, "expected '(', got end of signature")
		} else {
			err = p.errorf(p.pos, "expected '(', got %q", p.rest())
		}
		return
	}
	open := p.pos
	p.pos++
	p.skipSpaces()
	if p.peek() == ')' {
		p.pos++
		return
	}
	for {
		p.skipSpaces()
		start := p.pos
		token := p.readToken()
		if token == "" {
			switch {
			case p.atEnd():
				err = p.errorf(open, "unbalanced parenthesis, missing ')'")
			case p.peek() == '(':
				err = p.errorf(p.pos, "unexpected '(' inside an argument")
			default:
				err = p.errorf(p.pos, "empty dimension name")
			}
			return
		}
		var dim DimRef
		dim, err = p.parseDim(start, token)
		if err != nil {
			return
		}
		arg.Dims = append(arg.Dims, dim)
		positions = append(positions, start)

		p.skipSpaces()
		switch {
		case p.atEnd() || p.atArrow():
			err = p.errorf(open, "unbalanced parenthesis, missing ')'")
			return
		case p.peek() == ',':
			p.pos++
		case p.peek() == ')':
			p.pos++
			return
		default:
			err = p.errorf(p.pos, "unexpected %q inside an argument", p.peek())
			return
		}
	}
}

// readToken consumes everything up to the next delimiter.
func (p *parser) readToken() string {
	start := p.pos
	for !p.atEnd() && !p.atArrow() {
		c := p.peek()
		if c == ',' || c == '(' || c == ')' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		p.pos++
	}
	return p.signature[start:p.pos]
}

func (p *parser) parseDim(pos int, token string) (DimRef, error) {
	if utils.IsDecimal(token) {
		size, err := strconv.Atoi(token)
		if err != nil {
			return DimRef{}, p.errorf(pos, "invalid fixed dimension %q: %v", token, err)
		}
		return Fixed(size), nil
	}
	if !utils.IsIdentifier(token) {
		return DimRef{}, p.errorf(pos, "dimension name %q is not a valid identifier, suggestion %q",
			token, utils.NormalizeIdentifier(token))
	}
	return Named(token), nil
}
