package sigdecl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amber-lang/amber/internal/config"
	"github.com/amber-lang/amber/internal/types"
)

// ParseSignature parses a signature expression of the form
// "(Integer, Float) -> String" into a function type.
func ParseSignature(s string) (types.Function, error) {
	p := &typeParser{input: s}
	p.skipSpaces()
	fn, err := p.parseFunction()
	if err != nil {
		return types.Function{}, err
	}
	p.skipSpaces()
	if !p.eof() {
		return types.Function{}, fmt.Errorf("trailing input at %d in %q", p.pos, s)
	}
	return fn, nil
}

// ParseType parses a single type expression: a nominal name, a generic
// application like Array<Integer>, a union like Integer | Nil, a vector
// name like Vec4, or a parenthesized function signature.
func ParseType(s string) (types.Type, error) {
	p := &typeParser{input: s}
	p.skipSpaces()
	t, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if !p.eof() {
		return nil, fmt.Errorf("trailing input at %d in %q", p.pos, s)
	}
	return t, nil
}

type typeParser struct {
	input string
	pos   int
}

func (p *typeParser) eof() bool { return p.pos >= len(p.input) }

func (p *typeParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *typeParser) skipSpaces() {
	for !p.eof() && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) expect(ch byte) error {
	p.skipSpaces()
	if p.peek() != ch {
		return fmt.Errorf("expected %q at %d in %q", string(ch), p.pos, p.input)
	}
	p.pos++
	return nil
}

// parseUnion parses one or more alternatives separated by '|'.
func (p *typeParser) parseUnion() (types.Type, error) {
	first, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	members := []types.Type{first}
	for {
		p.skipSpaces()
		if p.peek() != '|' {
			break
		}
		p.pos++
		p.skipSpaces()
		next, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return first, nil
	}
	// Declarations contain no type variables, so normalization needs no
	// live arena.
	arena := types.NewArena()
	return arena.NormalizeUnion(members), nil
}

func (p *typeParser) parseAtom() (types.Type, error) {
	p.skipSpaces()
	if p.peek() == '(' {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		return fn, nil
	}

	name := p.parseName()
	if name == "" {
		return nil, fmt.Errorf("expected type name at %d in %q", p.pos, p.input)
	}

	if prim, ok := primitiveByName(name); ok {
		return prim, nil
	}
	if name == config.BoolTypeName {
		return types.Bool(), nil
	}
	if lanes, ok := vectorLanes(name); ok {
		vec, err := types.NewVector(lanes)
		if err != nil {
			return nil, err
		}
		return vec, nil
	}

	// Generic application: Name<Arg, ...>
	p.skipSpaces()
	if p.peek() == '<' {
		p.pos++
		var args []types.Type
		for {
			arg, err := p.parseUnion()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			p.skipSpaces()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
		if err := p.expect('>'); err != nil {
			return nil, err
		}
		return types.ClassInstance{Name: name, Args: args}, nil
	}

	return types.ClassInstance{Name: name}, nil
}

// parseFunction parses "(T1, T2) -> R".
func (p *typeParser) parseFunction() (types.Function, error) {
	if err := p.expect('('); err != nil {
		return types.Function{}, err
	}
	var params []types.Type
	p.skipSpaces()
	if p.peek() != ')' {
		for {
			param, err := p.parseUnion()
			if err != nil {
				return types.Function{}, err
			}
			params = append(params, param)
			p.skipSpaces()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
	}
	if err := p.expect(')'); err != nil {
		return types.Function{}, err
	}
	p.skipSpaces()
	if !strings.HasPrefix(p.input[p.pos:], "->") {
		return types.Function{}, fmt.Errorf("expected \"->\" at %d in %q", p.pos, p.input)
	}
	p.pos += 2
	ret, err := p.parseUnion()
	if err != nil {
		return types.Function{}, err
	}
	return types.Function{Params: params, Return: ret}, nil
}

func (p *typeParser) parseName() string {
	start := p.pos
	for !p.eof() {
		ch := p.input[p.pos]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == ':' {
			p.pos++
			continue
		}
		break
	}
	return p.input[start:p.pos]
}

func primitiveByName(name string) (types.Primitive, bool) {
	switch name {
	case config.IntegerTypeName:
		return types.Int, true
	case config.FloatTypeName:
		return types.Float, true
	case config.StringTypeName:
		return types.String, true
	case config.SymbolTypeName:
		return types.Symbol, true
	case config.RegexpTypeName:
		return types.Regexp, true
	case config.RangeTypeName:
		return types.Range, true
	case config.NilTypeName:
		return types.Nil, true
	case config.UntypedTypeName:
		return types.Untyped, true
	case "TrueClass":
		return types.True, true
	case "FalseClass":
		return types.False, true
	}
	return 0, false
}

func vectorLanes(name string) (int, bool) {
	if !strings.HasPrefix(name, config.VectorTypePrefix) {
		return 0, false
	}
	rest := name[len(config.VectorTypePrefix):]
	if rest == "" {
		return 0, false
	}
	lanes, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return lanes, true
}
