// Package cql implements a small textual query language over archetype
// component filters, meant for debug consoles and tooling:
//
//	CONTAINS(Position, Velocity) & !EXACT(Health)
//
// An expression parses into a filter.ComponentFilter; component names are
// resolved through a caller-supplied lookup, normally the world's registry.
package cql

import (
	"reflect"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"

	"pkg.world.dev/tecs/filter"
)

// Resolver maps a component name from a query string to its component type.
type Resolver func(name string) (reflect.Type, error)

type cqlOperator int

const (
	opAnd cqlOperator = iota
	opOr
)

var operatorMap = map[string]cqlOperator{"&": opAnd, "|": opOr}

// Capture tells the parser how to turn an operator token into cqlOperator.
func (o *cqlOperator) Capture(s []string) error {
	if len(s) == 0 {
		return eris.New("invalid operator")
	}
	operator, ok := operatorMap[s[0]]
	if !ok {
		return eris.New("invalid operator")
	}
	*o = operator
	return nil
}

type cqlComponent struct {
	Name string `parser:"@Ident"`
}

type cqlAll struct{}

func (a *cqlAll) Capture(values []string) error {
	if values[0] == "ALL" && values[1] == "(" && values[2] == ")" {
		*a = cqlAll{}
	}
	return nil
}

type cqlNot struct {
	SubExpression *cqlValue `parser:"'!' @@"`
}

type cqlExact struct {
	Components []*cqlComponent `parser:"'EXACT' '(' (@@ ',')* @@ ')'"`
}

type cqlContains struct {
	Components []*cqlComponent `parser:"'CONTAINS' '(' (@@ ',')* @@ ')'"`
}

type cqlValue struct {
	All           *cqlAll      `parser:"@('ALL' '(' ')')"`
	Exact         *cqlExact    `parser:"| @@"`
	Contains      *cqlContains `parser:"| @@"`
	Not           *cqlNot      `parser:"| @@"`
	Subexpression *cqlTerm     `parser:"| '(' @@ ')'"`
}

type cqlFactor struct {
	Base *cqlValue `parser:"@@"`
}

type cqlOpFactor struct {
	Operator cqlOperator `parser:"@('&' | '|')"`
	Factor   *cqlFactor  `parser:"@@"`
}

type cqlTerm struct {
	Left  *cqlFactor     `parser:"@@"`
	Right []*cqlOpFactor `parser:"@@*"`
}

var parser = participle.MustBuild[cqlTerm]()

func resolveComponents(components []*cqlComponent, resolve Resolver) ([]reflect.Type, error) {
	resolved := make([]reflect.Type, 0, len(components))
	for _, component := range components {
		t, err := resolve(component.Name)
		if err != nil {
			return nil, eris.Wrap(err, "")
		}
		resolved = append(resolved, t)
	}
	return resolved, nil
}

func valueToFilter(value *cqlValue, resolve Resolver) (filter.ComponentFilter, error) {
	switch {
	case value.Not != nil:
		inner, err := valueToFilter(value.Not.SubExpression, resolve)
		if err != nil {
			return nil, err
		}
		return filter.Not(inner), nil
	case value.Exact != nil:
		if len(value.Exact.Components) == 0 {
			return nil, eris.New("EXACT cannot have zero parameters")
		}
		components, err := resolveComponents(value.Exact.Components, resolve)
		if err != nil {
			return nil, err
		}
		return filter.Exact(components...), nil
	case value.Contains != nil:
		if len(value.Contains.Components) == 0 {
			return nil, eris.New("CONTAINS cannot have zero parameters")
		}
		components, err := resolveComponents(value.Contains.Components, resolve)
		if err != nil {
			return nil, err
		}
		return filter.Contains(components...), nil
	case value.All != nil:
		return filter.All(), nil
	case value.Subexpression != nil:
		return termToFilter(value.Subexpression, resolve)
	default:
		return nil, eris.New("unknown error during conversion from CQL AST to ComponentFilter")
	}
}

func termToFilter(term *cqlTerm, resolve Resolver) (filter.ComponentFilter, error) {
	if term.Left == nil {
		return nil, eris.New("CQL term is empty")
	}
	result, err := valueToFilter(term.Left.Base, resolve)
	if err != nil {
		return nil, err
	}
	for _, opFactor := range term.Right {
		right, err := valueToFilter(opFactor.Factor.Base, resolve)
		if err != nil {
			return nil, err
		}
		switch opFactor.Operator {
		case opAnd:
			result = filter.And(result, right)
		case opOr:
			result = filter.Or(result, right)
		default:
			return nil, eris.New("invalid operator in CQL expression")
		}
	}
	return result, nil
}

// Parse compiles a CQL string into a ComponentFilter.
func Parse(cqlText string, resolve Resolver) (filter.ComponentFilter, error) {
	term, err := parser.ParseString("", cqlText)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to parse CQL string %q", cqlText)
	}
	return termToFilter(term, resolve)
}

// Display

func (o cqlOperator) String() string {
	switch o {
	case opAnd:
		return "&"
	case opOr:
		return "|"
	}
	panic("unsupported operator")
}

func (a *cqlAll) String() string {
	return "ALL()"
}

func componentNames(components []*cqlComponent) string {
	names := make([]string, 0, len(components))
	for _, comp := range components {
		names = append(names, comp.Name)
	}
	return strings.Join(names, ", ")
}

func (e *cqlExact) String() string {
	return "EXACT(" + componentNames(e.Components) + ")"
}

func (e *cqlContains) String() string {
	return "CONTAINS(" + componentNames(e.Components) + ")"
}

func (v *cqlValue) String() string {
	switch {
	case v.Exact != nil:
		return v.Exact.String()
	case v.Contains != nil:
		return v.Contains.String()
	case v.All != nil:
		return v.All.String()
	case v.Not != nil:
		return "!(" + v.Not.SubExpression.String() + ")"
	case v.Subexpression != nil:
		return "(" + v.Subexpression.String() + ")"
	default:
		panic("logic error displaying CQL ast. Check the code in cql.go")
	}
}

func (t *cqlTerm) String() string {
	out := []string{t.Left.Base.String()}
	for _, r := range t.Right {
		out = append(out, r.Operator.String(), r.Factor.Base.String())
	}
	return strings.Join(out, " ")
}
