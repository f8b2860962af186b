package cql_test

import (
	"reflect"
	"testing"

	"github.com/rotisserie/eris"
	"gotest.tools/v3/assert"

	"pkg.world.dev/tecs/cql"
)

type position struct{ X, Y float64 }
type velocity struct{ DX, DY float64 }
type health struct{ Value int }

var knownComponents = map[string]reflect.Type{
	"Position": reflect.TypeOf(position{}),
	"Velocity": reflect.TypeOf(velocity{}),
	"Health":   reflect.TypeOf(health{}),
}

func resolve(name string) (reflect.Type, error) {
	t, ok := knownComponents[name]
	if !ok {
		return nil, eris.Errorf("component %q is not registered", name)
	}
	return t, nil
}

func TestParseContains(t *testing.T) {
	f, err := cql.Parse("CONTAINS(Position)", resolve)
	assert.NilError(t, err)

	assert.Check(t, f.MatchesComponents([]reflect.Type{
		reflect.TypeOf(position{}), reflect.TypeOf(velocity{}),
	}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{reflect.TypeOf(health{})}))
}

func TestParseExact(t *testing.T) {
	f, err := cql.Parse("EXACT(Position, Velocity)", resolve)
	assert.NilError(t, err)

	assert.Check(t, f.MatchesComponents([]reflect.Type{
		reflect.TypeOf(velocity{}), reflect.TypeOf(position{}),
	}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{
		reflect.TypeOf(position{}), reflect.TypeOf(velocity{}), reflect.TypeOf(health{}),
	}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{reflect.TypeOf(position{})}))
}

func TestParseAll(t *testing.T) {
	f, err := cql.Parse("ALL()", resolve)
	assert.NilError(t, err)
	assert.Check(t, f.MatchesComponents(nil))
	assert.Check(t, f.MatchesComponents([]reflect.Type{reflect.TypeOf(health{})}))
}

func TestParseNot(t *testing.T) {
	f, err := cql.Parse("!CONTAINS(Health)", resolve)
	assert.NilError(t, err)
	assert.Check(t, f.MatchesComponents([]reflect.Type{reflect.TypeOf(position{})}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{reflect.TypeOf(health{})}))
}

func TestParseOperators(t *testing.T) {
	f, err := cql.Parse("CONTAINS(Position) & !CONTAINS(Health)", resolve)
	assert.NilError(t, err)
	assert.Check(t, f.MatchesComponents([]reflect.Type{
		reflect.TypeOf(position{}), reflect.TypeOf(velocity{}),
	}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{
		reflect.TypeOf(position{}), reflect.TypeOf(health{}),
	}))

	f, err = cql.Parse("EXACT(Health) | EXACT(Position)", resolve)
	assert.NilError(t, err)
	assert.Check(t, f.MatchesComponents([]reflect.Type{reflect.TypeOf(health{})}))
	assert.Check(t, f.MatchesComponents([]reflect.Type{reflect.TypeOf(position{})}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{reflect.TypeOf(velocity{})}))
}

func TestParseParenthesizedSubexpression(t *testing.T) {
	f, err := cql.Parse("(CONTAINS(Position) | CONTAINS(Health)) & !CONTAINS(Velocity)", resolve)
	assert.NilError(t, err)
	assert.Check(t, f.MatchesComponents([]reflect.Type{reflect.TypeOf(position{})}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{
		reflect.TypeOf(position{}), reflect.TypeOf(velocity{}),
	}))
}

func TestParseUnknownComponent(t *testing.T) {
	_, err := cql.Parse("CONTAINS(Nonexistent)", resolve)
	assert.ErrorContains(t, err, "not registered")
}

func TestParseMalformed(t *testing.T) {
	for _, bad := range []string{"", "CONTAINS(", "EXACT", "& CONTAINS(Position)"} {
		_, err := cql.Parse(bad, resolve)
		assert.Check(t, err != nil, "expected parse failure for %q", bad)
	}
}
