package filter_test

import (
	"reflect"
	"testing"

	"gotest.tools/v3/assert"

	"pkg.world.dev/tecs/filter"
)

type alpha struct{ A int }
type beta struct{ B int }
type gamma struct{ G int }

var (
	alphaType = filter.Component[alpha]()
	betaType  = filter.Component[beta]()
	gammaType = filter.Component[gamma]()
)

func TestContains(t *testing.T) {
	f := filter.Contains(alphaType, betaType)

	assert.Check(t, f.MatchesComponents([]reflect.Type{alphaType, betaType}))
	assert.Check(t, f.MatchesComponents([]reflect.Type{alphaType, betaType, gammaType}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{alphaType}))
	assert.Check(t, !f.MatchesComponents(nil))
}

func TestExact(t *testing.T) {
	f := filter.Exact(alphaType, betaType)

	assert.Check(t, f.MatchesComponents([]reflect.Type{alphaType, betaType}))
	assert.Check(t, f.MatchesComponents([]reflect.Type{betaType, alphaType}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{alphaType, betaType, gammaType}))
	assert.Check(t, !f.MatchesComponents([]reflect.Type{alphaType}))
}

func TestNot(t *testing.T) {
	f := filter.Not(filter.Contains(alphaType))

	assert.Check(t, !f.MatchesComponents([]reflect.Type{alphaType}))
	assert.Check(t, f.MatchesComponents([]reflect.Type{betaType}))
}

func TestAndOr(t *testing.T) {
	and := filter.And(filter.Contains(alphaType), filter.Contains(betaType))
	assert.Check(t, and.MatchesComponents([]reflect.Type{alphaType, betaType}))
	assert.Check(t, !and.MatchesComponents([]reflect.Type{alphaType}))

	or := filter.Or(filter.Contains(alphaType), filter.Contains(betaType))
	assert.Check(t, or.MatchesComponents([]reflect.Type{alphaType}))
	assert.Check(t, or.MatchesComponents([]reflect.Type{betaType}))
	assert.Check(t, !or.MatchesComponents([]reflect.Type{gammaType}))
}

func TestAll(t *testing.T) {
	f := filter.All()
	assert.Check(t, f.MatchesComponents(nil))
	assert.Check(t, f.MatchesComponents([]reflect.Type{alphaType, betaType, gammaType}))
}
