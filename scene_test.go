package tecs_test

import (
	"testing"

	"github.com/goccy/go-json"
	"gotest.tools/v3/assert"

	"pkg.world.dev/tecs"
	"pkg.world.dev/tecs/types"
)

func TestSceneRoundTrip(t *testing.T) {
	src := newTestWorld(t)
	a := tecs.Spawn(src, Wizard{Health: Health{Value: 1}, Mana: Mana{Value: 10}})
	b := tecs.Spawn(src, Wizard{Health: Health{Value: 2}, Mana: Mana{Value: 20}})
	c := tecs.Spawn(src, Knight{Health: Health{Value: 3}, Armor: Armor{Value: 30}})

	data, err := src.SaveScene(tecs.NewScene(a, b, c))
	assert.NilError(t, err)
	assert.Equal(t, 2, len(data))

	dst := newTestWorld(t)
	scene, err := dst.LoadScene(data)
	assert.NilError(t, err)
	assert.Equal(t, 3, scene.Len())
	assert.Equal(t, 3, dst.EntityCount())

	assert.DeepEqual(t, []int{1, 2, 3}, sortedHealths(t, dst))

	// The fresh handles resolve to the reconstructed values.
	total := 0
	for _, id := range scene.Entities() {
		ref, ok := tecs.GetComponent[Health](dst, id)
		assert.Check(t, ok)
		total += ref.Get().Value
		ref.Close()
	}
	assert.Equal(t, 6, total)
}

func TestSceneSkipsDeadEntities(t *testing.T) {
	w := newTestWorld(t)
	a := tecs.Spawn(w, Wizard{Health: Health{Value: 1}})
	b := tecs.Spawn(w, Wizard{Health: Health{Value: 2}})

	scene := tecs.NewScene(a, b)
	w.Despawn(a)

	data, err := w.SaveScene(scene)
	assert.NilError(t, err)
	assert.Equal(t, 1, len(data[types.ArchetypeIDOf(types.TypeOf[Wizard]())]))
}

func TestSceneSkipsUnsavedArchetypes(t *testing.T) {
	w := tecs.NewWorld[gameEvent]()
	tecs.Register[Wizard](w)
	tecs.RegisterUnsaved[Knight](w)
	a := tecs.Spawn(w, Wizard{Health: Health{Value: 1}})
	b := tecs.Spawn(w, Knight{Health: Health{Value: 2}})

	data, err := w.SaveScene(tecs.NewScene(a, b))
	assert.NilError(t, err)
	assert.Equal(t, 1, len(data))
	_, ok := data[types.ArchetypeIDOf(types.TypeOf[Knight]())]
	assert.Check(t, !ok)
}

func TestSceneFromWorld(t *testing.T) {
	w := newTestWorld(t)
	tecs.Spawn(w, Wizard{})
	tecs.Spawn(w, Knight{})

	scene := tecs.SceneFromWorld(w)
	assert.Equal(t, 2, scene.Len())
}

func TestLoadSceneUnknownArchetype(t *testing.T) {
	src := newTestWorld(t)
	tecs.Spawn(src, Wizard{Health: Health{Value: 1}})
	data, err := src.SaveScene(tecs.SceneFromWorld(src))
	assert.NilError(t, err)

	dst := tecs.NewWorld[gameEvent]()
	tecs.Register[Knight](dst)

	_, err = dst.LoadScene(data)
	assert.ErrorIs(t, err, tecs.ErrUnknownArchetype)
	assert.Equal(t, 0, dst.EntityCount())
}

func TestLoadSceneUnknownArchetypeLeavesNoPartialState(t *testing.T) {
	src := newTestWorld(t)
	tecs.Spawn(src, Wizard{Health: Health{Value: 1}})
	tecs.Spawn(src, Knight{Health: Health{Value: 2}})
	data, err := src.SaveScene(tecs.SceneFromWorld(src))
	assert.NilError(t, err)
	assert.Equal(t, 2, len(data))

	// Only one of the two saved archetypes is registered here. Whichever
	// map key is visited first, the failed load must not commit any rows.
	dst := tecs.NewWorld[gameEvent]()
	tecs.Register[Wizard](dst)

	_, err = dst.LoadScene(data)
	assert.ErrorIs(t, err, tecs.ErrUnknownArchetype)
	assert.Equal(t, 0, dst.EntityCount())
	assert.DeepEqual(t, []int{}, sortedHealths(t, dst))
}

func TestLoadSceneMalformedRow(t *testing.T) {
	w := newTestWorld(t)
	data := tecs.SceneData{
		types.ArchetypeIDOf(types.TypeOf[Wizard]()): {json.RawMessage(`{"Health":`)},
	}
	_, err := w.LoadScene(data)
	assert.Check(t, err != nil)
}

func TestLoadSceneMalformedRowLeavesNoPartialState(t *testing.T) {
	w := newTestWorld(t)
	data := tecs.SceneData{
		types.ArchetypeIDOf(types.TypeOf[Wizard]()): {
			json.RawMessage(`{"Health":{"Value":1},"Mana":{"Value":2}}`),
		},
		types.ArchetypeIDOf(types.TypeOf[Knight]()): {
			json.RawMessage(`{"Health":`),
		},
	}

	_, err := w.LoadScene(data)
	assert.ErrorContains(t, err, "malformed row")
	assert.Equal(t, 0, w.EntityCount())
}

func TestEncodeDecodeScene(t *testing.T) {
	src := newTestWorld(t)
	tecs.Spawn(src, Wizard{Health: Health{Value: 4}, Mana: Mana{Value: 2}})

	bz, err := src.EncodeScene(tecs.SceneFromWorld(src))
	assert.NilError(t, err)

	dst := newTestWorld(t)
	scene, err := dst.DecodeScene(bz)
	assert.NilError(t, err)
	assert.Equal(t, 1, scene.Len())

	got, ok := tecs.GetEntity[Wizard](dst, scene.Entities()[0])
	assert.Check(t, ok)
	assert.Equal(t, Wizard{Health: Health{Value: 4}, Mana: Mana{Value: 2}}, got)
}

func TestDecodeSceneMalformedBytes(t *testing.T) {
	w := newTestWorld(t)
	_, err := w.DecodeScene([]byte("not a scene"))
	assert.ErrorContains(t, err, "malformed scene file")
}

func TestDecodeSceneSchemaMismatch(t *testing.T) {
	src := newTestWorld(t)
	tecs.Spawn(src, Wizard{Health: Health{Value: 1}})
	bz, err := src.EncodeScene(tecs.SceneFromWorld(src))
	assert.NilError(t, err)

	var file tecs.SceneFile
	assert.NilError(t, json.Unmarshal(bz, &file))
	wizardID := types.ArchetypeIDOf(types.TypeOf[Wizard]())
	file.Schemas[wizardID] = json.RawMessage(`{"type":"object","properties":{"Bogus":{"type":"integer"}}}`)
	tampered, err := json.Marshal(file)
	assert.NilError(t, err)

	dst := newTestWorld(t)
	_, err = dst.DecodeScene(tampered)
	assert.ErrorIs(t, err, tecs.ErrSchemaMismatch)
}
