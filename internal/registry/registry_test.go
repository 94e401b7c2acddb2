package registry

import (
	"errors"
	"testing"

	"building-editor/internal/entity"
	"building-editor/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	attached map[*physics.Body]string
}

func newFakeHost() *fakeHost {
	return &fakeHost{attached: make(map[*physics.Body]string)}
}

func (h *fakeHost) Attach(e *entity.Entity) *physics.Body {
	b := physics.NewBody(e.Physics, e.Transform.Position, e.Transform.Orientation())
	h.attached[b] = e.ID
	return b
}

func (h *fakeHost) Detach(b *physics.Body) {
	delete(h.attached, b)
}

func tri(id string) *entity.Entity {
	verts := []rl.Vector3{{}, {X: 1}, {Y: 1}}
	return &entity.Entity{
		ID:        id,
		Geometry:  entity.NewGeometry(verts, []entity.Face{{0, 1, 2}}, entity.WindingAsAuthored),
		Transform: entity.IdentityTransform(),
	}
}

func assertAligned(t *testing.T, r *Registry, h *fakeHost) {
	t.Helper()
	vis, bodies := r.Visuals(), r.Bodies()
	require.Len(t, bodies, len(vis))
	assert.Len(t, h.attached, len(vis))
	for i, e := range vis {
		assert.Equal(t, e.ID, h.attached[bodies[i]], "pair %d", i)
		assert.Equal(t, i, r.index[e.ID])
	}
}

func TestAddRemoveKeepsAlignment(t *testing.T) {
	h := newFakeHost()
	r := New(h)
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, r.Add(tri(id)))
		assertAligned(t, r, h)
	}
	assert.True(t, r.Remove("b"))
	assertAligned(t, r, h)
	assert.False(t, r.Remove("b"))
	assert.True(t, r.Remove("a"))
	assertAligned(t, r, h)
	assert.Equal(t, 2, r.Len())

	_, ok := r.Get("a")
	assert.False(t, ok)
	_, ok = r.Body("d")
	assert.True(t, ok)
}

func TestAddRejects(t *testing.T) {
	h := newFakeHost()
	r := New(h)
	require.NoError(t, r.Add(tri("a")))

	err := r.Add(tri("a"))
	assert.True(t, errors.Is(err, ErrDuplicateID))

	bad := tri("bad")
	bad.Geometry.Faces = []entity.Face{{0, 1}}
	err = r.Add(bad)
	assert.True(t, errors.Is(err, ErrMalformedGeometry))
	assert.Contains(t, err.Error(), "bad")

	assert.Equal(t, 1, r.Len())
	assertAligned(t, r, h)
}

func TestReplaceIsAllOrNothing(t *testing.T) {
	h := newFakeHost()
	r := New(h)
	require.NoError(t, r.Add(tri("a")))
	require.NoError(t, r.Add(tri("b")))

	bad := tri("z")
	bad.Geometry.Vertices = nil
	err := r.Replace([]*entity.Entity{tri("x"), bad})
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(r))
	assertAligned(t, r, h)

	err = r.Replace([]*entity.Entity{tri("x"), tri("x")})
	assert.True(t, errors.Is(err, ErrDuplicateID))
	assert.Equal(t, []string{"a", "b"}, ids(r))

	require.NoError(t, r.Replace([]*entity.Entity{tri("x"), tri("y"), tri("z")}))
	assert.Equal(t, []string{"x", "y", "z"}, ids(r))
	assertAligned(t, r, h)
}

func TestIngestAllSkipsMalformed(t *testing.T) {
	h := newFakeHost()
	r := New(h)
	bad := tri("broken")
	bad.Geometry.Faces[0] = entity.Face{0, 1, 9}
	warnings := r.IngestAll([]*entity.Entity{tri("a"), bad, tri("c")})
	require.Len(t, warnings, 1)
	assert.True(t, errors.Is(warnings[0], ErrMalformedGeometry))
	assert.Equal(t, []string{"a", "c"}, ids(r))
	assertAligned(t, r, h)
}

func TestNilHost(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Add(tri("a")))
	_, ok := r.Body("a")
	assert.False(t, ok)
	assert.True(t, r.Remove("a"))
}

func ids(r *Registry) []string {
	var out []string
	for _, e := range r.All() {
		out = append(out, e.ID)
	}
	return out
}
