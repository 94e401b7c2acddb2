package scene

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topDown() *Camera {
	c := NewCamera(rl.NewVector3(0, 10, 0.001), rl.Vector3Zero(), 800, 600)
	return c
}

func TestProjectTargetIsScreenCenter(t *testing.T) {
	c := NewCamera(rl.NewVector3(10, 10, 10), rl.NewVector3(1, 2, 3), 800, 600)
	px, ok := c.ToScreen(rl.NewVector3(1, 2, 3))
	require.True(t, ok)
	assert.InDelta(t, 400, px.X, 1e-2)
	assert.InDelta(t, 300, px.Y, 1e-2)
}

func TestProjectBehindCamera(t *testing.T) {
	c := NewCamera(rl.NewVector3(0, 0, 10), rl.Vector3Zero(), 800, 600)
	_, ok := c.Project(rl.NewVector3(0, 0, 20))
	assert.False(t, ok)
}

func TestPixelNDCRoundTrip(t *testing.T) {
	c := topDown()
	px := rl.NewVector2(123, 456)
	back := c.NDCToPixel(rl.NewVector3(c.PixelToNDC(px).X, c.PixelToNDC(px).Y, 0))
	assert.InDelta(t, 123, back.X, 1e-3)
	assert.InDelta(t, 456, back.Y, 1e-3)
}

func TestRayThroughProjectedPointHitsIt(t *testing.T) {
	c := NewCamera(rl.NewVector3(8, 6, 10), rl.Vector3Zero(), 1024, 768)
	p := rl.NewVector3(1.5, 0, -2)
	px, ok := c.ToScreen(p)
	require.True(t, ok)

	got, err := GroundPoint(c.RayFromPixel(px))
	require.NoError(t, err)
	assert.InDelta(t, p.X, got.X, 1e-2)
	assert.InDelta(t, p.Z, got.Z, 1e-2)
}

func TestGroundPointMiss(t *testing.T) {
	tests := []struct {
		name string
		ray  rl.Ray
	}{
		{"parallel", rl.NewRay(rl.NewVector3(0, 1, 0), rl.NewVector3(1, 0, 0))},
		{"pointing up", rl.NewRay(rl.NewVector3(0, 1, 0), rl.NewVector3(0, 1, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GroundPoint(tt.ray)
			assert.True(t, errors.Is(err, ErrNoIntersection))
		})
	}
}

func TestOrbitKeepsDistanceAndStaysAboveGround(t *testing.T) {
	c := NewCamera(rl.NewVector3(10, 10, 10), rl.Vector3Zero(), 800, 600)
	d := rl.Vector3Distance(c.Position, c.Target)
	c.Orbit(0.7, -5)
	assert.InDelta(t, d, rl.Vector3Distance(c.Position, c.Target), 1e-3)
	assert.Greater(t, c.Position.Y, float32(0))
}

func TestZoom(t *testing.T) {
	c := NewCamera(rl.NewVector3(0, 0, 10), rl.Vector3Zero(), 800, 600)
	c.Zoom(0.5)
	assert.InDelta(t, 5, c.Position.Z, 1e-4)
	c.Zoom(0.01)
	assert.InDelta(t, 5, c.Position.Z, 1e-4)
}

func TestFrameLooksAtCenter(t *testing.T) {
	c := NewCamera(rl.NewVector3(10, 10, 10), rl.Vector3Zero(), 800, 600)
	c.Frame(rl.NewBoundingBox(rl.NewVector3(4, 0, 4), rl.NewVector3(6, 2, 6)))
	assert.Equal(t, rl.NewVector3(5, 1, 5), c.Target)
	px, ok := c.ToScreen(rl.NewVector3(5, 1, 5))
	require.True(t, ok)
	assert.InDelta(t, 400, px.X, 1e-2)
}

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	sun, amb := env.Intensities()
	assert.Equal(t, float32(0.75), sun)
	assert.Equal(t, float32(0.25), amb)

	env.Enabled = true
	require.NoError(t, env.SetWeather("rainy"))
	sun, amb = env.Intensities()
	assert.Equal(t, float32(0.4), sun)
	assert.Equal(t, float32(0.6), amb)
	assert.Error(t, env.SetWeather("hail"))
	assert.Equal(t, "rainy", env.Weather().Name)

	env.SetTimeOfDay(18)
	alt, az := env.SunAngles()
	assert.InDelta(t, 90, alt, 1e-3)
	assert.InDelta(t, 90, az, 1e-3)
	assert.InDelta(t, 1, env.LightDir().Y, 1e-3)

	env.SetTimeOfDay(-6)
	assert.InDelta(t, 18, env.TimeOfDay(), 1e-4)
}

func TestWeatherNames(t *testing.T) {
	assert.Equal(t, []string{"cloudy", "rainy", "snowy", "sunny"}, WeatherNames())
}
