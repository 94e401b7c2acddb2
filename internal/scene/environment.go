package scene

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Weather is a named lighting preset.
type Weather struct {
	Name             string
	SunIntensity     float32
	AmbientIntensity float32
	Background       rl.Color
}

var weathers = map[string]Weather{
	"sunny":  {Name: "sunny", SunIntensity: 1.2, AmbientIntensity: 0.8, Background: rl.NewColor(0x87, 0xce, 0xeb, 0xff)},
	"cloudy": {Name: "cloudy", SunIntensity: 0.6, AmbientIntensity: 1.0, Background: rl.NewColor(0xa9, 0xb2, 0xbb, 0xff)},
	"rainy":  {Name: "rainy", SunIntensity: 0.4, AmbientIntensity: 0.6, Background: rl.NewColor(0x6b, 0x73, 0x7c, 0xff)},
	"snowy":  {Name: "snowy", SunIntensity: 0.8, AmbientIntensity: 1.2, Background: rl.NewColor(0xdd, 0xe4, 0xea, 0xff)},
}

// WeatherNames returns the preset names, sorted.
func WeatherNames() []string {
	out := make([]string, 0, len(weathers))
	for n := range weathers {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Environment decorates the view with lighting and background. It never
// touches entities or bodies. While disabled it reports neutral lighting.
type Environment struct {
	Enabled   bool
	weather   Weather
	timeOfDay float32
}

// NewEnvironment returns a disabled environment at noon with sunny weather.
func NewEnvironment() *Environment {
	return &Environment{weather: weathers["sunny"], timeOfDay: 12}
}

// SetWeather selects a preset by name.
func (env *Environment) SetWeather(name string) error {
	w, ok := weathers[name]
	if !ok {
		return fmt.Errorf("unknown weather %q (want one of %v)", name, WeatherNames())
	}
	env.weather = w
	return nil
}

// Weather returns the current preset.
func (env *Environment) Weather() Weather {
	return env.weather
}

// SetTimeOfDay sets the hour in [0,24).
func (env *Environment) SetTimeOfDay(hour float32) {
	env.timeOfDay = math32.Mod(math32.Mod(hour, 24)+24, 24)
}

// TimeOfDay returns the hour.
func (env *Environment) TimeOfDay() float32 {
	return env.timeOfDay
}

// SunAngles returns the sun altitude and azimuth in degrees for the current hour.
func (env *Environment) SunAngles() (altitude, azimuth float32) {
	t := env.timeOfDay
	altitude = math32.Sin((t-12)*math32.Pi/12) * 90
	azimuth = math32.Mod(t/24*360+180, 360)
	return altitude, azimuth
}

// LightDir returns the unit direction from the origin toward the sun.
func (env *Environment) LightDir() rl.Vector3 {
	if !env.Enabled {
		return rl.Vector3Normalize(rl.NewVector3(0.5, 1, 0.5))
	}
	alt, az := env.SunAngles()
	a, z := alt*rl.Deg2rad, az*rl.Deg2rad
	return rl.NewVector3(math32.Cos(a)*math32.Sin(z), math32.Sin(a), math32.Cos(a)*math32.Cos(z))
}

// Intensities returns sun and ambient light intensity.
func (env *Environment) Intensities() (sun, ambient float32) {
	if !env.Enabled {
		return 0.75, 0.25
	}
	return env.weather.SunIntensity, env.weather.AmbientIntensity
}

// Background returns the clear color.
func (env *Environment) Background() rl.Color {
	if !env.Enabled {
		return rl.NewColor(0x87, 0xce, 0xeb, 0xff)
	}
	return env.weather.Background
}
