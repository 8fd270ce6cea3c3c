package config

var Presets = map[string]*Config{
	"classic": {
		Particles: 5000, Boundary: 500, Speed: 5, Dt: 0.1,
		PollMs: 16, Radius: 2, Steps: 1000,
	},
	"sparse": {
		Particles: 500, Boundary: 500, Speed: 5, Dt: 0.1,
		PollMs: 16, Radius: 3, Steps: 1000,
	},
	"stress": {
		Particles: 50000, Boundary: 500, Speed: 5, Dt: 0.1,
		PollMs: 16, Radius: 1, Steps: 2000,
	},
	"slowmo": {
		Particles: 5000, Boundary: 500, Speed: 5, Dt: 0.01,
		PollMs: 16, Radius: 2, Steps: 1000,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
