package core

import (
	"testing"

	"github.com/hubastard/skirmish/engine/colors"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Errorf("size = %dx%d, want 1280x720", cfg.Width, cfg.Height)
	}
	if cfg.AtlasSize != 256 {
		t.Errorf("AtlasSize = %d, want 256", cfg.AtlasSize)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SKIRMISH_WIDTH", "800")
	t.Setenv("SKIRMISH_SEED", "42")
	t.Setenv("SKIRMISH_CLEAR_COLOR", "1,0,0,1")
	t.Setenv("SKIRMISH_AUDIO", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 800 {
		t.Errorf("Width = %d, want 800", cfg.Width)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.AudioEnabled {
		t.Error("AudioEnabled = true, want false")
	}
	if got, want := cfg.Clear(), (colors.Color{1, 0, 0, 1}); got != want {
		t.Errorf("Clear() = %v, want %v", got, want)
	}
}

func TestConfigValidate(t *testing.T) {
	ok := Config{Width: 10, Height: 10, ClearColor: []float32{0, 0, 0, 1}, AtlasSize: 64}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"short clear color", func(c *Config) { c.ClearColor = []float32{1} }, true},
		{"tiny atlas", func(c *Config) { c.AtlasSize = 8 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok
			c.ClearColor = append([]float32(nil), ok.ClearColor...)
			tt.mutate(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInputEdges(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyEnter, Down: true})
	if !in.JustPressed(KeyEnter) || !in.IsKeyDown(KeyEnter) {
		t.Fatal("Enter should be pressed and just pressed")
	}

	in.EndFrame()
	// key repeat while held
	in.Handle(EventKey{Key: KeyEnter, Down: true})
	if in.JustPressed(KeyEnter) {
		t.Error("held key repeated JustPressed")
	}
	if !in.IsKeyDown(KeyEnter) {
		t.Error("held key not down")
	}

	in.Handle(EventKey{Key: KeyEnter, Down: false})
	if !in.Released(KeyEnter) || in.IsKeyDown(KeyEnter) {
		t.Error("Enter should be released")
	}
	in.EndFrame()
	if in.Released(KeyEnter) {
		t.Error("Released survived EndFrame")
	}
}

func TestInputReleaseWithoutPress(t *testing.T) {
	in := NewInput()
	in.Handle(EventKey{Key: KeyW, Down: false})
	if in.Released(KeyW) {
		t.Error("release of an unpressed key was recorded")
	}
}

type namedLayer struct {
	name    string
	handled bool
	seen    *[]string
}

func (l *namedLayer) OnAttach(*Engine) error { return nil }
func (l *namedLayer) OnDetach(*Engine)       {}
func (l *namedLayer) OnUpdate(*Engine)       { *l.seen = append(*l.seen, l.name) }
func (l *namedLayer) OnRender(*Engine)       {}
func (l *namedLayer) OnEvent(*Engine, Event) bool {
	*l.seen = append(*l.seen, l.name)
	return l.handled
}

func TestLayerStackOrder(t *testing.T) {
	var seen []string
	var ls LayerStack
	ls.Push(&namedLayer{name: "bottom", seen: &seen})
	ls.Push(&namedLayer{name: "top", handled: true, seen: &seen})

	ls.ForEach(func(l Layer) { l.OnUpdate(nil) })
	ls.ForEachReverse(func(l Layer) bool { return l.OnEvent(nil, EventCloseRequested{}) })

	want := []string{"bottom", "top", "top"}
	if len(seen) != len(want) {
		t.Fatalf("seen = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}

	l, ok := ls.Pop()
	if !ok || l.(*namedLayer).name != "top" || ls.Len() != 1 {
		t.Errorf("Pop = %v, %v; len %d", l, ok, ls.Len())
	}
}
