package geosphere

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneConfig describes a window, camera, light and object list.
type SceneConfig struct {
	Window  WindowConfig   `yaml:"window"`
	Camera  CameraConfig   `yaml:"camera"`
	Light   [3]float32     `yaml:"light"`
	Objects []ObjectConfig `yaml:"objects"`
}

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	FPS       int    `yaml:"fps"`
	Wireframe bool   `yaml:"wireframe"`
}

type CameraConfig struct {
	FOV  float32 `yaml:"fov"`
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
	// Eye and Target are optional; when both are zero the view stays at
	// identity.
	Eye    [3]float32 `yaml:"eye"`
	Target [3]float32 `yaml:"target"`
}

type ObjectConfig struct {
	// Shape is "sphere", "cube" or "file". File shapes load Path with
	// LoadMeshFile.
	Shape        string           `yaml:"shape"`
	Path         string           `yaml:"path"`
	Subdivisions int              `yaml:"subdivisions"`
	Scale        float32          `yaml:"scale"`
	Rotate       []RotationConfig `yaml:"rotate"`
	Translate    [3]float32       `yaml:"translate"`
	Color        []int            `yaml:"color"`
	Hidden       bool             `yaml:"hidden"`
	Spin         []RotationConfig `yaml:"spin"`
}

type RotationConfig struct {
	Degrees float32    `yaml:"degrees"`
	Axis    [3]float32 `yaml:"axis"`
}

func vec(a [3]float32) Vec3 {
	return Vec3{a[0], a[1], a[2]}
}

// DefaultSceneConfig is two level-6 spheres tilted in opposite directions,
// each spinning about its own centre.
func DefaultSceneConfig() *SceneConfig {
	sphere := func(x, tilt, turn float32, col []int) ObjectConfig {
		return ObjectConfig{
			Shape:        "sphere",
			Subdivisions: 6,
			Scale:        2,
			Rotate:       []RotationConfig{{Degrees: tilt, Axis: [3]float32{0, 0, 1}}},
			Translate:    [3]float32{x, 0, -10},
			Color:        col,
			Spin: []RotationConfig{
				{Degrees: turn, Axis: [3]float32{0, 1, 0}},
				{Degrees: turn, Axis: [3]float32{0, 0, 1}},
			},
		}
	}

	return &SceneConfig{
		Window: WindowConfig{Title: "geosphere", Width: 1280, Height: 720, FPS: 60},
		Camera: CameraConfig{FOV: 70, Near: 1, Far: 100},
		Light:  [3]float32{0.577, 0.577, 0.577},
		Objects: []ObjectConfig{
			sphere(5, 45, 1, []int{220, 80, 60}),
			sphere(-5, -45, -1, []int{60, 140, 220}),
		},
	}
}

func LoadSceneConfig(path string) (*SceneConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := ParseSceneConfig(f)
	if err != nil {
		return nil, fmt.Errorf("scene config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSceneConfig decodes YAML over the defaults, so a file only needs the
// fields it changes. A non-empty objects list replaces the default objects.
func ParseSceneConfig(r io.Reader) (*SceneConfig, error) {
	cfg := DefaultSceneConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return cfg, nil
}

// Build creates the camera, objects and animations the config describes.
func (c *SceneConfig) Build() (*Scene, error) {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return nil, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	aspect := float32(c.Window.Width) / float32(c.Window.Height)
	cam, err := NewCamera(aspect, c.Camera.FOV, c.Camera.Near, c.Camera.Far)
	if err != nil {
		return nil, err
	}
	if eye, target := vec(c.Camera.Eye), vec(c.Camera.Target); eye != target {
		cam.LookAt(eye, target, Up)
	}

	scene := NewScene(cam)
	if light := vec(c.Light); light != Zero {
		scene.Light = light
	}

	for i, oc := range c.Objects {
		obj, err := oc.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		if len(oc.Spin) == 0 {
			scene.AddObject(obj)
			continue
		}
		spin := Spin{Pivot: vec(oc.Translate)}
		for _, r := range oc.Spin {
			spin.Rotations = append(spin.Rotations, Rotation{Degrees: r.Degrees, Axis: vec(r.Axis)})
		}
		scene.AddAnimatedObject(obj, spin)
	}
	return scene, nil
}

func (oc ObjectConfig) build() (*Object, error) {
	var obj *Object
	switch oc.Shape {
	case "sphere", "":
		o, err := NewSphere(oc.Subdivisions)
		if err != nil {
			return nil, err
		}
		obj = o
	case "cube":
		o, err := NewCube()
		if err != nil {
			return nil, err
		}
		obj = o
	case "file":
		m, err := LoadMeshFile(oc.Path)
		if err != nil {
			return nil, err
		}
		obj = NewObject()
		obj.SetMesh(m)
	default:
		return nil, fmt.Errorf("unknown shape %q", oc.Shape)
	}

	if oc.Scale != 0 {
		obj.ScaledBy(oc.Scale)
	}
	for _, r := range oc.Rotate {
		obj.RotateAround(r.Degrees, vec(r.Axis))
	}
	obj.TranslateBy(vec(oc.Translate))

	switch len(oc.Color) {
	case 0:
	case 3:
		obj.Recolor(channel(oc.Color[0]), channel(oc.Color[1]), channel(oc.Color[2]))
	default:
		return nil, fmt.Errorf("color needs 3 components, got %d", len(oc.Color))
	}
	obj.SetVisible(!oc.Hidden)
	return obj, nil
}

func channel(v int) uint8 {
	return uint8(clamp(v, 0, 255))
}
