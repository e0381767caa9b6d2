package geosphere

import (
	"image/color"
	"testing"
)

func TestSpinKeepsPivot(t *testing.T) {
	o := NewObject()
	pivot := Vec3{5, 0, -10}
	o.RotateAround(45, Vec3{0, 0, 1})
	o.TranslateBy(pivot)

	spin := Spin{
		Pivot: pivot,
		Rotations: []Rotation{
			{Degrees: 30, Axis: Up},
			{Degrees: 30, Axis: Front},
		},
	}
	for i := 0; i < 12; i++ {
		spin.Apply(o)
	}

	if got := o.Position(); !got.ApproxEqual(pivot, 1e-4) {
		t.Errorf("position drifted to %v, want %v", got, pivot)
	}
}

func TestSceneUpdate(t *testing.T) {
	cam, _ := NewCamera(1, 60, 1, 100)
	s := NewScene(cam)

	still := NewObject()
	moving := NewObject()
	s.AddObject(still)
	s.AddAnimatedObject(moving, Spin{Rotations: []Rotation{{Degrees: 90, Axis: Front}}})

	s.Update()

	if still.ModelMatrix() != Identity() {
		t.Error("object without a spin was moved")
	}
	want := RotationMatrix(90, Front)
	if !moving.ModelMatrix().ApproxEqual(want, float32EqualityThreshold) {
		t.Errorf("animated model =\n%v\nwant\n%v", moving.ModelMatrix(), want)
	}
	if len(s.Objects()) != 2 {
		t.Errorf("scene has %d objects, want 2", len(s.Objects()))
	}
}

func TestSceneDrawsFarthestFirst(t *testing.T) {
	cam, _ := NewCamera(1, 60, 1, 100)
	s := NewScene(cam)

	add := func(z float32, r uint8) *Object {
		o := newTestCube(t)
		o.TranslateBy(Vec3{0, 0, z})
		o.Recolor(r, 0, 0)
		s.AddObject(o)
		return o
	}
	add(-5, 1)
	add(-40, 2)
	hidden := add(-60, 3)
	hidden.SetVisible(false)
	add(-20, 4)

	ctx := &recordingContext{}
	if err := s.Draw(ctx); err != nil {
		t.Fatal(err)
	}

	want := []uint8{2, 4, 1}
	if len(ctx.draws) != len(want) {
		t.Fatalf("got %d draws, want %d", len(ctx.draws), len(want))
	}
	for i, r := range want {
		if got := ctx.draws[i].Color; got != (color.RGBA{r, 0, 0, 255}) {
			t.Errorf("draw %d has color %v, want red %d", i, got, r)
		}
		if ctx.draws[i].LightDir != defaultLight {
			t.Errorf("draw %d light = %v", i, ctx.draws[i].LightDir)
		}
	}
}

func TestSceneDrawWithoutCamera(t *testing.T) {
	s := NewScene(nil)
	s.AddObject(newTestCube(t))
	if err := s.Draw(&recordingContext{}); err == nil {
		t.Error("expected an error drawing without a camera")
	}
}
