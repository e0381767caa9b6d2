package geosphere

import (
	"fmt"
	"log/slog"
	"sort"
)

// Rotation is a turn of Degrees about a unit Axis.
type Rotation struct {
	Degrees float32
	Axis    Vec3
}

// Spin is a per-frame animation: move the pivot to the origin, apply the
// rotations in order, and move it back.
type Spin struct {
	Pivot     Vec3
	Rotations []Rotation
}

func (s Spin) Apply(t Transformable) {
	Translate(t, s.Pivot.Neg())
	for _, r := range s.Rotations {
		Rotate(t, r.Degrees, r.Axis)
	}
	Translate(t, s.Pivot)
}

type sceneObject struct {
	object *Object
	spin   *Spin
}

// Scene is a flat list of objects seen through one camera and lit by one
// directional light.
type Scene struct {
	Camera *Camera
	Light  Vec3

	objects []sceneObject
}

var defaultLight = Vec3{0.577, 0.577, 0.577}

func NewScene(cam *Camera) *Scene {
	return &Scene{
		Camera: cam,
		Light:  defaultLight,
	}
}

func (s *Scene) AddObject(o *Object) {
	s.objects = append(s.objects, sceneObject{object: o})
}

func (s *Scene) AddAnimatedObject(o *Object, spin Spin) {
	s.objects = append(s.objects, sceneObject{object: o, spin: &spin})
}

func (s *Scene) Objects() []*Object {
	out := make([]*Object, len(s.objects))
	for i, so := range s.objects {
		out[i] = so.object
	}
	return out
}

// Update advances every animated object by one frame.
func (s *Scene) Update() {
	for _, so := range s.objects {
		if so.spin != nil {
			so.spin.Apply(so.object)
		}
	}
}

// Draw renders the visible objects farthest first, ordered by the view
// space depth of each object's origin.
func (s *Scene) Draw(ctx GraphicsContext) error {
	if s.Camera == nil {
		return fmt.Errorf("draw scene: no camera")
	}

	order := s.drawOrder()
	for _, i := range order {
		if err := s.objects[i].object.Draw(ctx, s.Camera, s.Light); err != nil {
			slog.Error("object draw failed", "object", i, "error", err)
			return err
		}
	}
	return nil
}

func (s *Scene) drawOrder() []int {
	view := s.Camera.View()
	depth := make([]float32, len(s.objects))
	order := make([]int, len(s.objects))
	for i, so := range s.objects {
		order[i] = i
		depth[i] = view.TransformPoint(so.object.Position()).Z
	}

	// The camera looks down -Z, so the most negative depth is farthest.
	sort.SliceStable(order, func(a, b int) bool {
		return depth[order[a]] < depth[order[b]]
	})
	return order
}
