// Command meshexport writes an icosphere or cube mesh to disk. The output
// format follows the file extension: .ply, .dxf, .gsm or .lz4.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/smasonuk/geosphere"
)

func main() {
	level := flag.Int("level", 4, "subdivision level")
	out := flag.String("o", "sphere.ply", "output file")
	shape := flag.String("shape", "sphere", "sphere, icosahedron or cube")
	quiet := flag.Bool("q", false, "no progress bar")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	m, err := build(*shape, *level, !*quiet)
	if err != nil {
		slog.Error("failed to build mesh", "shape", *shape, "error", err)
		os.Exit(1)
	}

	if err := geosphere.SaveMeshFile(*out, m); err != nil {
		slog.Error("failed to save mesh", "path", *out, "error", err)
		os.Exit(1)
	}
	slog.Info("mesh written", "path", *out, "vertices", m.VertexCount(), "triangles", m.TriangleCount())
}

func build(shape string, level int, progress bool) (*geosphere.Mesh, error) {
	switch shape {
	case "cube":
		return geosphere.CubeMesh()
	case "icosahedron":
		return geosphere.IcosahedronMesh()
	case "sphere":
	default:
		return nil, fmt.Errorf("unknown shape %q", shape)
	}

	gen := &geosphere.SphereGenerator{}
	if progress && level > 0 {
		bar := progressbar.NewOptions(level,
			progressbar.OptionSetDescription(fmt.Sprintf("subdividing to level %d", level)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		gen.OnPass = func(pass, vertices, triangles int) {
			bar.Describe(fmt.Sprintf("pass %d: %d vertices, %d triangles", pass, vertices, triangles))
			_ = bar.Add(1)
		}
		defer bar.Finish()
	}
	return gen.Generate(level)
}
