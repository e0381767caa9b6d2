package geosphere

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// WritePLY writes m as ASCII PLY with per-vertex normals.
func WritePLY(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)
	hasNormals := len(m.Normals) == len(m.Vertices)

	_, _ = fmt.Fprintln(writer, "ply")
	_, _ = fmt.Fprintln(writer, "format ascii 1.0")
	_, _ = fmt.Fprintln(writer, "comment generated by geosphere")
	_, _ = fmt.Fprintf(writer, "element vertex %d\n", m.VertexCount())
	_, _ = fmt.Fprintln(writer, "property float x")
	_, _ = fmt.Fprintln(writer, "property float y")
	_, _ = fmt.Fprintln(writer, "property float z")
	if hasNormals {
		_, _ = fmt.Fprintln(writer, "property float nx")
		_, _ = fmt.Fprintln(writer, "property float ny")
		_, _ = fmt.Fprintln(writer, "property float nz")
	}
	_, _ = fmt.Fprintf(writer, "element face %d\n", m.TriangleCount())
	_, _ = fmt.Fprintln(writer, "property list uchar int vertex_indices")
	_, _ = fmt.Fprintln(writer, "end_header")

	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		if hasNormals {
			n := m.Normal(i)
			_, _ = fmt.Fprintf(writer, "%g %g %g %g %g %g\n", v.X, v.Y, v.Z, n.X, n.Y, n.Z)
		} else {
			_, _ = fmt.Fprintf(writer, "%g %g %g\n", v.X, v.Y, v.Z)
		}
	}
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		_, _ = fmt.Fprintf(writer, "3 %d %d %d\n", a, b, c)
	}

	return writer.Flush()
}

// ReadPLY reads an ASCII PLY file of triangles. Vertex normals are used
// when present and calculated otherwise; polygons with more than three
// corners are fanned into triangles.
func ReadPLY(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)

	var vertexCount, faceCount int
	var currentElement string
	vertexProps := map[string]int{}

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrBadMeshFile)
	}

header:
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "format":
			if len(parts) < 2 || parts[1] != "ascii" {
				return nil, fmt.Errorf("%w: only ascii PLY is supported", ErrBadMeshFile)
			}
		case "element":
			if len(parts) != 3 {
				return nil, fmt.Errorf("%w: element line %q", ErrBadMeshFile, scanner.Text())
			}
			currentElement = parts[1]
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("%w: element count: %v", ErrBadMeshFile, err)
			}
			if n < 0 || n > maxFileElements {
				return nil, fmt.Errorf("%w: %s count %d out of range", ErrBadMeshFile, currentElement, n)
			}
			switch currentElement {
			case "vertex":
				vertexCount = n
			case "face":
				faceCount = n
			}
		case "property":
			if currentElement == "vertex" && len(parts) == 3 {
				vertexProps[parts[2]] = len(vertexProps)
			}
		case "end_header":
			break header
		}
	}

	for _, p := range []string{"x", "y", "z"} {
		if _, ok := vertexProps[p]; !ok {
			return nil, fmt.Errorf("%w: vertex property %s missing", ErrBadMeshFile, p)
		}
	}
	_, hasNX := vertexProps["nx"]
	_, hasNY := vertexProps["ny"]
	_, hasNZ := vertexProps["nz"]
	hasNormals := hasNX && hasNY && hasNZ

	// Counts are untrusted until the rows are read.
	m := &Mesh{Vertices: make([]float32, 0, min(vertexCount, preallocLimit)*3)}
	field := func(parts []string, name string) (float32, error) {
		f, err := strconv.ParseFloat(parts[vertexProps[name]], 32)
		return float32(f), err
	}

	for i := 0; i < vertexCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: unexpected end of file while reading vertices", ErrBadMeshFile)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < len(vertexProps) {
			return nil, fmt.Errorf("%w: vertex %d has %d fields", ErrBadMeshFile, i, len(parts))
		}

		var v, n Vec3
		var err error
		if v.X, err = field(parts, "x"); err == nil {
			if v.Y, err = field(parts, "y"); err == nil {
				v.Z, err = field(parts, "z")
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: vertex %d: %v", ErrBadMeshFile, i, err)
		}
		m.AddVertex(v)

		if hasNormals {
			if n.X, err = field(parts, "nx"); err == nil {
				if n.Y, err = field(parts, "ny"); err == nil {
					n.Z, err = field(parts, "nz")
				}
			}
			if err != nil {
				return nil, fmt.Errorf("%w: normal %d: %v", ErrBadMeshFile, i, err)
			}
			m.Normals = append(m.Normals, n.X, n.Y, n.Z)
		}
	}

	for i := 0; i < faceCount; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("%w: unexpected end of file while reading faces", ErrBadMeshFile)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			return nil, fmt.Errorf("%w: empty face %d", ErrBadMeshFile, i)
		}
		corners, err := strconv.Atoi(parts[0])
		if err != nil || corners < 3 || len(parts) < corners+1 {
			return nil, fmt.Errorf("%w: face %d: %q", ErrBadMeshFile, i, scanner.Text())
		}

		idx := make([]uint32, corners)
		for j := range idx {
			v, err := strconv.ParseUint(parts[j+1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: face %d: %v", ErrBadMeshFile, i, err)
			}
			idx[j] = uint32(v)
		}
		for j := 1; j < corners-1; j++ {
			m.AddTriangle(idx[0], idx[j], idx[j+1])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read PLY: %w", err)
	}

	if !hasNormals {
		if err := m.CalculateNormals(); err != nil {
			return nil, err
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// WriteDXF writes each triangle as a 3DFACE entity. DXF faces have four
// corners, so the third corner is repeated.
func WriteDXF(w io.Writer, m *Mesh) error {
	writer := bufio.NewWriter(w)

	writePair := func(code int, value interface{}) {
		_, _ = fmt.Fprintf(writer, "%d\n%v\n", code, value)
	}

	writePair(0, "SECTION")
	writePair(2, "HEADER")
	writePair(0, "ENDSEC")

	writePair(0, "SECTION")
	writePair(2, "ENTITIES")

	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		corners := [4]Vec3{m.Vertex(int(a)), m.Vertex(int(b)), m.Vertex(int(c)), m.Vertex(int(c))}

		writePair(0, "3DFACE")
		writePair(8, "0")
		for k, p := range corners {
			writePair(10+k, p.X)
			writePair(20+k, p.Y)
			writePair(30+k, p.Z)
		}
	}

	writePair(0, "ENDSEC")
	writePair(0, "EOF")

	return writer.Flush()
}

// maxFileElements bounds the vertex and index counts a mesh file may
// declare.
const maxFileElements = 1 << 28

// preallocLimit caps how much is reserved from a header before the data
// behind it has been seen.
const preallocLimit = 1 << 16

var meshMagic = [4]byte{'G', 'S', 'P', 'H'}

const meshVersion = 1

// lz4 frame magic, little-endian 0x184d2204.
var lz4Header = []byte{0x04, 0x22, 0x4d, 0x18}

type meshHeader struct {
	Magic    [4]byte
	Version  uint32
	Vertices uint32
	Indices  uint32
}

// WriteBinary writes m in the little-endian binary mesh format, optionally
// wrapped in an LZ4 frame. Normals must be present.
func WriteBinary(w io.Writer, m *Mesh, compress bool) error {
	if err := m.Validate(); err != nil {
		return err
	}

	out := w
	var zw *lz4.Writer
	if compress {
		zw = lz4.NewWriter(w)
		out = zw
	}
	err := writeMeshBody(out, m)
	if zw != nil {
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("write mesh: %w", err)
	}
	return nil
}

func writeMeshBody(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	hdr := meshHeader{
		Magic:    meshMagic,
		Version:  meshVersion,
		Vertices: uint32(m.VertexCount()),
		Indices:  uint32(len(m.Indices)),
	}
	for _, data := range []any{hdr, m.Vertices, m.Normals, m.Indices} {
		if err := binary.Write(bw, binary.LittleEndian, data); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadBinary reads a mesh written by WriteBinary, detecting compression
// from the LZ4 frame magic.
func ReadBinary(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMeshFile, err)
	}

	var in io.Reader = br
	if bytes.Equal(peek, lz4Header) {
		in = lz4.NewReader(br)
	}

	var hdr meshHeader
	if err := binary.Read(in, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrBadMeshFile, err)
	}
	if hdr.Magic != meshMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrBadMeshFile, hdr.Magic[:])
	}
	if hdr.Version != meshVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadMeshFile, hdr.Version)
	}

	if hdr.Vertices > maxFileElements || hdr.Indices > maxFileElements {
		return nil, fmt.Errorf("%w: %d vertices, %d indices out of range", ErrBadMeshFile, hdr.Vertices, hdr.Indices)
	}
	vertices, indices := int(hdr.Vertices), int(hdr.Indices)

	m := &Mesh{}
	if m.Vertices, err = readFloats(in, vertices*3); err != nil {
		return nil, fmt.Errorf("%w: vertices: %v", ErrBadMeshFile, err)
	}
	if m.Normals, err = readFloats(in, vertices*3); err != nil {
		return nil, fmt.Errorf("%w: normals: %v", ErrBadMeshFile, err)
	}
	if m.Indices, err = readIndices(in, indices); err != nil {
		return nil, fmt.Errorf("%w: indices: %v", ErrBadMeshFile, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// readFloats reads n values in chunks, so a truncated body fails before
// the full declared size is allocated.
func readFloats(r io.Reader, n int) ([]float32, error) {
	out := make([]float32, 0, min(n, preallocLimit))
	chunk := make([]float32, min(n, preallocLimit))
	for len(out) < n {
		c := chunk[:min(n-len(out), len(chunk))]
		if err := binary.Read(r, binary.LittleEndian, c); err != nil {
			return nil, err
		}
		out = append(out, c...)
	}
	return out, nil
}

func readIndices(r io.Reader, n int) ([]uint32, error) {
	out := make([]uint32, 0, min(n, preallocLimit))
	chunk := make([]uint32, min(n, preallocLimit))
	for len(out) < n {
		c := chunk[:min(n-len(out), len(chunk))]
		if err := binary.Read(r, binary.LittleEndian, c); err != nil {
			return nil, err
		}
		out = append(out, c...)
	}
	return out, nil
}

// SaveMeshFile picks the format from the file extension: .ply, .dxf,
// .gsm (binary) or .lz4 (compressed binary).
func SaveMeshFile(path string, m *Mesh) error {
	var write func(io.Writer, *Mesh) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		write = WritePLY
	case ".dxf":
		write = WriteDXF
	case ".gsm":
		write = func(w io.Writer, m *Mesh) error { return WriteBinary(w, m, false) }
	case ".lz4":
		write = func(w io.Writer, m *Mesh) error { return WriteBinary(w, m, true) }
	default:
		return fmt.Errorf("unknown mesh format %q", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create mesh file %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f, m); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// LoadMeshFile reads a .ply or binary mesh file.
func LoadMeshFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open mesh file %s: %w", path, err)
	}
	defer f.Close()

	var m *Mesh
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		m, err = ReadPLY(f)
	case ".gsm", ".lz4":
		m, err = ReadBinary(f)
	default:
		return nil, fmt.Errorf("unknown mesh format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing mesh file %s: %w", path, err)
	}
	return m, nil
}
