package geosphere

import "errors"

var (
	// ErrZeroLength is returned when a zero-length vector is normalised.
	ErrZeroLength = errors.New("zero-length vector")

	// ErrDegenerateFrustum is returned for projection parameters that would
	// divide by zero or hit the tangent singularity.
	ErrDegenerateFrustum = errors.New("degenerate frustum")

	ErrNegativeLevel = errors.New("negative subdivision level")

	// ErrLevelTooHigh is returned for subdivision levels whose vertices
	// cannot be addressed with uint32 indices.
	ErrLevelTooHigh = errors.New("subdivision level too high")

	// ErrInvalidMesh covers structural problems: vertex or normal arrays
	// that are not a multiple of three, or an index list that is not a
	// multiple of three.
	ErrInvalidMesh     = errors.New("invalid mesh")
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrIsolatedVertex is returned by the normal calculator when a vertex
	// is not referenced by any triangle, leaving its normal undefined.
	ErrIsolatedVertex = errors.New("vertex not referenced by any triangle")

	ErrShaderCompile = errors.New("shader compilation failed")
	ErrBadMeshFile   = errors.New("malformed mesh file")
)
