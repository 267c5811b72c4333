package metrics

import (
	"fmt"

	"github.com/matzehuels/gridfit/pkg/errors"
)

// Rotation is the display rotation reported by the windowing system.
type Rotation int

const (
	Rotation0 Rotation = iota
	Rotation90
	Rotation180
	Rotation270
)

// ParseRotation maps degrees (0, 90, 180, 270) to a Rotation.
func ParseRotation(degrees int) (Rotation, error) {
	switch degrees {
	case 0:
		return Rotation0, nil
	case 90:
		return Rotation90, nil
	case 180:
		return Rotation180, nil
	case 270:
		return Rotation270, nil
	default:
		return Rotation0, errors.New(errors.ErrCodeInvalidMetrics, "invalid rotation %d (must be 0, 90, 180 or 270)", degrees)
	}
}

// Degrees returns the rotation in degrees.
func (r Rotation) Degrees() int { return int(r) * 90 }

// IsSeascape reports whether the rotation puts a transposed hotseat on the
// opposite edge from the default landscape mapping. Of the two landscape
// rotations only 270° does.
func (r Rotation) IsSeascape() bool { return r == Rotation270 }

// String returns the rotation as "0°", "90°", ...
func (r Rotation) String() string { return fmt.Sprintf("%d°", r.Degrees()) }
