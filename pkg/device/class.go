// Package device classifies screens into device classes and supplies the
// fixed dimension table for each class.
package device

// Class is the closed set of device form factors the resolver distinguishes.
type Class int

const (
	// Phone is any screen whose smallest width is below TabletMinWidthDp.
	Phone Class = iota

	// Tablet covers smallest widths from TabletMinWidthDp up to
	// LargeTabletMinWidthDp.
	Tablet

	// LargeTablet covers smallest widths of LargeTabletMinWidthDp and above.
	LargeTablet
)

// Smallest-width thresholds in dp.
const (
	TabletMinWidthDp      = 600
	LargeTabletMinWidthDp = 720
)

// Classify returns the class for a screen whose shorter side measures
// smallestWidthDp density-independent pixels.
func Classify(smallestWidthDp float64) Class {
	switch {
	case smallestWidthDp >= LargeTabletMinWidthDp:
		return LargeTablet
	case smallestWidthDp >= TabletMinWidthDp:
		return Tablet
	default:
		return Phone
	}
}

// ParseClass maps a name ("phone", "tablet", "large-tablet") to a Class.
func ParseClass(name string) (Class, bool) {
	switch name {
	case "phone":
		return Phone, true
	case "tablet":
		return Tablet, true
	case "large-tablet", "large_tablet", "largetablet":
		return LargeTablet, true
	default:
		return Phone, false
	}
}

// IsTablet reports whether the class uses tablet spacing rules. Large
// tablets are tablets too.
func (c Class) IsTablet() bool {
	return c == Tablet || c == LargeTablet
}

// String returns a human-readable name for the class.
func (c Class) String() string {
	switch c {
	case Phone:
		return "phone"
	case Tablet:
		return "tablet"
	case LargeTablet:
		return "large-tablet"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(b []byte) error {
	v, ok := ParseClass(string(b))
	if !ok {
		return &classError{name: string(b)}
	}
	*c = v
	return nil
}

type classError struct{ name string }

func (e *classError) Error() string { return "unknown device class: " + e.name }
