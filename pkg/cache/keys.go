package cache

import "fmt"

// Keyer builds cache keys for resolved profiles.
type Keyer interface {
	// ProfileKey identifies a full-screen profile.
	ProfileKey(specHash string, opts ProfileKeyOpts) string

	// MultiWindowKey identifies a multi-window variant of the profile
	// stored under profileKey.
	MultiWindowKey(profileKey string, width, height int) string
}

// ProfileKeyOpts holds every device and preference input that changes a
// resolved profile.
type ProfileKeyOpts struct {
	Density   float64 `json:"density"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Landscape bool    `json:"landscape"`
	Rotation  int     `json:"rotation"`
	Insets    [4]int  `json:"insets"`
	PrefsHash string  `json:"prefs_hash"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ProfileKey returns "profile:<hash>".
func (k *DefaultKeyer) ProfileKey(specHash string, opts ProfileKeyOpts) string {
	return hashKey("profile", specHash, opts)
}

// MultiWindowKey returns "mw:<profileKey>:<w>x<h>".
func (k *DefaultKeyer) MultiWindowKey(profileKey string, width, height int) string {
	return fmt.Sprintf("mw:%s:%dx%d", profileKey, width, height)
}

var _ Keyer = (*DefaultKeyer)(nil)
