// Package ratio defines the fixed catalog of output aspect ratios.
//
// The catalog is closed and ordered: every generation pass attempts all
// three ratios for every product, in the order returned by [Standard].
package ratio

import (
	"fmt"
	"strings"
)

// AspectRatio describes one required output layout.
type AspectRatio struct {
	Name      string   // e.g. "9:16"
	Width     int      // output width in pixels
	Height    int      // output height in pixels
	Platforms []string // target platforms for this layout
}

// standard is the closed catalog. Order matters and is part of the
// pipeline's observable behavior.
var standard = []AspectRatio{
	{Name: "1:1", Width: 1080, Height: 1080, Platforms: []string{"Instagram Post", "Facebook Post"}},
	{Name: "9:16", Width: 1080, Height: 1920, Platforms: []string{"Instagram Story", "TikTok", "Snapchat"}},
	{Name: "16:9", Width: 1920, Height: 1080, Platforms: []string{"YouTube", "Facebook Ads", "Twitter"}},
}

// Standard returns the catalog of required aspect ratios in canonical order.
// The returned slice is a copy; callers may not extend or reorder the catalog.
func Standard() []AspectRatio {
	out := make([]AspectRatio, len(standard))
	copy(out, standard)
	return out
}

// FileSuffix returns the ratio name with the colon replaced so it can be
// used in a filename: "9:16" becomes "9x16".
func (r AspectRatio) FileSuffix() string {
	return strings.ReplaceAll(r.Name, ":", "x")
}

// String returns the ratio name with its pixel dimensions.
func (r AspectRatio) String() string {
	return fmt.Sprintf("%s (%dx%d)", r.Name, r.Width, r.Height)
}
