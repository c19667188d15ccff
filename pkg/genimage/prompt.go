package genimage

import (
	"fmt"
	"strings"

	"github.com/adforgehq/adforge/pkg/ratio"
)

// Request carries the localized product and campaign context a prompt is
// built from. Fields are already resolved for the target locale.
type Request struct {
	ProductID     string
	Name          string
	Description   string
	Audience      string
	Region        string
	CulturalNotes string
}

// BuildPrompt renders the generation prompt for one product and ratio.
// The wording is tuned for photorealistic commercial output; changing it
// changes cache keys, so treat it as part of the wire format.
func BuildPrompt(req Request, r ratio.AspectRatio) string {
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		desc = "High-quality product"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Professional product photography for %s. ", req.Name)
	fmt.Fprintf(&b, "%s ", desc)
	fmt.Fprintf(&b, "Target audience: %s in %s. ", req.Audience, req.Region)
	if notes := strings.TrimSpace(req.CulturalNotes); notes != "" {
		fmt.Fprintf(&b, "Cultural context: %s. ", notes)
	}
	b.WriteString("High quality, commercial advertising style. ")
	b.WriteString("Clean background, excellent lighting, sharp focus. ")
	b.WriteString("Photorealistic, 8K resolution.")
	fmt.Fprintf(&b, " Optimized composition for %s aspect ratio (%d x %d pixels).", r.Name, r.Width, r.Height)
	return b.String()
}
