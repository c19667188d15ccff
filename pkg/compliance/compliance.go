// Package compliance checks generated assets and campaign messaging
// against brand guidelines and basic legal heuristics.
package compliance

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/adforgehq/adforge/pkg/brief"
)

// minDimension is the smallest acceptable edge for a production asset.
const minDimension = 1080

// maxMessageLength is the point past which platform truncation is likely.
const maxMessageLength = 150

// claimWords trigger a substantiation warning when present in a message.
var claimWords = []string{"best", "guaranteed", "proven", "scientific", "#1", "leading"}

// ctaWords are the phrases accepted as a call to action.
var ctaWords = []string{"visit", "shop", "buy", "discover", "learn more", "click"}

// Defaults supplies brand rules used when a brief carries no guidelines.
// The caller maps these from its configuration.
type Defaults struct {
	Colors          []string
	LogoRequired    bool
	ProhibitedWords []string
}

// Result is the outcome of a single compliance check. The two flags are
// derived independently: a brand issue never flips LegalCompliant and
// vice versa. Warnings never affect either flag.
type Result struct {
	BrandCompliant bool
	LegalCompliant bool
	Issues         []string
	Warnings       []string
}

// Validator applies one set of effective rules. Build a fresh validator
// per locale when localized prohibited-word lists apply.
type Validator struct {
	logoRequired bool
	prohibited   []string
}

// NewValidator resolves the effective rules from the brief's guidelines,
// falling back to d where the guidelines are nil or silent.
func NewValidator(g *brief.BrandGuidelines, d Defaults) *Validator {
	v := &Validator{
		logoRequired: d.LogoRequired,
		prohibited:   d.ProhibitedWords,
	}
	if g != nil {
		v.logoRequired = g.LogoRequired
		if g.ProhibitedWords != nil {
			v.prohibited = g.ProhibitedWords
		}
	}
	return v
}

// Validate checks one asset. imageData may be any decodable image; when
// metadata cannot be read the dimension check degrades to a warning
// rather than an issue.
func (v *Validator) Validate(imageData []byte, message string, hasLogo bool) Result {
	var brandIssues, legalIssues, warnings []string

	if v.logoRequired && !hasLogo {
		brandIssues = append(brandIssues, "Brand logo is required but not present")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		warnings = append(warnings, "Unable to read image metadata for compliance checks")
	} else if cfg.Width < minDimension || cfg.Height < minDimension {
		warnings = append(warnings, fmt.Sprintf("Image resolution %dx%d is below the recommended minimum of %dpx",
			cfg.Width, cfg.Height, minDimension))
	}

	lower := strings.ToLower(message)
	for _, word := range v.prohibited {
		if word != "" && strings.Contains(lower, strings.ToLower(word)) {
			legalIssues = append(legalIssues, "Prohibited word found: "+word)
		}
	}

	if len(message) > maxMessageLength {
		warnings = append(warnings, fmt.Sprintf("Campaign message exceeds %d characters (%d)",
			maxMessageLength, len(message)))
	}
	if found := containedWords(lower, claimWords); len(found) > 0 {
		warnings = append(warnings, "Message contains claims that may require substantiation: "+
			strings.Join(found, ", "))
	}
	// A blank message still warns: there is no call to action on the asset.
	if len(containedWords(lower, ctaWords)) == 0 {
		warnings = append(warnings, "Message has no clear call to action")
	}

	return Result{
		BrandCompliant: len(brandIssues) == 0,
		LegalCompliant: len(legalIssues) == 0,
		Issues:         append(brandIssues, legalIssues...),
		Warnings:       warnings,
	}
}

func containedWords(lower string, words []string) []string {
	var found []string
	for _, w := range words {
		if strings.Contains(lower, w) {
			found = append(found, w)
		}
	}
	return found
}
