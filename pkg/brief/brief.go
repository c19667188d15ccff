// Package brief defines the campaign brief data model.
//
// A brief is the declarative input to the generation pipeline: the campaign's
// products, target market, message, brand guidelines, and per-locale
// localization overrides. Briefs are parsed once (see [ParseFile]) and are
// read-only for the rest of the run; nothing in the pipeline mutates them.
package brief

// CampaignBrief is the root of a parsed campaign description.
type CampaignBrief struct {
	CampaignID      string                        `json:"campaignId" toml:"campaignId"`
	Products        []Product                     `json:"products" toml:"products"`
	TargetRegion    string                        `json:"targetRegion" toml:"targetRegion"`
	TargetMarket    string                        `json:"targetMarket" toml:"targetMarket"`
	TargetAudience  string                        `json:"targetAudience" toml:"targetAudience"`
	CampaignMessage string                        `json:"campaignMessage" toml:"campaignMessage"`
	BrandGuidelines *BrandGuidelines              `json:"brandGuidelines" toml:"brandGuidelines"`
	Localizations   map[string]LocalizationConfig `json:"localizations" toml:"localizations"`
}

// Locale returns the localization config for the given locale code,
// or nil when the brief does not define one.
func (b *CampaignBrief) Locale(code string) *LocalizationConfig {
	if code == "" || b.Localizations == nil {
		return nil
	}
	lc, ok := b.Localizations[code]
	if !ok {
		return nil
	}
	return &lc
}

// Product describes one product within a brief.
type Product struct {
	ProductID     string                         `json:"productId" toml:"productId"`
	Name          string                         `json:"name" toml:"name"`
	Description   string                         `json:"description" toml:"description"`
	Assets        *ProductAssets                 `json:"assets" toml:"assets"`
	Localizations map[string]ProductLocalization `json:"localizations" toml:"localizations"`
}

// LocalizedName returns the product name for the given locale, falling back
// to the default name when no override exists or the override is empty.
func (p Product) LocalizedName(locale string) string {
	if locale != "" {
		if loc, ok := p.Localizations[locale]; ok && loc.Name != "" {
			return loc.Name
		}
	}
	return p.Name
}

// LocalizedDescription returns the product description for the given locale,
// falling back to the default description.
func (p Product) LocalizedDescription(locale string) string {
	if locale != "" {
		if loc, ok := p.Localizations[locale]; ok && loc.Description != "" {
			return loc.Description
		}
	}
	return p.Description
}

// ImagePath returns the declared source image path. The Image field takes
// precedence; HeroImage is an accepted alias from older briefs. Empty means
// no image was declared and the AI path must be used.
func (p Product) ImagePath() string {
	if p.Assets == nil {
		return ""
	}
	if p.Assets.Image != "" {
		return p.Assets.Image
	}
	return p.Assets.HeroImage
}

// LogoPath returns the declared logo path, or empty if none.
func (p Product) LogoPath() string {
	if p.Assets == nil {
		return ""
	}
	return p.Assets.Logo
}

// ProductAssets holds paths to pre-supplied image files.
type ProductAssets struct {
	Image     string `json:"image" toml:"image"`
	HeroImage string `json:"heroImage" toml:"heroImage"`
	Logo      string `json:"logo" toml:"logo"`
}

// ProductLocalization overrides product copy for one locale.
type ProductLocalization struct {
	Name        string `json:"name" toml:"name"`
	Description string `json:"description" toml:"description"`
}

// LocalizationConfig adapts a campaign for one locale.
type LocalizationConfig struct {
	Language      string `json:"language" toml:"language"`
	Message       string `json:"message" toml:"message"`
	CulturalNotes string `json:"culturalNotes" toml:"culturalNotes"`

	// ProhibitedWords, when non-nil, fully replaces the brand-level list
	// for this locale. It is never merged.
	ProhibitedWords []string `json:"prohibitedWords" toml:"prohibitedWords"`
}

// BrandGuidelines captures the brand rules an asset is checked against.
type BrandGuidelines struct {
	PrimaryColors   []string `json:"primaryColors" toml:"primaryColors"`
	SecondaryColors []string `json:"secondaryColors" toml:"secondaryColors"`
	FontFamily      string   `json:"fontFamily" toml:"fontFamily"`
	LogoRequired    bool     `json:"logoRequired" toml:"logoRequired"`
	ProhibitedWords []string `json:"prohibitedWords" toml:"prohibitedWords"`
}

// WithProhibitedWords returns a copy of g with the prohibited-word list
// replaced by words. The receiver is never modified; the word slice is
// copied so later writes to words cannot leak into the result.
func (g BrandGuidelines) WithProhibitedWords(words []string) BrandGuidelines {
	derived := g
	derived.ProhibitedWords = append([]string(nil), words...)
	return derived
}
