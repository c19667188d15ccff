package brief

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apperrors "github.com/adforgehq/adforge/pkg/errors"
)

// ParseFile reads and validates a campaign brief from a JSON or TOML file.
// The format is chosen by file extension.
func ParseFile(path string) (*CampaignBrief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "brief file not found: %s", path)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to read brief %s", path)
	}

	var b CampaignBrief
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidBrief, err, "failed to parse JSON brief %s", path)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &b); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidBrief, err, "failed to parse TOML brief %s", path)
		}
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat,
			"unsupported brief format %q (use .json or .toml)", ext)
	}

	if err := Validate(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks that a brief has all required fields. A valid brief has a
// campaign id, at least one product (each with an id and a name), and
// non-empty target and message fields.
func Validate(b *CampaignBrief) error {
	if b == nil {
		return apperrors.New(apperrors.ErrCodeInvalidBrief, "brief cannot be nil")
	}
	if err := apperrors.ValidateIdentifier("campaignId", b.CampaignID); err != nil {
		return err
	}
	if len(b.Products) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidBrief, "brief must contain at least one product")
	}
	if b.TargetRegion == "" {
		return apperrors.New(apperrors.ErrCodeInvalidBrief, "missing required field: targetRegion")
	}
	if b.TargetMarket == "" {
		return apperrors.New(apperrors.ErrCodeInvalidBrief, "missing required field: targetMarket")
	}
	if b.TargetAudience == "" {
		return apperrors.New(apperrors.ErrCodeInvalidBrief, "missing required field: targetAudience")
	}
	if b.CampaignMessage == "" {
		return apperrors.New(apperrors.ErrCodeInvalidBrief, "missing required field: campaignMessage")
	}

	seen := make(map[string]bool, len(b.Products))
	for _, p := range b.Products {
		if err := apperrors.ValidateIdentifier("productId", p.ProductID); err != nil {
			return err
		}
		if p.Name == "" {
			return apperrors.New(apperrors.ErrCodeInvalidBrief, "product %s must have a name", p.ProductID)
		}
		if seen[p.ProductID] {
			return apperrors.New(apperrors.ErrCodeInvalidBrief, "duplicate productId: %s", p.ProductID)
		}
		seen[p.ProductID] = true
	}

	for locale := range b.Localizations {
		if err := apperrors.ValidateLocale(locale); err != nil {
			return err
		}
	}
	return nil
}
