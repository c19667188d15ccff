// Package assets writes generated campaign output to its canonical
// on-disk layout:
//
//	{base}/{campaignId}/{productId}/{productId}_{ratio}.png
//	{base}/{campaignId}/generation-report.txt
//
// Localized runs write under {campaignId}-{locale} instead of
// {campaignId}. The colon in a ratio name is mapped to "x" for the
// filename, so "9:16" becomes "9x16".
package assets

import (
	"os"
	"path/filepath"

	"github.com/adforgehq/adforge/pkg/errors"
	"github.com/adforgehq/adforge/pkg/ratio"
)

// ReportFilename is the fixed name of the per-campaign text report.
const ReportFilename = "generation-report.txt"

// Store writes assets and reports under a base output directory.
type Store struct {
	base string
}

// NewStore returns a store rooted at base. The directory is created
// lazily on the first write.
func NewStore(base string) *Store {
	return &Store{base: base}
}

// Base returns the root output directory.
func (s *Store) Base() string {
	return s.base
}

// CampaignDir returns the directory for a campaign run. locale may be
// empty for the default run.
func (s *Store) CampaignDir(campaignID, locale string) string {
	name := campaignID
	if locale != "" {
		name += "-" + locale
	}
	return filepath.Join(s.base, name)
}

// AssetPath returns the canonical path for one product asset.
func (s *Store) AssetPath(campaignID, locale, productID string, r ratio.AspectRatio) string {
	return filepath.Join(s.CampaignDir(campaignID, locale), productID,
		productID+"_"+r.FileSuffix()+".png")
}

// SaveAsset writes one asset and returns its path. Parent directories
// are created as needed.
func (s *Store) SaveAsset(campaignID, locale, productID string, r ratio.AspectRatio, data []byte) (string, error) {
	path := s.AssetPath(campaignID, locale, productID, r)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "creating asset directory")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "writing asset")
	}
	return path, nil
}

// SaveReport writes the campaign report next to the product directories
// and returns its path.
func (s *Store) SaveReport(campaignID, locale, content string) (string, error) {
	dir := s.CampaignDir(campaignID, locale)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "creating campaign directory")
	}
	path := filepath.Join(dir, ReportFilename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "writing report")
	}
	return path, nil
}

// ReadAsset reads back a stored asset, primarily for verification flows.
func (s *Store) ReadAsset(campaignID, locale, productID string, r ratio.AspectRatio) ([]byte, error) {
	data, err := os.ReadFile(s.AssetPath(campaignID, locale, productID, r))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeAssetNotFound, err, "asset not found")
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "reading asset")
	}
	return data, nil
}
