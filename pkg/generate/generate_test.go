package generate

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adforgehq/adforge/pkg/assets"
	"github.com/adforgehq/adforge/pkg/brief"
	"github.com/adforgehq/adforge/pkg/compliance"
	"github.com/adforgehq/adforge/pkg/errors"
	"github.com/adforgehq/adforge/pkg/genimage"
	"github.com/adforgehq/adforge/pkg/ratio"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 180, G: 80, B: 80, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func relaxedDefaults() compliance.Defaults {
	return compliance.Defaults{
		LogoRequired:    false,
		ProhibitedWords: []string{"guaranteed", "free", "miracle", "cure", "instant"},
	}
}

func TestRunPreSuppliedImages(t *testing.T) {
	dir := t.TempDir()
	img1 := filepath.Join(dir, "p1.png")
	img2 := filepath.Join(dir, "p2.png")
	writePNG(t, img1, 1400, 1400)
	writePNG(t, img2, 800, 1200)

	b := &brief.CampaignBrief{
		CampaignID:      "summer-glow-2025",
		TargetRegion:    "Germany",
		TargetMarket:    "de",
		TargetAudience:  "young adults",
		CampaignMessage: "Shop the new glow",
		Products: []brief.Product{
			{ProductID: "serum-01", Name: "Glow Serum", Assets: &brief.ProductAssets{Image: img1}},
			{ProductID: "balm-02", Name: "Night Balm", Assets: &brief.ProductAssets{Image: img2}},
		},
	}

	store := assets.NewStore(filepath.Join(dir, "out"))
	r := NewRunner(genimage.NewResolver(nil, nil), store, relaxedDefaults(), nil)

	res, err := r.Run(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}

	if !res.Success {
		t.Errorf("Success = false, errors: %v", res.Errors)
	}
	if len(res.Assets) != 6 {
		t.Fatalf("expected 6 assets, got %d", len(res.Assets))
	}
	if res.Summary.AssetsGenerated != 0 {
		t.Errorf("AssetsGenerated = %d, want 0 for pre-supplied run", res.Summary.AssetsGenerated)
	}
	if res.Summary.AssetsReused != 6 || res.Summary.AssetsResized != 6 {
		t.Errorf("reused/resized = %d/%d, want 6/6", res.Summary.AssetsReused, res.Summary.AssetsResized)
	}

	// Every asset exists on disk at its canonical path with exact dims.
	for _, a := range res.Assets {
		want := store.AssetPath("summer-glow-2025", "", a.ProductID, a.Ratio)
		if a.Path != want {
			t.Errorf("asset path %q, want %q", a.Path, want)
		}
		data, err := os.ReadFile(a.Path)
		if err != nil {
			t.Fatalf("reading %s: %v", a.Path, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decoding %s: %v", a.Path, err)
		}
		if img.Bounds().Dx() != a.Ratio.Width || img.Bounds().Dy() != a.Ratio.Height {
			t.Errorf("%s: %dx%d, want %dx%d", a.Path, img.Bounds().Dx(), img.Bounds().Dy(), a.Ratio.Width, a.Ratio.Height)
		}
		if a.Method != string(genimage.SourceReused) {
			t.Errorf("method = %q, want reused", a.Method)
		}
	}
}

type flakyResolver struct {
	failProduct string
	failRatio   string
	inner       SourceResolver
}

func (f *flakyResolver) Resolve(ctx context.Context, p brief.Product, ar ratio.AspectRatio, req genimage.Request) ([]byte, genimage.Source, error) {
	if p.ProductID == f.failProduct && ar.Name == f.failRatio {
		return nil, "", errors.New(errors.ErrCodeEncode, "boom")
	}
	return f.inner.Resolve(ctx, p, ar, req)
}

func TestRunUnitFailureIsIsolated(t *testing.T) {
	b := &brief.CampaignBrief{
		CampaignID:      "camp",
		TargetRegion:    "US",
		TargetMarket:    "us",
		TargetAudience:  "adults",
		CampaignMessage: "Shop now",
		Products: []brief.Product{
			{ProductID: "serum-01", Name: "Glow Serum"},
			{ProductID: "balm-02", Name: "Night Balm"},
		},
	}

	r := NewRunner(
		&flakyResolver{failProduct: "balm-02", failRatio: "9:16", inner: genimage.NewResolver(nil, nil)},
		assets.NewStore(t.TempDir()), relaxedDefaults(), nil)

	res, err := r.Run(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	if res.Success {
		t.Error("Success must be false when a unit failed")
	}
	if len(res.Assets) != 5 {
		t.Errorf("expected 5 assets, got %d", len(res.Assets))
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", res.Errors)
	}
	want := "Failed to generate 9:16 for balm-02: "
	if !strings.HasPrefix(res.Errors[0], want) {
		t.Errorf("error = %q, want prefix %q", res.Errors[0], want)
	}
	if res.Summary.AssetsGenerated != 5 {
		t.Errorf("AssetsGenerated = %d, want 5 placeholders", res.Summary.AssetsGenerated)
	}
}

func TestRunLocalizedCampaign(t *testing.T) {
	b := &brief.CampaignBrief{
		CampaignID:      "camp",
		TargetRegion:    "Europe",
		TargetMarket:    "eu",
		TargetAudience:  "adults",
		CampaignMessage: "A miracle glow, shop now",
		BrandGuidelines: &brief.BrandGuidelines{LogoRequired: false, ProhibitedWords: []string{"miracle"}},
		Products: []brief.Product{
			{ProductID: "serum-01", Name: "Glow Serum", Localizations: map[string]brief.ProductLocalization{
				"de-DE": {Name: "Glanz Serum"},
			}},
		},
		Localizations: map[string]brief.LocalizationConfig{
			"en-US": {Language: "English"},
			"de-DE": {Language: "German", Message: "Wunder Glanz, jetzt shoppen", ProhibitedWords: []string{"wunder"}},
		},
	}

	store := assets.NewStore(t.TempDir())
	r := NewRunner(genimage.NewResolver(nil, nil), store, relaxedDefaults(), nil)

	res, err := r.Run(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Assets) != 6 {
		t.Fatalf("expected 6 assets (2 locales x 3 ratios), got %d", len(res.Assets))
	}

	// Sorted locale order: de-DE before en-US.
	if res.Assets[0].CampaignID != "camp-de-de" {
		t.Errorf("first asset campaign = %q, want camp-de-de", res.Assets[0].CampaignID)
	}
	if res.Assets[3].CampaignID != "camp-en-us" {
		t.Errorf("fourth asset campaign = %q, want camp-en-us", res.Assets[3].CampaignID)
	}
	if res.Assets[0].ProductName != "Glanz Serum" {
		t.Errorf("localized name = %q", res.Assets[0].ProductName)
	}
	if res.Assets[3].ProductName != "Glow Serum" {
		t.Errorf("fallback name = %q", res.Assets[3].ProductName)
	}

	// de uses its replaced word list, en the brief's list; both messages
	// trip their respective lists, so every unit is an issue.
	if res.Summary.ComplianceIssues != 6 {
		t.Errorf("ComplianceIssues = %d, want 6", res.Summary.ComplianceIssues)
	}
	for i, a := range res.Assets {
		if a.Compliance.LegalCompliant {
			t.Errorf("asset %d unexpectedly legal-compliant: %v", i, a.Compliance)
		}
	}

	// Localized assets land under the lower-cased locale-suffixed dir.
	if !strings.Contains(res.Assets[0].Path, "camp-de-de") {
		t.Errorf("localized path = %q", res.Assets[0].Path)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &brief.CampaignBrief{
		CampaignID: "camp", TargetRegion: "US", TargetMarket: "us",
		TargetAudience: "adults", CampaignMessage: "Shop",
		Products: []brief.Product{{ProductID: "p", Name: "P"}},
	}
	r := NewRunner(genimage.NewResolver(nil, nil), assets.NewStore(t.TempDir()), relaxedDefaults(), nil)
	if _, err := r.Run(ctx, b); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestRunLogoOverlayAndCompliance(t *testing.T) {
	dir := t.TempDir()
	logo := filepath.Join(dir, "logo.png")
	writePNG(t, logo, 120, 120)

	defaults := relaxedDefaults()
	defaults.LogoRequired = true

	b := &brief.CampaignBrief{
		CampaignID: "camp", TargetRegion: "US", TargetMarket: "us",
		TargetAudience: "adults", CampaignMessage: "Shop now",
		Products: []brief.Product{
			{ProductID: "with-logo", Name: "A", Assets: &brief.ProductAssets{Logo: logo}},
			{ProductID: "no-logo", Name: "B"},
		},
	}

	r := NewRunner(genimage.NewResolver(nil, nil), assets.NewStore(filepath.Join(dir, "out")), defaults, nil)
	res, err := r.Run(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range res.Assets {
		switch a.ProductID {
		case "with-logo":
			if !a.Compliance.BrandCompliant {
				t.Errorf("with-logo should be brand compliant: %v", a.Compliance.Issues)
			}
		case "no-logo":
			if a.Compliance.BrandCompliant {
				t.Error("no-logo should fail the logo requirement")
			}
		}
	}
	if res.Summary.ComplianceIssues != 3 {
		t.Errorf("ComplianceIssues = %d, want 3", res.Summary.ComplianceIssues)
	}
}

func TestRunMissingLogoDegradesToWarning(t *testing.T) {
	b := &brief.CampaignBrief{
		CampaignID: "camp", TargetRegion: "US", TargetMarket: "us",
		TargetAudience: "adults", CampaignMessage: "Shop now",
		Products: []brief.Product{
			{ProductID: "p", Name: "P", Assets: &brief.ProductAssets{Logo: "/nonexistent/logo.png"}},
		},
	}
	r := NewRunner(genimage.NewResolver(nil, nil), assets.NewStore(t.TempDir()), relaxedDefaults(), nil)
	res, err := r.Run(context.Background(), b)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("logo read failure must not fail the run: %v", res.Errors)
	}
	if len(res.Assets) != 3 {
		t.Fatalf("expected 3 assets, got %d", len(res.Assets))
	}
}
