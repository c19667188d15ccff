package compliance

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/adforgehq/adforge/pkg/brief"
)

func testDefaults() Defaults {
	return Defaults{
		Colors:          []string{"#000000", "#FFFFFF"},
		LogoRequired:    true,
		ProhibitedWords: []string{"guaranteed", "free", "miracle", "cure", "instant"},
	}
}

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProhibitedWordsCaseInsensitive(t *testing.T) {
	v := NewValidator(nil, testDefaults())
	res := v.Validate(testImage(t, 1080, 1080), "GUARANTEED results, Free trial, instant glow. Shop now!", true)

	if res.LegalCompliant {
		t.Error("expected legal non-compliance")
	}
	var count int
	for _, issue := range res.Issues {
		if strings.HasPrefix(issue, "Prohibited word found: ") {
			count++
		}
	}
	if count != 3 {
		t.Errorf("expected 3 prohibited word issues, got %d: %v", count, res.Issues)
	}
	if !res.BrandCompliant {
		t.Error("legal issues must not affect brand compliance")
	}
}

func TestLogoRequirement(t *testing.T) {
	img := testImage(t, 1080, 1080)
	cases := []struct {
		name      string
		g         *brief.BrandGuidelines
		hasLogo   bool
		compliant bool
	}{
		{"default required, missing", nil, false, false},
		{"default required, present", nil, true, true},
		{"guidelines waive requirement", &brief.BrandGuidelines{LogoRequired: false}, false, true},
		{"guidelines require, missing", &brief.BrandGuidelines{LogoRequired: true}, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator(tc.g, testDefaults())
			res := v.Validate(img, "Shop the collection", tc.hasLogo)
			if res.BrandCompliant != tc.compliant {
				t.Errorf("BrandCompliant = %v, want %v (issues: %v)", res.BrandCompliant, tc.compliant, res.Issues)
			}
		})
	}
}

func TestGuidelineWordsReplaceDefaults(t *testing.T) {
	g := &brief.BrandGuidelines{LogoRequired: true, ProhibitedWords: []string{"wunder"}}
	v := NewValidator(g, testDefaults())

	// "free" is only in the defaults, which the guideline list replaces.
	res := v.Validate(testImage(t, 1080, 1080), "Free Wunder serum, shop now", true)
	if !res.LegalCompliant {
		if len(res.Issues) != 1 || res.Issues[0] != "Prohibited word found: wunder" {
			t.Fatalf("unexpected issues: %v", res.Issues)
		}
	} else {
		t.Fatal("expected wunder to be flagged")
	}
}

func TestWarnings(t *testing.T) {
	v := NewValidator(nil, testDefaults())

	t.Run("small image", func(t *testing.T) {
		res := v.Validate(testImage(t, 640, 480), "Shop now", true)
		if !hasWarningContaining(res, "640x480") {
			t.Errorf("expected dimension warning, got %v", res.Warnings)
		}
		if !res.BrandCompliant || !res.LegalCompliant {
			t.Error("warnings must not affect compliance flags")
		}
	})

	t.Run("undecodable image", func(t *testing.T) {
		res := v.Validate([]byte("junk"), "Shop now", true)
		if !hasWarningContaining(res, "metadata") {
			t.Errorf("expected metadata warning, got %v", res.Warnings)
		}
	})

	t.Run("long message", func(t *testing.T) {
		res := v.Validate(testImage(t, 1080, 1080), strings.Repeat("a", 151)+" shop", true)
		if !hasWarningContaining(res, "exceeds 150") {
			t.Errorf("expected length warning, got %v", res.Warnings)
		}
	})

	t.Run("claims combined into one warning", func(t *testing.T) {
		res := v.Validate(testImage(t, 1080, 1080), "The best, proven, leading serum. Shop now", true)
		var n int
		for _, w := range res.Warnings {
			if strings.Contains(w, "substantiation") {
				n++
				if !strings.Contains(w, "best") || !strings.Contains(w, "proven") || !strings.Contains(w, "leading") {
					t.Errorf("warning missing claim words: %q", w)
				}
			}
		}
		if n != 1 {
			t.Errorf("expected exactly one claims warning, got %d: %v", n, res.Warnings)
		}
	})

	t.Run("missing call to action", func(t *testing.T) {
		res := v.Validate(testImage(t, 1080, 1080), "A lovely serum", true)
		if !hasWarningContaining(res, "call to action") {
			t.Errorf("expected CTA warning, got %v", res.Warnings)
		}
	})

	t.Run("empty message still warns about missing CTA", func(t *testing.T) {
		res := v.Validate(testImage(t, 1080, 1080), "", true)
		if !hasWarningContaining(res, "call to action") {
			t.Errorf("empty message should warn about CTA: %v", res.Warnings)
		}
		if hasWarningContaining(res, "exceeds") || hasWarningContaining(res, "claims") {
			t.Errorf("empty message should trip no other text warnings: %v", res.Warnings)
		}
		if !res.BrandCompliant || !res.LegalCompliant {
			t.Error("warnings must not affect compliance flags")
		}
	})
}

func hasWarningContaining(r Result, s string) bool {
	for _, w := range r.Warnings {
		if strings.Contains(w, s) {
			return true
		}
	}
	return false
}
