package ratio

import "testing"

func TestStandardCatalog(t *testing.T) {
	got := Standard()
	if len(got) != 3 {
		t.Fatalf("expected 3 ratios, got %d", len(got))
	}

	want := []struct {
		name   string
		w, h   int
		suffix string
	}{
		{"1:1", 1080, 1080, "1x1"},
		{"9:16", 1080, 1920, "9x16"},
		{"16:9", 1920, 1080, "16x9"},
	}
	for i, tc := range want {
		r := got[i]
		if r.Name != tc.name || r.Width != tc.w || r.Height != tc.h {
			t.Errorf("ratio %d: got %s %dx%d, want %s %dx%d", i, r.Name, r.Width, r.Height, tc.name, tc.w, tc.h)
		}
		if r.FileSuffix() != tc.suffix {
			t.Errorf("ratio %s: FileSuffix() = %q, want %q", r.Name, r.FileSuffix(), tc.suffix)
		}
		if len(r.Platforms) == 0 {
			t.Errorf("ratio %s: no platforms", r.Name)
		}
	}
}

func TestStandardReturnsCopy(t *testing.T) {
	a := Standard()
	a[0].Name = "mutated"
	b := Standard()
	if b[0].Name != "1:1" {
		t.Fatal("Standard() must return an independent copy")
	}
}

func TestString(t *testing.T) {
	r := Standard()[1]
	if got := r.String(); got != "9:16 (1080x1920)" {
		t.Fatalf("String() = %q", got)
	}
}
