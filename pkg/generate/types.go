package generate

import (
	"time"

	"github.com/adforgehq/adforge/pkg/compliance"
	"github.com/adforgehq/adforge/pkg/ratio"
)

// Asset is the immutable record of one produced image. Built once when
// the unit succeeds and never modified afterwards.
type Asset struct {
	CampaignID  string // locale-suffixed for localized runs
	ProductID   string
	ProductName string // resolved for the run's locale
	Region      string
	Ratio       ratio.AspectRatio
	Message     string // final composited message text
	Method      string // image source tag: reused, generated, placeholder
	Compliance  compliance.Result
	Path        string
	CreatedAt   time.Time
}

// Summary aggregates the counters for one run.
type Summary struct {
	AssetsGenerated  int // units produced via the AI path (live or placeholder)
	AssetsReused     int // units produced from pre-supplied images
	AssetsResized    int // reused units that were resized to the target ratio
	ComplianceIssues int // units with a failed brand or legal check
	Duration         time.Duration
}

// Result is the outcome of a generation run, single-locale or merged.
// Success is true iff Errors is empty.
type Result struct {
	RunID       string
	CampaignID  string
	Locale      string // empty for the default (unlocalized) run
	Success     bool
	Assets      []Asset
	Errors      []string
	Summary     Summary
	StartedAt   time.Time
	CompletedAt time.Time
}

func (s Summary) add(o Summary) Summary {
	return Summary{
		AssetsGenerated:  s.AssetsGenerated + o.AssetsGenerated,
		AssetsReused:     s.AssetsReused + o.AssetsReused,
		AssetsResized:    s.AssetsResized + o.AssetsResized,
		ComplianceIssues: s.ComplianceIssues + o.ComplianceIssues,
		Duration:         s.Duration + o.Duration,
	}
}
