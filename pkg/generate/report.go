package generate

import (
	"fmt"
	"strings"
	"time"
)

const (
	bannerWidth = 80
	reportTitle = "CAMPAIGN ASSET GENERATION REPORT"
)

// Report renders a human-readable summary of a run. The output depends
// only on the Result, so rendering the same result twice is
// byte-identical.
func Report(res *Result) string {
	var b strings.Builder
	banner := strings.Repeat("=", bannerWidth)
	rule := strings.Repeat("-", bannerWidth)

	b.WriteString(banner + "\n")
	b.WriteString(reportTitle + "\n")
	b.WriteString(banner + "\n\n")

	fmt.Fprintf(&b, "Campaign:  %s\n", res.CampaignID)
	if res.Locale != "" {
		fmt.Fprintf(&b, "Locale:    %s\n", res.Locale)
	}
	fmt.Fprintf(&b, "Run ID:    %s\n", res.RunID)
	fmt.Fprintf(&b, "Completed: %s\n", res.CompletedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Status:    %s\n", status(res))
	fmt.Fprintf(&b, "Duration:  %.2fs\n", res.Summary.Duration.Seconds())

	b.WriteString("\nSUMMARY\n" + rule + "\n")
	fmt.Fprintf(&b, "Total assets:      %d\n", len(res.Assets))
	fmt.Fprintf(&b, "Generated (AI):    %d\n", res.Summary.AssetsGenerated)
	fmt.Fprintf(&b, "Reused:            %d\n", res.Summary.AssetsReused)
	fmt.Fprintf(&b, "Resized:           %d\n", res.Summary.AssetsResized)
	fmt.Fprintf(&b, "Compliance issues: %d\n", res.Summary.ComplianceIssues)
	fmt.Fprintf(&b, "Errors:            %d\n", len(res.Errors))

	if len(res.Assets) > 0 {
		b.WriteString("\nGENERATED ASSETS\n" + rule + "\n")
		for i, a := range res.Assets {
			fmt.Fprintf(&b, "[%d] %s / %s\n", i+1, a.ProductID, a.Ratio.Name)
			fmt.Fprintf(&b, "    Product:    %s\n", a.ProductName)
			fmt.Fprintf(&b, "    Platforms:  %s\n", strings.Join(a.Ratio.Platforms, ", "))
			fmt.Fprintf(&b, "    Method:     %s\n", a.Method)
			fmt.Fprintf(&b, "    Path:       %s\n", a.Path)
			fmt.Fprintf(&b, "    Compliance: brand=%s legal=%s\n",
				passFail(a.Compliance.BrandCompliant), passFail(a.Compliance.LegalCompliant))
			for _, issue := range a.Compliance.Issues {
				fmt.Fprintf(&b, "        ! %s\n", issue)
			}
			for _, warning := range a.Compliance.Warnings {
				fmt.Fprintf(&b, "        ~ %s\n", warning)
			}
		}
	}

	if len(res.Errors) > 0 {
		b.WriteString("\nERRORS\n" + rule + "\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	return b.String()
}

func status(res *Result) string {
	if res.Success {
		return "SUCCESS"
	}
	if len(res.Assets) > 0 {
		return "PARTIAL SUCCESS"
	}
	return "FAILED"
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
