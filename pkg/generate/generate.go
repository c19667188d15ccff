// Package generate orchestrates a campaign run: for every locale,
// product, and aspect ratio it resolves a source image, composites the
// required overlays, checks compliance, and persists the asset. Failures
// are isolated per (product, ratio) unit; one bad unit never drops its
// siblings.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/adforgehq/adforge/pkg/assets"
	"github.com/adforgehq/adforge/pkg/brief"
	"github.com/adforgehq/adforge/pkg/compliance"
	"github.com/adforgehq/adforge/pkg/compose"
	"github.com/adforgehq/adforge/pkg/genimage"
	"github.com/adforgehq/adforge/pkg/observability"
	"github.com/adforgehq/adforge/pkg/ratio"
)

// SourceResolver yields the raw image bytes for one unit.
type SourceResolver interface {
	Resolve(ctx context.Context, product brief.Product, ar ratio.AspectRatio, req genimage.Request) ([]byte, genimage.Source, error)
}

// Runner executes campaign runs.
type Runner struct {
	resolver SourceResolver
	store    *assets.Store
	defaults compliance.Defaults
	logger   *log.Logger
}

// NewRunner wires a runner from its collaborators.
func NewRunner(resolver SourceResolver, store *assets.Store, defaults compliance.Defaults, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{resolver: resolver, store: store, defaults: defaults, logger: logger}
}

// Run executes the brief. When the brief declares localizations, the
// single-locale path runs once per locale in sorted key order and the
// partial results are merged; otherwise it runs once unlocalized.
// Sorting keeps the merged asset and error lists deterministic.
func (r *Runner) Run(ctx context.Context, b *brief.CampaignBrief) (*Result, error) {
	if len(b.Localizations) == 0 {
		return r.RunLocale(ctx, b, "")
	}

	locales := make([]string, 0, len(b.Localizations))
	for code := range b.Localizations {
		locales = append(locales, code)
	}
	sort.Strings(locales)

	start := time.Now()
	var (
		allAssets []Asset
		allErrors []string
		summary   Summary
	)
	for _, locale := range locales {
		part, err := r.RunLocale(ctx, b, locale)
		if err != nil {
			return nil, err
		}
		allAssets = append(allAssets, part.Assets...)
		allErrors = append(allErrors, part.Errors...)
		summary = summary.add(part.Summary)
	}

	return &Result{
		RunID:       uuid.NewString(),
		CampaignID:  b.CampaignID,
		Success:     len(allErrors) == 0,
		Assets:      allAssets,
		Errors:      allErrors,
		Summary:     summary,
		StartedAt:   start,
		CompletedAt: time.Now(),
	}, nil
}

// RunLocale executes the single-locale algorithm. locale may be empty.
// The returned error is reserved for run-level failures such as context
// cancellation; per-unit failures land in Result.Errors.
func (r *Runner) RunLocale(ctx context.Context, b *brief.CampaignBrief, locale string) (*Result, error) {
	start := time.Now()

	loc := b.Locale(locale)

	storeLocale := ""
	effectiveID := b.CampaignID
	if locale != "" && loc != nil {
		storeLocale = strings.ToLower(locale)
		effectiveID = b.CampaignID + "-" + storeLocale
	}

	message := b.CampaignMessage
	if loc != nil && loc.Message != "" {
		message = loc.Message
	}

	culturalNotes := ""
	if loc != nil {
		culturalNotes = loc.CulturalNotes
	}

	guidelines := b.BrandGuidelines
	if loc != nil && loc.ProhibitedWords != nil {
		if guidelines != nil {
			derived := guidelines.WithProhibitedWords(loc.ProhibitedWords)
			guidelines = &derived
		} else {
			guidelines = &brief.BrandGuidelines{
				LogoRequired:    r.defaults.LogoRequired,
				ProhibitedWords: loc.ProhibitedWords,
			}
		}
	}
	validator := compliance.NewValidator(guidelines, r.defaults)

	var (
		runAssets        []Asset
		runErrors        []string
		generated        int
		reused           int
		resized          int
		complianceIssues int
	)

	for _, product := range b.Products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		observability.Generation().OnProductStart(ctx, product.ProductID, locale)
		productStart := time.Now()
		produced := 0

		logoData := r.readLogo(product)

		for _, ar := range ratio.Standard() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			observability.Generation().OnAssetStart(ctx, product.ProductID, ar.Name)
			unitStart := time.Now()

			asset, source, err := r.produceUnit(ctx, b, product, ar, unitContext{
				locale:        locale,
				storeLocale:   storeLocale,
				effectiveID:   effectiveID,
				message:       message,
				culturalNotes: culturalNotes,
				logo:          logoData,
				validator:     validator,
			})
			observability.Generation().OnAssetComplete(ctx, product.ProductID, ar.Name, string(source), time.Since(unitStart), err)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				runErrors = append(runErrors, fmt.Sprintf("Failed to generate %s for %s: %v", ar.Name, product.ProductID, err))
				r.logger.Error("asset failed", "product", product.ProductID, "ratio", ar.Name, "err", err)
				continue
			}

			switch source {
			case genimage.SourceReused:
				reused++
				resized++
			default:
				generated++
			}
			if !asset.Compliance.BrandCompliant || !asset.Compliance.LegalCompliant {
				complianceIssues++
			}
			runAssets = append(runAssets, asset)
			produced++
		}

		observability.Generation().OnProductComplete(ctx, product.ProductID, locale, produced, time.Since(productStart))
	}

	return &Result{
		RunID:      uuid.NewString(),
		CampaignID: b.CampaignID,
		Locale:     locale,
		Success:    len(runErrors) == 0,
		Assets:     runAssets,
		Errors:     runErrors,
		Summary: Summary{
			AssetsGenerated:  generated,
			AssetsReused:     reused,
			AssetsResized:    resized,
			ComplianceIssues: complianceIssues,
			Duration:         time.Since(start),
		},
		StartedAt:   start,
		CompletedAt: time.Now(),
	}, nil
}

type unitContext struct {
	locale        string
	storeLocale   string
	effectiveID   string
	message       string
	culturalNotes string
	logo          []byte
	validator     *compliance.Validator
}

func (r *Runner) produceUnit(ctx context.Context, b *brief.CampaignBrief, product brief.Product, ar ratio.AspectRatio, uc unitContext) (Asset, genimage.Source, error) {
	req := genimage.Request{
		ProductID:     product.ProductID,
		Name:          product.LocalizedName(uc.locale),
		Description:   product.LocalizedDescription(uc.locale),
		Audience:      b.TargetAudience,
		Region:        b.TargetRegion,
		CulturalNotes: uc.culturalNotes,
	}

	data, source, err := r.resolver.Resolve(ctx, product, ar, req)
	if err != nil {
		return Asset{}, source, err
	}

	if source == genimage.SourceReused {
		data, err = compose.ResizeToRatio(data, ar)
		if err != nil {
			return Asset{}, source, err
		}
	}

	hasLogo := false
	if uc.logo != nil {
		withLogo, err := compose.OverlayLogo(data, uc.logo, compose.TopRight)
		if err != nil {
			r.logger.Warn("logo overlay failed, continuing without logo",
				"product", product.ProductID, "ratio", ar.Name, "err", err)
		} else {
			data = withLogo
			hasLogo = true
		}
	}

	data, err = compose.OverlayText(data, uc.message, compose.Bottom)
	if err != nil {
		return Asset{}, source, err
	}

	result := uc.validator.Validate(data, uc.message, hasLogo)
	for _, issue := range result.Issues {
		r.logger.Warn("compliance issue", "product", product.ProductID, "ratio", ar.Name, "issue", issue)
	}

	path, err := r.store.SaveAsset(b.CampaignID, uc.storeLocale, product.ProductID, ar, data)
	if err != nil {
		return Asset{}, source, err
	}

	return Asset{
		CampaignID:  uc.effectiveID,
		ProductID:   product.ProductID,
		ProductName: req.Name,
		Region:      b.TargetRegion,
		Ratio:       ar,
		Message:     uc.message,
		Method:      string(source),
		Compliance:  result,
		Path:        path,
		CreatedAt:   time.Now(),
	}, source, nil
}

// readLogo loads the product's declared logo. A read failure degrades to
// a warning; the product is processed without a logo.
func (r *Runner) readLogo(product brief.Product) []byte {
	path := product.LogoPath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		r.logger.Warn("logo not readable, continuing without logo",
			"product", product.ProductID, "path", path, "err", err)
		return nil
	}
	return data
}
