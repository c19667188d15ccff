package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adforgehq/adforge/pkg/assets"
	"github.com/adforgehq/adforge/pkg/brief"
	"github.com/adforgehq/adforge/pkg/cache"
	"github.com/adforgehq/adforge/pkg/compliance"
	"github.com/adforgehq/adforge/pkg/config"
	"github.com/adforgehq/adforge/pkg/generate"
	"github.com/adforgehq/adforge/pkg/genimage"
	"github.com/adforgehq/adforge/pkg/observability"
)

// spinnerHooks mirrors generation progress onto the spinner line so the
// unit currently rendering is visible during long runs.
type spinnerHooks struct {
	observability.GenerationHooks
	spin *spinner
}

func (h *spinnerHooks) OnAssetStart(ctx context.Context, productID, ratioName string) {
	h.spin.SetMessage(fmt.Sprintf("Rendering %s for %s...", ratioName, productID))
	h.GenerationHooks.OnAssetStart(ctx, productID, ratioName)
}

// newGenerateCmd creates the "generate" command, the main pipeline entry.
func newGenerateCmd() *cobra.Command {
	var (
		briefPath  string
		locale     string
		outputDir  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate campaign assets from a brief",
		Long: `Generate reads a campaign brief, resolves a source image for every
product and aspect ratio (pre-supplied file, AI generation, or
placeholder), composites logo and message overlays, runs compliance
checks, and writes the assets plus a generation report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			b, err := brief.ParseFile(briefPath)
			if err != nil {
				return err
			}
			printBriefSummary(b)

			store := assets.NewStore(cfg.OutputDir)
			runner, cleanup, err := buildRunner(cmd, cfg, store)
			if err != nil {
				return err
			}
			defer cleanup()

			track := newProgress(logger)
			spin := newSpinner(ctx, fmt.Sprintf("Generating assets for %s...", b.CampaignID))
			observability.SetGenerationHooks(&spinnerHooks{GenerationHooks: observability.Generation(), spin: spin})
			defer observability.SetGenerationHooks(nil)
			spin.Start()

			var res *generate.Result
			if locale != "" {
				res, err = runner.RunLocale(ctx, b, locale)
			} else {
				res, err = runner.Run(ctx, b)
			}
			if err != nil {
				spin.StopWithError(fmt.Sprintf("Generation aborted: %v", err))
				return err
			}
			spin.StopWithSuccess(fmt.Sprintf("Produced %d assets", len(res.Assets)))
			track.done(fmt.Sprintf("Produced %d assets", len(res.Assets)))

			report := generate.Report(res)
			fmt.Println(report)

			reportPath, err := store.SaveReport(b.CampaignID, reportLocale(b, locale), report)
			if err != nil {
				return err
			}
			printFile(reportPath)

			if !res.Success {
				printWarning("%d of %d units failed", len(res.Errors), len(res.Assets)+len(res.Errors))
				return fmt.Errorf("generation completed with %d errors", len(res.Errors))
			}
			printSuccess("Campaign %s complete", b.CampaignID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&briefPath, "brief", "b", "", "path to the campaign brief (JSON or TOML)")
	cmd.Flags().StringVarP(&locale, "locale", "l", "", "generate for a single locale only")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	_ = cmd.MarkFlagRequired("brief")

	return cmd
}

// buildRunner wires the pipeline from config: cache backend, generation
// client, resolver, and compliance defaults. The returned cleanup closes
// the cache.
func buildRunner(cmd *cobra.Command, cfg config.Config, store *assets.Store) (*generate.Runner, func(), error) {
	logger := loggerFromContext(cmd.Context())

	var (
		genCache cache.Cache
		cleanup  = func() {}
		err      error
	)
	switch cfg.Cache.Backend {
	case config.CacheBackendNone:
		genCache = nil
	case config.CacheBackendRedis:
		genCache, err = cache.NewRedisCache(cmd.Context(), cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
		if err != nil {
			return nil, nil, err
		}
	default:
		genCache, err = cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			return nil, nil, err
		}
	}
	if genCache != nil {
		cleanup = func() { _ = genCache.Close() }
	}

	client := genimage.NewClient(genimage.ClientConfig{
		APIKey:     cfg.FalKey,
		Model:      cfg.Model,
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.MaxRetries,
		Cache:      genCache,
		CacheTTL:   cfg.Cache.TTL(),
		Logger:     logger,
	})
	if !client.HasCredentials() {
		printWarning("FAL_KEY not set, assets without source images will use placeholders")
	}

	defaults := compliance.Defaults{
		Colors:          cfg.Brand.Colors,
		LogoRequired:    cfg.Brand.LogoRequired,
		ProhibitedWords: cfg.Brand.ProhibitedWords,
	}

	resolver := genimage.NewResolver(client, logger)
	return generate.NewRunner(resolver, store, defaults, logger), cleanup, nil
}

// reportLocale mirrors the runner's campaign directory naming so the
// report lands next to the assets it describes.
func reportLocale(b *brief.CampaignBrief, locale string) string {
	if locale != "" && b.Locale(locale) != nil {
		return strings.ToLower(locale)
	}
	return ""
}

// printBriefSummary prints the parsed brief at a glance before the run.
func printBriefSummary(b *brief.CampaignBrief) {
	fmt.Println(StyleTitle.Render("Campaign " + b.CampaignID))
	printKeyValue("Products", fmt.Sprintf("%d", len(b.Products)))
	printKeyValue("Region", b.TargetRegion)
	printKeyValue("Audience", b.TargetAudience)
	if len(b.Localizations) > 0 {
		locales := make([]string, 0, len(b.Localizations))
		for code := range b.Localizations {
			locales = append(locales, code)
		}
		sort.Strings(locales)
		printKeyValue("Locales", strings.Join(locales, ", "))
	}
	printNewline()
}
