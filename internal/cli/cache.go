package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/adforgehq/adforge/pkg/config"
)

// newCacheCmd creates the cache management command.
func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the image generation cache",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file")

	cmd.AddCommand(newCacheClearCmd(&configPath))
	cmd.AddCommand(newCacheInfoCmd(&configPath))

	return cmd
}

// newCacheClearCmd creates the "cache clear" subcommand.
func newCacheClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached generation results",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			dir := cfg.Cache.Dir

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			count := 0
			err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if !info.IsDir() {
					if err := os.Remove(path); err == nil {
						count++
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Clean up empty subdirectories
			_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
				if err != nil || path == dir {
					return nil
				}
				if info.IsDir() {
					os.Remove(path)
				}
				return nil
			})

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// newCacheInfoCmd creates the "cache info" subcommand.
func newCacheInfoCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache backend, location, and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			printKeyValue("Backend", cfg.Cache.Backend)
			switch cfg.Cache.Backend {
			case config.CacheBackendRedis:
				printKeyValue("Address", cfg.Cache.RedisAddr)
			case config.CacheBackendNone:
			default:
				printKeyValue("Directory", cfg.Cache.Dir)
				entries, size := cacheStats(cfg.Cache.Dir)
				printKeyValue("Entries", fmt.Sprintf("%d", entries))
				printKeyValue("Size", fmt.Sprintf("%.1f MiB", float64(size)/(1024*1024)))
			}
			printKeyValue("TTL", cfg.Cache.TTL().String())
			return nil
		},
	}
}

// cacheStats walks the file cache and returns entry count and total bytes.
func cacheStats(dir string) (int, int64) {
	var entries int
	var size int64
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		entries++
		size += info.Size()
		return nil
	})
	return entries, size
}
