package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"quickreviewer/internal/store"
)

func newCacheCommand(cmdCtx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the review cache",
	}
	cacheCmd.AddCommand(newCacheListCommand(cmdCtx))
	cacheCmd.AddCommand(newCacheSweepCommand(cmdCtx))
	cacheCmd.AddCommand(newCacheClearCommand(cmdCtx))
	return cacheCmd
}

func (c *commandContext) withStore(fn func(*store.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	reviewStore, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("open review store: %w", err)
	}
	defer reviewStore.Close()
	return fn(reviewStore)
}

func newCacheListCommand(cmdCtx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached reviews, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(reviewStore *store.Store) error {
				entries, err := reviewStore.ListRecent(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				if jsonOutput || !isatty.IsTerminal(os.Stdout.Fd()) {
					type entryJSON struct {
						ID          string `json:"id"`
						MediaType   string `json:"mediaType"`
						TimestampMs int64  `json:"timestampMs"`
					}
					payload := make([]entryJSON, 0, len(entries))
					for _, entry := range entries {
						payload = append(payload, entryJSON{
							ID:          entry.ID,
							MediaType:   string(entry.MediaType),
							TimestampMs: entry.TimestampMs,
						})
					}
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(payload)
				}

				if len(entries) == 0 {
					fmt.Fprintln(out, "Cache is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.ID,
						string(entry.MediaType),
						formatAge(entry.TimestampMs),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Type", "Age"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newCacheSweepCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Evict expired cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(reviewStore *store.Store) error {
				removed, err := reviewStore.SweepExpired(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Evicted %d expired entries\n", removed)
				return nil
			})
		},
	}
}

func newCacheClearCommand(cmdCtx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear the cache without --yes")
			}
			return cmdCtx.withStore(func(reviewStore *store.Store) error {
				if err := reviewStore.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm removal of all cached reviews")
	return cmd
}

func formatAge(timestampMs int64) string {
	age := time.Since(time.UnixMilli(timestampMs))
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}
