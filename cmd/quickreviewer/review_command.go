package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickreviewer/internal/media"
)

func newReviewCommand(cmdCtx *commandContext) *cobra.Command {
	var typeFlag string
	var refreshFlag bool

	cmd := &cobra.Command{
		Use:   "review <media-id>",
		Short: "Generate or fetch a review for one title",
		Long: `Generate or fetch the spoiler-free review for a movie or a single episode.
Movies use a plain id (tt0111161); episodes use the composite form
tt0903747:S1:E1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, err := media.ParseType(typeFlag)
			if err != nil {
				return err
			}

			logger, err := cmdCtx.newLogger("")
			if err != nil {
				return err
			}
			pipe, err := cmdCtx.buildPipeline(logger)
			if err != nil {
				return err
			}
			defer pipe.Close()

			result := pipe.coordinator.GetReview(cmd.Context(), args[0], mediaType, refreshFlag)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Review)
			if result.Verdict != "" {
				fmt.Fprintf(out, "\nVerdict: %s\n", result.Verdict)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "movie", "Media type: movie or series")
	cmd.Flags().BoolVar(&refreshFlag, "refresh", false, "Regenerate even when a cached review exists")
	return cmd
}

func newSummaryCommand(cmdCtx *commandContext) *cobra.Command {
	var typeFlag string
	var refreshFlag bool

	cmd := &cobra.Command{
		Use:   "summary <media-id>",
		Short: "Generate or fetch the bullet summary for one title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mediaType, err := media.ParseType(typeFlag)
			if err != nil {
				return err
			}

			logger, err := cmdCtx.newLogger("")
			if err != nil {
				return err
			}
			pipe, err := cmdCtx.buildPipeline(logger)
			if err != nil {
				return err
			}
			defer pipe.Close()

			bullets := pipe.coordinator.GetSummary(cmd.Context(), args[0], mediaType, refreshFlag)
			if len(bullets) == 0 {
				return fmt.Errorf("no summary could be generated for %s", args[0])
			}
			out := cmd.OutOrStdout()
			for _, bullet := range bullets {
				fmt.Fprintf(out, "- %s\n", bullet)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "movie", "Media type: movie or series")
	cmd.Flags().BoolVar(&refreshFlag, "refresh", false, "Regenerate even when a cached summary exists")
	return cmd
}
