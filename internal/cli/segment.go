package cli

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Dreiko98/clipforge/internal/config"
	"github.com/Dreiko98/clipforge/internal/domain/clips"
)

func newSegmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment <transcript.json>",
		Short: "Segment a transcript into scored clip candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, _ := cmd.Flags().GetString("out")
			keywords, _ := cmd.Flags().GetString("keywords")

			candidates, err := clips.SegmentFile(args[0], config.SegmentationFromEnv(), splitKeywords(keywords))
			if err != nil {
				return err
			}

			if err := clips.WriteCandidates(out, uuid.NewString(), candidates); err != nil {
				return err
			}
			log.Info().Int("candidates", len(candidates)).Str("path", out).Msg("candidates written")
			return nil
		},
	}

	cmd.Flags().String("out", "candidates.json", "Output file")
	cmd.Flags().String("keywords", "", "Comma-separated keywords to prioritize")
	return cmd
}
