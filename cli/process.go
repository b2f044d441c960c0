package cli

import (
	"encoding/json"

	"clementus360/meeting-agent/engine"
	"clementus360/meeting-agent/pipeline"
	"clementus360/meeting-agent/types"

	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	var (
		req  types.MeetingRequest
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run one meeting through the pipeline and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []engine.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, engine.WithRandFactory(func() pipeline.RandSource {
					return pipeline.NewSeededSource(seed)
				}))
			}

			app, err := newApp(opts...)
			if err != nil {
				return err
			}
			defer app.Engine.Close()

			_, result, err := app.Engine.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&req.AudioData, "audio", "base64_encoded_audio_data_here", "base64 audio payload or file reference")
	cmd.Flags().StringVar(&req.MeetingID, "meeting-id", "meeting-123", "meeting identifier")
	cmd.Flags().StringVar(&req.ParticipantID, "participant-id", "participant-456", "participant identifier")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the random source for a reproducible run")

	return cmd
}
