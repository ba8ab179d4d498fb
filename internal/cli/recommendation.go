package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRecommendationCmd inspects or clears the persisted recommendation.
func NewRecommendationCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommendation",
		Short: "Show or clear the persisted recommendation",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current recommendation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			rt, err := buildRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			fmt.Fprintln(cmd.OutOrStdout(), rt.service.Recommendation(cmd.Context()))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Reset the recommendation to none",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			rt, err := buildRuntime(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rt.Close()
			rt.service.ClearRecommendation(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "recommendation cleared")
			return nil
		},
	})
	return cmd
}
