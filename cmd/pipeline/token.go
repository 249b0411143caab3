package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/vfg2006/daily-revenue-pipeline/internal/domain"
	"github.com/vfg2006/daily-revenue-pipeline/internal/usecases/authenticating"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a signed API token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		token, err := authenticating.NewService(cfg.Auth).GenerateToken(tokenSubject, tokenRole, tokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Token subject (required)")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", domain.RoleViewer, "Role claim: operator or viewer")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (defaults to AUTH_TOKEN_TTL_HOURS)")

	if err := tokenCmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}
