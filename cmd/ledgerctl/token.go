package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/tripledger/internal/auth"
	"github.com/mmynk/tripledger/internal/config"
)

var (
	flagTokenName string
	flagTokenTTL  string
)

var tokenCmd = &cobra.Command{
	Use:   "token <userID>",
	Short: "Mint a bearer token signed with the configured secret",
	Long:  "Mint a bearer token for scripts and local testing. Requires JWT_SECRET (or auth.jwt_secret).",
	Args:  cobra.ExactArgs(1),
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&flagTokenName, "name", "", "Display name carried in the token")
	tokenCmd.Flags().StringVar(&flagTokenTTL, "ttl", "", "Token lifetime (default: auth.token_ttl)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("no JWT secret configured")
	}

	ttl := cfg.Auth.TokenTTL
	if flagTokenTTL != "" {
		if err := ttl.UnmarshalText([]byte(flagTokenTTL)); err != nil {
			return fmt.Errorf("invalid --ttl: %w", err)
		}
	}

	token, err := auth.IssueToken(cfg.Auth.JWTSecret, cfg.Auth.Issuer, args[0], flagTokenName, ttl.Duration)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
