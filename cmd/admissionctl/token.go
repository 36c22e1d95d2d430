package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tuyensinh/admission-advisor/config"
	"github.com/tuyensinh/admission-advisor/utils/auth"
	"github.com/tuyensinh/admission-advisor/utils/cache"
)

func newTokenCmd(_ *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue or revoke chat API access tokens",
	}
	cmd.AddCommand(newTokenIssueCmd(), newTokenRevokeCmd())
	return cmd
}

func jwtManagerFromEnv(expiry time.Duration) (*auth.JWTManager, *config.EnvironmentVariable, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, nil, err
	}
	manager, err := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: expiry,
		Issuer: getEnv.JWT_ISSUER,
	})
	if err != nil {
		return nil, nil, err
	}
	return manager, getEnv, nil
}

func newTokenIssueCmd() *cobra.Command {
	var (
		userID uint
		expiry time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Mint an access token for a user id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return errors.New("--user must be a positive user id")
			}

			manager, _, err := jwtManagerFromEnv(expiry)
			if err != nil {
				return err
			}

			token, jti, err := manager.GenerateAccessToken(userID)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "jti: %s\n", jti)
			fmt.Fprintln(out, token)
			return nil
		},
	}

	cmd.Flags().UintVar(&userID, "user", 0, "user id the token authenticates (required)")
	cmd.Flags().DurationVar(&expiry, "expiry", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func newTokenRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <token>",
		Short: "Reject a still-valid access token until it expires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, getEnv, err := jwtManagerFromEnv(0)
			if err != nil {
				return err
			}

			claims, err := manager.ValidateToken(args[0])
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					fmt.Fprintln(cmd.OutOrStdout(), "token already expired, nothing to revoke")
					return nil
				}
				return err
			}

			if getEnv.REDIS_URL == "" {
				return errors.New("REDIS_URL is required to revoke tokens")
			}
			redisCache, err := cache.NewRedisCache(getEnv.REDIS_URL)
			if err != nil {
				return err
			}
			defer redisCache.Close()

			if err := auth.NewRedisRevocationList(redisCache).Revoke(cmd.Context(), claims.ID, auth.TokenTTL(claims)); err != nil {
				return fmt.Errorf("failed to revoke token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "revoked %s for user %d\n", claims.ID, claims.UserID)
			return nil
		},
	}
}
