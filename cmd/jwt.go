package main

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sonnq3591/plg-hsdt/internal/api/handler/v1handler"
	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/pkg/domain"
)

// JWTCommand prints a bearer token for the fill API signed with the
// configured private key. Fills created with it belong to the token's user.
func JWTCommand(cfg *config.Config) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Issues a bearer token for the fill API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user := domain.UserID(uuid.New())
			if subject != "" {
				id, err := uuid.Parse(subject)
				if err != nil {
					return fmt.Errorf("subject must be a UUID: %w", err)
				}
				user = domain.UserID(id)
			}

			key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(cfg.JWT.PrivateKey))
			if err != nil {
				return fmt.Errorf("could not parse RSA private key: %w", err)
			}

			token, err := v1handler.IssueToken(key, cfg.JWT.Issuer, user, ttl, time.Now())
			if err != nil {
				return err //nolint: wrapcheck
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)

			return err //nolint: wrapcheck
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "user id the token is issued for, random when empty")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime, e.g. 15m or 72h")

	return cmd
}
