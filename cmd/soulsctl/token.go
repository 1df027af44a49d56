package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sammyhga/SoulsData/infrastructure/jwt"
)

var errNoSecret = errors.New("service.jwt_secret is not configured")

func newTokenCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token",
		Example: `  soulsctl token --subject grace --role recorder
  soulsctl token --subject pastor --role admin --ttl 24h`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if cfg.Service.JWTSecret == "" {
				return errNoSecret
			}

			role := v.GetString("role")
			if role != jwt.RoleRecorder && role != jwt.RoleAdmin {
				return fmt.Errorf("role must be %q or %q", jwt.RoleRecorder, jwt.RoleAdmin)
			}
			ttl := v.GetDuration("ttl")
			if ttl <= 0 {
				ttl = cfg.Service.TokenTTL
			}

			token, err := jwt.Issue(cfg.Service.JWTSecret, v.GetString("subject"), role, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().String("subject", "", "who the token is for")
	cmd.Flags().String("role", jwt.RoleRecorder, "recorder or admin")
	cmd.Flags().Duration("ttl", 0, "token lifetime (default service.token_ttl)")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
