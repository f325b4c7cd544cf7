package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/99minutos/task-crm/internal/core/domain"
	"github.com/99minutos/task-crm/internal/core/ports"
	"github.com/99minutos/task-crm/internal/core/service"
	"github.com/99minutos/task-crm/internal/infrastructure/crypto"
)

var (
	nameFlag     string
	emailFlag    string
	passwordFlag string
	roleFlag     string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a user, typically the first ADMIN",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		role := domain.Role(roleFlag)
		if !role.Valid() {
			return fmt.Errorf("--role must be ADMIN or USER, got %q", roleFlag)
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())

		hasher, err := crypto.NewHasher(cfg.Auth.PasswordHasher, cfg.Auth.BcryptCost)
		if err != nil {
			return err
		}
		tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		auth := service.NewAuthService(store.Users, hasher, tokens, nil, log)

		user, err := auth.Register(ctx, ports.RegisterInput{
			Name:     nameFlag,
			Email:    emailFlag,
			Password: passwordFlag,
			Role:     role,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s user %s (id %s)\n", user.Role, user.Email, user.ID)
		return nil
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&nameFlag, "name", "", "Display name")
	usersCreateCmd.Flags().StringVar(&emailFlag, "email", "", "Login email")
	usersCreateCmd.Flags().StringVar(&passwordFlag, "password", "", "Initial password")
	usersCreateCmd.Flags().StringVar(&roleFlag, "role", string(domain.RoleAdmin), "ADMIN or USER")
	_ = usersCreateCmd.MarkFlagRequired("email")
	_ = usersCreateCmd.MarkFlagRequired("password")
	_ = usersCreateCmd.MarkFlagRequired("name")

	usersCmd.AddCommand(usersCreateCmd)
}
