package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mmynk/rentkeeper/internal/auth"
	"github.com/mmynk/rentkeeper/internal/storage/sqlite"
)

const (
	emailFlag    = "email"
	passwordFlag = "password"
	nameFlag     = "name"
)

var createOwnerFlags = map[string]cobraflags.Flag{
	emailFlag: &cobraflags.StringFlag{
		Name:  emailFlag,
		Value: "",
		Usage: "Owner email (required)",
	},
	passwordFlag: &cobraflags.StringFlag{
		Name:  passwordFlag,
		Value: "",
		Usage: "Owner password (required)",
	},
	nameFlag: &cobraflags.StringFlag{
		Name:  nameFlag,
		Value: "",
		Usage: "Owner display name",
	},
}

// newCreateOwnerCommand seeds the single owner account without the web form.
func newCreateOwnerCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-owner",
		Short: "Create the owner account if none exists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}

			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			authenticator := auth.NewPasswordAuthenticator(store, cfg.BcryptCost)
			owner, err := authenticator.Register(cmd.Context(),
				createOwnerFlags[emailFlag].GetString(),
				createOwnerFlags[nameFlag].GetString(),
				createOwnerFlags[passwordFlag].GetString(),
			)
			switch {
			case errors.Is(err, auth.ErrRegistrationClosed):
				return errors.New("an owner account already exists")
			case errors.Is(err, auth.ErrMissingCredentials):
				return fmt.Errorf("--%s and --%s are required", emailFlag, passwordFlag)
			case err != nil:
				return err
			}

			slog.Info("Owner created", "owner_id", owner.ID, "email", owner.Email)
			return nil
		},
	}

	cobraflags.RegisterMap(cmd, createOwnerFlags)
	return cmd
}
