package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yukikurage/task-report-api/internal/database"
	"github.com/yukikurage/task-report-api/internal/repository"
	"github.com/yukikurage/task-report-api/internal/services"
)

var superAdminInput services.SuperAdminInput

var createSuperAdminCmd = &cobra.Command{
	Use:   "createsuperadmin",
	Short: "Create a super-admin account",
	Long: `Creates a staff super-admin that can sign in to the console. Usage:

	server createsuperadmin --email root@example.com --first-name Root --password secret
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootstrap(); err != nil {
			return err
		}
		db := database.GetDB()
		if err := database.Migrate(db); err != nil {
			return err
		}

		users := services.NewUserService(repository.NewUserRepository(db))
		user, err := users.CreateSuperAdmin(superAdminInput)
		if err != nil {
			return err
		}

		log.Info().Uint64("id", user.ID).Str("email", user.Email).Msg("super admin created")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createSuperAdminCmd)

	flags := createSuperAdminCmd.Flags()
	flags.StringVar(&superAdminInput.Email, "email", "", "account email")
	flags.StringVar(&superAdminInput.FirstName, "first-name", "", "first name")
	flags.StringVar(&superAdminInput.LastName, "last-name", "", "last name")
	flags.StringVar(&superAdminInput.Password, "password", "", "account password")
	_ = createSuperAdminCmd.MarkFlagRequired("email")
	_ = createSuperAdminCmd.MarkFlagRequired("first-name")
	_ = createSuperAdminCmd.MarkFlagRequired("password")
}
