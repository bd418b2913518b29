package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/inii-man/foodapp/internal/config"
	"github.com/inii-man/foodapp/internal/db/dsn"
	"github.com/inii-man/foodapp/internal/db/models"
)

func init() { //nolint: gochecknoinits
	resetCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(resetCmd)
}

// resetCmd resets the super administrator password to the value from the
// configuration. Meant as a recovery tool when the account is locked out.
var resetCmd = &cobra.Command{
	Use:   "reset-superadmin-password",
	Short: "Reset the super administrator password to the configured value",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := gorm.Open(gormmysql.Open(dsn.Create(&cfg)), &gorm.Config{})
		if err != nil {
			return err
		}

		hashed := models.HashPassword(cfg.Auth.SuperAdminPassword)

		result := db.Model(&models.User{}).
			Where("email = ?", cfg.Auth.SuperAdminEmail).
			Update("password", hashed)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			log.Warn().Str("email", cfg.Auth.SuperAdminEmail).
				Msg("no superadmin account found, nothing updated")
			return nil
		}

		log.Info().Str("email", cfg.Auth.SuperAdminEmail).Msg("superadmin password reset")

		return nil
	},
}
