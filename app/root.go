// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "foodapp",
	Short: "foodapp is the REST API for the food ordering service",
	Long: `foodapp is the REST API backend for a multi-tenant food ordering
service where customers place orders, merchants manage menus and a super
administrator manages roles and permissions.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
