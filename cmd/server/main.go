// @title Event Booking API
// @version 1.0
// @description Public event request and testimonial submission with admin moderation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "eventbooking/docs"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "Event booking and testimonial moderation API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		createAdminCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
