package main

import (
	"context"
	"errors"
	"fmt"
	"geomap-admin/internal/app"
	"geomap-admin/internal/config"
	"geomap-admin/internal/services"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

func main() {
	config.Load()
	cobra.CheckErr(NewCmd().ExecuteContext(context.Background()))
}

// NewCmd builds the dbtool command tree. Storage flags default to the
// DB_DRIVER, DB_PATH and DATABASE_URL environment variables.
func NewCmd() *cobra.Command {
	s := config.FromEnv()

	rootCmd := &cobra.Command{
		Use:           "dbtool [command] [flags]",
		Short:         "dbtool manages the geomap-admin database",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}
	rootCmd.PersistentFlags().String("driver", s.DBDriver, "`<driver>` sqlite or postgres")
	rootCmd.PersistentFlags().String("db-path", s.DBPath, "`<path>` of the SQLite database file")
	rootCmd.PersistentFlags().String("database-url", s.DatabaseURL, "`<url>` of the Postgres database")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE:  doInit,
	}

	seedCmd := &cobra.Command{
		Use:   "seed [flags]",
		Short: "Create the schema and load seed locations (JSON or YAML)",
		Args:  cobra.NoArgs,
		RunE:  doSeed,
	}
	seedCmd.Flags().StringP("file", "f", s.SeedPath, "`<path>` of the seed file")

	geocodeCmd := &cobra.Command{
		Use:   "geocode [flags]",
		Short: "Fill in coordinates of locations that only have an address",
		Args:  cobra.NoArgs,
		RunE:  doGeocode,
	}
	geocodeCmd.Flags().IntP("workers", "w", 4, "`<n>` concurrent geocode lookups")

	rootCmd.AddCommand(
		initCmd,
		seedCmd,
		geocodeCmd,
	)
	return rootCmd
}

// openEnv applies the storage flags over the environment settings.
func openEnv(cmd *cobra.Command) (*app.Env, error) {
	s := config.FromEnv()

	var err error
	if s.DBDriver, err = cmd.Flags().GetString("driver"); err != nil {
		return nil, err
	}
	if s.DBPath, err = cmd.Flags().GetString("db-path"); err != nil {
		return nil, err
	}
	if s.DatabaseURL, err = cmd.Flags().GetString("database-url"); err != nil {
		return nil, err
	}

	return app.Open(cmd.Context(), s)
}

func doInit(cmd *cobra.Command, _ []string) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	log.Println("Initializing database schema...")
	if _, err := env.InitAndSeed(cmd.Context(), ""); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")
	return nil
}

func doSeed(cmd *cobra.Command, _ []string) error {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	if file == "" {
		return errors.New("seed: --file is required")
	}

	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	log.Println("Seeding database...")
	n, err := env.InitAndSeed(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. locations=%d", n)
	return nil
}

func doGeocode(cmd *cobra.Command, _ []string) error {
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return err
	}

	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if env.Geocoder == nil {
		return errors.New("geocode: ORS_API_KEY is required")
	}

	report, err := services.LocateMissing(cmd.Context(), env.Repo, env.Geocoder, workers)
	if err != nil {
		return err
	}
	log.Printf("Geocoding complete. located=%d failed=%d skipped=%d", report.Located, report.Failed, report.Skipped)
	return nil
}
