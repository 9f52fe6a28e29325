package cmd

import (
	"errors"
	"fmt"

	"github.com/vibast-solutions/ms-go-menu/migrations"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the database schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		dsn, err := mysqlDSNFromEnv()
		if err != nil {
			return err
		}
		if dsn, err = migrations.DSN(dsn); err != nil {
			return err
		}
		db, err := openMySQL(dsn)
		if err != nil {
			return err
		}
		defer db.Close()

		err = migrations.Run(db, direction)
		if errors.Is(err, migrations.ErrNoChange) {
			fmt.Fprintln(cmd.OutOrStdout(), "schema already up to date")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrate %s: %w", direction, err)
		}

		logrus.WithField("direction", direction).Info("Schema migrated")
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", direction)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
