package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-menu/app/repository"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Inspect and remove owner accounts",
}

var accountShowCmd = &cobra.Command{
	Use:   "show <email>",
	Short: "Show an owner account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userRepo, db, err := newUserRepositoryForAccountCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		user, err := userRepo.FindByEmail(context.Background(), strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no account found for %q", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id: %s\n", user.ID)
		fmt.Fprintf(out, "email: %s\n", user.Email)
		fmt.Fprintf(out, "name: %s\n", user.Name)
		fmt.Fprintf(out, "country: %s\n", user.Country)
		fmt.Fprintf(out, "email_verified: %t\n", user.EmailVerified)
		fmt.Fprintf(out, "pending_code: %t\n", user.VerificationCode.Valid)
		fmt.Fprintf(out, "created_at: %s\n", user.CreatedAt.Format(time.RFC3339))
		return nil
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete <email>",
	Short: "Delete an owner account together with its restaurants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userRepo, db, err := newUserRepositoryForAccountCommands()
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()
		user, err := userRepo.FindByEmail(ctx, strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("no account found for %q", args[0])
		}

		count, err := userRepo.Delete(ctx, user.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return errors.New("account was removed concurrently")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "deleted account %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	accountCmd.AddCommand(accountShowCmd)
	accountCmd.AddCommand(accountDeleteCmd)
	rootCmd.AddCommand(accountCmd)
}

func newUserRepositoryForAccountCommands() (*repository.UserRepository, *sql.DB, error) {
	dsn, err := mysqlDSNFromEnv()
	if err != nil {
		return nil, nil, err
	}
	db, err := openMySQL(dsn)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewUserRepository(db), db, nil
}

// mysqlDSNFromEnv reads MYSQL_DSN without loading the full server configuration.
func mysqlDSNFromEnv() (string, error) {
	_ = godotenv.Load()

	dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN"))
	if dsn == "" {
		return "", errors.New("MYSQL_DSN environment variable is required")
	}
	return dsn, nil
}

func openMySQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
