// Command dochubctl runs operational tasks against a dochub deployment.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appstore "dochub/internal/applications/store"
	"dochub/internal/auth/password"
	authservice "dochub/internal/auth/service"
	sessionstore "dochub/internal/auth/store/session"
	userstore "dochub/internal/auth/store/user"
	"dochub/internal/identity"
	jwttoken "dochub/internal/jwt_token"
	"dochub/internal/platform/config"
	"dochub/internal/platform/logger"
	"dochub/internal/platform/migrate"
	"dochub/internal/platform/postgres"
	"dochub/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dochubctl",
		Short:         "Operational tasks for the document hub",
		SilenceUsage:  true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newIDCmd(), newValidateCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(migrate.Up), string(migrate.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := migrate.ParseDirection(args[0])
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := migrate.Run(cfg.Database.URL, direction); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", direction)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo accounts and applications into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fixture, err := loadFixture(file)
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			db, err := postgres.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			if db == nil {
				return errors.New("DATABASE_URL is not set")
			}
			defer db.Close()

			log := logger.New(cfg.Log)
			users, err := authservice.New(
				userstore.NewPostgres(db),
				sessionstore.New(),
				jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer),
				password.NewHasher(cfg.Auth.BcryptCost),
				authservice.Config{SessionTTL: cfg.Auth.SessionTTL, RememberMeTTL: cfg.Auth.RememberMeTTL},
				authservice.WithLogger(log),
			)
			if err != nil {
				return err
			}
			report, err := seed.Apply(ctx, fixture, users, appstore.NewPostgres(db), log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "users created: %d, skipped: %d, applications: %d\n",
				report.Users, report.Skipped, report.Applications)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture YAML (defaults to the embedded demo data)")
	return cmd
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Demo()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return seed.Parse(raw)
}

func newIDCmd() *cobra.Command {
	id := &cobra.Command{
		Use:   "id",
		Short: "National ID helpers",
	}
	id.AddCommand(&cobra.Command{
		Use:   "format <digits>",
		Short: "Group digits as XX-XX-XX-XX-XXXXX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), identity.FormatNationalID(args[0]))
			return nil
		},
	})
	return id
}

var validateKinds = map[string]identity.Method{
	"email":       identity.MethodEmail,
	"phone":       identity.MethodPhone,
	"national-id": identity.MethodNationalID,
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "validate <email|phone|national-id> <value>",
		Short:     "Check a value against an identifier format",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"email", "phone", "national-id"},
		RunE: func(cmd *cobra.Command, args []string) error {
			method, ok := validateKinds[args[0]]
			if !ok {
				return fmt.Errorf("unknown kind %q", args[0])
			}
			return report(cmd.OutOrStdout(), args[1], identity.Validate(method, args[1]))
		},
	}
}

func report(w io.Writer, value string, ok bool) error {
	if !ok {
		fmt.Fprintf(w, "%s: invalid\n", value)
		return fmt.Errorf("%q is not valid", value)
	}
	fmt.Fprintf(w, "%s: valid\n", value)
	return nil
}
