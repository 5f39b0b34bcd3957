// Package admincli implements the siteadmin command: schema migrations,
// admin seeding and a read-only account listing, run against the same
// database the server uses.
package admincli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dmitrijs2005/siteback/internal/logging"
	"github.com/dmitrijs2005/siteback/internal/server/config"
	"github.com/dmitrijs2005/siteback/internal/server/migrations"
	"github.com/dmitrijs2005/siteback/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/siteback/internal/server/services"
	"github.com/dmitrijs2005/siteback/internal/server/session"
	"github.com/spf13/cobra"
)

type options struct {
	driver   string
	dsn      string
	logLevel string
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
}

// NewRootCmd builds the siteadmin command tree. Database defaults come from
// the server configuration defaults and the SITE_DB_* environment.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	o := &options{
		driver:   envOr("SITE_DB_DRIVER", defaults.DatabaseDriver),
		dsn:      envOr("SITE_DB_DSN", defaults.DatabaseDSN),
		logLevel: defaults.LogLevel,
		in:       in,
		out:      out,
		errOut:   errOut,
	}

	root := &cobra.Command{
		Use:           "siteadmin",
		Short:         "Maintenance commands for the site backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVar(&o.driver, "driver", o.driver, "database driver (sqlite|postgres)")
	root.PersistentFlags().StringVar(&o.dsn, "dsn", o.dsn, "database DSN")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", o.logLevel, "log level")

	root.AddCommand(
		migrateCmd(o),
		seedAdminCmd(o),
		usersCmd(o),
	)

	return root
}

// Execute runs siteadmin with the process arguments.
func Execute(ctx context.Context) int {
	cmd := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func (o *options) logger() logging.Logger {
	return logging.NewJSON(o.errOut, o.logLevel)
}

// open connects and brings the schema up to date.
func (o *options) open(ctx context.Context) (*sql.DB, *repomanager.SQLRepositoryManager, error) {
	db, m, err := repomanager.Open(ctx, o.driver, o.dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, m, nil
}

func migrateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, m, err := repomanager.Open(ctx, o.driver, o.dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := migrations.Up(ctx, db, m.Dialect())
			if err != nil {
				return err
			}
			fmt.Fprintf(o.out, "applied %d migration(s)\n", n)
			return nil
		},
	}
}

func seedAdminCmd(o *options) *cobra.Command {
	defaults := &config.Config{}
	defaults.LoadDefaults()

	var (
		email    string
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account, or promote it and reset its password",
		Long: `Create the admin account if it does not exist. An existing account with
the same email is promoted to admin and gets the new password.

The email is taken from --email, then SITE_ADMIN_EMAIL; the password from
--password, then SITE_ADMIN_PASSWORD. Whatever is still missing is prompted
for on the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if email == "" {
				email = os.Getenv("SITE_ADMIN_EMAIL")
			}
			if email == "" {
				var err error
				email, err = GetSimpleText(bufio.NewReader(o.in), "Admin email", o.out)
				if err != nil {
					return err
				}
			}

			if password == "" {
				password = os.Getenv("SITE_ADMIN_PASSWORD")
			}
			if password == "" {
				var err error
				password, err = GetPassword(o.out)
				if err != nil {
					return err
				}
			}

			db, m, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.NewAccountService(db, m, session.NewMemoryStore(0), o.logger())
			account, created, err := svc.SeedAdmin(ctx, email, password, name)
			if err != nil {
				return err
			}

			if created {
				fmt.Fprintf(o.out, "created admin %s (id %d)\n", account.Email, account.ID)
			} else {
				fmt.Fprintf(o.out, "promoted %s (id %d) to admin and reset its password\n", account.Email, account.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email (prompted for when empty)")
	cmd.Flags().StringVar(&name, "name", defaults.AdminName, "admin full name, used when the account is created")
	cmd.Flags().StringVar(&password, "password", "", "admin password")

	return cmd
}

func usersCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, m, err := o.open(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := services.NewAccountService(db, m, session.NewMemoryStore(0), o.logger())
			accounts, err := svc.ListAccounts(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(o.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tPLAN")
			for _, a := range accounts {
				plan := "-"
				if a.Plan != nil {
					plan = *a.Plan
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", a.ID, a.Email, a.FullName, a.Role, plan)
			}
			return tw.Flush()
		},
	}
}
