// Command migrate manages the database schema.
//
// Usage:
//
//	migrate up | down | status | version | reset
//
// The database is taken from DATABASE_DSN (or --dsn).
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/lostfound-backend/migrations"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var dsn string

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply and inspect database migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (default $DATABASE_DSN)")

	// withProvider opens the database, runs fn and closes it again.
	withProvider := func(fn func(ctx context.Context, p *goose.Provider) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := openDB(dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			p, err := migrations.NewProvider(db)
			if err != nil {
				return err
			}
			return fn(ctx, p)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withProvider(func(ctx context.Context, p *goose.Provider) error {
				results, err := p.Up(ctx)
				if err != nil {
					return fmt.Errorf("goose up: %w", err)
				}
				for _, r := range results {
					fmt.Printf("applied %s (%s)\n", r.Source.Path, r.Duration.Round(time.Millisecond))
				}
				if len(results) == 0 {
					fmt.Println("no pending migrations")
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withProvider(func(ctx context.Context, p *goose.Provider) error {
				r, err := p.Down(ctx)
				if err != nil {
					return fmt.Errorf("goose down: %w", err)
				}
				fmt.Printf("rolled back %s\n", r.Source.Path)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Roll back every migration",
			RunE: withProvider(func(ctx context.Context, p *goose.Provider) error {
				results, err := p.DownTo(ctx, 0)
				if err != nil {
					return fmt.Errorf("goose reset: %w", err)
				}
				fmt.Printf("rolled back %d migrations\n", len(results))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			RunE: withProvider(func(ctx context.Context, p *goose.Provider) error {
				statuses, err := p.Status(ctx)
				if err != nil {
					return fmt.Errorf("goose status: %w", err)
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tFILE")
				for _, s := range statuses {
					applied := "-"
					if !s.AppliedAt.IsZero() {
						applied = s.AppliedAt.Format(time.RFC3339)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
				}
				return w.Flush()
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: withProvider(func(ctx context.Context, p *goose.Provider) error {
				v, err := p.GetDBVersion(ctx)
				if err != nil {
					return fmt.Errorf("goose version: %w", err)
				}
				fmt.Println(v)
				return nil
			}),
		},
	)

	return root
}

func openDB(dsn string) (*sql.DB, error) {
	if dsn == "" {
		_ = godotenv.Load() // .env is optional
		dsn = os.Getenv("DATABASE_DSN")
	}
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
