package main

import (
	"fmt"
	"strings"
	"time"

	"trustboard/internal/auth"
	"trustboard/internal/db"
	"trustboard/internal/discussion"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd(e *env) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "boardctl",
		Short:         "Administer a trustboard deployment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile == "" {
				return nil
			}
			return godotenv.Load(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file")

	root.AddCommand(
		newMigrateCmd(e),
		newTrustCmd(e),
		newTokenCmd(e),
	)
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				migrations, err := db.Migrations()
				if err != nil {
					return err
				}
				for _, m := range migrations {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.Version, m.Name)
				}
				return nil
			}

			pool, err := e.open(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			applied, err := db.Migrate(cmd.Context(), pool, e.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list embedded migrations without touching the database")
	return cmd
}

func newTrustCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Manage a student's trusted reviewers",
	}

	// withGraph runs fn against a trust graph on the configured backend.
	withGraph := func(cmd *cobra.Command, fn func(g *discussion.TrustGraph) error) error {
		backend, closeFn, err := e.backend(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		return fn(discussion.NewBoard(backend, e.logger, nil).Trust())
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <student> <reviewer>",
			Short: "Trust a reviewer",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withGraph(cmd, func(g *discussion.TrustGraph) error {
					added, err := g.Add(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					if !added {
						fmt.Fprintf(cmd.OutOrStdout(), "%s already trusts %s (or the edge is not allowed)\n", args[0], args[1])
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s now trusts %s\n", args[0], args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "rm <student> <reviewer>",
			Aliases: []string{"remove"},
			Short:   "Stop trusting a reviewer",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withGraph(cmd, func(g *discussion.TrustGraph) error {
					removed, err := g.Remove(cmd.Context(), args[0], args[1])
					if err != nil {
						return err
					}
					if !removed {
						fmt.Fprintf(cmd.OutOrStdout(), "%s did not trust %s\n", args[0], args[1])
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s no longer trusts %s\n", args[0], args[1])
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "ls <student>",
			Aliases: []string{"list"},
			Short:   "List trusted reviewers",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withGraph(cmd, func(g *discussion.TrustGraph) error {
					names, err := g.List(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					if len(names) > 0 {
						fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear <student>",
			Short: "Remove every trusted reviewer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withGraph(cmd, func(g *discussion.TrustGraph) error {
					n, err := g.Clear(cmd.Context(), args[0])
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "removed %d edge(s)\n", n)
					return nil
				})
			},
		},
	)
	return cmd
}

func newTokenCmd(e *env) *cobra.Command {
	var (
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <username>",
		Short: "Mint an access token for local development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := e.getenv("AUTH_TOKEN_SECRET")
			if secret == "" {
				return fmt.Errorf("AUTH_TOKEN_SECRET is not set")
			}
			iss := e.getenv("AUTH_TOKEN_ISS")
			if iss == "" {
				iss = "trustboard"
			}

			tok, err := auth.NewJWTAuthenticator(secret, iss, iss, ttl).GenerateToken(args[0], role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role claim, e.g. "+discussion.RoleAdmin)
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
