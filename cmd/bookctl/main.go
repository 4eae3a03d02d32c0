package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/bookstore-api/cmd/bookctl/ui"
	"github.com/redmonkez12/bookstore-api/internal/book"
	"github.com/redmonkez12/bookstore-api/internal/config"
	"github.com/redmonkez12/bookstore-api/internal/database"
	"github.com/redmonkez12/bookstore-api/internal/seed"
	"github.com/redmonkez12/bookstore-api/internal/user"
)

const commandTimeout = 2 * time.Minute

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bookctl",
		Short:         "Operate the bookstore database",
		Long:          "Create the schema, load a book catalog, and manage user roles for the bookstore API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the users and books tables if they do not exist",
		RunE:  runMigrate,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a book catalog",
		RunE:  runSeed,
	}
	seedCmd.Flags().String("file", "", "JSON file holding an array of books (defaults to the built-in catalog)")
	seedCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	promoteCmd := &cobra.Command{
		Use:   "promote",
		Short: "Change the role of an existing user",
		RunE:  runPromote,
	}
	promoteCmd.Flags().String("email", "", "Email of the user to update")
	promoteCmd.Flags().String("role", string(user.RoleAdmin), "Role to assign (user, admin)")
	_ = promoteCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(migrateCmd, seedCmd, promoteCmd)
	return rootCmd
}

func runMigrate(cmd *cobra.Command, args []string) error {
	return withDB(cmd, func(ctx context.Context, db *bun.DB) error {
		if err := database.CreateSchema(ctx, db); err != nil {
			return err
		}
		ui.PrintSuccess("Schema is up to date")
		return nil
	})
}

func runSeed(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	yes, _ := cmd.Flags().GetBool("yes")

	books, err := loadCatalog(file)
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}

	if !yes {
		ok, err := ui.Confirm(fmt.Sprintf("Insert %d books into the catalog?", len(books)))
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	return withDB(cmd, func(ctx context.Context, db *bun.DB) error {
		inserted, err := book.NewRepository(db).CreateMany(ctx, books)
		if err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Inserted %d books", inserted))
		return nil
	})
}

func runPromote(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	roleFlag, _ := cmd.Flags().GetString("role")

	email = strings.ToLower(strings.TrimSpace(email))
	role := user.Role(strings.ToLower(strings.TrimSpace(roleFlag)))
	if email == "" {
		err := fmt.Errorf("email is required")
		ui.PrintError(err.Error())
		return err
	}
	if !role.Valid() {
		err := fmt.Errorf("unknown role %q", roleFlag)
		ui.PrintError(err.Error())
		return err
	}

	return withDB(cmd, func(ctx context.Context, db *bun.DB) error {
		if err := user.NewRepository(db).UpdateRole(ctx, email, role); err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("%s is now %s", email, role))
		ui.PrintHint("The new role applies to tokens issued from the next login.")
		return nil
	})
}

func loadCatalog(file string) ([]book.CreateInput, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.FromFile(file)
}

// withDB opens the configured database for the duration of fn and reports its error
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db *bun.DB) error) error {
	db, err := database.Open(config.LoadDatabase())
	if err != nil {
		ui.PrintError(err.Error())
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	if err := fn(ctx, db); err != nil {
		ui.PrintError(err.Error())
		return err
	}
	return nil
}
