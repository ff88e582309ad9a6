package cli

import (
	"context"
	"fmt"
	"os"

	"campusvault/internal/client/config"
	"campusvault/internal/logging"

	"github.com/spf13/cobra"
)

// Execute is the main entry point called from main.go. Subcommands run one
// action and exit; invoking the binary with no subcommand starts the
// interactive shell.
func Execute(cfg *config.Config, log logging.Logger) {
	ctx := context.Background()

	app, err := NewApp(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "cvault",
		Short: "Campus portal file vault client",
		Long:  "cvault manages your campus portal account and file vault from the terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Run(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Short and long forms of these are parsed by the config layer before
	// cobra runs; they are declared here so cobra accepts them instead of
	// failing on unknown flags.
	var sink string
	rootCmd.PersistentFlags().StringVarP(&sink, "api", "a", "", "base URL of the backend API")
	rootCmd.PersistentFlags().StringVarP(&sink, "state", "s", "", "state directory")
	rootCmd.PersistentFlags().StringVarP(&sink, "downloads", "d", "", "downloads directory")
	rootCmd.PersistentFlags().StringVarP(&sink, "timeout", "t", "", "request timeout in seconds")
	rootCmd.PersistentFlags().StringVarP(&sink, "envfile", "e", "", "path to dotenv file")

	rootCmd.AddCommand(
		newRegisterCmd(ctx, app),
		newLoginCmd(ctx, app),
		newLogoutCmd(ctx, app),
		newLsCmd(ctx, app),
		newUploadCmd(ctx, app),
		newUpdateCmd(ctx, app),
		newRmCmd(ctx, app),
		newGetCmd(ctx, app),
		newProfileCmd(ctx, app),
		newPasswdCmd(ctx, app),
		newTimetableCmd(ctx, app),
		newPingCmd(ctx, app),
		newShellCmd(ctx, app),
	)

	err = rootCmd.Execute()
	app.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRegisterCmd(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Register(ctx)
		},
	}
}

func newLoginCmd(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Login(ctx)
		},
	}
}

func newLogoutCmd(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Logout(ctx)
		},
	}
}

func newLsCmd(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List files in the vault",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.List(ctx)
		},
	}
}

func newUploadCmd(ctx context.Context, app *App) *cobra.Command {
	var description string
	var public bool

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Upload(ctx, args[0], description, public)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "m", "", "file description")
	cmd.Flags().BoolVar(&public, "public", false, "use the anonymous public upload endpoint")
	return cmd
}

func newUpdateCmd(ctx context.Context, app *App) *cobra.Command {
	var path, description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a file's content and/or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Update(ctx, id, path, description)
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", "replacement file")
	cmd.Flags().StringVarP(&description, "description", "m", "", "new description")
	return cmd
}

func newRmCmd(ctx context.Context, app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if yes {
				app.vault.Confirm = func(string) bool { return true }
			}
			return app.Delete(ctx, id)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newGetCmd(ctx context.Context, app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Download a file into the downloads directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return app.Download(ctx, id, name)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "save under this name instead of the server's")
	return cmd
}

func newProfileCmd(ctx context.Context, app *App) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if edit {
				return app.UpdateProfile(ctx)
			}
			return app.Profile(ctx)
		},
	}
	cmd.Flags().BoolVar(&edit, "edit", false, "edit username and email")
	return cmd
}

func newPasswdCmd(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ChangePassword(ctx)
		},
	}
}

func newTimetableCmd(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timetable",
		Short: "Show today's class schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Timetable(ctx)
		},
	}
}

func newShellCmd(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Run(ctx)
			return nil
		},
	}
}

func newPingCmd(ctx context.Context, app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the backend is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Ping(ctx); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Server is up.")
			return nil
		},
	}
}
