package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli/formatter"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/config"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the generator API key and database DSN in the OS keyring",
	}

	cmd.AddCommand(
		newAuthSetKeyCmd(app),
		newAuthClearKeyCmd(),
		newAuthStatusCmd(),
	)

	return cmd
}

// secretName maps the --postgres flag to the keyring entry it selects.
func secretName(postgres bool) (name, label string) {
	if postgres {
		return config.SecretPostgresDSN, "Postgres DSN"
	}
	return config.SecretAPIKey, "API key"
}

func newAuthSetKeyCmd(app *App) *cobra.Command {
	var value string
	var postgres bool

	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Store the API key (or --postgres DSN); read from a prompt or stdin when --value is omitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, label := secretName(postgres)

			if value == "" {
				var err error
				if app.interactive() {
					err = huh.NewForm(huh.NewGroup(
						huh.NewInput().
							Title(label).
							EchoMode(huh.EchoModePassword).
							Value(&value),
					)).WithTheme(formTheme()).WithShowHelp(false).Run()
					if errors.Is(err, huh.ErrUserAborted) {
						return cancelled(cmd, errFormAborted)
					}
				} else {
					value, err = readLine(cmd)
				}
				if err != nil {
					return err
				}
			}

			if err := config.SetSecret(name, strings.TrimSpace(value)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s in the OS keyring.\n", label)
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Secret value (visible in shell history; prefer the prompt)")
	cmd.Flags().BoolVar(&postgres, "postgres", false, "Store the Postgres DSN instead of the API key")
	return cmd
}

func newAuthClearKeyCmd() *cobra.Command {
	var postgres bool

	cmd := &cobra.Command{
		Use:   "clear-key",
		Short: "Remove the API key (or --postgres DSN) from the OS keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, label := secretName(postgres)
			err := config.DeleteSecret(name)
			if errors.Is(err, config.ErrNoSecret) {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s stored.\n", label)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the OS keyring.\n", label)
			return nil
		},
	}

	cmd.Flags().BoolVar(&postgres, "postgres", false, "Remove the Postgres DSN instead of the API key")
	return cmd
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which secrets are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, secretStatus("API key", config.APIKey))
			fmt.Fprintln(out, secretStatus("Postgres DSN", config.PostgresDSN))
			return nil
		},
	}
}

func secretStatus(label string, get func() (string, error)) string {
	v, err := get()
	switch {
	case errors.Is(err, config.ErrNoSecret):
		return fmt.Sprintf("%-13s %s", label+":", formatter.Dim("not set"))
	case err != nil:
		return fmt.Sprintf("%-13s %s", label+":", formatter.StyleFailed.Render(err.Error()))
	default:
		return fmt.Sprintf("%-13s %s", label+":", formatter.StyleOK.Render(config.Mask(v)))
	}
}

func readLine(cmd *cobra.Command) (string, error) {
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("no value on stdin")
	}
	return scanner.Text(), nil
}
