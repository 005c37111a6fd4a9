package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yourorg/spoctl/internal/auth"
	"github.com/yourorg/spoctl/internal/config"
)

type loginOptions struct {
	refreshToken string
	tenantID     string
	clientID     string
}

func newAuthLoginCmd(globals *globalOptions) *cobra.Command {
	opts := &loginOptions{
		tenantID: auth.DefaultTenantID(),
		clientID: auth.DefaultClientID(),
	}

	cmd := &cobra.Command{
		Use:           "login",
		Short:         "Store an Azure AD refresh token securely",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAuthLogin(cmd, globals, opts)
		},
	}

	cmd.Flags().StringVar(&opts.refreshToken, "refresh-token", "", "Refresh token to store (prompted if omitted)")
	cmd.Flags().StringVar(&opts.tenantID, "tenant", opts.tenantID, "Azure AD tenant ID or domain for the profile")
	cmd.Flags().StringVar(&opts.clientID, "client-id", opts.clientID, "Azure AD app registration to request tokens with")

	return cmd
}

func runAuthLogin(cmd *cobra.Command, globals *globalOptions, opts *loginOptions) error {
	token := strings.TrimSpace(opts.refreshToken)
	if token == "" {
		read, err := promptForToken(cmd)
		if err != nil {
			return err
		}
		token = read
	}
	if token == "" {
		return errors.New("refresh token cannot be empty")
	}

	tenantID := strings.TrimSpace(opts.tenantID)
	if tenantID == "" {
		tenantID = auth.DefaultTenantID()
	}
	clientID := strings.TrimSpace(opts.clientID)
	if clientID == "" {
		clientID = auth.DefaultClientID()
	}

	if err := config.SaveToken(globals.profile, token, tenantID, clientID); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	if _, err := fmt.Fprintf(
		cmd.OutOrStdout(),
		"Saved credentials for profile %q (tenant %s)\n",
		globals.profile,
		tenantID,
	); err != nil {
		return fmt.Errorf("write confirmation: %w", err)
	}
	return nil
}

func promptForToken(cmd *cobra.Command) (string, error) {
	reader := cmd.InOrStdin()

	if f, ok := reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if _, err := fmt.Fprint(cmd.OutOrStdout(), "Refresh token: "); err != nil {
			return "", fmt.Errorf("prompt token: %w", err)
		}
		data, err := term.ReadPassword(int(f.Fd()))
		if _, ferr := fmt.Fprintln(cmd.OutOrStdout()); ferr != nil {
			return "", fmt.Errorf("prompt token: %w", ferr)
		}
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
