package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teemow/calq/internal/calendar"
	"github.com/teemow/calq/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		account  string
		authCode string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize read-only Google Calendar access",
		Long: `Authorize calq to read a Google Calendar.

Prints an OAuth URL to visit, then reads the authorization code from
--code or from stdin and stores the resulting token in the user cache
directory. Use --account to keep tokens for multiple Google accounts.

Requires GOOGLE_OAUTH_CLIENT_ID and GOOGLE_OAUTH_CLIENT_SECRET to be set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if calendar.HasTokenForAccount(account) {
				fmt.Printf("Account '%s' is already authorized. Continuing will replace the stored token.\n\n", account)
			}

			authURL := google.GetAuthURLForAccount(account)
			fmt.Printf("Visit this URL to authorize calq for account '%s':\n\n  %s\n\n", account, authURL)

			code := authCode
			if code == "" {
				fmt.Print("Enter the authorization code: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read authorization code: %w", err)
				}
				code = strings.TrimSpace(line)
			}
			if code == "" {
				return fmt.Errorf("authorization code is required")
			}

			if err := google.SaveTokenForAccount(cmd.Context(), account, code); err != nil {
				return fmt.Errorf("failed to save token for account %s: %w", account, err)
			}

			fmt.Printf("Authorization successful. Token saved for account '%s'.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "default", "Google account name to authorize (default: 'default')")
	cmd.Flags().StringVar(&authCode, "code", "", "Authorization code from Google (read from stdin when omitted)")

	return cmd
}
