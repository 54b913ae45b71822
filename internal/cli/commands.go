package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/t4-api/internal/api"
	"github.com/MKhiriev/t4-api/internal/client"
	"github.com/MKhiriev/t4-api/internal/rpc"
	"github.com/MKhiriev/t4-api/models"
	"github.com/spf13/cobra"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client build and the server version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Client version: %s (%s, %s)\n", a.build.BuildVersion(), a.build.BuildDate(), a.build.BuildCommit())

			info, err := client.Query(cmd.Context(), api.Version, rpc.Void{})
			if err != nil {
				return fmt.Errorf("error getting server version: %w", err)
			}
			fmt.Fprintf(out, "Server version: %s %s\n", info.Name, info.Version)
			return nil
		},
	}
}

func newGreetCommand(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "greet",
		Short: "Ask the server for a greeting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			greeting, err := client.Query(cmd.Context(), api.Greeting, models.GreetingRequest{Name: name})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (server time %s)\n", greeting.Message, greeting.ServerTime.Local().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name to greet")
	return cmd
}

func newPasswordResetCommand(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "password-reset",
		Short: "Request a password reset email",
		Long: `Request a password reset email for an account.

The link in the email opens the web app, or the mobile app when --platform
is ios or android.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.Mutate(cmd.Context(), api.RequestPasswordReset, models.PasswordResetRequest{Email: email}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "If an account exists for %s, a password reset email is on its way.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newCallCommand(a *app) *cobra.Command {
	var mutation bool

	cmd := &cobra.Command{
		Use:   "call <procedure> [json-input]",
		Short: "Call any procedure with a JSON input and print its JSON output",
		Example: `  t4 call version
  t4 call greeting '{"name":"Ann"}'
  t4 call auth.requestPasswordReset '{"email":"jane@t4.dev"}' --mutation`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rpcClient, ok := client.RPCFromContext(cmd.Context())
			if !ok {
				return client.ErrNoProvider
			}

			var in any = rpc.Void{}
			if len(args) == 2 && strings.TrimSpace(args[1]) != "" {
				if err := json.Unmarshal([]byte(args[1]), &in); err != nil {
					return fmt.Errorf("invalid json input: %w", err)
				}
			}

			opType := rpc.OpQuery
			if mutation {
				opType = rpc.OpMutation
			}

			var out any
			if err := rpcClient.Do(cmd.Context(), opType, args[0], in, &out); err != nil {
				return err
			}

			encoded, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().BoolVar(&mutation, "mutation", false, "call the procedure as a mutation")
	return cmd
}
