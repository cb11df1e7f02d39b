// cmd/homekeeperctl/main.go
// homekeeperctl is a small CLI for poking a HomeKeeper backend through the SDK.
// Session cookies live in the process's in-memory jar, so commands that need an
// authenticated session accept --email/--password and log in first.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/homekeeper/go-homekeeper-http-client/httpclient"
	"github.com/homekeeper/go-homekeeper-http-client/version"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func buildClient() (*httpclient.Client, error) {
	config, err := httpclient.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return httpclient.BuildClient(*config, true)
}

func login(client *httpclient.Client, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("both --email and --password are required")
	}
	_, err := client.Post("/auth/login", credentials{Email: email, Password: password}, nil)
	return err
}

func printResult(out any, format string) {
	if format == "json" {
		pretty, err := json.MarshalIndent(out, "", "  ")
		if err == nil {
			fmt.Println(string(pretty))
			return
		}
	}
	fmt.Printf("%v\n", out)
}

func main() {
	envFile := os.Getenv("HOMEKEEPER_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	var (
		email    string
		password string
		out      = envOr("HOMEKEEPER_OUT", "json")
	)

	root := &cobra.Command{
		Use:   "homekeeperctl",
		Short: "CLI for the HomeKeeper backend API (env: API_BASE_URL)",
	}
	root.PersistentFlags().StringVar(&email, "email", envOr("HOMEKEEPER_EMAIL", ""), "account email (env HOMEKEEPER_EMAIL)")
	root.PersistentFlags().StringVar(&password, "password", envOr("HOMEKEEPER_PASSWORD", ""), "account password (env HOMEKEEPER_PASSWORD)")
	root.PersistentFlags().StringVar(&out, "out", out, "output format: json|text")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the SDK version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetUserAgentHeader())
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}
			if err := login(client, email, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Println("ok")
			return nil
		},
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Log in and print the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}
			if err := login(client, email, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			var user map[string]any
			if _, err := client.Get("/users/me", &user); err != nil {
				return err
			}
			printResult(user, out)
			return nil
		},
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Log in and immediately invalidate the session server-side",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}
			if err := login(client, email, password); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if _, err := client.Post("/auth/logout", nil, nil); err != nil {
				return err
			}
			client.ClearCSRFToken()
			fmt.Println("ok")
			return nil
		},
	}

	var reqData string
	var reqHeaders []string
	requestCmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Send a raw request through the SDK (logs in first when credentials are set)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}
			if email != "" || password != "" {
				if err := login(client, email, password); err != nil {
					return fmt.Errorf("login failed: %w", err)
				}
			}

			var body any
			if reqData != "" {
				body = reqData
			}

			headers := map[string]string{}
			for _, h := range reqHeaders {
				parts := strings.SplitN(h, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("malformed --header %q, expected name=value", h)
				}
				headers[parts[0]] = parts[1]
			}

			var result any
			resp, err := client.DoRequestWithOptions(cmd.Context(), args[0], args[1], httpclient.RequestOptions{Headers: headers}, body, &result)
			if err != nil {
				return err
			}
			if result == nil {
				fmt.Printf("status=%d\n", resp.StatusCode)
				return nil
			}
			printResult(result, out)
			return nil
		},
	}
	requestCmd.Flags().StringVar(&reqData, "data", "", "request body (raw JSON)")
	requestCmd.Flags().StringArrayVar(&reqHeaders, "header", nil, "extra header as name=value, repeatable")

	root.AddCommand(versionCmd)
	root.AddCommand(loginCmd)
	root.AddCommand(logoutCmd)
	root.AddCommand(whoamiCmd)
	root.AddCommand(requestCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
