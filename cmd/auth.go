package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/primer/internal/auth"
	"github.com/ziadkadry99/primer/internal/ghsource"
)

var (
	authToken      string
	authSkipVerify bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the GitHub token used for imports",
	Long: `Store and manage the GitHub token used for imports.

Imports work without a token but are subject to GitHub's anonymous rate
limit. The token is read from GITHUB_TOKEN, then github.token in the config
file, then ~/.primer/credentials.json.`,
}

var authGitHubCmd = &cobra.Command{
	Use:   "github",
	Short: "Store a GitHub personal access token",
	Long: `Store a GitHub personal access token for persistent use.

Create a token at https://github.com/settings/tokens. Public repositories
need no scopes.`,
	RunE: runAuthGitHub,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the GitHub token comes from",
	RunE:  runAuthStatus,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored GitHub token",
	RunE:  runAuthLogout,
}

func init() {
	authGitHubCmd.Flags().StringVar(&authToken, "token", "", "Token to store (prompted for when omitted)")
	authGitHubCmd.Flags().BoolVar(&authSkipVerify, "skip-verify", false, "Store the token without checking it against GitHub")

	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authGitHubCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authLogoutCmd)
}

func runAuthGitHub(cmd *cobra.Command, args []string) error {
	token := strings.TrimSpace(authToken)
	if token == "" {
		prompt := promptui.Prompt{
			Label: "GitHub token",
			Mask:  '*',
			Validate: func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("token is required")
				}
				return nil
			},
		}
		input, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("token prompt: %w", err)
		}
		token = strings.TrimSpace(input)
	}

	var login string
	if !authSkipVerify {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		opts := githubOptions(cfg)
		opts.Token = token
		client, err := ghsource.NewClient(opts)
		if err != nil {
			return err
		}

		fmt.Print("Verifying token... ")
		login, err = client.Viewer(cmd.Context())
		if err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("token verification failed: %w", err)
		}
		fmt.Printf("valid (%s)\n", login)
	}

	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	creds.GitHub = &auth.GitHubCredentials{Token: token, Login: login}
	if err := auth.Save(creds); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	fmt.Println("GitHub token stored successfully!")
	if os.Getenv(auth.TokenEnvVar) != "" {
		fmt.Printf("Note: %s is set and takes precedence over the stored token.\n", auth.TokenEnvVar)
	}
	return nil
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, _ := auth.CredentialPath()
	fmt.Printf("Credentials file: %s\n\n", path)

	_, source := auth.GitHubToken(cfg.GitHub.Token)
	switch source {
	case auth.SourceEnv:
		fmt.Printf("github    configured (env var %s)\n", auth.TokenEnvVar)
	case auth.SourceConfig:
		fmt.Printf("github    configured (config %s)\n", cfgFile)
	case auth.SourceStored:
		creds, _ := auth.Load()
		if creds != nil && creds.GitHub != nil && creds.GitHub.Login != "" {
			fmt.Printf("github    configured (stored, %s)\n", creds.GitHub.Login)
		} else {
			fmt.Println("github    configured (stored)")
		}
	default:
		fmt.Println("github    not configured (anonymous rate limit applies)")
	}
	return nil
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	creds, err := auth.Load()
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}
	if creds.GitHub == nil {
		fmt.Println("No stored GitHub token.")
		return nil
	}
	creds.GitHub = nil
	if err := auth.Save(creds); err != nil {
		return err
	}
	fmt.Println("GitHub token removed.")
	return nil
}
