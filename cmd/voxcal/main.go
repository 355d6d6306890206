// Command voxcal is the reference terminal client: hold the mic, speak a
// calendar request, review the proposed change, confirm or cancel.
package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/nvolchak/voxcal-core/internal/config"
)

func main() {
	// Load .env first; a missing file is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "voxcal",
		Usage: "Voice-driven calendar assistant.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "voxcal.yaml",
				Usage: "Path to the YAML config file.",
			},
		},
		Commands: []*cli.Command{
			authCommand(),
			runCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize Google Calendar access for direct mode.",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			oauthConfig, err := googleOAuthConfig(cfg)
			if err != nil {
				return err
			}

			authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
			fmt.Printf("Open the following link in your browser and paste the authorization code:\n%v\n\n", authURL)
			fmt.Print("Authorization code: ")

			var authCode string
			if _, err := fmt.Scanln(&authCode); err != nil {
				return fmt.Errorf("reading authorization code: %w", err)
			}

			token, err := oauthConfig.Exchange(c.Context, authCode)
			if err != nil {
				return fmt.Errorf("exchanging authorization code: %w", err)
			}

			if err := saveToken(cfg.Google.TokenFile, token); err != nil {
				return err
			}
			fmt.Printf("Token saved to %s.\n", cfg.Google.TokenFile)
			return nil
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Start the interactive client.",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			session, err := buildSession(c.Context, cfg)
			if err != nil {
				return err
			}
			defer session.close()

			program := tea.NewProgram(newModel(session), tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}
}

func googleOAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set for direct calendar mode")
	}
	return &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       []string{calendarapi.CalendarScope},
	}, nil
}

