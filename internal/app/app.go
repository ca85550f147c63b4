package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/heroes-client/internal/config"
	"github.com/vovakirdan/heroes-client/internal/hero"
	"github.com/vovakirdan/heroes-client/internal/messages"
)

// App wires together the message log and the heroes client.
type App struct {
	heroes   *hero.Client
	messages *messages.Log
	log      *zerolog.Logger
	out      io.Writer
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger, out io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	msgs := messages.New()
	client := hero.NewClient(cfg.BaseURL, msgs, logger,
		hero.WithTimeout(cfg.Timeout),
		hero.WithSource(cfg.Source),
	)

	logger.Debug().
		Str("base_url", cfg.BaseURL).
		Dur("timeout", cfg.Timeout).
		Msg("heroes client initialized")

	return &App{
		heroes:   client,
		messages: msgs,
		log:      logger,
		out:      out,
	}, nil
}

// Heroes returns the CRUD client.
func (a *App) Heroes() hero.Service {
	return a.heroes
}

// Messages returns the notification log shared with the client.
func (a *App) Messages() *messages.Log {
	return a.messages
}

// Report prints the operation result as JSON followed by the collected messages.
func (a *App) Report(result any) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if _, err := fmt.Fprintf(a.out, "%s\n", data); err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	entries := a.messages.Messages()
	if len(entries) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(a.out, "\nMessages"); err != nil {
		return fmt.Errorf("write messages: %w", err)
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintln(a.out, entry); err != nil {
			return fmt.Errorf("write messages: %w", err)
		}
	}
	a.messages.Clear()
	return nil
}
