package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"agenda/config"
	"agenda/internal/adapters/agendaapi"
	"agenda/internal/presentation"
	"agenda/internal/tui"
)

func main() {
	defaults := config.LoadClient()

	app := &cli.App{
		Name:  "agenda",
		Usage: "Browse, edit and delete calendar events.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-url", Value: defaults.APIURL, EnvVars: []string{"AGENDA_API_URL"}, Usage: "base URL of the agenda API"},
			&cli.StringFlag{Name: "token", Value: defaults.APIToken, EnvVars: []string{"AGENDA_API_TOKEN"}, Usage: "API bearer token (see 'agenda token')"},
			&cli.StringFlag{Name: "policy", Value: defaults.MutationPolicy, EnvVars: []string{"AGENDA_MUTATION_POLICY"}, Usage: "after a failed edit or delete: proceed or halt"},
			&cli.StringFlag{Name: "log-file", Value: defaults.LogFile, EnvVars: []string{"AGENDA_LOG_FILE"}, Usage: "write logs to this file"},
		},
		Action: func(c *cli.Context) error {
			s, err := newSession(c, io.Discard)
			if err != nil {
				return err
			}
			defer s.Close()
			return tui.Run(c.Context, s.events, s.contacts, s.policy, s.logger)
		},
		Commands: []*cli.Command{
			eventsCommand(),
			contactsCommand(),
			tokenCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("agenda failed", "error", err)
		os.Exit(1)
	}
}

// session holds what every command needs: the API data layers, the failure
// policy and a logger.
type session struct {
	events   *agendaapi.Events
	contacts *agendaapi.Contacts
	policy   presentation.MutationPolicy
	logger   *slog.Logger
	logFile  *os.File
}

// newSession builds a session from the global flags. Logs go to --log-file
// when set and to fallback otherwise.
func newSession(c *cli.Context, fallback io.Writer) (*session, error) {
	policy, err := presentation.ParseMutationPolicy(c.String("policy"))
	if err != nil {
		return nil, err
	}
	s := &session{policy: policy}
	out := fallback
	if path := c.String("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		s.logFile = f
		out = f
	}
	s.logger = config.NewLoggerTo(out)
	client := agendaapi.NewClient(c.String("api-url"), c.String("token"), nil)
	s.events = client.Events()
	s.contacts = client.Contacts()
	return s, nil
}

func (s *session) Close() {
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

// parseTime accepts RFC 3339 or a local "YYYY-MM-DD HH:MM".
func parseTime(name, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("--%s: %q is not a time like 2024-01-01 09:00", name, s)
}
