package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"agenda/internal/adapters/agendaapi"
	"agenda/internal/presentation"
)

const listLayout = "Mon 02 Jan 2006 15:04"

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Work with calendar events without the terminal UI.",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all events.",
				Action: listEvents,
			},
			{
				Name:      "show",
				Usage:     "Show one event.",
				ArgsUsage: "EVENT_ID",
				Action:    showEvent,
			},
			{
				Name:  "create",
				Usage: "Create an event.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Required: true},
					&cli.StringFlag{Name: "start", Required: true, Usage: "start time, e.g. 2024-01-01 09:00"},
					&cli.StringFlag{Name: "end", Required: true, Usage: "end time"},
					&cli.StringFlag{Name: "location"},
					&cli.StringFlag{Name: "notes"},
					&cli.StringFlag{Name: "contact", Usage: "linked contact ID"},
				},
				Action: createEvent,
			},
			{
				Name:      "edit",
				Usage:     "Edit an event. Only the given flags change.",
				ArgsUsage: "EVENT_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title"},
					&cli.StringFlag{Name: "start"},
					&cli.StringFlag{Name: "end"},
					&cli.StringFlag{Name: "location"},
					&cli.StringFlag{Name: "notes"},
					&cli.StringFlag{Name: "contact", Usage: "linked contact ID, empty to unlink"},
					&cli.StringFlag{Name: "organizer"},
					&cli.StringSliceFlag{Name: "attendee"},
				},
				Action: editEvent,
			},
			{
				Name:      "delete",
				Usage:     "Delete an event after confirmation.",
				ArgsUsage: "EVENT_ID",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
				},
				Action: deleteEvent,
			},
			{
				Name:      "export",
				Usage:     "Download an event as an iCalendar file.",
				ArgsUsage: "EVENT_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write to this file instead of stdout"},
				},
				Action: exportEvent,
			},
			{
				Name:      "share",
				Usage:     "Email an event to its linked contact.",
				ArgsUsage: "EVENT_ID",
				Action:    shareEvent,
			},
		},
	}
}

func eventArg(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit("expected exactly one EVENT_ID", 2)
	}
	return c.Args().First(), nil
}

func listEvents(c *cli.Context) error {
	s, err := newSession(c, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	stack := presentation.NewStack(presentation.Route{Screen: presentation.ScreenEventList})
	list := presentation.NewEventList(s.events, stack, s.logger)
	if err := list.Refresh(c.Context); err != nil {
		return err
	}
	items := list.View().Items
	if len(items) == 0 {
		fmt.Println(presentation.EventListEmpty)
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tEND\tTITLE")
	for _, e := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.StartDate.Local().Format(listLayout), e.EndDate.Local().Format(listLayout), e.Title)
	}
	return w.Flush()
}

// mountDetail opens the detail screen for id the way the terminal UI does:
// the list is the root route and the detail screen is pushed on top of it.
func mountDetail(c *cli.Context, s *session, id string, gate presentation.Confirmer) (*presentation.DetailScreen, presentation.Ready, error) {
	stack := presentation.NewStack(presentation.Route{Screen: presentation.ScreenEventList})
	list := presentation.NewEventList(s.events, stack, s.logger)
	list.Select(id)
	screen := presentation.NewDetailScreen(s.events, presentation.NewContactList(s.contacts, s.logger), list, stack, gate, s.policy, s.logger)
	switch st := screen.Mount(c.Context, id).(type) {
	case presentation.Ready:
		return screen, st, nil
	case presentation.NotFound:
		return nil, presentation.Ready{}, cli.Exit(presentation.NotFoundMessage, 1)
	case presentation.Failed:
		return nil, presentation.Ready{}, cli.Exit(st.Message, 1)
	default:
		return nil, presentation.Ready{}, cli.Exit("event did not load", 1)
	}
}

func showEvent(c *cli.Context) error {
	id, err := eventArg(c)
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	_, ready, err := mountDetail(c, s, id, presentation.AutoConfirm(false))
	if err != nil {
		return err
	}
	e := ready.Event
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", e.ID)
	fmt.Fprintf(w, "Title\t%s\n", e.Title)
	fmt.Fprintf(w, "Start\t%s\n", e.StartDate.Local().Format(listLayout))
	fmt.Fprintf(w, "End\t%s\n", e.EndDate.Local().Format(listLayout))
	if e.Location != nil {
		fmt.Fprintf(w, "Location\t%s\n", *e.Location)
	}
	if e.Notes != nil {
		fmt.Fprintf(w, "Notes\t%s\n", *e.Notes)
	}
	if e.ContactID != nil {
		fmt.Fprintf(w, "Contact\t%s\n", *e.ContactID)
	}
	return w.Flush()
}

func optionalFlag(c *cli.Context, name string) *string {
	if !c.IsSet(name) || c.String(name) == "" {
		return nil
	}
	v := c.String(name)
	return &v
}

func createEvent(c *cli.Context) error {
	start, err := parseTime("start", c.String("start"))
	if err != nil {
		return err
	}
	end, err := parseTime("end", c.String("end"))
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	event, err := s.events.Create(c.Context, agendaapi.NewEvent{
		Title:     c.String("title"),
		Location:  optionalFlag(c, "location"),
		Notes:     optionalFlag(c, "notes"),
		StartDate: start,
		EndDate:   end,
		ContactID: optionalFlag(c, "contact"),
	})
	if err != nil {
		return err
	}
	fmt.Println(event.ID)
	return nil
}

// applyEditFlags overwrites the form fields whose flags were given.
func applyEditFlags(c *cli.Context, form *presentation.EditableEventForm) error {
	if c.IsSet("title") {
		form.Title = c.String("title")
	}
	if c.IsSet("location") {
		form.Location = c.String("location")
	}
	if c.IsSet("notes") {
		form.Notes = c.String("notes")
	}
	if c.IsSet("contact") {
		form.ContactID = c.String("contact")
	}
	if c.IsSet("organizer") {
		form.Organizer = c.String("organizer")
	}
	if c.IsSet("attendee") {
		form.Attendees = c.StringSlice("attendee")
	}
	if c.IsSet("start") {
		t, err := parseTime("start", c.String("start"))
		if err != nil {
			return err
		}
		form.StartDate = t
	}
	if c.IsSet("end") {
		t, err := parseTime("end", c.String("end"))
		if err != nil {
			return err
		}
		form.EndDate = t
	}
	return nil
}

func editEvent(c *cli.Context) error {
	id, err := eventArg(c)
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	screen, _, err := mountDetail(c, s, id, presentation.AutoConfirm(false))
	if err != nil {
		return err
	}
	screen.Edit()
	form := screen.Editor.Form()
	if err := applyEditFlags(c, &form); err != nil {
		return err
	}
	if err := screen.Submit(c.Context, form); err != nil {
		return err
	}
	fmt.Printf("Updated event %s\n", id)
	return nil
}

func deleteEvent(c *cli.Context) error {
	id, err := eventArg(c)
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	var gate presentation.Confirmer = presentation.NewPromptConfirmer(os.Stdin, os.Stderr)
	if c.Bool("yes") {
		gate = presentation.AutoConfirm(true)
	}
	screen, _, err := mountDetail(c, s, id, gate)
	if err != nil {
		return err
	}
	confirmed, err := screen.Delete(c.Context)
	if !confirmed {
		fmt.Println("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Deleted event %s\n", id)
	return nil
}

func exportEvent(c *cli.Context) error {
	id, err := eventArg(c)
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.events.Export(c.Context, id)
	if err != nil {
		return err
	}
	if out := c.String("out"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		return nil
	}
	_, err = os.Stdout.Write(data)
	return err
}

func shareEvent(c *cli.Context) error {
	id, err := eventArg(c)
	if err != nil {
		return err
	}
	s, err := newSession(c, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	sentTo, err := s.events.Share(c.Context, id)
	if err != nil {
		return err
	}
	fmt.Printf("Sent event %s to %s\n", id, sentTo)
	return nil
}
