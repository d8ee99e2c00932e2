package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"agenda/internal/adapters/agendaapi"
	"agenda/internal/presentation"
)

func contactsCommand() *cli.Command {
	return &cli.Command{
		Name:  "contacts",
		Usage: "Work with contacts events can be linked to.",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all contacts.",
				Action: func(c *cli.Context) error {
					s, err := newSession(c, os.Stderr)
					if err != nil {
						return err
					}
					defer s.Close()

					contacts := presentation.NewContactList(s.contacts, s.logger)
					if err := contacts.Refresh(c.Context); err != nil {
						return err
					}
					items := contacts.View().Items
					if len(items) == 0 {
						fmt.Println(presentation.ContactListEmpty)
						return nil
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
					for _, ct := range items {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ct.ID, ct.Name, ct.Email, ct.Phone)
					}
					return w.Flush()
				},
			},
			{
				Name:  "create",
				Usage: "Create a contact.",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
				},
				Action: func(c *cli.Context) error {
					s, err := newSession(c, os.Stderr)
					if err != nil {
						return err
					}
					defer s.Close()

					contact, err := s.contacts.Create(c.Context, agendaapi.NewContact{
						Name:  c.String("name"),
						Email: c.String("email"),
						Phone: c.String("phone"),
					})
					if err != nil {
						return err
					}
					fmt.Println(contact.ID)
					return nil
				},
			},
		},
	}
}
