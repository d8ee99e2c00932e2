package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"agenda/internal/adapters/auth"
)

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "Mint an API token signed with the server's JWT secret.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "secret", EnvVars: []string{"JWT_SECRET"}, Required: true, Usage: "the API server's JWT_SECRET"},
			&cli.StringFlag{Name: "subject", Value: "cli", Usage: "token subject, shown in server logs"},
			&cli.DurationFlag{Name: "ttl", Value: 30 * 24 * time.Hour, Usage: "token lifetime, 0 for no expiry"},
		},
		Action: func(c *cli.Context) error {
			token, err := auth.NewJWTIssuer(c.String("secret")).Issue(c.String("subject"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
}
