// Command admintoken prints a bearer token for the admin contact endpoints.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"personalsite/internal/authz"
	"personalsite/internal/config"
	"personalsite/internal/logging"
	"personalsite/internal/middleware"
)

func newCLIApp(out io.Writer) *cli.App {
	app := &cli.App{
		Name:  "admintoken",
		Usage: "Issue an admin JWT signed with the configured secret",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: config.DefaultPath, Usage: "Config file path"},
			&cli.StringFlag{Name: "sub", Value: "owner", Usage: "Token subject"},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour, Usage: "Token lifetime"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			token, err := middleware.IssueToken([]byte(cfg.Auth.JWTSecret), c.String("sub"), []string{authz.RoleAdmin}, c.Duration("ttl"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, token)
			return err
		},
	}
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func main() {
	logging.Setup("WARN")
	if err := newCLIApp(os.Stdout).Run(os.Args); err != nil {
		logging.Fatal("admintoken", "error", err)
	}
}
