// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command capctl is a command-line client for the Computer Access
// Platform.
//
//     capctl register me@example.com secret
//     export CAP_TOKEN=...
//     capctl list
//     capctl reserve 3f2a...
//
// Every command prints the backend's response as JSON.  If the
// backend answers without the field that marks success, capctl
// prints "false" for reserve and relieve, or "error" for any other
// command, and exits with status 1.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/diffeo/go-cap/access"
	"github.com/diffeo/go-cap/restclient"
	"github.com/diffeo/go-cap/restdata"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

// errSoftFailure is returned from a command after it has printed the
// failure sentinel for a response without its success marker.
var errSoftFailure = errors.New("invalid response")

type ctl struct {
	Client access.API
}

// print writes a value as one line of JSON.  A soft failure prints
// "false" for boolean operations and "error" otherwise.  Transport
// failures are returned unchanged.
func (ctl *ctl) print(c *cli.Context, value interface{}, err error) error {
	switch access.Classify(err) {
	case access.InvalidShape:
		sentinel := "error"
		if _, boolean := value.(bool); boolean {
			sentinel = "false"
		}
		fmt.Fprintln(c.App.Writer, sentinel)
		return errSoftFailure
	case access.TransportFailure:
		return err
	}
	if err := restdata.Encode(c.App.Writer, value); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer)
	return nil
}

func args(c *cli.Context, names ...string) ([]string, error) {
	if c.NArg() != len(names) {
		return nil, fmt.Errorf("%v expects %d arguments: %v", c.Command.Name, len(names), names)
	}
	return c.Args(), nil
}

func (ctl *ctl) register(c *cli.Context) error {
	a, err := args(c, "email", "password")
	if err != nil {
		return err
	}
	session, err := ctl.Client.Register(context.Background(), a[0], a[1], c.String("role"))
	return ctl.print(c, session.Data, err)
}

func (ctl *ctl) login(c *cli.Context) error {
	a, err := args(c, "email", "password")
	if err != nil {
		return err
	}
	session, err := ctl.Client.Login(context.Background(), a[0], a[1])
	return ctl.print(c, session.Data, err)
}

func (ctl *ctl) list(c *cli.Context) error {
	if _, err := args(c); err != nil {
		return err
	}
	computers, err := ctl.Client.GetAll(context.Background(), c.GlobalString("token"))
	return ctl.print(c, computers, err)
}

func (ctl *ctl) show(c *cli.Context) error {
	a, err := args(c, "id")
	if err != nil {
		return err
	}
	computer, err := ctl.Client.GetComputer(context.Background(), a[0], c.GlobalString("token"))
	return ctl.print(c, computer.Data, err)
}

func (ctl *ctl) reserve(c *cli.Context) error {
	a, err := args(c, "id")
	if err != nil {
		return err
	}
	ok, err := ctl.Client.ReserveComputer(context.Background(), a[0], c.GlobalString("token"))
	return ctl.print(c, ok, err)
}

func (ctl *ctl) relieve(c *cli.Context) error {
	a, err := args(c, "id")
	if err != nil {
		return err
	}
	ok, err := ctl.Client.RelieveComputer(context.Background(), a[0], c.GlobalString("token"))
	return ctl.print(c, ok, err)
}

// connect builds the client from the global flags.
func (ctl *ctl) connect(c *cli.Context) error {
	var config restclient.Config
	var err error
	if filename := c.String("config"); filename != "" {
		config, err = restclient.LoadConfig(filename)
		if err != nil {
			return err
		}
	}
	if url := c.String("url"); url != "" {
		config.BaseURL = url
	}
	if c.Bool("strict") {
		config.StrictComputerList = true
	}
	ctl.Client, err = restclient.New(config)
	return err
}

func newApp(out io.Writer) *cli.App {
	tool := &ctl{}
	app := cli.NewApp()
	app.Name = "capctl"
	app.Usage = "use the Computer Access Platform"
	app.Writer = out
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML client configuration file",
		},
		cli.StringFlag{
			Name:  "url",
			Usage: "base URL of the backend (default " + restclient.DefaultBaseURL + ")",
		},
		cli.StringFlag{
			Name:   "token",
			EnvVar: "CAP_TOKEN",
			Usage:  "token from register or login",
		},
		cli.BoolFlag{
			Name:  "strict",
			Usage: "treat a computer list response without computers as an error",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "register",
			Usage:     "create an account and log in",
			ArgsUsage: "email password",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "role",
					Value: access.RoleUser,
					Usage: "account role, admin or user",
				},
			},
			Action: tool.register,
		},
		{
			Name:      "login",
			Usage:     "log in and print a token",
			ArgsUsage: "email password",
			Action:    tool.login,
		},
		{
			Name:   "list",
			Usage:  "list all computers",
			Action: tool.list,
		},
		{
			Name:      "show",
			Usage:     "show one computer",
			ArgsUsage: "id",
			Action:    tool.show,
		},
		{
			Name:      "reserve",
			Usage:     "reserve a computer",
			ArgsUsage: "id",
			Action:    tool.reserve,
		},
		{
			Name:      "relieve",
			Usage:     "give back a reserved computer",
			ArgsUsage: "id",
			Action:    tool.relieve,
		},
	}
	app.Before = tool.connect
	return app
}

func main() {
	err := newApp(os.Stdout).Run(os.Args)
	if err == errSoftFailure {
		os.Exit(1)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("capctl failed")
	}
}
