package main

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// conn is the bus connection shared by all commands, set up in Before.
var conn *dbus.Conn

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dbus-tools"
	app.Usage = "explore and invoke services on the D-Bus message bus"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "bus",
			Value: "session",
			Usage: "bus to connect to [session/system/<address>]",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "enable debug logging",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			logrus.SetLevel(logrus.DebugLevel)
		}
		var err error
		switch bus := c.String("bus"); bus {
		case "session":
			conn, err = dbus.ConnectSessionBus()
		case "system":
			conn, err = dbus.ConnectSystemBus()
		default:
			conn, err = dbus.Connect(bus)
		}
		if err != nil {
			return fmt.Errorf("connect to %s bus: %w", c.String("bus"), err)
		}
		return nil
	}
	app.After = func(c *cli.Context) error {
		if conn != nil {
			conn.Close()
		}
		return nil
	}
	app.Commands = []*cli.Command{
		servicesCommand(),
		objectsCommand(),
		describeCommand(),
		callCommand(),
		propertyCommand(),
		monitorCommand(),
	}
	return app
}
