package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/AndreasHFA/dbus-tools/explorer"
)

func objectsCommand() *cli.Command {
	return &cli.Command{
		Name:      "objects",
		Usage:     "list the object tree of a service",
		ArgsUsage: "<service>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hide-empty",
				Usage: "skip objects that expose nothing callable",
			},
			&cli.BoolFlag{
				Name:  "signals",
				Usage: "count signals as callable surface",
			},
		},
		Action: runObjects,
	}
}

func runObjects(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: %s objects <service>", c.App.Name)
	}
	root := explorer.NewObject(conn, c.Args().Get(0), "/")
	for _, obj := range explorer.ListObjects(root, c.Bool("hide-empty"), c.Bool("signals")) {
		fmt.Println(obj.Path())
	}
	return nil
}
