package main

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/urfave/cli/v2"

	"github.com/AndreasHFA/dbus-tools/explorer"
)

func callCommand() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "invoke a method and print its results",
		ArgsUsage: "<service> <path> <[interface.]method> [arg...]",
		Description: "Each trailing argument is an expression evaluated per the\n" +
			"method's input signature, e.g.: 42, \"text\", [1, 2], {\"k\": \"v\"}.",
		Action: runCall,
	}
}

func runCall(c *cli.Context) error {
	if c.NArg() < 3 {
		return fmt.Errorf("usage: %s call <service> <path> <method> [arg...]", c.App.Name)
	}
	args := c.Args().Slice()
	obj := explorer.NewObject(conn, args[0], dbus.ObjectPath(args[1]))
	iface, method := obj.Resolve(args[2])
	if method == nil {
		return fmt.Errorf("method %q not found on %s %s", args[2], args[0], args[1])
	}
	results, err := obj.Call(iface, method, args[3:])
	if err != nil {
		return err
	}
	for _, result := range results {
		fmt.Println(explorer.Render(result))
	}
	return nil
}
