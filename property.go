package main

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/urfave/cli/v2"

	"github.com/AndreasHFA/dbus-tools/explorer"
)

func propertyCommand() *cli.Command {
	return &cli.Command{
		Name:      "property",
		Usage:     "read a property value",
		ArgsUsage: "<service> <path> <interface.property>",
		Action:    runProperty,
	}
}

func runProperty(c *cli.Context) error {
	if c.NArg() != 3 {
		return fmt.Errorf("usage: %s property <service> <path> <interface.property>", c.App.Name)
	}
	args := c.Args().Slice()
	if !strings.Contains(args[2], ".") {
		return fmt.Errorf("property name must be interface-qualified, e.g. org.freedesktop.DBus.Features")
	}
	value, err := conn.Object(args[0], dbus.ObjectPath(args[1])).GetProperty(args[2])
	if err != nil {
		return fmt.Errorf("get %s: %w", args[2], err)
	}
	fmt.Println(explorer.Render(value))
	return nil
}
