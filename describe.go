package main

import (
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/urfave/cli/v2"

	"github.com/AndreasHFA/dbus-tools/explorer"
	"github.com/AndreasHFA/dbus-tools/signature"
)

func describeCommand() *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "show the interfaces an object implements",
		ArgsUsage: "<service> <path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "signals",
				Usage: "also show signals",
			},
		},
		Action: runDescribe,
	}
}

func runDescribe(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: %s describe <service> <path>", c.App.Name)
	}
	obj := explorer.NewObject(conn, c.Args().Get(0), dbus.ObjectPath(c.Args().Get(1)))
	showSignals := c.Bool("signals")
	for _, iface := range obj.Interfaces() {
		if len(iface.Methods) == 0 && len(iface.Properties) == 0 &&
			(!showSignals || len(iface.Signals) == 0) {
			continue
		}
		fmt.Println(iface.Name)
		for i := range iface.Methods {
			line, err := iface.Methods[i].PPrint()
			if err != nil {
				return err
			}
			fmt.Printf("\t%s\n", line)
		}
		if showSignals {
			for i := range iface.Signals {
				line, err := iface.Signals[i].PPrint()
				if err != nil {
					return err
				}
				fmt.Printf("\t%s\n", line)
			}
		}
		for _, p := range iface.Properties {
			line, err := signature.PPrint(p.Type, p.Name)
			if err != nil {
				return err
			}
			fmt.Printf("\t%s (%s)\n", line, p.Access)
		}
	}
	return nil
}
