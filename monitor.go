package main

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/urfave/cli/v2"

	"github.com/AndreasHFA/dbus-tools/explorer"
)

func monitorCommand() *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "print matching signals until interrupted",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "match this object path (a /* suffix matches the subtree)",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "qualified or bare signal name to match",
			},
		},
		Action: runMonitor,
	}
}

func runMonitor(c *cli.Context) error {
	if err := conn.AddMatchSignal(matchOptions(c.String("path"), c.String("name"))...); err != nil {
		return fmt.Errorf("signal match: %w", err)
	}
	ch := make(chan *dbus.Signal, 16)
	conn.Signal(ch)
	for sig := range ch {
		parts := make([]string, len(sig.Body))
		for i, v := range sig.Body {
			parts[i] = explorer.Render(v)
		}
		fmt.Printf("%s %s: %s\n", sig.Path, sig.Name, strings.Join(parts, " "))
	}
	return nil
}

// matchOptions builds the bus match rule for a monitor invocation. A
// qualified signal name splits on its last dot into interface and member.
func matchOptions(path, name string) []dbus.MatchOption {
	var options []dbus.MatchOption
	if path != "" {
		if strings.HasSuffix(path, "/*") {
			options = append(options, dbus.WithMatchPathNamespace(
				dbus.ObjectPath(strings.TrimSuffix(path, "/*"))))
		} else {
			options = append(options, dbus.WithMatchObjectPath(dbus.ObjectPath(path)))
		}
	}
	if name != "" {
		if i := strings.LastIndex(name, "."); i >= 0 {
			options = append(options,
				dbus.WithMatchInterface(name[:i]),
				dbus.WithMatchMember(name[i+1:]))
		} else {
			options = append(options, dbus.WithMatchMember(name))
		}
	}
	return options
}
