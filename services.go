package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/AndreasHFA/dbus-tools/explorer"
)

func servicesCommand() *cli.Command {
	return &cli.Command{
		Name:  "services",
		Usage: "list services on the bus",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "unnamed",
				Usage: "include unique :x.y peer names",
			},
			&cli.BoolFlag{
				Name:  "activatable",
				Usage: "include services the bus can start on demand",
			},
			&cli.BoolFlag{
				Name:  "hide-empty",
				Usage: "skip services whose object tree exposes nothing callable",
			},
			&cli.BoolFlag{
				Name:  "signals",
				Usage: "count signals as callable surface",
			},
			&cli.BoolFlag{
				Name:  "pid",
				Usage: "show the owning process ID",
			},
		},
		Action: runServices,
	}
}

func runServices(c *cli.Context) error {
	names, err := explorer.ListNames(conn)
	if err != nil {
		return err
	}
	if c.Bool("activatable") {
		activatable, err := explorer.ListActivatableNames(conn)
		if err != nil {
			return err
		}
		names = append(names, activatable...)
	}
	names = filterNames(names, c.Bool("unnamed"))
	sort.Strings(names)
	for _, name := range names {
		if c.Bool("hide-empty") {
			root := explorer.NewObject(conn, name, "/")
			if root.EmptyRecursive(c.Bool("signals")) {
				continue
			}
		}
		if c.Bool("pid") {
			if pid, err := explorer.OwnerPID(conn, name); err == nil {
				fmt.Printf("%s\t%d\n", name, pid)
			} else {
				fmt.Printf("%s\t-\n", name)
			}
			continue
		}
		fmt.Println(name)
	}
	return nil
}

// filterNames deduplicates bus names and drops unique :x.y peer names
// unless they were asked for.
func filterNames(names []string, unnamed bool) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		if !unnamed && strings.HasPrefix(name, ":") {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
