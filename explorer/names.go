package explorer

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ListNames returns the names currently owned on the bus, unique peer
// names included.
func ListNames(conn *dbus.Conn) ([]string, error) {
	var names []string
	err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names)
	if err != nil {
		return nil, fmt.Errorf("ListNames: %w", err)
	}
	return names, nil
}

// ListActivatableNames returns the names the bus can start on demand.
func ListActivatableNames(conn *dbus.Conn) ([]string, error) {
	var names []string
	err := conn.BusObject().Call("org.freedesktop.DBus.ListActivatableNames", 0).Store(&names)
	if err != nil {
		return nil, fmt.Errorf("ListActivatableNames: %w", err)
	}
	return names, nil
}

// OwnerPID returns the process ID of the connection owning a bus name.
func OwnerPID(conn *dbus.Conn, name string) (uint32, error) {
	var pid uint32
	err := conn.BusObject().Call("org.freedesktop.DBus.GetConnectionUnixProcessID", 0, name).Store(&pid)
	if err != nil {
		return 0, fmt.Errorf("GetConnectionUnixProcessID %s: %w", name, err)
	}
	return pid, nil
}
