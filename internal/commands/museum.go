package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/museum"
)

// Museum is what the console drives. Changes are queued and applied on the
// next tick.
type Museum interface {
	Enqueue(museum.Command)
	Room() gallery.Room
	Rooms() []gallery.Room
}

// Overlays are the HUD layers the console can toggle.
type Overlays struct {
	FPS     bool
	Minimap bool
}

// RegisterMuseum adds the room, rooms, tour, fps, minimap and help commands.
// Replies are printed to out.
func RegisterMuseum(r *Registry, m Museum, ov *Overlays, out func(string)) {
	r.Register("room", "<id>  walk into another room", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: cmd room <id>")
		}
		for _, room := range m.Rooms() {
			if room.ID == args[0] {
				m.Enqueue(museum.Command{Kind: museum.SwitchRoomCommand, RoomID: room.ID})
				return nil
			}
		}
		return fmt.Errorf("%w: %q", museum.ErrUnknownRoom, args[0])
	})

	r.Register("rooms", " list the rooms", nil, func([]string) error {
		current := m.Room().ID
		for _, room := range m.Rooms() {
			mark := " "
			if room.ID == current {
				mark = "*"
			}
			out(fmt.Sprintf("%s %-10s %s", mark, room.ID, room.Name))
		}
		return nil
	})

	r.Register("tour", "start|stop  guided tour", nil, func(args []string) error {
		if len(args) != 1 {
			return errors.New("usage: cmd tour start|stop")
		}
		switch args[0] {
		case "start":
			m.Enqueue(museum.Command{Kind: museum.StartTourCommand})
		case "stop":
			m.Enqueue(museum.Command{Kind: museum.StopTourCommand})
		default:
			return fmt.Errorf("tour: unknown action %q", args[0])
		}
		return nil
	})

	r.Register("fps", "--show|--hide", toggleFlags("fps", &ov.FPS), func([]string) error { return nil })
	r.Register("minimap", "--show|--hide", toggleFlags("minimap", &ov.Minimap), func([]string) error { return nil })

	r.Register("help", " list commands", nil, func([]string) error {
		for _, line := range r.Help() {
			out(line)
		}
		return nil
	})
}

// toggleFlags returns a flag set whose --show and --hide flags write target.
func toggleFlags(name string, target *bool) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(toggle{target, true}, "show", "show the "+name+" overlay")
	fs.Var(toggle{target, false}, "hide", "hide the "+name+" overlay")
	fs.Lookup("show").NoOptDefVal = "true"
	fs.Lookup("hide").NoOptDefVal = "true"
	return fs
}

type toggle struct {
	target *bool
	on     bool
}

func (t toggle) String() string {
	if t.target == nil {
		return "false"
	}
	return fmt.Sprint(*t.target == t.on)
}

func (t toggle) Set(s string) error {
	switch strings.ToLower(s) {
	case "true", "1", "":
		*t.target = t.on
	case "false", "0":
		*t.target = !t.on
	default:
		return fmt.Errorf("invalid value %q", s)
	}
	return nil
}

func (toggle) Type() string { return "bool" }
