package commands

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"virtual-museum/internal/gallery"
	"virtual-museum/internal/museum"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		args []string
		ok   bool
	}{
		{"cmd room retratos", []string{"room", "retratos"}, true},
		{"cmd   fps   --show ", []string{"fps", "--show"}, true},
		{"cmd ", nil, true},
		{"hola", nil, false},
		{"CMD room main", nil, false},
	}
	for _, tt := range tests {
		args, ok := Parse(tt.line)
		if ok != tt.ok || !reflect.DeepEqual(args, tt.args) {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tt.line, args, ok, tt.args, tt.ok)
		}
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	var got []string
	var loud bool
	fs := pflag.NewFlagSet("say", pflag.ContinueOnError)
	fs.BoolVar(&loud, "loud", false, "")
	r.Register("say", "<words>", fs, func(args []string) error {
		got = args
		return nil
	})

	if err := r.Execute([]string{"say", "--loud", "hola", "mundo"}); err != nil {
		t.Fatal(err)
	}
	if !loud || !reflect.DeepEqual(got, []string{"hola", "mundo"}) {
		t.Fatalf("loud=%v args=%v", loud, got)
	}
	if err := r.Execute(nil); err == nil {
		t.Error("missing subcommand accepted")
	}
	if err := r.Execute([]string{"nope"}); err == nil {
		t.Error("unknown command accepted")
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"say"}) {
		t.Errorf("Names = %v", got)
	}
}

type fakeMuseum struct {
	room  gallery.Room
	queue []museum.Command
}

func (f *fakeMuseum) Enqueue(c museum.Command) { f.queue = append(f.queue, c) }
func (f *fakeMuseum) Room() gallery.Room       { return f.room }
func (f *fakeMuseum) Rooms() []gallery.Room    { return gallery.DefaultRooms() }

func setup() (*Registry, *fakeMuseum, *Overlays, *[]string) {
	r := NewRegistry()
	m := &fakeMuseum{room: gallery.DefaultRooms()[0]}
	ov := &Overlays{}
	var lines []string
	RegisterMuseum(r, m, ov, func(s string) { lines = append(lines, s) })
	return r, m, ov, &lines
}

func run(t *testing.T, r *Registry, line string) error {
	t.Helper()
	args, ok := Parse(line)
	if !ok {
		t.Fatalf("%q is not a command", line)
	}
	return r.Execute(args)
}

func TestRoomCommand(t *testing.T) {
	r, m, _, _ := setup()
	if err := run(t, r, "cmd room retratos"); err != nil {
		t.Fatal(err)
	}
	want := museum.Command{Kind: museum.SwitchRoomCommand, RoomID: "retratos"}
	if len(m.queue) != 1 || m.queue[0] != want {
		t.Fatalf("queue = %+v", m.queue)
	}
	if err := run(t, r, "cmd room sotano"); !errors.Is(err, museum.ErrUnknownRoom) {
		t.Fatalf("unknown room err = %v", err)
	}
	if err := run(t, r, "cmd room"); err == nil {
		t.Fatal("missing room accepted")
	}
	if len(m.queue) != 1 {
		t.Fatalf("failed commands queued: %+v", m.queue)
	}
}

func TestRoomsCommand(t *testing.T) {
	r, _, _, lines := setup()
	if err := run(t, r, "cmd rooms"); err != nil {
		t.Fatal(err)
	}
	if len(*lines) != 4 {
		t.Fatalf("lines = %v", *lines)
	}
	if !strings.HasPrefix((*lines)[0], "* main") {
		t.Errorf("current room not marked: %q", (*lines)[0])
	}
}

func TestTourCommand(t *testing.T) {
	r, m, _, _ := setup()
	if err := run(t, r, "cmd tour start"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, r, "cmd tour stop"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, r, "cmd tour pause"); err == nil {
		t.Fatal("unknown action accepted")
	}
	if len(m.queue) != 2 || m.queue[0].Kind != museum.StartTourCommand || m.queue[1].Kind != museum.StopTourCommand {
		t.Fatalf("queue = %+v", m.queue)
	}
}

func TestOverlayToggles(t *testing.T) {
	r, _, ov, _ := setup()
	if err := run(t, r, "cmd fps --show"); err != nil {
		t.Fatal(err)
	}
	if !ov.FPS {
		t.Fatal("fps not shown")
	}
	if err := run(t, r, "cmd fps --hide"); err != nil {
		t.Fatal(err)
	}
	if ov.FPS {
		t.Fatal("fps not hidden")
	}
	if err := run(t, r, "cmd minimap --show"); err != nil {
		t.Fatal(err)
	}
	if !ov.Minimap || ov.FPS {
		t.Fatalf("overlays = %+v", *ov)
	}
	if err := run(t, r, "cmd minimap --sideways"); err == nil {
		t.Fatal("unknown flag accepted")
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	r, _, _, lines := setup()
	if err := run(t, r, "cmd help"); err != nil {
		t.Fatal(err)
	}
	if len(*lines) != len(r.Names()) {
		t.Fatalf("help printed %d lines for %d commands", len(*lines), len(r.Names()))
	}
}
