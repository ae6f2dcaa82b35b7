package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"storynav/common"
	"storynav/layout"
	"storynav/navigation"
	"storynav/pages"
)

var errNotStarted = errors.New("story is not started")

// RunScript executes navigation commands, one per line. Empty lines and
// lines starting with # are skipped.
func (e *Engine) RunScript(ctx context.Context, r io.Reader) error {
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := e.Exec(ctx, text); err != nil {
			return fmt.Errorf("script line %d (%s): %w", line, text, err)
		}
	}
	return sc.Err()
}

// Exec executes single command and ticks the loop until engine settles.
// Loop must not be running elsewhere.
func (e *Engine) Exec(ctx context.Context, command string) error {
	tr, err := e.Apply(ctx, command)
	if err != nil {
		return err
	}
	if err := e.Loop.Settle(ctx); err != nil {
		return err
	}
	if tr != nil {
		if err := tr.Err(); err != nil && !errors.Is(err, navigation.ErrSuperseded) {
			return err
		}
	}
	return e.Printer.Err()
}

// Apply starts command and returns transition it caused, if any. It must be
// called on the loop goroutine.
func (e *Engine) Apply(ctx context.Context, command string) (*navigation.Transition, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, nil
	}
	name, args := fields[0], fields[1:]
	e.log.Debug("Command", zap.String("name", name), zap.Strings("args", args))

	switch name {
	case "start":
		fragment := ""
		if len(args) > 0 {
			fragment = args[0]
		}
		e.Address.ReplaceFragment(fragment)
		return e.Ctl.Start(ctx, e.Address), nil

	case "next", "auto":
		if e.Ctl.Active() == nil {
			return nil, errNotStarted
		}
		return e.Ctl.Next(ctx, name == "auto"), nil

	case "prev", "previous":
		if e.Ctl.Active() == nil {
			return nil, errNotStarted
		}
		return e.Ctl.Previous(ctx), nil

	case "goto":
		if len(args) == 0 {
			return nil, errors.New("goto needs page id")
		}
		dir := common.DirectionNext
		if len(args) > 1 {
			d, err := common.ParseDirection(args[1])
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return e.Ctl.SwitchTo(ctx, args[0], dir), nil

	case "tap":
		if e.Ctl.Active() == nil {
			return nil, errNotStarted
		}
		x, width, err := ints2(args)
		if err != nil {
			return nil, fmt.Errorf("tap needs position and width: %w", err)
		}
		if layout.TapDirection(x, width, layout.IsRTL(e.Story.Lang)) == common.DirectionPrevious {
			return e.Ctl.Previous(ctx), nil
		}
		return e.Ctl.Next(ctx, false), nil

	case "insert":
		if len(args) != 2 {
			return nil, errors.New("insert needs page to insert after and ad page id")
		}
		id := e.Ctl.AddPage(&pages.Page{ID: args[1], Ad: true})
		ok := e.Ctl.InsertPage(args[0], id)
		fmt.Fprintf(e.out, "insert %s after %s: %t\n", id, args[0], ok)

	case "viewport":
		w, h, err := ints2(args)
		if err != nil {
			return nil, fmt.Errorf("viewport needs width and height: %w", err)
		}
		e.Ctl.UpdateViewport(layout.Signals{Width: w, Height: h, Bot: len(args) > 2 && args[2] == "bot"})

	case "grant":
		for _, id := range args {
			p := e.Story.Graph.Page(id)
			if p == nil {
				return nil, fmt.Errorf("%w: %q", pages.ErrUnknownPage, id)
			}
			p.AccessHidden, p.AccessProtected = false, false
		}
		e.Gate.Apply()

	case "pause", "resume":
		e.Ctl.SetPaused(name == "pause")

	case "attachment":
		if err := e.Ctl.SetAttachmentOpen(len(args) > 0 && args[0] == "open"); err != nil {
			return nil, err
		}

	case "distances":
		e.printDistances()

	case "path":
		fmt.Fprintf(e.out, "path: %s\n", strings.Join(e.Ctl.Path(), " "))

	default:
		return nil, fmt.Errorf("unknown command %q", name)
	}
	return nil, nil
}

func ints2(args []string) (int, int, error) {
	if len(args) < 2 {
		return 0, 0, errors.New("two numbers expected")
	}
	a, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func (e *Engine) printDistances() {
	res := e.Ctl.Distances()
	if res == nil {
		fmt.Fprintln(e.out, "distances: none")
		return
	}
	for d, ids := range res.ByDistance() {
		if len(ids) > 0 {
			fmt.Fprintf(e.out, "distance %d: %s\n", d, strings.Join(ids, " "))
		}
	}
}
