package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/howeyc/fsnotify"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/timewinder-dev/tshirts/history"
	"github.com/timewinder-dev/tshirts/interp"
	"github.com/timewinder-dev/tshirts/model"
	"github.com/timewinder-dev/tshirts/programs"
	"github.com/timewinder-dev/tshirts/vm"
)

var watchFlag bool

var debugCmd = &cobra.Command{
	Use:   "debug FILE",
	Short: "Step through a program interactively, forwards and backwards",
	Long: `Step through a program interactively.

Keys: Right advances one step, Left steps back one, Home returns to step 0.
Commands: n [N] (advance), b (back), g N (goto step), r (reset),
verify, q (quit).`,
	Args: cobra.ExactArgs(1),
	Run:  debugCommand,
}

func init() {
	debugCmd.Flags().BoolVar(&watchFlag, "watch", false, "Reload the listing when it changes, keeping the current step")
}

type debugger struct {
	spec *model.Spec
	ctl  *history.Controller

	stacks *tview.TextView
	log    *tview.TextView
	state  *tview.TextView
	input  *tview.InputField
	cols   *tview.Flex
	rows   *tview.Flex
	app    *tview.Application
}

func debugCommand(cmd *cobra.Command, args []string) {
	spec, err := model.LoadSpec(args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load run file")
	}
	spec.Trace.Enabled = true
	prog, err := spec.LoadProgram()
	if err != nil {
		log.Fatal().Err(err).Msg("Couldn't load program")
	}
	d := newDebugger(spec)
	if err := d.load(prog, 0); err != nil {
		log.Fatal().Err(err).Msg("Couldn't build machine")
	}

	prev := log.Logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: d.log, NoColor: true})
	defer func() { log.Logger = prev }()

	if watchFlag {
		if _, ok := programs.IsSample(spec.Machine.Program); ok {
			log.Warn().Msg("debug: samples are embedded, --watch ignored")
		} else {
			stop, err := d.watch(spec.Machine.Program)
			if err != nil {
				log.Fatal().Err(err).Msg("Couldn't watch listing")
			}
			defer stop()
		}
	}

	if err := d.app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "debug: %v\n", err)
		os.Exit(1)
	}
}

func newDebugger(spec *model.Spec) *debugger {
	d := &debugger{
		spec: spec,
		stacks: tview.NewTextView().
			SetDynamicColors(true).
			SetWrap(false),
		log: tview.NewTextView().
			SetMaxLines(1000),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.stacks.SetBorder(true).SetTitle(" stacks ")
	d.log.SetBorder(true).SetTitle(" trace ")
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.stacks, 0, 2, false).
		AddItem(d.log, 0, 1, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 2, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if d.input.GetText() != "" {
			return ev
		}
		switch ev.Key() {
		case tcell.KeyRight:
			d.advance(1)
		case tcell.KeyLeft:
			d.seek(d.ctl.CurrentStep() - 1)
		case tcell.KeyHome:
			d.seek(0)
		default:
			return ev
		}
		return nil
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := strings.TrimSpace(d.input.GetText())
		d.input.SetText("")
		d.command(cmd)
	})
	return d
}

func (d *debugger) command(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "", "n", "next":
		n := 1
		if arg != "" {
			v, err := strconv.Atoi(arg)
			if err != nil || v < 1 {
				log.Warn().Msgf("invalid count %q", arg)
				return
			}
			n = v
		}
		d.advance(n)
	case "b", "back":
		d.seek(d.ctl.CurrentStep() - 1)
	case "g", "goto":
		v, err := strconv.Atoi(arg)
		if err != nil {
			log.Warn().Msgf("invalid step %q", arg)
			return
		}
		d.seek(v)
	case "r", "reset":
		d.seek(0)
	case "verify":
		ok, err := d.ctl.Verify()
		switch {
		case err != nil:
			log.Warn().Err(err).Msg("verify")
		case ok:
			log.Info().Int("step", d.ctl.CurrentStep()).Msg("verify: replay matches live state")
		default:
			log.Error().Int("step", d.ctl.CurrentStep()).Msg("verify: replay diverged from live state")
		}
	case "q", "quit", "exit":
		d.app.Stop()
	default:
		log.Warn().Msgf("unknown command %q", cmd)
	}
}

func (d *debugger) advance(n int) {
	for i := 0; i < n; i++ {
		_, halted, err := d.ctl.Advance()
		if err != nil {
			log.Warn().Err(err).Msg("advance")
			break
		}
		if halted {
			break
		}
	}
	d.render()
}

func (d *debugger) seek(step int) {
	if _, _, err := d.ctl.Seek(step); err != nil {
		log.Warn().Err(err).Int("target", step).Msg("seek")
	}
	d.render()
}

// load replaces the controller with one for prog and moves it to step.
func (d *debugger) load(prog *vm.Program, step int) error {
	ctl, err := history.New(prog, d.spec.HistoryConfig(d))
	if err != nil {
		return err
	}
	d.ctl = ctl
	if step > 0 {
		if _, _, err := ctl.Seek(step); err != nil {
			log.Warn().Err(err).Int("target", step).Msg("seek after reload")
		}
	}
	d.render()
	return nil
}

func (d *debugger) TraceStep(step int, inst vm.Instruction) {
	fmt.Fprintf(d.log, "[%4d] %s %d (%s)\n", step, inst.Code, inst.Arg, inst.Arg.Color())
}

func (d *debugger) render() {
	s := d.ctl.State()
	var b strings.Builder
	for i := range s.Stacks {
		st := s.Stacks[i]
		fmt.Fprintf(&b, "[::b]%d %-9s[::-] ", i, interp.StackName(i))
		if i == interp.ConstStack {
			fmt.Fprintf(&b, "%d whites\n", st.Len())
			continue
		}
		for _, v := range st {
			fg := "#ffffff"
			if v == vm.White || v == vm.Yellow {
				fg = "#000000"
			}
			fmt.Fprintf(&b, "[%s:%s] %d [-:-]", fg, model.Hex(v), uint8(v))
		}
		b.WriteByte('\n')
	}
	d.stacks.SetText(b.String())

	status := fmt.Sprintf("step %d [%s]  %s", d.ctl.CurrentStep(), d.ctl.Phase(), d.ctl.Program().Name)
	if next, ok := s.NextInstruction(); ok && d.ctl.Phase() != history.Halted {
		status += "  next: " + next.String()
	}
	if err := d.ctl.Err(); err != nil {
		status += "\n" + err.Error()
		d.state.SetBackgroundColor(tcell.ColorDarkRed)
	} else if d.ctl.Phase() == history.Halted {
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	} else {
		d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	}
	d.state.SetText(status)
}

// watch reloads the listing whenever it changes on disk and returns the
// machine to the step it was showing.
func (d *debugger) watch(file string) (func(), error) {
	file = filepath.Clean(file)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(filepath.Dir(file)); err != nil {
		watcher.Close()
		return nil, err
	}
	done := make(chan struct{})
	go func() {
		var reload <-chan time.Time
		for {
			select {
			case <-done:
				return
			case <-reload:
				reload = nil
				prog, err := vm.CompilePath(file)
				if err != nil {
					log.Warn().Err(err).Msg("watch: reload failed")
					break
				}
				d.app.QueueUpdateDraw(func() {
					step := d.ctl.CurrentStep()
					if err := d.load(prog, step); err != nil {
						log.Warn().Err(err).Msg("watch: rebuild failed")
						return
					}
					log.Info().Str("program", prog.Name).Int("step", step).Msg("watch: reloaded")
				})
			case ev := <-watcher.Event:
				if filepath.Clean(ev.Name) == file && !ev.IsAttrib() {
					reload = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Warn().Err(err).Msg("watch: watcher")
			}
		}
	}()
	return func() {
		close(done)
		watcher.Close()
	}, nil
}
