package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	opFatal = iota
	opOutput
	opPrint
	opQuiet
	opSpin
	opStop
	opWarn
)

const hz = 10 // spins per second

type instruction struct {
	ch     chan<- struct{}
	opcode int
	s      string
	w      io.Writer
}

var chInst chan<- instruction

// init starts a goroutine that serializes all ui elements so that the
// terminal's output makes sense. Everything goes to standard error so that
// standard output is left for the actual results of a command.
func init() {
	ch := make(chan instruction)
	chInst = ch
	go func(ch <-chan instruction) {
		var w io.Writer = os.Stderr
		dots, s, spinner := "", "", ""
		quiet := false
		tick := time.Tick(time.Second / hz)
		ticks := 1
		for {
			isTerminal, width := terminal(w)

			select {

			case inst := <-ch:
				switch inst.opcode {

				case opFatal:
					if spinner != "" {
						fmt.Fprintln(w)
						dots, s, spinner = "", "", ""
					}
					fmt.Fprintln(w, inst.s)

				case opOutput:
					w = inst.w

				case opPrint, opWarn:
					if quiet && inst.opcode == opPrint {
						break
					}

					// Print called between Spin and Stop
					// demands special consideration.
					if spinner != "" {
						if isTerminal {
							fmt.Fprint(w, "\r", s, " ", dots, ". (to be continued)\n")
						} else {
							fmt.Fprintln(w, " (to be continued)")
						}
						dots, s = "", "(continuing)"
					}

					fmt.Fprintln(w, inst.s)

					// Per above, indicate that the spinning is resuming.
					if spinner != "" {
						fmt.Fprint(w, "(continuing)")
					}

				case opQuiet:
					quiet = inst.s != "false"

				case opSpin:
					if quiet {
						break
					}

					// The last line of output on the terminal can't wrap or
					// carriage returns will make a mess of things.
					var i int
					if isTerminal {
						i = len(inst.s) - len(inst.s)%width
						if i > 0 {
							fmt.Fprintln(w, inst.s[:i])
						}
					}
					s, spinner = inst.s[i:], "-"
					fmt.Fprint(w, s, " ", dots, spinner)

				case opStop:
					if quiet {
						break
					}

					// No carriage returns if the output is not a terminal.
					if !isTerminal {
						fmt.Fprint(w, " ", strings.TrimSuffix(inst.s, "\n"), "\n")
					} else {
						fmt.Fprint(w, "\r", s, " ", dots, ". ", strings.TrimSuffix(inst.s, "\n"), "\n")
					}
					dots, s, spinner = "", "", ""

				}
				inst.ch <- struct{}{}

			case <-tick:

				// No carriage returns if the output is not a terminal.
				if !isTerminal || quiet {
					continue
				}

				if ticks%(2*hz) == 0 {
					dots = dots + "."
				}
				if spinner != "" {

					// If the spinner is about to wrap, output a newline and
					// align it to continue below.
					if len(fmt.Sprint("\r", s, " ", dots)) > width {
						fmt.Fprint(w, "\r", s, " ", dots, "\n")
						dots, s = "", strings.Repeat(" ", len(s))
					}

					fmt.Fprint(w, "\r", s, " ", dots, spinner)
				}
				switch spinner {
				case "-":
					spinner = "\\"
				case "\\":
					spinner = "|"
				case "|":
					spinner = "/"
				case "/":
					spinner = "-"
				}

				ticks = (ticks + 1) % (2 * hz)

			}
		}
	}(ch)
}

// op sends an instruction to the ui goroutine and waits for it to be
// carried out. Fatal instructions exit the program once they're printed.
func op(opcode int, s string) {
	ch := make(chan struct{})
	chInst <- instruction{ch: ch, opcode: opcode, s: s}
	<-ch
	if opcode == opFatal {
		os.Exit(1)
	}
}

func terminal(w io.Writer) (isTerminal bool, width int) {
	width = 80
	f, ok := w.(*os.File)
	if !ok {
		return
	}
	fd := int(f.Fd())
	if isTerminal = term.IsTerminal(fd); isTerminal {
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			width = cols
		}
	}
	return
}
