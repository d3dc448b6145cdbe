// Package prompts runs the interactive questions of the convert command.
// On a terminal lines are read with readline; otherwise a plain line reader
// is used so input can be piped.
package prompts

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/KirkDiggler/lss-foundry/internal/entities/dnd5e"
	"github.com/KirkDiggler/lss-foundry/internal/errors"
	"github.com/KirkDiggler/lss-foundry/internal/services/vision"
)

const divider = "============================================================"

type lineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// Prompter asks the convert questions. End of input accepts the default
// answer of every remaining question.
type Prompter struct {
	in  lineReader
	out io.Writer
}

// New creates a prompter over a plain reader
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  &plainReader{reader: bufio.NewReader(in), out: out},
		out: out,
	}
}

// NewTerminal creates a prompter bound to the process terminal
func NewTerminal() (*Prompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open terminal")
	}
	return &Prompter{
		in:  &terminalReader{rl: rl},
		out: os.Stdout,
	}, nil
}

// IsInteractiveTerminal reports whether stdin is a character device
func IsInteractiveTerminal() bool {
	st, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}

// Close releases the underlying reader
func (p *Prompter) Close() error {
	return p.in.Close()
}

func (p *Prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Prompter) header(title string) {
	p.printf("\n%s\n%s\n%s\n", divider, title, divider)
}

// ask reads one trimmed answer. ok is false at end of input.
func (p *Prompter) ask(prompt string) (answer string, ok bool, err error) {
	line, err := p.in.ReadLine(prompt)
	line = strings.TrimSpace(line)
	switch {
	case err == nil:
		return line, true, nil
	case err == io.EOF:
		return line, line != "", nil
	case err == readline.ErrInterrupt:
		return "", false, errors.New(errors.CodeCanceled, "input canceled")
	default:
		return "", false, errors.Wrap(err, "failed to read input")
	}
}

// InputPath asks for the source file path
func (p *Prompter) InputPath() (string, error) {
	answer, _, err := p.ask("\nPath to the Long Story Short JSON file: ")
	return answer, err
}

// Name asks for the character name. Empty keeps the name from the file.
func (p *Prompter) Name(fromFile string) (string, error) {
	prompt := "\nCharacter name (Enter = from file): "
	if fromFile != "" {
		prompt = fmt.Sprintf("\nCharacter name [%s]: ", fromFile)
	}
	answer, _, err := p.ask(prompt)
	return answer, err
}

// Race asks for the race. Enter keeps the race from the file, a number picks
// from the popular list and anything else is taken as typed.
func (p *Prompter) Race(fromFile string) (string, error) {
	p.header("CHARACTER RACE")
	if fromFile != "" {
		p.printf("\nRace from file: %s\n", fromFile)
	}

	popular := dnd5e.PopularRaces()
	p.printf("\nPopular races:\n")
	for i, race := range popular {
		p.printf("  %d. %s\n", i+1, race)
	}

	answer, ok, err := p.ask("\nEnter a race (or a number from the list) [Enter = from file]: ")
	if err != nil {
		return "", err
	}
	return PickRace(answer, ok, fromFile), nil
}

// PickRace interprets a race answer
func PickRace(answer string, answered bool, fromFile string) string {
	answer = strings.TrimSpace(answer)
	if !answered || answer == "" {
		return fromFile
	}

	popular := dnd5e.PopularRaces()
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(popular) {
		return popular[n-1]
	}
	return answer
}

// Vision asks whether to override the resolved vision. A nil override keeps
// the automatic result.
func (p *Prompter) Vision(auto *vision.Profile) (*vision.ManualOverride, error) {
	p.header("CHARACTER VISION")
	if auto != nil {
		p.printf("\nAutomatic vision: %s\n", auto)
		if auto.Note != "" {
			p.printf("  (%s)\n", auto.Note)
		}
	}

	p.printf("\nVision modes:\n")
	for i, mode := range dnd5e.VisionModes() {
		p.printf("  %d. %-12s default %d ft\n", i+1, mode, mode.DefaultManualRange())
	}

	var mode dnd5e.VisionMode
	for {
		answer, ok, err := p.ask("\nPick a number (1-5) [Enter = automatic]: ")
		if err != nil {
			return nil, err
		}
		if !ok || answer == "" {
			return nil, nil
		}

		n, convErr := strconv.Atoi(answer)
		if picked, found := dnd5e.VisionModeByNumber(n); convErr == nil && found {
			mode = picked
			break
		}
		p.printf("Please pick a number from 1 to 5\n")
	}

	override := &vision.ManualOverride{Mode: mode}
	if mode == dnd5e.VisionNormal {
		return override, nil
	}

	def := mode.DefaultManualRange()
	answer, _, err := p.ask(fmt.Sprintf("%s range in feet [%d]: ", mode, def))
	if err != nil {
		return nil, err
	}
	rng, ok := ParseRange(answer, def)
	if !ok {
		p.printf("Could not read %q, using %d ft\n", answer, def)
	}
	override.Range = &rng
	return override, nil
}

// ParseRange reads a range answer. Empty or unreadable answers give def; ok
// is false only for unreadable ones.
func ParseRange(answer string, def int) (int, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return def, true
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 0 {
		return def, false
	}
	return n, true
}

type plainReader struct {
	reader *bufio.Reader
	out    io.Writer
}

func (r *plainReader) ReadLine(prompt string) (string, error) {
	_, _ = io.WriteString(r.out, prompt)
	return r.reader.ReadString('\n')
}

func (r *plainReader) Close() error {
	return nil
}

type terminalReader struct {
	rl *readline.Instance
}

func (r *terminalReader) ReadLine(prompt string) (string, error) {
	trimmed := strings.TrimLeft(prompt, "\n")
	if n := len(prompt) - len(trimmed); n > 0 {
		_, _ = io.WriteString(r.rl.Stdout(), strings.Repeat("\n", n))
	}
	r.rl.SetPrompt(trimmed)
	return r.rl.Readline()
}

func (r *terminalReader) Close() error {
	return r.rl.Close()
}
