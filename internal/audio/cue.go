package audio

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Cue identifies an end-of-phase sound.
type Cue int

const (
	FocusEnd Cue = iota
	BreakEnd
)

func (c Cue) String() string {
	if c == BreakEnd {
		return "break-end"
	}
	return "focus-end"
}

// ErrClosed is returned by Play after Close.
var ErrClosed = errors.New("cue player closed")

// Player plays cues without blocking the caller.
type Player interface {
	Play(c Cue) error
	Close() error
}

// CommandPlayer runs an external player (paplay, afplay, mpv ...) on the
// cue file. Processes are reaped in the background; Close kills whatever is
// still playing.
type CommandPlayer struct {
	Command string
	Files   map[Cue]string

	mu      sync.Mutex
	running map[*exec.Cmd]struct{}
	closed  bool
}

// NewCommandPlayer builds a player from a command line such as
// "mpv --no-video".
func NewCommandPlayer(command string, files map[Cue]string) *CommandPlayer {
	return &CommandPlayer{
		Command: command,
		Files:   files,
		running: make(map[*exec.Cmd]struct{}),
	}
}

func (p *CommandPlayer) Play(c Cue) error {
	file, ok := p.Files[c]
	if !ok || file == "" {
		return fmt.Errorf("no file configured for %s cue", c)
	}
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("cue file %s: %w", file, err)
	}
	fields := strings.Fields(p.Command)
	if len(fields) == 0 {
		return fmt.Errorf("no cue command configured")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	cmd := exec.Command(fields[0], append(fields[1:], file)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", fields[0], err)
	}
	if p.running == nil {
		p.running = make(map[*exec.Cmd]struct{})
	}
	p.running[cmd] = struct{}{}

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("cue %s: %v", c, err)
		}
		p.mu.Lock()
		delete(p.running, cmd)
		p.mu.Unlock()
	}()
	return nil
}

// Close kills in-flight players and rejects further cues.
func (p *CommandPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for cmd := range p.running {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}
	return nil
}

// BellPlayer rings the terminal bell for every cue.
type BellPlayer struct {
	W io.Writer
}

func (b BellPlayer) Play(Cue) error {
	if b.W == nil {
		return nil
	}
	_, err := io.WriteString(b.W, "\a")
	return err
}

func (BellPlayer) Close() error { return nil }

// Open picks a CommandPlayer when a command is configured and a BellPlayer
// on w otherwise.
func Open(command, focusFile, breakFile string, w io.Writer) Player {
	if strings.TrimSpace(command) == "" {
		return BellPlayer{W: w}
	}
	return NewCommandPlayer(command, map[Cue]string{
		FocusEnd: focusFile,
		BreakEnd: breakFile,
	})
}
