// Package interactive provides the interactive command-line interface
// for streampair.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/streampair/streampair-go/cmd/streampair/display"
	"github.com/streampair/streampair-go/pkg/host"
	"github.com/streampair/streampair-go/pkg/pairing"
)

// ScanFunc browses for hosts and records them in the host store.
type ScanFunc func(ctx context.Context) ([]*host.Host, error)

// Config wires the shell to the client's components.
type Config struct {
	Session *pairing.Session
	Hosts   host.Store

	// Scan runs discovery. Nil disables the discover command.
	Scan ScanFunc
}

// Shell handles interactive mode.
type Shell struct {
	config Config
	rl     *readline.Instance
	out    io.Writer
}

// New creates a shell reading from the terminal.
func New(config Config) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "streampair> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(config, rl.Stdout())
	s.rl = rl
	return s, nil
}

func newShell(config Config, out io.Writer) *Shell {
	s := &Shell{config: config, out: out}
	config.Session.OnEvent(s.handleEvent)
	return s
}

// Run starts the interactive command loop. It returns when the user quits
// or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}

		if !s.Execute(ctx, line) {
			return
		}
	}
}

// Execute runs one command line. It returns false when the shell should
// exit.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "hosts", "h":
		display.HostTable(s.out, s.config.Hosts.List())

	case "show":
		s.cmdShow(args)

	case "discover", "d":
		s.cmdDiscover(ctx)

	case "pair", "p":
		s.cmdPair(ctx, args)

	case "cancel":
		s.cmdCancel()

	case "status", "s":
		s.cmdStatus()

	case "unpair":
		s.cmdUnpair(args)

	case "quit", "exit", "q":
		_ = s.config.Session.Cancel()
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
streampair Commands:
  Hosts:
    hosts                          - List known hosts
    show <host-id>                 - Show host details
    discover                       - Browse the network for hosts
    unpair <host-id>               - Forget a host's pairing

  Pairing:
    pair <host-id> <pin> [phrase]  - Start OTP pairing
    cancel                         - Cancel the active pairing attempt
    status                         - Show pairing state

  General:
    help                           - Show this help
    quit                           - Exit`)
}

func (s *Shell) handleEvent(ev pairing.Event) {
	display.PairingEvent(s.out, ev)
	if ev.Type == pairing.EventFailed && ev.Err != nil {
		fmt.Fprintf(s.out, "  Error: %v\n", ev.Err)
	}
}

func (s *Shell) cmdShow(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: show <host-id>")
		return
	}
	h, err := s.config.Hosts.Get(strings.ToLower(args[0]))
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	display.HostDetails(s.out, h)
}

func (s *Shell) cmdDiscover(ctx context.Context) {
	if s.config.Scan == nil {
		fmt.Fprintln(s.out, "Discovery is not available.")
		return
	}
	fmt.Fprintln(s.out, "Browsing for hosts...")
	found, err := s.config.Scan(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Found %d host(s).\n", len(found))
	display.HostTable(s.out, found)
}

func (s *Shell) cmdPair(ctx context.Context, args []string) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(s.out, "Usage: pair <host-id> <pin> [passphrase]")
		return
	}
	var passphrase string
	if len(args) == 3 {
		passphrase = args[2]
	}

	id, err := s.config.Session.StartPairing(ctx, strings.ToLower(args[0]), args[1], passphrase)
	if err != nil {
		fmt.Fprintf(s.out, "Cannot start pairing: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Pairing attempt %s started.\n", id)
}

func (s *Shell) cmdCancel() {
	if err := s.config.Session.Cancel(); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdStatus() {
	sess := s.config.Session
	fmt.Fprintf(s.out, "State: %s\n", sess.State())
	if id := sess.CurrentAttempt(); id != "" {
		fmt.Fprintf(s.out, "Attempt: %s\n", id)
		fmt.Fprintf(s.out, "Time remaining: %s\n", sess.TimeRemaining().Round(100*time.Millisecond))
	}
}

func (s *Shell) cmdUnpair(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: unpair <host-id>")
		return
	}
	id := strings.ToLower(args[0])
	if err := s.config.Hosts.Unpair(id); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Unpaired %s.\n", id)
}
