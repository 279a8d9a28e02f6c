package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/game/session"
	"github.com/cory-johannsen/cogworld/internal/observability"
)

// Player drives a game session from a terminal: it prints narration, shows
// the status line, and submits each typed line until the player quits or
// input ends.
type Player struct {
	term   *Term
	sess   *session.Session
	logger *zap.Logger

	mu     sync.Mutex
	closed bool
}

// NewPlayer binds a session to a terminal.
//
// Precondition: term and sess must be non-nil.
func NewPlayer(term *Term, sess *session.Session, logger *zap.Logger) *Player {
	return &Player{term: term, sess: sess, logger: observability.OrNop(logger)}
}

// Run prints the opening narration and reads commands until quit, end of
// input, or cancellation of ctx.
//
// Postcondition: Returns nil on quit, end of input, or cancellation; a read or
// write failure is returned wrapped.
func (p *Player) Run(ctx context.Context) error {
	if err := p.term.WriteLines(StyleLines(p.term.Palette(), p.sess.Log().Lines())); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := p.term.WriteLine(p.term.Palette().Paint(BrightBlack, p.hud())); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if err := p.term.Prompt("> "); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		line, err := p.term.ReadLine()
		if errors.Is(err, io.EOF) {
			_ = p.term.WriteLine("")
			p.logger.Info("input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		out, done, ok := p.submit(ctx, line)
		if !ok {
			return nil
		}
		if err := p.term.WriteLines(StyleLines(p.term.Palette(), out)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		if done {
			return nil
		}
	}
}

func (p *Player) submit(ctx context.Context, line string) ([]string, bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, true, false
	}
	out, done := p.sess.Submit(ctx, line)
	return out, done, true
}

func (p *Player) hud() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sess.PlayerState().HUD()
}

// Close saves the profile unless the player already quit, and stops further
// commands from being accepted. It is safe to call more than once and from a
// goroutine other than the one running Run.
func (p *Player) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if p.sess.Terminated() {
		return nil
	}
	return p.sess.Close(ctx)
}
