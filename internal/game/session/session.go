// Package session runs the player-facing command interpreter over the tile
// world and the player profile.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/cory-johannsen/cogworld/internal/game/command"
	"github.com/cory-johannsen/cogworld/internal/game/player"
	"github.com/cory-johannsen/cogworld/internal/game/world"
	"github.com/cory-johannsen/cogworld/internal/observability"
)

// WelcomeLines open every session log.
var WelcomeLines = []string{
	"Welcome to Cog World.",
	"Type 'look' to inspect the room.",
	"Type n/s/e/w/ne/nw/se/sw to move.",
	"You can 'look trunk' to peek inside something.",
	"Use 'get <item>' to pick something up.",
}

// Deps holds the collaborators of a Session.
type Deps struct {
	// Tiles loads the tiles the player walks through. Required.
	Tiles *world.TileStore
	// Profiles loads and saves the player profile. Required.
	Profiles *player.Store
	// Registry resolves command words; nil selects command.DefaultRegistry.
	Registry *command.Registry
	// Tracer opens one span per submitted command; nil disables tracing.
	Tracer trace.Tracer
	// Logger receives operational logs; nil discards them.
	Logger *zap.Logger
}

// Session is one player's run of the game. It owns the navigator, the
// loaded profile, and the message log. A Session is not safe for concurrent
// use; each command is fully resolved before the next is accepted.
type Session struct {
	id         uuid.UUID
	nav        *world.Navigator
	profiles   *player.Store
	profile    *player.Profile
	registry   *command.Registry
	log        *MessageLog
	tracer     trace.Tracer
	logger     *zap.Logger
	terminated bool
}

// Start loads the profile and the tile under the player and writes the
// opening narration to the log. A missing profile is created with defaults
// and written at once; an unreadable one is reported and replaced in memory.
//
// Precondition: deps.Tiles and deps.Profiles must be non-nil.
// Postcondition: Returns a ready Session. Storage failures are narrated, never returned.
func Start(ctx context.Context, deps Deps) *Session {
	s := &Session{
		id:       uuid.New(),
		profiles: deps.Profiles,
		registry: deps.Registry,
		log:      &MessageLog{},
		tracer:   deps.Tracer,
		logger:   observability.OrNop(deps.Logger),
	}
	if s.registry == nil {
		s.registry = command.DefaultRegistry()
	}
	if s.tracer == nil {
		s.tracer = noop.NewTracerProvider().Tracer(observability.TracerName)
	}
	s.logger = s.logger.With(zap.String("session", s.id.String()))

	s.log.Append(WelcomeLines...)
	s.loadProfile(ctx)

	nav, err := world.NewNavigator(ctx, deps.Tiles, s.profile.Position)
	s.logTileLoad(nav.Position(), err)
	s.nav = nav
	s.log.Append(s.describeTile()...)

	s.logger.Info("session started",
		zap.Stringer("position", s.profile.Position),
		zap.Int("inventory", s.profile.Inventory.Len()),
	)
	return s
}

func (s *Session) loadProfile(ctx context.Context) {
	p, err := s.profiles.Load(ctx)
	s.profile = p

	var corrupt *player.CorruptProfileError
	switch {
	case err == nil:
		s.log.Append(fmt.Sprintf("Player data loaded from %s.", s.profiles.Key()))
	case errors.Is(err, player.ErrProfileNotFound):
		s.logger.Info("creating default profile", zap.String("key", s.profiles.Key()))
		if err := s.profiles.Create(ctx, p); err != nil {
			s.logger.Error("writing default profile", zap.Error(err))
			s.log.Append(fmt.Sprintf("Error saving player file: %v", err))
		}
	case errors.As(err, &corrupt):
		s.log.Append(fmt.Sprintf("Error loading player file: %v", corrupt.Err))
	default:
		s.log.Append(fmt.Sprintf("Error loading player file: %v", err))
	}
}

// ID returns the session identifier used in logs and spans.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Log returns the session's message log.
func (s *Session) Log() *MessageLog {
	return s.log
}

// Terminated reports whether a quit command has ended the session.
func (s *Session) Terminated() bool {
	return s.terminated
}

// Profile returns the live player profile.
func (s *Session) Profile() *player.Profile {
	return s.profile
}

// Tile returns the tile the player is standing on.
func (s *Session) Tile() *world.Tile {
	return s.nav.Tile()
}

// DescribeCurrentTile returns the narration of the current tile without
// logging it.
func (s *Session) DescribeCurrentTile() []string {
	return s.describeTile()
}

// Submit interprets one line of input. A non-blank line is echoed to the log
// as "> line" followed by its narration.
//
// Postcondition: Returns the narration appended for this line (empty for a
// blank line) and whether the session has terminated. Submit never fails;
// every error becomes narration.
func (s *Session) Submit(ctx context.Context, line string) ([]string, bool) {
	parsed := command.Parse(line)
	if parsed.Command == "" {
		return nil, s.terminated
	}

	ctx, span := s.tracer.Start(ctx, "command.submit", trace.WithAttributes(
		attribute.String("session.id", s.id.String()),
		attribute.String("command", parsed.Command),
	))
	defer span.End()

	s.log.Append("> " + parsed.Line)
	mark := s.log.Len()

	handler := s.dispatch(ctx, parsed)

	span.SetAttributes(
		attribute.String("handler", handler),
		attribute.Bool("terminated", s.terminated),
	)
	s.logger.Debug("command dispatched",
		zap.String("command", parsed.Command),
		zap.String("handler", handler),
		zap.Bool("terminated", s.terminated),
	)
	return s.log.Since(mark), s.terminated
}

// Close persists the profile. Front ends call it when the process is
// interrupted rather than quit.
func (s *Session) Close(ctx context.Context) error {
	if err := s.profiles.Save(ctx, s.profile); err != nil {
		s.logger.Error("saving profile on close", zap.Error(err))
		return err
	}
	s.logger.Info("session closed", zap.Stringer("position", s.profile.Position))
	return nil
}

// saveProfile persists the profile and narrates any failure.
func (s *Session) saveProfile(ctx context.Context) {
	if err := s.profiles.Save(ctx, s.profile); err != nil {
		s.logger.Error("saving profile", zap.Error(err))
		trace.SpanFromContext(ctx).SetStatus(codes.Error, err.Error())
		s.log.Append(fmt.Sprintf("Error saving player file: %v", err))
	}
}

func (s *Session) logTileLoad(c world.Coord, err error) {
	var corrupt *world.CorruptTileError
	switch {
	case err == nil:
	case errors.Is(err, world.ErrTileNotFound):
		s.logger.Debug("entered unexplored tile", zap.Stringer("coord", c))
	case errors.As(err, &corrupt):
		s.logger.Warn("entered unreadable tile", zap.Stringer("coord", c), zap.Error(err))
	default:
		s.logger.Warn("tile load failed", zap.Stringer("coord", c), zap.Error(err))
	}
}
