// Package app wires configuration, logging, translations and transcripts
// into ready-to-play sessions of the sample story.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/dungeon/internal/config"
	"github.com/jwebster45206/dungeon/internal/logger"
	"github.com/jwebster45206/dungeon/internal/transcript"
	"github.com/jwebster45206/dungeon/pkg/l10n"
	"github.com/jwebster45206/dungeon/pkg/scenario"
	"github.com/jwebster45206/dungeon/pkg/session"
	"github.com/jwebster45206/dungeon/pkg/story/goldseekers"
)

// App is everything a driver needs to start sessions.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Translator l10n.Translator
	Store      transcript.Store

	closeLog func() error
}

// New loads configuration from the environment and args and prepares the
// shared services.
func New(ctx context.Context, args []string) (*App, error) {
	cfg := config.Load(args)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig is New for an already loaded configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	log, closeLog, err := logger.Setup(cfg)
	if err != nil {
		return nil, err
	}

	bundle, err := goldseekers.Bundle()
	if err != nil {
		_ = closeLog()
		return nil, fmt.Errorf("failed to load translations: %w", err)
	}
	tr, err := bundle.Translator(cfg.Locale)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	store, err := transcript.Open(ctx, cfg, log)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	log.Info("Dungeon ready",
		"environment", cfg.Environment,
		"language", tr.Language().String(),
		"encoding", cfg.Encoding,
		"transcript", cfg.Transcript)

	return &App{
		Config:     cfg,
		Logger:     log,
		Translator: tr,
		Store:      store,
		closeLog:   closeLog,
	}, nil
}

// NewSession builds a fresh map and puts a new player named name into it.
// A blank name becomes the translated default.
func (a *App) NewSession(name string) (*session.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = a.Translator.Text(scenario.DefaultPlayerName)
	}

	m, err := goldseekers.New(
		goldseekers.WithTranslator(a.Translator),
		goldseekers.WithLogger(a.Logger),
	)
	if err != nil {
		return nil, err
	}

	p, err := goldseekers.NewPlayer(name)
	if err != nil {
		return nil, err
	}
	if err := p.EnterMap(m); err != nil {
		return nil, err
	}

	s, err := session.New(p,
		session.WithRecorder(a.Store),
		session.WithLogger(a.Logger),
		session.WithWrap(a.Config.Wrap),
	)
	if err != nil {
		return nil, err
	}
	a.Logger.Info("Session started", "session_id", s.ID().String(), "player", name)
	return s, nil
}

// Close releases the transcript store and the log file.
func (a *App) Close() error {
	storeErr := a.Store.Close()
	logErr := a.closeLog()
	if storeErr != nil {
		return storeErr
	}
	return logErr
}
