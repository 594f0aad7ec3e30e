package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/imjang/internal/config"
	"github.com/at-ishikawa/imjang/internal/database"
	"github.com/at-ishikawa/imjang/internal/note"
	"github.com/at-ishikawa/imjang/internal/place"
	"github.com/at-ishikawa/imjang/internal/questionnaire"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// store is the database and the services built on it.
type store struct {
	db        *sqlx.DB
	templates *questionnaire.Service
	places    *place.Service
	notes     *note.Service
}

func openStore(cfg *config.Config) (*store, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	templates := questionnaire.NewService(questionnaire.NewDBTemplateRepository(db))
	places := place.NewService(place.NewDBRepository(db))
	return &store{
		db:        db,
		templates: templates,
		places:    places,
		notes:     note.NewService(note.NewDBRepository(db), places, templates),
	}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

// withStore loads the configuration, opens the store for fn and closes it afterwards.
func withStore(fn func(s *store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(s)
}

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("--user is required")
	}
	return userID, nil
}
