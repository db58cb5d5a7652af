// Package store persists game snapshots to a SQL database. Each save is
// an immutable row holding the player, quest progress, global quest
// state, and faction reputation as JSON documents; loading a slot
// returns its most recent row.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/cjnemes/sympathetic-resonance/internal/faction"
	"github.com/cjnemes/sympathetic-resonance/internal/logger"
	"github.com/cjnemes/sympathetic-resonance/internal/player"
	"github.com/cjnemes/sympathetic-resonance/internal/quest"
)

// ErrNoSave is returned when a slot has no saves.
var ErrNoSave = errors.New("no save found")

// SaveData is one complete game snapshot.
type SaveData struct {
	Player     *player.Player
	Progress   map[string]*quest.Progress
	Global     *quest.GlobalState
	Reputation *faction.System
}

// SaveStore writes and reads save rows through a dialect-specific backend.
type SaveStore struct {
	db      *sqlx.DB
	dialect Dialect
}

// Open connects to the save database and ensures the schema exists.
func Open(driver DialectType, dsn string) (*SaveStore, error) {
	dialect := NewDialect(driver)

	db, err := sqlx.Connect(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open save database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init statement failed: %w", err)
		}
	}
	for _, stmt := range dialect.SchemaStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("schema statement failed: %w", err)
		}
	}

	logger.Info("Save store ready", "driver", dialect.DriverName())
	return &SaveStore{db: db, dialect: dialect}, nil
}

// Save writes a new snapshot row into the slot and returns its ID.
func (s *SaveStore) Save(slot string, data *SaveData) (string, error) {
	playerJSON, err := json.Marshal(data.Player)
	if err != nil {
		return "", fmt.Errorf("failed to encode player: %w", err)
	}
	progressJSON, err := json.Marshal(data.Progress)
	if err != nil {
		return "", fmt.Errorf("failed to encode quest progress: %w", err)
	}
	globalJSON, err := json.Marshal(data.Global)
	if err != nil {
		return "", fmt.Errorf("failed to encode global state: %w", err)
	}
	reputationJSON, err := json.Marshal(data.Reputation)
	if err != nil {
		return "", fmt.Errorf("failed to encode reputation: %w", err)
	}

	id := uuid.New().String()
	query := fmt.Sprintf(
		`INSERT INTO saves (id, slot, created_at, player, progress, global, reputation)
		 VALUES (%s, %s, %s, %s, %s, %s, %s)`,
		s.dialect.Placeholder(1), s.dialect.Placeholder(2), s.dialect.Placeholder(3),
		s.dialect.Placeholder(4), s.dialect.Placeholder(5), s.dialect.Placeholder(6),
		s.dialect.Placeholder(7),
	)
	_, err = s.db.Exec(query, id, slot, time.Now().UTC(),
		string(playerJSON), string(progressJSON), string(globalJSON), string(reputationJSON))
	if err != nil {
		return "", fmt.Errorf("failed to write save: %w", err)
	}

	logger.Info("Game saved", "slot", slot, "save_id", id)
	return id, nil
}

// Load returns the most recent snapshot in the slot.
func (s *SaveStore) Load(slot string) (*SaveData, error) {
	var row struct {
		Player     string `db:"player"`
		Progress   string `db:"progress"`
		Global     string `db:"global"`
		Reputation string `db:"reputation"`
	}

	query := fmt.Sprintf(
		`SELECT player, progress, global, reputation FROM saves
		 WHERE slot = %s ORDER BY created_at DESC, id DESC LIMIT 1`,
		s.dialect.Placeholder(1),
	)
	if err := s.db.Get(&row, query, slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slot %q: %w", slot, ErrNoSave)
		}
		return nil, fmt.Errorf("failed to read save: %w", err)
	}

	data := &SaveData{}
	if err := json.Unmarshal([]byte(row.Player), &data.Player); err != nil {
		return nil, fmt.Errorf("failed to decode player: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Progress), &data.Progress); err != nil {
		return nil, fmt.Errorf("failed to decode quest progress: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Global), &data.Global); err != nil {
		return nil, fmt.Errorf("failed to decode global state: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Reputation), &data.Reputation); err != nil {
		return nil, fmt.Errorf("failed to decode reputation: %w", err)
	}
	return data, nil
}

// Slots lists the slots that have at least one save, most recent first.
func (s *SaveStore) Slots() ([]string, error) {
	var slots []string
	err := s.db.Select(&slots,
		`SELECT slot FROM saves GROUP BY slot ORDER BY MAX(created_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list save slots: %w", err)
	}
	return slots, nil
}

// Close closes the underlying database.
func (s *SaveStore) Close() error {
	return s.db.Close()
}
