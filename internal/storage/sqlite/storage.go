// Package sqlite provides a SQLite-backed player storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcoot/playeradmin/internal/model"
	"github.com/mcoot/playeradmin/internal/storage"
	"github.com/mcoot/playeradmin/internal/storage/sqlite/migrations"
)

// Storage persists players in a SQLite database file
type Storage struct {
	db *sql.DB
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

const playerColumns = `id, name, title, race, profession, birthday, banned, experience, level, until_next_level`

// Open opens (creating if needed) the database at path and applies migrations
func Open(ctx context.Context, path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database handle
func (s *Storage) Close() error {
	return s.db.Close()
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	args := []any{
		player.Name,
		player.Title,
		string(player.Race),
		string(player.Profession),
		toMillis(player.Birthday),
		player.Banned,
		player.Experience,
		player.Level,
		player.UntilNextLevel,
	}

	if player.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO players (name, title, race, profession, birthday, banned, experience, level, until_next_level)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			args...,
		)
		if err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read player id: %w", err)
		}
		player.ID = model.PlayerID(id)
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   title = excluded.title,
		   race = excluded.race,
		   profession = excluded.profession,
		   birthday = excluded.birthday,
		   banned = excluded.banned,
		   experience = excluded.experience,
		   level = excluded.level,
		   until_next_level = excluded.until_next_level`,
		append([]any{int64(player.ID)}, args...)...,
	)
	if err != nil {
		return fmt.Errorf("upsert player %d: %w", player.ID, err)
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, int64(id))
	player, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, int64(id))
	if err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	if affected == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+playerColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	players := []*model.Player{}
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*model.Player, error) {
	var (
		p          model.Player
		id         int64
		race       string
		profession string
		birthday   int64
		banned     int64
	)
	if err := row.Scan(&id, &p.Name, &p.Title, &race, &profession, &birthday, &banned,
		&p.Experience, &p.Level, &p.UntilNextLevel); err != nil {
		return nil, err
	}
	p.ID = model.PlayerID(id)
	p.Race = model.Race(race)
	p.Profession = model.Profession(profession)
	p.Birthday = fromMillis(birthday)
	p.Banned = banned != 0
	return &p, nil
}
