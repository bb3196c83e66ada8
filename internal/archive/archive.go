/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package archive keeps a per-user SQLite history of rendered games so
// past charts can be listed and their inputs inspected.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"log/slog"

	"drivechart/internal/config"
	"drivechart/internal/domain"
	applog "drivechart/internal/log"
	"drivechart/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	FileName = "archive.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump this when you
	// perform breaking schema changes and add migrations.
	schemaVersion = 1
)

// DefaultPath places the archive next to the user config file.
func DefaultPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Archive wraps the database handle.
type Archive struct {
	db   *sql.DB
	path string
}

// Open creates or opens the archive database at path, enables WAL mode,
// and ensures the schema exists.
func Open(path string) (*Archive, error) {
	l := applog.WithOperation(applog.WithComponent("archive"), "open").With(
		slog.String("path", path),
	)
	if path == "" {
		return nil, errors.New("archive path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		l.Error("create archive dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("archive ready")
	return &Archive{db: db, path: path}, nil
}

// Close releases the database handle.
func (a *Archive) Close() error { return a.db.Close() }

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS games (
			game_id     INTEGER PRIMARY KEY,
			road        TEXT NOT NULL,
			home        TEXT NOT NULL,
			drive_count INTEGER NOT NULL,
			output_path TEXT,
			created_at  TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_teams ON games(road, home);`,

		`CREATE TABLE IF NOT EXISTS drives (
			drive_id  INTEGER PRIMARY KEY,
			game_id   INTEGER NOT NULL,
			seq       INTEGER NOT NULL,
			team      TEXT    NOT NULL,
			quarter   INTEGER NOT NULL,
			clock     TEXT    NOT NULL,
			start_yd  INTEGER NOT NULL,
			end_yd    INTEGER NOT NULL,
			plays     INTEGER NOT NULL,
			duration  TEXT    NOT NULL,
			net_yards INTEGER NOT NULL,
			result    TEXT    NOT NULL,
			note      TEXT,
			FOREIGN KEY(game_id) REFERENCES games(game_id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_drives_game ON drives(game_id, seq);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Record stores a rendered game and its merged drives. outputPath may be
// empty when only the text chart was produced.
func (a *Archive) Record(ctx context.Context, g *domain.Game, outputPath string) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.ExecContext(ctx,
		`INSERT INTO games(road, home, drive_count, output_path, created_at) VALUES(?,?,?,?,?)`,
		g.Road.Abbrev, g.Home.Abbrev, len(g.Drives), outputPath, now)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert game: %w", err)
	}
	gameID, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("game id: %w", err)
	}
	ins, err := tx.PrepareContext(ctx,
		`INSERT INTO drives(game_id, seq, team, quarter, clock, start_yd, end_yd, plays, duration, net_yards, result, note)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer ins.Close()
	for i, d := range g.Drives {
		if _, err := ins.ExecContext(ctx, gameID, i, d.Team, d.Quarter, d.Start.String(),
			d.StartYd, d.EndYd, d.Plays, d.Duration.String(), d.NetYards, d.Result, d.Note); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert drive: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return gameID, nil
}

// GameRecord is one archived game.
type GameRecord struct {
	ID         int64
	Road       string
	Home       string
	DriveCount int
	OutputPath string
	CreatedAt  string
}

// List returns all archived games, newest first.
func (a *Archive) List(ctx context.Context) ([]GameRecord, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT game_id, road, home, drive_count, COALESCE(output_path, ''), created_at
		 FROM games ORDER BY created_at DESC, game_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()
	var out []GameRecord
	for rows.Next() {
		var r GameRecord
		if err := rows.Scan(&r.ID, &r.Road, &r.Home, &r.DriveCount, &r.OutputPath, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}
	return out, nil
}

// Drives returns the stored drives for one archived game in merge order.
func (a *Archive) Drives(ctx context.Context, gameID int64) ([]domain.Drive, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT team, quarter, clock, start_yd, end_yd, plays, duration, net_yards, result, COALESCE(note, '')
		 FROM drives WHERE game_id=? ORDER BY seq`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query drives: %w", err)
	}
	defer rows.Close()
	var out []domain.Drive
	for rows.Next() {
		var d domain.Drive
		var clock, duration string
		if err := rows.Scan(&d.Team, &d.Quarter, &clock, &d.StartYd, &d.EndYd,
			&d.Plays, &duration, &d.NetYards, &d.Result, &d.Note); err != nil {
			return nil, fmt.Errorf("scan drive: %w", err)
		}
		if d.Start, err = domain.ParseClock(clock); err != nil {
			return nil, fmt.Errorf("drive clock: %w", err)
		}
		if d.Duration, err = domain.ParseClock(duration); err != nil {
			return nil, fmt.Errorf("drive duration: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drives: %w", err)
	}
	return out, nil
}
