// Package sqlite provides a SQLite-backed implementation of the repository port.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/sakshi-kolawale/MoodTune/internal/core/domain"
	"github.com/sakshi-kolawale/MoodTune/internal/core/ports"
)

// Adapter implements the repository port for SQLite
type Adapter struct {
	db *sql.DB
}

var _ ports.PlaylistRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// One writer; also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Ping reports whether the database is reachable.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Playlist, error) {
	row := a.db.QueryRowContext(ctx, "SELECT id, name, mood, created_at FROM playlists WHERE id = ?", id)
	var playlist domain.Playlist
	var mood sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&playlist.ID, &playlist.Name, &mood, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Playlist{}, domain.ErrNotFound
		}
		return domain.Playlist{}, fmt.Errorf("failed to load playlist: %w", err)
	}
	playlist.Mood = mood.String
	if playlist.Mood == "" {
		playlist.Mood = domain.DefaultMood
	}
	if createdAt.Valid {
		playlist.CreatedAt = createdAt.Time.UTC()
	}
	playlist.Tracks = []domain.Track{}

	trackRows, err := a.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.artist, t.album, t.duration_ms, t.isrc, t.cover_url, t.preview_url,
			IFNULL(t.danceability, 0), IFNULL(t.energy, 0), IFNULL(t.valence, 0),
			IFNULL(t.tempo, 0), IFNULL(t.instrumentalness, 0), IFNULL(t.acousticness, 0)
		FROM tracks t
		JOIN playlist_tracks pt ON pt.track_id = t.id
		WHERE pt.playlist_id = ?
		ORDER BY pt.position ASC, pt.added_at ASC
	`, playlist.ID)
	if err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to load playlist tracks: %w", err)
	}
	defer trackRows.Close()

	for trackRows.Next() {
		track, err := scanTrack(trackRows)
		if err != nil {
			return domain.Playlist{}, err
		}
		playlist.Tracks = append(playlist.Tracks, track)
	}
	if err := trackRows.Err(); err != nil {
		return domain.Playlist{}, fmt.Errorf("failed to iterate playlist tracks: %w", err)
	}

	return playlist, nil
}

func scanTrack(rows *sql.Rows) (domain.Track, error) {
	var track domain.Track
	var album, isrc, coverURL, previewURL sql.NullString
	var duration sql.NullInt64
	if err := rows.Scan(
		&track.ID,
		&track.Title,
		&track.Artist,
		&album,
		&duration,
		&isrc,
		&coverURL,
		&previewURL,
		&track.Features.Danceability,
		&track.Features.Energy,
		&track.Features.Valence,
		&track.Features.Tempo,
		&track.Features.Instrumentalness,
		&track.Features.Acousticness,
	); err != nil {
		return domain.Track{}, fmt.Errorf("failed to scan playlist track: %w", err)
	}
	track.Album = album.String
	track.DurationMs = int(duration.Int64)
	track.ISRC = isrc.String
	track.CoverURL = coverURL.String
	track.PreviewURL = previewURL.String
	return track, nil
}

// List returns every draft, newest first.
func (a *Adapter) List(ctx context.Context) ([]domain.PlaylistSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT p.id, p.name, IFNULL(p.mood, ''), COUNT(pt.track_id)
		FROM playlists p
		LEFT JOIN playlist_tracks pt ON pt.playlist_id = p.id
		GROUP BY p.id, p.name, p.mood, p.created_at
		ORDER BY p.created_at DESC, p.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	summaries := []domain.PlaylistSummary{}
	for rows.Next() {
		var s domain.PlaylistSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Mood, &s.TrackCount); err != nil {
			return nil, fmt.Errorf("failed to scan playlist summary: %w", err)
		}
		if s.Mood == "" {
			s.Mood = domain.DefaultMood
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playlists: %w", err)
	}
	return summaries, nil
}

func (a *Adapter) UpdateTrackFeatures(ctx context.Context, trackID string, features domain.AudioFeatures) error {
	query := `
		UPDATE tracks
		SET
			danceability = ?,
			energy = ?,
			valence = ?,
			tempo = ?,
			instrumentalness = ?,
			acousticness = ?
		WHERE id = ?
	`
	res, err := a.db.ExecContext(
		ctx,
		query,
		features.Danceability,
		features.Energy,
		features.Valence,
		features.Tempo,
		features.Instrumentalness,
		features.Acousticness,
		trackID,
	)
	if err != nil {
		return fmt.Errorf("failed to update track features: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update track features for %s: %w", trackID, domain.ErrNotFound)
	}

	return nil
}

func (a *Adapter) Save(ctx context.Context, p domain.Playlist) error {
	// 1. Start Transaction
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	// 2. Upsert Playlist (Create if new, Update name and mood if exists)
	queryPlaylist := `
		INSERT INTO playlists (id, name, mood, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, mood=excluded.mood;
	`
	if _, err := tx.ExecContext(ctx, queryPlaylist, p.ID, p.Name, p.Mood, createdAt); err != nil {
		return fmt.Errorf("failed to save playlist metadata: %w", err)
	}

	// 3. Reset Links: tracks themselves stay in the shared table
	if _, err := tx.ExecContext(ctx, "DELETE FROM playlist_tracks WHERE playlist_id = ?", p.ID); err != nil {
		return fmt.Errorf("failed to clear old tracks: %w", err)
	}

	// 4. Upsert Tracks & Re-link. Features already backfilled are kept when
	// the incoming track has none.
	stmtTrack, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (
			id, title, artist, album, duration_ms, isrc, cover_url, preview_url,
			danceability, energy, valence, tempo, instrumentalness, acousticness
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			artist=excluded.artist,
			album=excluded.album,
			duration_ms=excluded.duration_ms,
			isrc=excluded.isrc,
			cover_url=excluded.cover_url,
			preview_url=excluded.preview_url,
			danceability=COALESCE(excluded.danceability, tracks.danceability),
			energy=COALESCE(excluded.energy, tracks.energy),
			valence=COALESCE(excluded.valence, tracks.valence),
			tempo=COALESCE(excluded.tempo, tracks.tempo),
			instrumentalness=COALESCE(excluded.instrumentalness, tracks.instrumentalness),
			acousticness=COALESCE(excluded.acousticness, tracks.acousticness);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare track upsert: %w", err)
	}
	defer stmtTrack.Close()

	stmtLink, err := tx.PrepareContext(ctx, `
		INSERT INTO playlist_tracks (playlist_id, track_id, position)
		VALUES (?, ?, ?)
		ON CONFLICT(playlist_id, track_id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare track link: %w", err)
	}
	defer stmtLink.Close()

	for i, t := range p.Tracks {
		f := featureArgs(t.Features)
		// Ensure track exists in the global 'tracks' table
		if _, err := stmtTrack.ExecContext(
			ctx,
			t.ID,
			t.Title,
			t.Artist,
			t.Album,
			t.DurationMs,
			t.ISRC,
			t.CoverURL,
			t.PreviewURL,
			f[0], f[1], f[2], f[3], f[4], f[5],
		); err != nil {
			return fmt.Errorf("failed to save track %s: %w", t.ID, err)
		}
		if _, err := stmtLink.ExecContext(ctx, p.ID, t.ID, i); err != nil {
			return fmt.Errorf("failed to link track %s: %w", t.ID, err)
		}
	}

	// 5. Commit Transaction
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}

	return nil
}

// featureArgs maps unset features to NULL so an upsert does not erase a
// previous backfill.
func featureArgs(f domain.AudioFeatures) [6]any {
	if f.IsZero() {
		return [6]any{nil, nil, nil, nil, nil, nil}
	}
	return [6]any{f.Danceability, f.Energy, f.Valence, f.Tempo, f.Instrumentalness, f.Acousticness}
}

var columnMigrations = []string{
	"ALTER TABLE tracks ADD COLUMN cover_url TEXT",
	"ALTER TABLE tracks ADD COLUMN preview_url TEXT",
	"ALTER TABLE tracks ADD COLUMN danceability REAL",
	"ALTER TABLE tracks ADD COLUMN energy REAL",
	"ALTER TABLE tracks ADD COLUMN valence REAL",
	"ALTER TABLE tracks ADD COLUMN tempo REAL",
	"ALTER TABLE tracks ADD COLUMN instrumentalness REAL",
	"ALTER TABLE tracks ADD COLUMN acousticness REAL",
	"ALTER TABLE playlists ADD COLUMN mood TEXT",
	"ALTER TABLE playlist_tracks ADD COLUMN position INTEGER DEFAULT 0",
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS tracks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artist TEXT NOT NULL,
		album TEXT,
		duration_ms INTEGER,
		isrc TEXT,
		cover_url TEXT,
		preview_url TEXT,
		danceability REAL,
		energy REAL,
		valence REAL,
		tempo REAL,
		instrumentalness REAL,
		acousticness REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS playlists (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		mood TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS playlist_tracks (
		playlist_id TEXT,
		track_id TEXT,
		position INTEGER DEFAULT 0,
		added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (playlist_id, track_id),
		FOREIGN KEY(playlist_id) REFERENCES playlists(id) ON DELETE CASCADE,
		FOREIGN KEY(track_id) REFERENCES tracks(id) ON DELETE CASCADE
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	for _, stmt := range columnMigrations {
		if _, err := a.db.Exec(stmt); err != nil && !isDuplicateColumnError(err) {
			return err
		}
	}

	return nil
}

func isDuplicateColumnError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "duplicate column") || strings.Contains(err.Error(), "already exists"))
}
