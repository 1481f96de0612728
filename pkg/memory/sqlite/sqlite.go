// Package sqlite persists remembered session events so they can be recalled
// by later runs.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	adkmemory "google.golang.org/adk/memory"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"github.com/docker/multiagent/pkg/sqliteutil"
)

const schema = `CREATE TABLE IF NOT EXISTS memories (
	app_name   TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	session_id TEXT NOT NULL,
	event_id   TEXT NOT NULL,
	author     TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	text       TEXT NOT NULL,
	PRIMARY KEY (app_name, user_id, session_id, event_id)
)`

// Service is an adkmemory.Service stored in a SQLite file. SearchMemory matches
// any query word against the words of each remembered event, ignoring case.
type Service struct {
	db *sql.DB
}

var _ adkmemory.Service = (*Service)(nil)

func NewService(ctx context.Context, path string) (*Service, error) {
	db, err := sqliteutil.OpenDB(ctx, path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create memories table: %w", err)
	}

	return &Service{db: db}, nil
}

func (s *Service) Close() error {
	return s.db.Close()
}

// AddSessionToMemory stores every text event of sess. Adding the same session again
// only inserts the events that are new.
func (s *Service) AddSessionToMemory(ctx context.Context, sess session.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO memories
		(app_name, user_id, session_id, event_id, author, created_at, text)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	added := 0
	for event := range sess.Events().All() {
		text := eventText(event)
		if text == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, sess.AppName(), sess.UserID(), sess.ID(), event.ID, event.Author, event.Timestamp.UnixMilli(), text)
		if err != nil {
			return fmt.Errorf("failed to store event %s: %w", event.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	slog.Debug("Session remembered", "session", sess.ID(), "new_events", added)
	return nil
}

func (s *Service) SearchMemory(ctx context.Context, req *adkmemory.SearchRequest) (*adkmemory.SearchResponse, error) {
	queryWords := words(req.Query)
	if len(queryWords) == 0 {
		return &adkmemory.SearchResponse{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT author, created_at, text FROM memories
		WHERE app_name = ? AND user_id = ?
		ORDER BY created_at, rowid`, req.AppName, req.UserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resp adkmemory.SearchResponse
	for rows.Next() {
		var (
			author    string
			createdAt int64
			text      string
		)
		if err := rows.Scan(&author, &createdAt, &text); err != nil {
			return nil, err
		}
		if !matches(queryWords, words(text)) {
			continue
		}

		var role genai.Role = genai.RoleModel
		if author == string(genai.RoleUser) {
			role = genai.RoleUser
		}
		resp.Memories = append(resp.Memories, adkmemory.Entry{
			Content:   genai.NewContentFromText(text, role),
			Author:    author,
			Timestamp: time.UnixMilli(createdAt),
		})
	}
	return &resp, rows.Err()
}

func eventText(event *session.Event) string {
	if event.Content == nil {
		return ""
	}
	var parts []string
	for _, part := range event.Content.Parts {
		if part.Text != "" && !part.Thought {
			parts = append(parts, strings.TrimSpace(part.Text))
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func words(text string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		set[w] = struct{}{}
	}
	return set
}

func matches(query, text map[string]struct{}) bool {
	for w := range query {
		if _, ok := text[w]; ok {
			return true
		}
	}
	return false
}
