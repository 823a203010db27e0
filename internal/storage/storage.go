package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"checklist/internal/task"
)

const schema = `CREATE TABLE IF NOT EXISTS task (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	latest TEXT,
	urgency TEXT,
	status TEXT NOT NULL,
	tags TEXT,
	date_added TEXT NOT NULL,
	completed_on TEXT
)`

// Store persists tasks in a single-table sqlite database.
type Store struct {
	db *sql.DB
}

// Open connects to the database at path and ensures the schema exists.
// The path ":memory:" gives a throwaway in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}
	// modernc sqlite does not support concurrent writers on one handle.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Init creates the task table if it is missing.
func (s *Store) Init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("creating task table: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Add(t *task.Task) error {
	_, err := s.db.Exec(
		`INSERT INTO task (id, name, description, latest, urgency, status, tags, date_added, completed_on)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID.String(),
		t.Name,
		t.Description,
		t.Latest,
		t.Urgency.String(),
		t.Status.String(),
		joinTags(t.Tags),
		t.CreatedAt.Format(time.RFC3339Nano),
		formatCompleted(t.CompletedOn),
	)
	if err != nil {
		return fmt.Errorf("inserting task %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) Update(t *task.Task) error {
	_, err := s.db.Exec(
		`UPDATE task SET name = ?, description = ?, latest = ?, urgency = ?, status = ?, tags = ?, date_added = ?, completed_on = ?
		 WHERE id = ?`,
		t.Name,
		t.Description,
		t.Latest,
		t.Urgency.String(),
		t.Status.String(),
		joinTags(t.Tags),
		t.CreatedAt.Format(time.RFC3339Nano),
		formatCompleted(t.CompletedOn),
		t.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", t.ID, err)
	}
	return nil
}

func (s *Store) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM task WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	return nil
}

// All returns every stored task, in no particular order.
func (s *Store) All() (task.List, error) {
	rows, err := s.db.Query(`SELECT id, name, description, latest, urgency, status, tags, date_added, completed_on FROM task`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var list task.List
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Wipe removes all tasks. With hard set the table itself is dropped.
func (s *Store) Wipe(hard bool) error {
	var err error
	if hard {
		_, err = s.db.Exec(`DROP TABLE task`)
	} else {
		_, err = s.db.Exec(`DELETE FROM task`)
	}
	if err != nil {
		return fmt.Errorf("wiping tasks: %w", err)
	}
	return nil
}

func scanTask(rows *sql.Rows) (*task.Task, error) {
	var (
		id, name, status, dateAdded string
		description, latest, urg    sql.NullString
		tags, completedOn           sql.NullString
	)
	if err := rows.Scan(&id, &name, &description, &latest, &urg, &status, &tags, &dateAdded, &completedOn); err != nil {
		return nil, fmt.Errorf("scanning task row: %w", err)
	}

	t := &task.Task{
		Name:        name,
		Description: description.String,
		Latest:      latest.String,
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing task id %q: %w", id, err)
	}
	t.ID = parsed

	if urg.Valid {
		u, err := task.ParseUrgency(urg.String)
		if err != nil {
			return nil, err
		}
		t.Urgency = u
	}
	st, err := task.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	t.Status = st

	if tags.Valid && tags.String != "" {
		t.SetTags(strings.Split(tags.String, ";"))
	}

	created, err := time.Parse(time.RFC3339Nano, dateAdded)
	if err != nil {
		return nil, fmt.Errorf("parsing date_added %q: %w", dateAdded, err)
	}
	t.CreatedAt = created

	if completedOn.Valid && completedOn.String != "" {
		done, err := time.Parse(time.RFC3339Nano, completedOn.String)
		if err != nil {
			return nil, fmt.Errorf("parsing completed_on %q: %w", completedOn.String, err)
		}
		t.CompletedOn = &done
	}

	return t, nil
}

func joinTags(tags []string) sql.NullString {
	if len(tags) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.Join(tags, ";"), Valid: true}
}

func formatCompleted(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339Nano), Valid: true}
}
