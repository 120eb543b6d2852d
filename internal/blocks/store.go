package blocks

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists block types and documents in the workspace SQLite
// database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// Save/Load errors callers branch on.
var (
	ErrAlreadyExists = errors.New("block document already exists")
	ErrNotFound      = errors.New("block document not found")
)

// NewStore creates or opens the block store under a .flowdocs directory.
func NewStore(stateDir string) (*Store, error) {
	dbPath := filepath.Join(stateDir, "blocks.db")
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening block store: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing block store schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS block_types (
		slug     TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		checksum TEXT NOT NULL,
		version  INTEGER NOT NULL DEFAULT 1
	);

	CREATE TABLE IF NOT EXISTS block_documents (
		id         TEXT PRIMARY KEY,
		type_slug  TEXT NOT NULL REFERENCES block_types(slug),
		name       TEXT NOT NULL,
		anonymous  INTEGER NOT NULL DEFAULT 0,
		data       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE(type_slug, name)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RegisterType records a block type. Registering the same schema again is
// idempotent; a changed schema bumps the stored version.
func (s *Store) RegisterType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	slug, checksum := t.Slug(), t.Checksum()
	var existing string
	err := s.db.QueryRow(`SELECT checksum FROM block_types WHERE slug = ?`, slug).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		_, err = s.db.Exec(`INSERT INTO block_types (slug, name, checksum) VALUES (?, ?, ?)`,
			slug, t.Name, checksum)
		return err
	case err != nil:
		return err
	case existing == checksum:
		return nil
	default:
		_, err = s.db.Exec(`UPDATE block_types SET checksum = ?, version = version + 1 WHERE slug = ?`,
			checksum, slug)
		return err
	}
}

// TypeVersion reports the stored schema version for a type slug.
func (s *Store) TypeVersion(slug string) (int, error) {
	var v int
	err := s.db.QueryRow(`SELECT version FROM block_types WHERE slug = ?`, slug).Scan(&v)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("block type %q is not registered", slug)
	}
	return v, err
}

// Save stores a document. A named document that already exists errors
// unless overwrite is set, keeping the original document ID. Anonymous
// documents get a generated name and saving the same document again is
// idempotent.
func (s *Store) Save(doc *Document, overwrite bool) error {
	generatedName := "anonymous-" + doc.ID.String()
	if doc.Anonymous && doc.Name != "" && doc.Name != generatedName {
		return fmt.Errorf("attempting to save an anonymous block document with a name")
	}
	if !doc.Anonymous && doc.Name == "" {
		return fmt.Errorf("attempting to save a block document without a name")
	}
	if doc.Anonymous {
		doc.Name = generatedName
	}

	data, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("encoding block document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	var existingID string
	var created time.Time
	err = s.db.QueryRow(
		`SELECT id, created_at FROM block_documents WHERE type_slug = ? AND name = ?`,
		doc.TypeSlug, doc.Name).Scan(&existingID, &created)
	switch {
	case err == sql.ErrNoRows:
		doc.Created, doc.Updated = now, now
		_, err = s.db.Exec(
			`INSERT INTO block_documents (id, type_slug, name, anonymous, data, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			doc.ID.String(), doc.TypeSlug, doc.Name, doc.Anonymous, string(data), now, now)
		return err
	case err != nil:
		return err
	case doc.Anonymous && existingID == doc.ID.String():
		return nil // same anonymous document saved twice
	case !overwrite:
		return fmt.Errorf("%w: %s/%s", ErrAlreadyExists, doc.TypeSlug, doc.Name)
	}

	// Overwrite keeps the original identity.
	doc.ID = uuid.MustParse(existingID)
	doc.Created, doc.Updated = created, now
	_, err = s.db.Exec(
		`UPDATE block_documents SET data = ?, anonymous = ?, updated_at = ? WHERE id = ?`,
		string(data), doc.Anonymous, now, existingID)
	return err
}

// Load fetches a document by type slug and name.
func (s *Store) Load(typeSlug, name string) (*Document, error) {
	row := s.db.QueryRow(
		`SELECT id, type_slug, name, anonymous, data, created_at, updated_at
		 FROM block_documents WHERE type_slug = ? AND name = ?`, typeSlug, name)
	return scanDocument(row)
}

// List returns all documents of a type, sorted by name. An empty slug
// lists every document.
func (s *Store) List(typeSlug string) ([]*Document, error) {
	query := `SELECT id, type_slug, name, anonymous, data, created_at, updated_at
		  FROM block_documents`
	args := []any{}
	if typeSlug != "" {
		query += ` WHERE type_slug = ?`
		args = append(args, typeSlug)
	}
	query += ` ORDER BY type_slug, name`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a document by type slug and name.
func (s *Store) Delete(typeSlug, name string) error {
	res, err := s.db.Exec(
		`DELETE FROM block_documents WHERE type_slug = ? AND name = ?`, typeSlug, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, typeSlug, name)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*Document, error) {
	var (
		doc  Document
		id   string
		data string
	)
	err := row.Scan(&id, &doc.TypeSlug, &doc.Name, &doc.Anonymous, &data, &doc.Created, &doc.Updated)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	doc.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("corrupt document id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(data), &doc.Data); err != nil {
		return nil, fmt.Errorf("decoding block document %s: %w", doc.Name, err)
	}
	return &doc, nil
}
