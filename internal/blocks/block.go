// Package blocks stores typed configuration documents for a docs
// workspace. A block type carries a schema checksum so stored documents can
// be checked against the type that wrote them; documents are saved by name
// and loaded back by type slug and name.
package blocks

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Type describes one block type: a named shape of configuration document.
type Type struct {
	// Name is the CamelCase type name, e.g. "SiteCredentials".
	Name string
	// Fields maps field name to kind: string, int, number, bool, object,
	// array. Only names and kinds feed the checksum, so documentation
	// edits never invalidate stored documents.
	Fields map[string]string
}

// Slug returns the kebab-case identifier derived from the type name:
// "SiteCredentials" becomes "site-credentials".
func (t Type) Slug() string {
	var b strings.Builder
	runes := []rune(t.Name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Checksum returns "sha256:<hex>" over the canonical field schema.
func (t Type) Checksum() string {
	names := make([]string, 0, len(t.Fields))
	for name := range t.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	canonical := make([]map[string]string, 0, len(names))
	for _, name := range names {
		canonical = append(canonical, map[string]string{name: t.Fields[name]})
	}
	blob, _ := json.Marshal(canonical)
	sum := sha256.Sum256(blob)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Validate checks basic shape.
func (t Type) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("block type has no name")
	}
	for field, kind := range t.Fields {
		switch kind {
		case "string", "int", "number", "bool", "object", "array":
		default:
			return fmt.Errorf("block type %s: field %s has unknown kind %q", t.Name, field, kind)
		}
	}
	return nil
}

// Document is one stored configuration document.
type Document struct {
	ID        uuid.UUID
	TypeSlug  string
	Name      string
	Anonymous bool
	Data      map[string]any
	Created   time.Time
	Updated   time.Time
}

// NewDocument builds an unsaved document for a type.
func NewDocument(t Type, name string, data map[string]any) *Document {
	return &Document{
		ID:       uuid.New(),
		TypeSlug: t.Slug(),
		Name:     name,
		Data:     data,
	}
}
