// Package export renders a session's lists as a downloadable document.
//
// Supported formats: JSON (bytedance/sonic), YAML (goccy/go-yaml) and TOML
// (pelletier/go-toml/v2). Exports are one-way; nothing reads them back.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/todolists/internal/domain/todo"
)

// Format names an export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for a format name we cannot encode
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Snapshot is the serializable view of a session's lists
type Snapshot struct {
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at" toml:"exported_at"`
	Lists      []List    `json:"lists" yaml:"lists" toml:"lists"`
}

// List is one exported list
type List struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Name      string `json:"name" yaml:"name" toml:"name"`
	Complete  bool   `json:"complete" yaml:"complete" toml:"complete"`
	Remaining string `json:"remaining" yaml:"remaining" toml:"remaining"`
	Todos     []Todo `json:"todos" yaml:"todos" toml:"todos"`
}

// Todo is one exported todo
type Todo struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Name      string `json:"name" yaml:"name" toml:"name"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
}

// FromLists builds a snapshot in insertion order
func FromLists(lists *todo.Lists, at time.Time) Snapshot {
	snap := Snapshot{
		ExportedAt: at.UTC(),
		Lists:      make([]List, 0, lists.Len()),
	}
	for _, l := range lists.All() {
		out := List{
			ID:        l.ID.String(),
			Name:      l.Name,
			Complete:  todo.IsListComplete(l),
			Remaining: todo.Remaining(l),
			Todos:     make([]Todo, 0, l.Len()),
		}
		for _, t := range l.Todos() {
			out.Todos = append(out.Todos, Todo{
				ID:        t.ID.String(),
				Name:      t.Name,
				Completed: t.Completed,
			})
		}
		snap.Lists = append(snap.Lists, out)
	}
	return snap
}

// ParseFormat maps a user-supplied name to a Format. Empty means JSON.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ContentType returns the MIME type served for format
func ContentType(format Format) string {
	switch format {
	case FormatYAML:
		return "application/yaml"
	case FormatTOML:
		return "application/toml"
	default:
		return "application/json"
	}
}

// Filename returns the download name for format
func Filename(format Format) string {
	return "todolists." + string(format)
}

// Encode renders snap in format
func Encode(format Format, snap Snapshot) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = sonic.MarshalIndent(snap, "", "  ")
	case FormatYAML:
		data, err = yaml.Marshal(snap)
	case FormatTOML:
		data, err = toml.Marshal(snap)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s encoding error: %w", format, err)
	}
	return data, nil
}
