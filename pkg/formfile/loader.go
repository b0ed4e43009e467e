package formfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/internal/labels"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Form is one named descriptor list.
type Form struct {
	ID     string
	Source string
	Fields []model.Field
}

// Store holds forms keyed by id.
type Store struct {
	forms map[string]Form
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (Form, bool) {
	if s == nil {
		return Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs returns the sorted form ids.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// LoadFS walks fsys and parses every JSON, YAML and TOML file. Files with
// other extensions are skipped. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Form)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		format, ok := FormatFromPath(path)
		if !ok {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formfile: read %s: %w", path, err)
		}
		forms, err := Parse(data, format, path)
		if err != nil {
			return err
		}
		return store.add(forms)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single document from disk.
func LoadFile(path string) (*Store, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formfile: read %s: %w", path, err)
	}
	forms, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}
	store := &Store{forms: make(map[string]Form, len(forms))}
	if err := store.add(forms); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(forms []Form) error {
	for _, form := range forms {
		if existing, exists := s.forms[form.ID]; exists {
			return fmt.Errorf("%w %q (files %s, %s)", ErrDuplicateForm, form.ID, existing.Source, form.Source)
		}
		s.forms[form.ID] = form
	}
	return nil
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms" toml:"forms"`
}

type formFile struct {
	Fields []fieldFile `json:"fields" yaml:"fields" toml:"fields"`
}

type fieldFile struct {
	ID       string `json:"id" yaml:"id" toml:"id"`
	Type     string `json:"type" yaml:"type" toml:"type"`
	Label    string `json:"label" yaml:"label" toml:"label"`
	Default  string `json:"defaultValue" yaml:"defaultValue" toml:"defaultValue"`
	Required bool   `json:"required" yaml:"required" toml:"required"`
}

// Parse decodes one document. source is only used in error messages and as
// Form.Source. Forms are returned sorted by id.
func Parse(data []byte, format Format, source string) ([]Form, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("formfile: file %s is empty", source)
	}

	var doc documentFile
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("formfile: parse %s: %w", source, err)
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	forms := make([]Form, 0, len(ids))
	for _, rawID := range ids {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return nil, fmt.Errorf("formfile: file %s defines an empty form id", source)
		}
		fields, err := normaliseFields(doc.Forms[rawID].Fields)
		if err != nil {
			return nil, fmt.Errorf("formfile: form %q (file %s): %w", id, source, err)
		}
		forms = append(forms, Form{ID: id, Source: source, Fields: fields})
	}
	return forms, nil
}

func normaliseFields(raw []fieldFile) ([]model.Field, error) {
	fields := make([]model.Field, 0, len(raw))
	for _, entry := range raw {
		id := strings.TrimSpace(entry.ID)
		typ, err := model.ParseFieldType(entry.Type)
		if err != nil {
			return nil, &validation.ConfigurationError{
				FieldID: id,
				Type:    model.FieldType(entry.Type),
				Err:     validation.ErrUnknownFieldType,
			}
		}
		label := sanitizeLabel(entry.Label)
		if label == "" {
			label = labels.FromID(id)
		}
		fields = append(fields, model.Field{
			ID:       id,
			Type:     typ,
			Label:    label,
			Default:  entry.Default,
			Required: entry.Required,
		})
	}
	if _, err := validation.BuildRules(fields); err != nil {
		return nil, err
	}
	return fields, nil
}
