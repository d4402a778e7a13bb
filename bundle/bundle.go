// Package bundle stores locale scoped configuration entries such as
// override patterns and default output patterns.
package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"

	"github.com/goccy/temporalconv/types"
)

// Store resolves keys through the parents of a locale: "ja-JP" falls
// back to "ja" and finally to the bundle of "und".
type Store struct {
	mu      sync.RWMutex
	bundles map[string]map[string]string
}

func NewStore(bundles ...*types.Bundle) (*Store, error) {
	s := &Store{bundles: map[string]map[string]string{}}
	if err := s.Add(bundles...); err != nil {
		return nil, err
	}
	return s, nil
}

// Add merges the entries of bundles. Entries added later win.
func (s *Store) Add(bundles ...*types.Bundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bundles {
		tag, err := language.Parse(b.Locale)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", b.Locale, err)
		}
		entries, exists := s.bundles[tag.String()]
		if !exists {
			entries = map[string]string{}
			s.bundles[tag.String()] = entries
		}
		for k, v := range b.Entries {
			entries[k] = v
		}
	}
	return nil
}

// Lookup has the signature of converter.Lookup.
func (s *Store) Lookup(key string, tag language.Tag) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for {
		if entries, exists := s.bundles[tag.String()]; exists {
			if v, found := entries[key]; found {
				return v, true
			}
		}
		if tag.IsRoot() {
			return "", false
		}
		tag = tag.Parent()
	}
}

// Resolve returns the most specific tag among tag and its parents that
// has a bundle, or und. Tags resolving to the same bundle see the same
// entries.
func (s *Store) Resolve(tag language.Tag) language.Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for !tag.IsRoot() {
		if _, exists := s.bundles[tag.String()]; exists {
			return tag
		}
		tag = tag.Parent()
	}
	return language.Und
}

// Locales returns the locales that have entries.
func (s *Store) Locales() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]string, 0, len(s.bundles))
	for locale := range s.bundles {
		ret = append(ret, locale)
	}
	return ret
}

type document struct {
	Bundles []*types.Bundle `yaml:"bundles" json:"bundles" validate:"required,dive"`
}

func newValidator() *validator.Validate {
	validate := validator.New()
	types.RegisterTypeValidation(validate)
	return validate
}

// DecodeYAML reads a document of the form
//
//	bundles:
//	  - locale: ja-JP
//	    entries:
//	      temporal.localDateConverter.patterns: "d M y"
func DecodeYAML(r io.Reader) ([]*types.Bundle, error) {
	dec := yaml.NewDecoder(
		r,
		yaml.Validator(newValidator()),
		yaml.Strict(),
	)
	var v document
	if err := dec.Decode(&v); err != nil {
		return nil, errors.New(yaml.FormatError(err, false, true))
	}
	return v.Bundles, nil
}

// DecodeJSON reads the JSON rendition of the DecodeYAML document.
func DecodeJSON(r io.Reader) ([]*types.Bundle, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var v document
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := newValidator().Struct(&v); err != nil {
		return nil, err
	}
	return v.Bundles, nil
}

// LoadFile decodes path as JSON when it has a .json extension and as
// YAML otherwise.
func LoadFile(path string) ([]*types.Bundle, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return DecodeJSON(bytes.NewReader(content))
	}
	return DecodeYAML(bytes.NewReader(content))
}
