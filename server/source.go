package server

import (
	"bytes"
	"os"

	"github.com/goccy/temporalconv/bundle"
	"github.com/goccy/temporalconv/types"
)

type Source func(*Server) error

func YAMLSource(path string) Source {
	return func(s *Server) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		bundles, err := bundle.DecodeYAML(bytes.NewBuffer(content))
		if err != nil {
			return err
		}
		return s.store.Add(bundles...)
	}
}

func JSONSource(path string) Source {
	return func(s *Server) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		bundles, err := bundle.DecodeJSON(bytes.NewBuffer(content))
		if err != nil {
			return err
		}
		return s.store.Add(bundles...)
	}
}

func StructSource(bundles ...*types.Bundle) Source {
	return func(s *Server) error {
		return s.store.Add(bundles...)
	}
}
