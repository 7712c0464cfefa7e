package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// ISO-8601 in UTC with millisecond precision, e.g. 2025-01-02T03:04:05.678Z
const updatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// DocumentInput collects the results of the earlier stages
type DocumentInput struct {
	Brand     string
	Audience  string
	Offer     string
	Headline  string
	Video     *VideoItem
	Post      *SocialPost
	Contact   []Button
	UpdatedAt time.Time
}

// BuildDocument assembles the payload. Buttons follow the fixed platform
// order and only appear for platforms with a URL.
func BuildDocument(in DocumentInput) OutputDocument {
	buttons := make([]Button, 0, 2)
	if in.Video != nil && in.Video.URL != "" {
		buttons = append(buttons, Button{Label: "YouTube", Href: in.Video.URL})
	}
	if in.Post != nil && in.Post.URL != "" {
		buttons = append(buttons, Button{Label: "Instagram", Href: in.Post.URL})
	}

	contact := make([]Button, len(in.Contact))
	copy(contact, in.Contact)

	return OutputDocument{
		Brand:     in.Brand,
		Audience:  in.Audience,
		UpdatedAt: in.UpdatedAt.UTC().Format(updatedAtLayout),
		Headline:  in.Headline,
		Offer:     in.Offer,
		YouTube:   in.Video,
		Instagram: in.Post,
		Buttons:   buttons,
		Contact:   contact,
	}
}

// WriteDocument replaces the file at path with the indented document.
// Parent directories are created as needed.
func WriteDocument(path string, doc OutputDocument, logger *slog.Logger) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling document: %w", err)
	}
	data := buf.Bytes()

	w, err := newAtomicWriter(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Abort()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Commit(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info("✓ Wrote content", "path", path, "bytes", len(data))
	return nil
}

// atomicWriter writes to a temp file next to the target and renames it
// over the target on Commit, so readers never see a partial document.
type atomicWriter struct {
	path    string
	tmpPath string
	file    *os.File
}

func newAtomicWriter(path string) (*atomicWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".content-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file in %s: %w", dir, err)
	}

	return &atomicWriter{path: path, tmpPath: tmpFile.Name(), file: tmpFile}, nil
}

func (w *atomicWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

func (w *atomicWriter) Commit() error {
	if err := w.file.Sync(); err != nil {
		w.Abort()
		return fmt.Errorf("sync: %w", err)
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.tmpPath)
		return fmt.Errorf("close: %w", err)
	}
	// CreateTemp uses 0600; the site server needs to read the file
	if err := os.Chmod(w.tmpPath, 0644); err != nil {
		os.Remove(w.tmpPath)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(w.tmpPath, w.path); err != nil {
		os.Remove(w.tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (w *atomicWriter) Abort() {
	w.file.Close()
	os.Remove(w.tmpPath)
}
