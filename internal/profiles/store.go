// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profiles implements the ConnectionStore port (spec.md §6) as a
versioned TOML file at the user config path, read and written wholesale
each call — matching the teacher's "validate, then persist" constructor
style (internal/platform/apperr) rather than an incremental/streaming
format, since the expected profile count is small (a handful of saved
connections, not a table of rows).
*/
package profiles

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/taibuivan/pgview/internal/domain"
	"github.com/taibuivan/pgview/internal/platform/apperr"
	"github.com/taibuivan/pgview/internal/platform/constants"
)

// fileProfile is the on-disk shape of one connection, kept distinct from
// [domain.ConnectionProfile] so the TOML tags don't leak into the domain
// type (the teacher keeps the same separation between request/response
// shapes and domain entities across internal/core/*).
type fileProfile struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Database string `toml:"database"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	SslMode  string `toml:"ssl_mode"`
}

// fileSchema is the root TOML document: a version number and a
// "connections" array. Only the plural "connections" key is decoded; a
// singular "connection" key in the file is ignored.
type fileSchema struct {
	Version     uint32        `toml:"version"`
	Connections []fileProfile `toml:"connections"`
}

// Store is a TOML-backed [ports.ConnectionStore].
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore constructs a Store persisting to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// LoadAll reads every saved connection profile.
func (s *Store) LoadAll(ctx context.Context) ([]domain.ConnectionProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.ConnectionProfile, 0, len(doc.Connections))
	for _, fp := range doc.Connections {
		profiles = append(profiles, fp.toDomain())
	}
	return profiles, nil
}

// FindByID returns the saved profile with the given id.
func (s *Store) FindByID(ctx context.Context, id domain.ConnectionId) (domain.ConnectionProfile, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return domain.ConnectionProfile{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.ConnectionProfile{}, apperr.NewConnectionStoreError(
		apperr.ConnectionStoreNotFound, "connection profile not found", nil)
}

// Save inserts or replaces profile by id, rejecting a case-folded
// duplicate name held by a different id (spec.md §6: "Duplicate name
// (case-folded) -> DuplicateName").
func (s *Store) Save(ctx context.Context, profile domain.ConnectionProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	normalized := domain.NormalizedName(profile.Name)
	replaced := false
	next := make([]fileProfile, 0, len(doc.Connections)+1)
	for _, fp := range doc.Connections {
		if fp.ID == string(profile.ID) {
			replaced = true
			next = append(next, fromDomain(profile))
			continue
		}
		if domain.NormalizedName(fp.Name) == normalized {
			return apperr.NewConnectionStoreError(
				apperr.ConnectionStoreDuplicateName, "a connection with this name already exists", nil)
		}
		next = append(next, fp)
	}
	if !replaced {
		next = append(next, fromDomain(profile))
	}
	doc.Connections = next

	return s.write(doc)
}

// Delete removes the profile with the given id, a no-op if absent.
func (s *Store) Delete(ctx context.Context, id domain.ConnectionId) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	next := make([]fileProfile, 0, len(doc.Connections))
	for _, fp := range doc.Connections {
		if fp.ID != string(id) {
			next = append(next, fp)
		}
	}
	doc.Connections = next

	return s.write(doc)
}

// read loads the store file, returning a fresh v1 document if it does not
// yet exist, and rejecting a version mismatch (spec.md §6, §7: fatal at
// startup).
func (s *Store) read() (fileSchema, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return fileSchema{Version: constants.ConnectionStoreVersion}, nil
	}
	if err != nil {
		return fileSchema{}, apperr.NewConnectionStoreError(
			apperr.ConnectionStoreIO, "failed to read connection store", err)
	}

	var doc fileSchema
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return fileSchema{}, apperr.NewConnectionStoreError(
			apperr.ConnectionStoreInvalidFormat, "failed to parse connection store", err)
	}

	if doc.Version != constants.ConnectionStoreVersion {
		return fileSchema{}, apperr.VersionMismatch(doc.Version, constants.ConnectionStoreVersion)
	}

	return doc, nil
}

// write persists doc atomically: encode to a temp file in the same
// directory, then rename over the target, so a crash mid-write never
// leaves a truncated store.
func (s *Store) write(doc fileSchema) error {
	doc.Version = constants.ConnectionStoreVersion

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return apperr.NewConnectionStoreError(apperr.ConnectionStoreIO, "failed to create config directory", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".pgview-profiles-*.tmp")
	if err != nil {
		return apperr.NewConnectionStoreError(apperr.ConnectionStoreIO, "failed to create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(doc); err != nil {
		tmp.Close()
		return apperr.NewConnectionStoreError(apperr.ConnectionStoreWrite, "failed to encode connection store", err)
	}
	if err := tmp.Close(); err != nil {
		return apperr.NewConnectionStoreError(apperr.ConnectionStoreWrite, "failed to close temp file", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return apperr.NewConnectionStoreError(apperr.ConnectionStoreWrite, "failed to replace connection store", err)
	}
	return nil
}

func fromDomain(p domain.ConnectionProfile) fileProfile {
	return fileProfile{
		ID: string(p.ID), Name: p.Name, Host: p.Host, Port: p.Port,
		Database: p.Database, Username: p.Username, Password: p.Password,
		SslMode: string(p.SslMode),
	}
}

func (fp fileProfile) toDomain() domain.ConnectionProfile {
	return domain.ConnectionProfile{
		ID: domain.ConnectionId(fp.ID), Name: fp.Name, Host: fp.Host, Port: fp.Port,
		Database: fp.Database, Username: fp.Username, Password: fp.Password,
		SslMode: domain.SslMode(strings.ToLower(fp.SslMode)),
	}
}
