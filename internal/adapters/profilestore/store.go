// Package profilestore persists named connection profiles to a JSON file.
//
// The on-disk shape is a single object holding a "connections" array of
// records keyed by a unique name. Save rewrites the whole file; there is
// one interactive process and no multi-writer contract to honor.
package profilestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/ctorralba/pgprobe/internal/core/domain"
)

// DefaultPath is where profiles live unless the caller overrides it.
const DefaultPath = "./db_connections.json"

// record is the persisted form of one profile.
type record struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
}

type fileFormat struct {
	Connections []record `json:"connections"`
}

// Store implements the ProfileStore port over a single JSON file.
type Store struct {
	path string
}

// NewStore creates a store scoped to the given file path.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Save appends or overwrites the record for name. A missing store file is
// created on first save.
func (s *Store) Save(name string, profile domain.ConnectionProfile) error {
	all, err := s.read()
	if err != nil {
		return err
	}

	rec := record{
		Name:     name,
		Host:     profile.Host,
		Port:     profile.Port,
		User:     profile.User,
		Password: profile.Password,
		DBName:   profile.DBName,
	}

	replaced := false
	for i := range all.Connections {
		if all.Connections[i].Name == name {
			all.Connections[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		all.Connections = append(all.Connections, rec)
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return domain.NewError(domain.KindStore, "could not encode profile store", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return domain.NewError(domain.KindStore, "could not write profile store", err)
	}

	return nil
}

// Load returns the profile saved under name, or NotFound if absent.
func (s *Store) Load(name string) (domain.ConnectionProfile, error) {
	all, err := s.read()
	if err != nil {
		return domain.ConnectionProfile{}, err
	}

	for _, rec := range all.Connections {
		if rec.Name == name {
			return domain.ConnectionProfile{
				Host:     rec.Host,
				Port:     rec.Port,
				User:     rec.User,
				Password: rec.Password,
				DBName:   rec.DBName,
			}, nil
		}
	}

	return domain.ConnectionProfile{}, domain.NewError(domain.KindNotFound,
		fmt.Sprintf("no saved profile named %q", name), nil)
}

// List returns the saved profile names in store order.
func (s *Store) List() ([]string, error) {
	all, err := s.read()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(all.Connections))
	for _, rec := range all.Connections {
		names = append(names, rec.Name)
	}
	return names, nil
}

// read loads the whole store. A missing file is an empty store, not an
// error; anything else unreadable or undecodable is a StoreError.
func (s *Store) read() (*fileFormat, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &fileFormat{}, nil
		}
		return nil, domain.NewError(domain.KindStore, "could not read profile store", err)
	}

	var all fileFormat
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, domain.NewError(domain.KindStore, "profile store is corrupt", err)
	}

	return &all, nil
}
