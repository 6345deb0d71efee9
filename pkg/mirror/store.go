package mirror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/controllers/payments"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// state is the persisted form of a Mirror.
type state struct {
	Confirmed map[string]*Project     `json:"confirmed"`
	Queue     []Operation             `json:"queue"`
	Failed    []Failure               `json:"failed"`
	IDs       map[uuid.UUID]uuid.UUID `json:"ids"`
}

// Save writes the mirror to the file at path. The file is replaced
// atomically, a crash during Save leaves the previous file intact.
func (m *Mirror) Save(path string) error {
	m.mu.Lock()
	s := state{
		Confirmed: make(map[string]*Project, len(m.confirmed)),
		Queue:     slices.Clone(m.queue),
		Failed:    slices.Clone(m.failed),
		IDs:       make(map[uuid.UUID]uuid.UUID, len(m.ids)),
	}
	for id, p := range m.confirmed {
		s.Confirmed[id] = p.clone()
	}
	for local, server := range m.ids {
		s.IDs[local] = server
	}
	m.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding mirror state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	log.Debug().Str("path", path).Int("unsynced", len(s.Queue)).Msg("mirror saved")
	return nil
}

// Load replaces the state of the mirror with the state saved at path.
// If the file does not exist, the mirror is left unchanged.
func (m *Mirror) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding mirror state from %s: %w", path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.confirmed = make(map[string]*Project, len(s.Confirmed))
	for id, p := range s.Confirmed {
		if p.Payments == nil {
			p.Payments = []payments.Payment{}
		}
		m.confirmed[id] = p
	}

	m.queue = s.Queue
	m.failed = s.Failed

	m.ids = s.IDs
	if m.ids == nil {
		m.ids = make(map[uuid.UUID]uuid.UUID)
	}

	// Views are derived state and not persisted
	m.view = make(map[string]*Project)
	projects := make(map[string]struct{})
	for id := range m.confirmed {
		projects[id] = struct{}{}
	}
	for _, op := range m.queue {
		projects[op.ProjectID] = struct{}{}
	}
	for id := range projects {
		m.rebuild(id)
	}

	log.Debug().Str("path", path).Int("projects", len(projects)).Int("unsynced", len(m.queue)).Msg("mirror loaded")
	return nil
}
