package vault

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/objectstore"
)

const (
	stateKey     = "state.json"
	stateVersion = 1
)

// Section names a top-level map of state.json.
type Section string

const (
	SectionMachines     Section = "machines"
	SectionStorages     Section = "storages"
	SectionRepositories Section = "repositories"
)

// Sections lists every section in document order.
var Sections = []Section{SectionMachines, SectionStorages, SectionRepositories}

// StateData is the on-storage shape of state.json. With Encrypted set, each
// record value and SSH hold a JSON string containing an envelope.
type StateData struct {
	Version      int                        `json:"version"`
	Encrypted    bool                       `json:"encrypted"`
	Machines     map[string]json.RawMessage `json:"machines"`
	Storages     map[string]json.RawMessage `json:"storages"`
	Repositories map[string]json.RawMessage `json:"repositories"`
	SSH          json.RawMessage            `json:"ssh,omitempty"`
}

func newStateData(encrypted bool) *StateData {
	return &StateData{
		Version:      stateVersion,
		Encrypted:    encrypted,
		Machines:     map[string]json.RawMessage{},
		Storages:     map[string]json.RawMessage{},
		Repositories: map[string]json.RawMessage{},
	}
}

func (d *StateData) section(s Section) (map[string]json.RawMessage, error) {
	switch s {
	case SectionMachines:
		return d.Machines, nil
	case SectionStorages:
		return d.Storages, nil
	case SectionRepositories:
		return d.Repositories, nil
	}
	return nil, fmt.Errorf("%w: unknown state section %q", rerrors.ErrInvalidConfig, s)
}

// StateStore keeps an in-memory copy of state.json and rewrites the whole
// document on every mutation.
type StateStore struct {
	store  *objectstore.Client
	cipher *Cipher
	data   *StateData

	Log logger.Logger
}

// NewStateStore returns a StateStore over store. A new document is created
// encrypted exactly when password is non-empty.
func NewStateStore(store *objectstore.Client, password string) *StateStore {
	return &StateStore{store: store, cipher: NewCipher(password)}
}

// Load reads state.json once, creating an empty document when it is absent.
func (s *StateStore) Load(ctx context.Context) (*StateData, error) {
	if s.data != nil {
		return s.data, nil
	}
	return s.Reload(ctx)
}

// Reload discards the in-memory copy and reads state.json again.
func (s *StateStore) Reload(ctx context.Context) (*StateData, error) {
	data := &StateData{}
	found, err := s.store.GetJSON(ctx, stateKey, data)
	if err != nil {
		return nil, err
	}

	if !found {
		s.Log.Infof("No %s found, creating an empty one", stateKey)
		data = newStateData(s.cipher != nil)
		if err := s.store.PutJSON(ctx, stateKey, data); err != nil {
			return nil, err
		}
		s.data = data
		return data, nil
	}

	if data.Version != stateVersion {
		return nil, fmt.Errorf("%w: unsupported state version %d", rerrors.ErrConfigCorrupt, data.Version)
	}
	if data.Encrypted && s.cipher == nil {
		return nil, fmt.Errorf("%s is encrypted: %w", stateKey, rerrors.ErrPasswordRequired)
	}
	for _, m := range []*map[string]json.RawMessage{&data.Machines, &data.Storages, &data.Repositories} {
		if *m == nil {
			*m = map[string]json.RawMessage{}
		}
	}

	s.data = data
	return data, nil
}

// Encrypted reports whether the loaded document seals its values.
func (s *StateStore) Encrypted(ctx context.Context) (bool, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return data.Encrypted, nil
}

// Names returns the record names of a section, sorted. It never needs the
// master password.
func (s *StateStore) Names(ctx context.Context, section Section) ([]string, error) {
	records, err := s.records(ctx, section)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// List returns every record of a section as decrypted JSON.
func (s *StateStore) List(ctx context.Context, section Section) (map[string]json.RawMessage, error) {
	records, err := s.records(ctx, section)
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(records))
	for name, raw := range records {
		value, err := s.openValue(raw)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", section, name, err)
		}
		out[name] = value
	}
	return out, nil
}

// Get decodes one record into v.
func (s *StateStore) Get(ctx context.Context, section Section, name string, v any) error {
	records, err := s.records(ctx, section)
	if err != nil {
		return err
	}

	raw, ok := records[name]
	if !ok {
		return fmt.Errorf("%w: %s %q", rerrors.ErrStateEntryNotFound, section, name)
	}

	value, err := s.openValue(raw)
	if err != nil {
		return fmt.Errorf("%s %q: %w", section, name, err)
	}
	return json.Unmarshal(value, v)
}

// Set stores value under name and rewrites state.json.
func (s *StateStore) Set(ctx context.Context, section Section, name string, value any) error {
	if name == "" {
		return fmt.Errorf("%w: empty %s name", rerrors.ErrInvalidConfig, section)
	}

	records, err := s.records(ctx, section)
	if err != nil {
		return err
	}

	raw, err := s.sealValue(value)
	if err != nil {
		return fmt.Errorf("%s %q: %w", section, name, err)
	}

	prev, existed := records[name]
	records[name] = raw
	if err := s.save(ctx); err != nil {
		if existed {
			records[name] = prev
		} else {
			delete(records, name)
		}
		return err
	}
	return nil
}

// Remove deletes a record and rewrites state.json.
func (s *StateStore) Remove(ctx context.Context, section Section, name string) error {
	records, err := s.records(ctx, section)
	if err != nil {
		return err
	}
	prev, ok := records[name]
	if !ok {
		return fmt.Errorf("%w: %s %q", rerrors.ErrStateEntryNotFound, section, name)
	}

	delete(records, name)
	if err := s.save(ctx); err != nil {
		records[name] = prev
		return err
	}
	return nil
}

// SSH decodes the ssh object into v. It reports false when none is set.
func (s *StateStore) SSH(ctx context.Context, v any) (bool, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	if len(data.SSH) == 0 {
		return false, nil
	}

	value, err := s.openValue(data.SSH)
	if err != nil {
		return false, fmt.Errorf("ssh: %w", err)
	}
	if err := json.Unmarshal(value, v); err != nil {
		return false, err
	}
	return true, nil
}

// SetSSH replaces the ssh object and rewrites state.json.
func (s *StateStore) SetSSH(ctx context.Context, value any) error {
	data, err := s.Load(ctx)
	if err != nil {
		return err
	}

	raw, err := s.sealValue(value)
	if err != nil {
		return fmt.Errorf("ssh: %w", err)
	}

	prev := data.SSH
	data.SSH = raw
	if err := s.save(ctx); err != nil {
		data.SSH = prev
		return err
	}
	return nil
}

func (s *StateStore) records(ctx context.Context, section Section) (map[string]json.RawMessage, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.section(section)
}

// save writes the cached document. Callers restore their change when it
// fails so the cache never holds state the bucket does not.
func (s *StateStore) save(ctx context.Context) error {
	s.Log.Debugf("Rewriting %s", stateKey)
	return s.store.PutJSON(ctx, stateKey, s.data)
}

// sealValue returns the stored form of value: plain JSON, or a JSON string
// holding an envelope when the document is encrypted.
func (s *StateStore) sealValue(value any) (json.RawMessage, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	if !s.data.Encrypted {
		return plaintext, nil
	}

	sealed, err := s.cipher.Seal(plaintext)
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(sealed))
}

func (s *StateStore) openValue(raw json.RawMessage) (json.RawMessage, error) {
	if !s.data.Encrypted {
		return raw, nil
	}

	var sealed string
	if err := json.Unmarshal(raw, &sealed); err != nil {
		return nil, fmt.Errorf("%w: expected an envelope string", rerrors.ErrInvalidEnvelope)
	}
	return s.cipher.Open([]byte(sealed))
}
