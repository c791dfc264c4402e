package workflows

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rediacc/rdc/internal/audit"
	rerrors "github.com/rediacc/rdc/internal/errors"
	logger "github.com/rediacc/rdc/internal/logging"
	"github.com/rediacc/rdc/internal/vault"
)

// StateShowOptions configures the state show workflow.
type StateShowOptions struct {
	// Section to show. Empty shows every section.
	Section vault.Section

	// Name shows a single record of Section.
	Name string

	// NamesOnly lists record names without decrypting values.
	NamesOnly bool

	Password string
	Log      logger.Logger
}

// StateShowResult holds the requested part of state.json.
type StateShowResult struct {
	Encrypted bool

	// Records maps section to record name to decrypted value. With
	// NamesOnly the values are nil.
	Records map[vault.Section]map[string]json.RawMessage
}

// StateShow reads records from state.json, creating it when absent.
//
// Returns ErrPasswordRequired if the document is encrypted and no password
// is available, and ErrStateEntryNotFound if Name does not exist.
func StateShow(ctx context.Context, opts StateShowOptions) (*StateShowResult, error) {
	state, err := openState(ctx, opts.Password, opts.Log)
	if err != nil {
		return nil, err
	}

	encrypted, err := state.Encrypted(ctx)
	if err != nil {
		return nil, err
	}
	result := &StateShowResult{
		Encrypted: encrypted,
		Records:   map[vault.Section]map[string]json.RawMessage{},
	}

	sections := vault.Sections
	if opts.Section != "" {
		sections = []vault.Section{opts.Section}
	}

	if opts.Name != "" {
		if opts.Section == "" {
			return nil, fmt.Errorf("%w: a record name needs a section", rerrors.ErrInvalidInput)
		}
		var value json.RawMessage
		if err := state.Get(ctx, opts.Section, opts.Name, &value); err != nil {
			return nil, err
		}
		result.Records[opts.Section] = map[string]json.RawMessage{opts.Name: value}
		return result, nil
	}

	for _, section := range sections {
		if opts.NamesOnly {
			names, err := state.Names(ctx, section)
			if err != nil {
				return nil, err
			}
			records := make(map[string]json.RawMessage, len(names))
			for _, name := range names {
				records[name] = nil
			}
			result.Records[section] = records
			continue
		}

		records, err := state.List(ctx, section)
		if err != nil {
			return nil, err
		}
		result.Records[section] = records
	}
	return result, nil
}

// StateSetOptions configures the state set workflow.
type StateSetOptions struct {
	Section  vault.Section
	Name     string
	Document []byte

	Password string
	Log      logger.Logger
}

// StateSet stores one record in state.json.
func StateSet(ctx context.Context, opts StateSetOptions) error {
	if !json.Valid(opts.Document) {
		return fmt.Errorf("%w: state record is not valid JSON", rerrors.ErrInvalidInput)
	}

	state, err := openState(ctx, opts.Password, opts.Log)
	if err != nil {
		return err
	}

	if err := state.Set(ctx, opts.Section, opts.Name, json.RawMessage(opts.Document)); err != nil {
		return err
	}

	entry := audit.NewEntry("state.set")
	entry.Section = string(opts.Section)
	entry.Name = opts.Name
	audit.Log(entry)
	return nil
}

// StateRemoveOptions configures the state remove workflow.
type StateRemoveOptions struct {
	Section vault.Section
	Name    string

	Password string
	Log      logger.Logger
}

// StateRemove deletes one record from state.json.
//
// Returns ErrStateEntryNotFound if the record does not exist.
func StateRemove(ctx context.Context, opts StateRemoveOptions) error {
	state, err := openState(ctx, opts.Password, opts.Log)
	if err != nil {
		return err
	}

	if err := state.Remove(ctx, opts.Section, opts.Name); err != nil {
		return err
	}

	entry := audit.NewEntry("state.remove")
	entry.Section = string(opts.Section)
	entry.Name = opts.Name
	audit.Log(entry)
	return nil
}
