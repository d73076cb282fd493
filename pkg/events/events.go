// Package events defines the closed set of state-change notifications the
// switchboard emits, their wire representation, and the broadcast hub that
// fans them out to independent subscribers.
//
// The event set is a closed union: every consumer switches exhaustively over
// the variants, so adding a kind forces every consumption point to be
// updated rather than silently ignoring it.
package events

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/installd/switchboard/pkg/errors"
	"github.com/installd/switchboard/pkg/progress"
	"github.com/installd/switchboard/pkg/software"
)

// Wire discriminator values carried in the "type" field.
const (
	TypeLocaleChanged   = "LocaleChanged"
	TypeProgress        = "Progress"
	TypeProductChanged  = "ProductChanged"
	TypePatternsChanged = "PatternsChanged"
)

// Event is a state-change notification. The set of implementations is
// closed; the unexported marker keeps outside packages from adding variants.
type Event interface {
	// Type returns the wire discriminator of the variant.
	Type() string

	// Clone returns a copy that shares no mutable state with the receiver.
	Clone() Event

	isEvent()
}

// LocaleChanged reports a change of the display locale.
type LocaleChanged struct {
	Locale string `json:"locale"`
}

// Type implements Event.
func (LocaleChanged) Type() string { return TypeLocaleChanged }

// Clone implements Event.
func (e LocaleChanged) Clone() Event { return e }

func (LocaleChanged) isEvent() {}

// ProgressChanged carries a progress snapshot of a running operation.
// Its wire discriminator is "Progress".
type ProgressChanged struct {
	progress.Progress
}

// Type implements Event.
func (ProgressChanged) Type() string { return TypeProgress }

// Clone implements Event.
func (e ProgressChanged) Clone() Event { return e }

func (ProgressChanged) isEvent() {}

// ProductChanged reports selection of a different product.
type ProductChanged struct {
	ID string `json:"id"`
}

// Type implements Event.
func (ProductChanged) Type() string { return TypeProductChanged }

// Clone implements Event.
func (e ProductChanged) Clone() Event { return e }

func (ProductChanged) isEvent() {}

// PatternsChanged maps pattern ids to their new selection status.
type PatternsChanged map[string]software.PatternStatus

// Type implements Event.
func (PatternsChanged) Type() string { return TypePatternsChanged }

// Clone implements Event. The underlying map is copied so subscribers never
// share state.
func (e PatternsChanged) Clone() Event { return maps.Clone(e) }

func (PatternsChanged) isEvent() {}

// Marshal renders an event in its wire form: a JSON object with a "type"
// discriminator plus variant-specific fields. PatternsChanged flattens its
// pattern ids as sibling keys of "type".
func Marshal(e Event) ([]byte, error) {
	switch v := e.(type) {
	case LocaleChanged:
		return json.Marshal(struct {
			Type   string `json:"type"`
			Locale string `json:"locale"`
		}{v.Type(), v.Locale})
	case ProgressChanged:
		return json.Marshal(struct {
			Type string `json:"type"`
			progress.Progress
		}{v.Type(), v.Progress})
	case ProductChanged:
		return json.Marshal(struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		}{v.Type(), v.ID})
	case PatternsChanged:
		flat := make(map[string]string, len(v)+1)
		flat["type"] = v.Type()
		for id, status := range v {
			flat[id] = string(status)
		}
		return json.Marshal(flat)
	default:
		return nil, fmt.Errorf("unknown event variant %T", e)
	}
}

// Unmarshal parses the wire form produced by Marshal back into an event.
// An unknown or missing discriminator is a decode failure.
func Unmarshal(data []byte) (Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, errors.WrapParse("json", "event", err)
	}

	switch head.Type {
	case TypeLocaleChanged:
		var e LocaleChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, errors.WrapParse("json", "LocaleChanged event", err)
		}
		return e, nil
	case TypeProgress:
		var p progress.Progress
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, errors.WrapParse("json", "Progress event", err)
		}
		return ProgressChanged{Progress: p}, nil
	case TypeProductChanged:
		var e ProductChanged
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, errors.WrapParse("json", "ProductChanged event", err)
		}
		return e, nil
	case TypePatternsChanged:
		var flat map[string]string
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, errors.WrapParse("json", "PatternsChanged event", err)
		}
		e := make(PatternsChanged, len(flat)-1)
		for id, status := range flat {
			if id == "type" {
				continue
			}
			e[id] = software.PatternStatus(status)
		}
		return e, nil
	default:
		return nil, errors.NewValidationError("type", head.Type, "unknown event type")
	}
}
