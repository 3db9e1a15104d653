// Package codec maps a catalogue to and from its JSON document: one object
// with a fixed array field per item kind.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/catalogue/internal/logging"
	"github.com/idilsaglam/catalogue/internal/model"
)

const defaultIndent = "  "

// Lister is the read side of a catalogue.
type Lister interface {
	All() []model.Item
}

// Options tune encoding and decoding.
type Options struct {
	// Indent is the per-level indentation of the rendered document.
	Indent string
	// Strict fails on absent top-level fields and unknown item fields.
	Strict bool
	// SkipInvalid drops entries that fail to decode instead of failing the load.
	SkipInvalid bool
	Logger      *slog.Logger
}

// Codec holds immutable options; every call builds its own document, so a
// Codec may be shared.
type Codec struct {
	indent      string
	strict      bool
	skipInvalid bool
	logger      *slog.Logger
}

func New(opts Options) *Codec {
	indent := opts.Indent
	if indent == "" {
		indent = defaultIndent
	}
	return &Codec{
		indent:      indent,
		strict:      opts.Strict,
		skipInvalid: opts.SkipInvalid,
		logger:      logging.NewComponentLogger(opts.Logger, "codec"),
	}
}

// Report is the outcome of a decode. Missing lists absent top-level fields
// that were read as empty; Skipped lists entries dropped under SkipInvalid.
type Report struct {
	Items   []model.Item
	Missing []*DeserializationError
	Skipped []*DeserializationError
}

// Encode renders the catalogue as a pretty-printed document. Items are
// grouped by kind, keeping their relative order within a kind.
func (c *Codec) Encode(cat Lister) ([]byte, error) {
	buckets := make(map[model.Kind][]json.RawMessage, len(model.Kinds))
	for _, kind := range model.Kinds {
		buckets[kind] = []json.RawMessage{}
	}

	for i, it := range cat.All() {
		desc, ok := descriptorFor(it.Kind)
		if !ok {
			return nil, &SerializationError{Kind: it.Kind, Index: i, Err: model.ErrUnknownKind}
		}
		if err := checkDetails(it); err != nil {
			return nil, &SerializationError{Kind: it.Kind, Index: i, Err: err}
		}
		raw, err := desc.encode(it)
		if err != nil {
			return nil, &SerializationError{Kind: it.Kind, Index: i, Err: err}
		}
		buckets[it.Kind] = append(buckets[it.Kind], raw)
	}

	// Written by hand so key order follows model.Kinds.
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, kind := range model.Kinds {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, _ := json.Marshal(kind.Key())
		compact.Write(key)
		compact.WriteByte(':')
		arr, err := json.Marshal(buckets[kind])
		if err != nil {
			return nil, fmt.Errorf("json marshal %s: %w", kind.Key(), err)
		}
		compact.Write(arr)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", c.indent); err != nil {
		return nil, fmt.Errorf("json indent: %w", err)
	}
	out.WriteByte('\n')

	c.logger.Debug("encoded catalogue",
		logging.String(logging.FieldEventType, "codec_encode"),
		logging.Int("bytes", out.Len()))
	return out.Bytes(), nil
}

// Decode reads a document back into one list, concatenating kinds in
// document order. Warnings about missing fields are logged.
func (c *Codec) Decode(data []byte) ([]model.Item, error) {
	report, err := c.DecodeReport(data)
	if err != nil {
		return nil, err
	}
	return report.Items, nil
}

// DecodeReport is Decode with the non-fatal findings returned to the caller.
func (c *Codec) DecodeReport(data []byte) (Report, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Report{}, &DeserializationError{Index: -1, Err: ErrNotObject}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return Report{}, &DeserializationError{Index: -1, Err: fmt.Errorf("json unmarshal: %w", err)}
	}

	report := Report{Items: []model.Item{}}
	for _, kind := range model.Kinds {
		key := kind.Key()
		raw, ok := fields[key]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			missing := &DeserializationError{Field: key, Index: -1, Err: ErrMissingField}
			if c.strict {
				return Report{}, missing
			}
			c.logger.Warn("document field missing; reading as empty",
				logging.String(logging.FieldEventType, "codec_missing_field"),
				logging.String(logging.FieldKind, key))
			report.Missing = append(report.Missing, missing)
			continue
		}

		var entries []json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			return Report{}, &DeserializationError{Field: key, Index: -1, Err: fmt.Errorf("%w: %v", ErrNotArray, err)}
		}

		desc, _ := descriptorFor(kind)
		for i, entry := range entries {
			it, err := desc.decode(entry, c.strict)
			if err != nil {
				derr := &DeserializationError{Field: key, Index: i, Err: err}
				if !c.skipInvalid {
					return Report{}, derr
				}
				c.logger.Warn("skipping undecodable entry",
					logging.String(logging.FieldEventType, "codec_skip_entry"),
					logging.String(logging.FieldKind, key),
					logging.Int(logging.FieldIndex, i),
					logging.Error(err))
				report.Skipped = append(report.Skipped, derr)
				continue
			}
			report.Items = append(report.Items, it)
		}
	}

	c.logger.Debug("decoded catalogue",
		logging.String(logging.FieldEventType, "codec_decode"),
		logging.Int("item_count", len(report.Items)))
	return report, nil
}
