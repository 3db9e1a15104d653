package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/idilsaglam/catalogue/internal/model"
)

// Record types are the serialized field sets. Embedded structs flatten, so
// each kind is one JSON object of shared plus kind-specific fields.
type (
	audioRecord struct {
		model.Base
		model.AudioDetails
	}
	bookRecord struct {
		model.Base
		model.BookDetails
	}
	miscRecord struct {
		model.Base
	}
	magazineRecord struct {
		model.Base
		model.MagazineDetails
	}
	videoRecord struct {
		model.Base
		model.VideoDetails
	}
)

// descriptor is the encode/decode pair for one kind.
type descriptor struct {
	kind   model.Kind
	encode func(model.Item) (json.RawMessage, error)
	decode func(raw json.RawMessage, strict bool) (model.Item, error)
}

// describe builds a descriptor from a record type R and the two mappings
// between Item and R.
func describe[R any](kind model.Kind, toRecord func(model.Item) R, fromRecord func(R) model.Item) descriptor {
	return descriptor{
		kind: kind,
		encode: func(it model.Item) (json.RawMessage, error) {
			rec := toRecord(it)
			if err := checkSchema(rec); err != nil {
				return nil, err
			}
			b, err := json.Marshal(rec)
			if err != nil {
				return nil, fmt.Errorf("json marshal: %w", err)
			}
			return b, nil
		},
		decode: func(raw json.RawMessage, strict bool) (model.Item, error) {
			var rec R
			dec := json.NewDecoder(bytes.NewReader(raw))
			if strict {
				dec.DisallowUnknownFields()
			}
			if err := dec.Decode(&rec); err != nil {
				return model.Item{}, fmt.Errorf("json unmarshal: %w", err)
			}
			if err := checkSchema(rec); err != nil {
				return model.Item{}, err
			}
			it := fromRecord(rec)
			it.Kind = kind
			return it, nil
		},
	}
}

func valueOr[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

var (
	audioDescriptor = describe(model.KindAudio,
		func(it model.Item) audioRecord { return audioRecord{it.Base, valueOr(it.Audio)} },
		func(r audioRecord) model.Item { return model.Item{Base: r.Base, Audio: &r.AudioDetails} })
	bookDescriptor = describe(model.KindBook,
		func(it model.Item) bookRecord { return bookRecord{it.Base, valueOr(it.Book)} },
		func(r bookRecord) model.Item { return model.Item{Base: r.Base, Book: &r.BookDetails} })
	miscDescriptor = describe(model.KindMiscellaneous,
		func(it model.Item) miscRecord { return miscRecord{it.Base} },
		func(r miscRecord) model.Item { return model.Item{Base: r.Base} })
	magazineDescriptor = describe(model.KindMagazine,
		func(it model.Item) magazineRecord { return magazineRecord{it.Base, valueOr(it.Magazine)} },
		func(r magazineRecord) model.Item { return model.Item{Base: r.Base, Magazine: &r.MagazineDetails} })
	videoDescriptor = describe(model.KindVideo,
		func(it model.Item) videoRecord { return videoRecord{it.Base, valueOr(it.Video)} },
		func(r videoRecord) model.Item { return model.Item{Base: r.Base, Video: &r.VideoDetails} })
)

func descriptorFor(kind model.Kind) (descriptor, bool) {
	switch kind {
	case model.KindAudio:
		return audioDescriptor, true
	case model.KindBook:
		return bookDescriptor, true
	case model.KindMiscellaneous:
		return miscDescriptor, true
	case model.KindMagazine:
		return magazineDescriptor, true
	case model.KindVideo:
		return videoDescriptor, true
	}
	return descriptor{}, false
}

// checkDetails rejects items carrying details for a kind other than their tag.
// Kinds are checked in document order so the error is stable.
func checkDetails(it model.Item) error {
	for _, kind := range model.Kinds {
		if kind != it.Kind && hasDetails(it, kind) {
			return fmt.Errorf("%w: %s item has %s details", ErrDetailsMismatch, it.Kind, kind)
		}
	}
	return nil
}

func hasDetails(it model.Item, kind model.Kind) bool {
	switch kind {
	case model.KindAudio:
		return it.Audio != nil
	case model.KindBook:
		return it.Book != nil
	case model.KindMagazine:
		return it.Magazine != nil
	case model.KindVideo:
		return it.Video != nil
	}
	return false
}
