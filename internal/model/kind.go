package model

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind tags an Item with one of the five closed catalogue categories.
type Kind int

const (
	KindAudio Kind = iota
	KindBook
	KindMiscellaneous
	KindMagazine
	KindVideo
)

// Kinds lists every kind in document order.
var Kinds = []Kind{KindAudio, KindBook, KindMiscellaneous, KindMagazine, KindVideo}

// ErrUnknownKind is returned for tags or names outside the closed set.
var ErrUnknownKind = errors.New("unknown kind")

var kindKeys = [...]string{
	KindAudio:         "audio",
	KindBook:          "book",
	KindMiscellaneous: "item",
	KindMagazine:      "magazine",
	KindVideo:         "video",
}

var kindNames = [...]string{
	KindAudio:         "audio",
	KindBook:          "book",
	KindMiscellaneous: "miscellaneous",
	KindMagazine:      "magazine",
	KindVideo:         "video",
}

// Valid reports whether k is one of the five known kinds.
func (k Kind) Valid() bool { return k >= KindAudio && k <= KindVideo }

// Key is the document field that holds items of this kind.
func (k Kind) Key() string {
	if !k.Valid() {
		return ""
	}
	return kindKeys[k]
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Label is the display form, e.g. "Magazine".
func (k Kind) Label() string {
	return cases.Title(language.English).String(k.String())
}

// ParseKind accepts a document key or a kind name, case-insensitively.
// "misc", "miscellaneous" and "item" all map to KindMiscellaneous.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "audio":
		return KindAudio, nil
	case "book":
		return KindBook, nil
	case "item", "misc", "miscellaneous":
		return KindMiscellaneous, nil
	case "magazine":
		return KindMagazine, nil
	case "video":
		return KindVideo, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
