package model

import (
	"strings"

	"github.com/google/uuid"
)

// Status is the circulation state of an item.
type Status string

const (
	StatusAvailable Status = "available"
	StatusLoaned    Status = "loaned"
	StatusReserved  Status = "reserved"
)

// Base holds the fields every kind shares. Optional fields are omitted
// from the document when unset.
type Base struct {
	ID       string `json:"id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Status   Status `json:"status,omitempty" validate:"omitempty,oneof=available loaned reserved"`
	Loanee   string `json:"loanee,omitempty"`
	DueDate  *Date  `json:"dueDate,omitempty"`
	Location string `json:"location,omitempty"`
	Acquired *Date  `json:"acquired,omitempty"`
}

type AudioDetails struct {
	Artist   string `json:"artist,omitempty"`
	Duration int    `json:"duration,omitempty" validate:"gte=0"` // minutes
}

type BookDetails struct {
	Author    string `json:"author" validate:"required"`
	ISBN      string `json:"isbn,omitempty"`
	Publisher string `json:"publisher,omitempty"`
}

type MagazineDetails struct {
	Publisher string `json:"publisher,omitempty"`
	Edition   string `json:"edition,omitempty"`
}

type VideoDetails struct {
	Publisher string `json:"publisher,omitempty"`
	Duration  int    `json:"duration,omitempty" validate:"gte=0"` // minutes
}

// Item is the domain model for a catalogue entry. Kind is the tag; at most
// the details pointer matching Kind may be set. Miscellaneous items carry
// no details. Decoded items of the other kinds always carry a non-nil details
// pointer, empty when the document had no detail fields, so nil and empty
// details encode the same way.
type Item struct {
	Kind Kind
	Base

	Audio    *AudioDetails
	Book     *BookDetails
	Magazine *MagazineDetails
	Video    *VideoDetails
}

// NewID returns a fresh item identifier.
func NewID() string { return uuid.NewString() }

func newBase(title string) Base {
	return Base{ID: NewID(), Title: strings.TrimSpace(title), Status: StatusAvailable}
}

func NewAudio(title string, d AudioDetails) Item {
	return Item{Kind: KindAudio, Base: newBase(title), Audio: &d}
}

func NewBook(title string, d BookDetails) Item {
	return Item{Kind: KindBook, Base: newBase(title), Book: &d}
}

func NewMiscellaneous(title string) Item {
	return Item{Kind: KindMiscellaneous, Base: newBase(title)}
}

func NewMagazine(title string, d MagazineDetails) Item {
	return Item{Kind: KindMagazine, Base: newBase(title), Magazine: &d}
}

func NewVideo(title string, d VideoDetails) Item {
	return Item{Kind: KindVideo, Base: newBase(title), Video: &d}
}

// Loaned reports whether the item is currently out.
func (it Item) Loaned() bool { return it.Status == StatusLoaned }

// Loan marks the item as out to loanee, optionally until due.
func (it *Item) Loan(loanee string, due *Date) {
	it.Status = StatusLoaned
	it.Loanee = strings.TrimSpace(loanee)
	it.DueDate = due
}

// Return marks the item as available and clears the loan fields.
func (it *Item) Return() {
	it.Status = StatusAvailable
	it.Loanee = ""
	it.DueDate = nil
}

// Overdue reports whether a loaned item is past its due date on day.
func (it Item) Overdue(day Date) bool {
	return it.Loaned() && it.DueDate != nil && it.DueDate.Before(day)
}

// Creator is the primary credit shown in listings (author, artist or publisher).
func (it Item) Creator() string {
	switch it.Kind {
	case KindAudio:
		if it.Audio != nil {
			return it.Audio.Artist
		}
	case KindBook:
		if it.Book != nil {
			return it.Book.Author
		}
	case KindMagazine:
		if it.Magazine != nil {
			return it.Magazine.Publisher
		}
	case KindVideo:
		if it.Video != nil {
			return it.Video.Publisher
		}
	}
	return ""
}
