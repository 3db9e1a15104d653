package model

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for positions outside the catalogue.
var ErrIndexOutOfRange = errors.New("index out of range")

// Catalogue is an ordered collection of items of any kind. It enforces no
// uniqueness; callers that care use Find before Add.
type Catalogue struct {
	items []Item
}

func NewCatalogue(items ...Item) *Catalogue {
	c := &Catalogue{}
	c.Replace(items)
	return c
}

// All returns a copy of the items in insertion order.
func (c *Catalogue) All() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalogue) Len() int { return len(c.items) }

func (c *Catalogue) At(i int) (Item, error) {
	if err := c.check(i); err != nil {
		return Item{}, err
	}
	return c.items[i], nil
}

func (c *Catalogue) Add(it Item) { c.items = append(c.items, it) }

func (c *Catalogue) Set(i int, it Item) error {
	if err := c.check(i); err != nil {
		return err
	}
	c.items[i] = it
	return nil
}

// Remove deletes the item at i and returns it.
func (c *Catalogue) Remove(i int) (Item, error) {
	if err := c.check(i); err != nil {
		return Item{}, err
	}
	it := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	return it, nil
}

// Replace swaps the whole contents, typically with a freshly decoded list.
func (c *Catalogue) Replace(items []Item) {
	c.items = make([]Item, len(items))
	copy(c.items, items)
}

// Find returns the index of the first item with the given ID, or -1.
func (c *Catalogue) Find(id string) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Count tallies items per kind.
func (c *Catalogue) Count() map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, it := range c.items {
		counts[it.Kind]++
	}
	return counts
}

func (c *Catalogue) check(i int) error {
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(c.items), i)
	}
	return nil
}
