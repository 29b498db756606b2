package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrMalformedBlob is returned by Decode when the stored value is not a
// JSON array of items.
var ErrMalformedBlob = errors.New("malformed todo blob")

// Item is the domain model for a todo entry.
type Item struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// SortByIDDesc orders items by id, highest first.
func SortByIDDesc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID > items[j].ID })
}

// NextID returns the id for a new item prepended to an id-descending list.
func NextID(items []Item) int {
	if len(items) == 0 {
		return 1
	}
	return items[0].ID + 1
}

// Encode serializes the whole list. A nil list encodes as "[]".
func Encode(items []Item) (string, error) {
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// Decode parses a blob written by Encode.
func Decode(blob string) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal([]byte(blob), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}
	return items, nil
}

// Stats counts completed and pending items.
func Stats(items []Item) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
