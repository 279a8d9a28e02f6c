// Package inventory provides the recursive item container model shared by
// tiles and the player profile.
package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Item is the persisted form of an item and everything it contains.
//
// The JSON shape is {"name": string, "desc": string, "contains": [Item]}.
type Item struct {
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Contains []Item `json:"contains"`
}

// MarshalJSON always writes contains as a list, never null.
func (it Item) MarshalJSON() ([]byte, error) {
	type plain Item
	p := plain(it)
	if p.Contains == nil {
		p.Contains = []Item{}
	}
	return json.Marshal(p)
}

// UnmarshalJSON reads an item object leniently: a name or desc that is not a
// string decodes as "", and a contains value that is not a list decodes as an
// empty list.
//
// Postcondition: Returns an error only when data is not a JSON object or a
// nested item is malformed.
func (it *Item) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("item must be an object: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("item must be an object, got null")
	}
	*it = Item{
		Name: lenientString(raw["name"]),
		Desc: lenientString(raw["desc"]),
	}
	if c, ok := raw["contains"]; ok && isList(c) {
		if err := json.Unmarshal(c, &it.Contains); err != nil {
			return fmt.Errorf("item %q: %w", it.Name, err)
		}
	}
	return nil
}

// DecodeList decodes a JSON value that should be a list of items. Anything
// other than a list yields an empty list.
func DecodeList(data json.RawMessage) ([]Item, error) {
	if !isList(data) {
		return []Item{}, nil
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Normalize returns the form of name used for matching: trimmed and
// case-folded.
func Normalize(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Matches reports whether the item's name equals target under Normalize.
func (it Item) Matches(target string) bool {
	return Normalize(it.Name) == Normalize(target)
}

// Line renders the item as a list entry: "- name: desc", or "- name" when the
// description is blank.
func (it Item) Line() string {
	name := it.Name
	if name == "" {
		name = "???"
	}
	if d := strings.TrimSpace(it.Desc); d != "" {
		return "- " + name + ": " + d
	}
	return "- " + name
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := Item{Name: it.Name, Desc: it.Desc}
	if len(it.Contains) > 0 {
		out.Contains = make([]Item, len(it.Contains))
		for i, c := range it.Contains {
			out.Contains[i] = c.Clone()
		}
	}
	return out
}

func lenientString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func isList(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
