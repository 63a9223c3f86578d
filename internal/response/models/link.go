package models

import "slices"

// Link points at supporting material. Both fields are optional.
type Link struct {
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Clone returns an independently allocated copy, or nil for a nil link.
func (l *Link) Clone() *Link {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}

// cloneLinks copies links, mapping nil to an empty list.
func cloneLinks(links []Link) []Link {
	if links == nil {
		return []Link{}
	}
	return slices.Clone(links)
}
