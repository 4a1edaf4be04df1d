package model

import (
	"fmt"
	"strings"
)

// PlaylistEntry represents a single video in a playlist
type PlaylistEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Playlist represents a listed playlist. Entries are informational only:
// each one is downloaded as its own job.
type Playlist struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	URL     string           `json:"url"`
	Entries []*PlaylistEntry `json:"entries"`
}

// Len returns the number of entries
func (p *Playlist) Len() int {
	return len(p.Entries)
}

// Text renders one numbered line per entry
func (p *Playlist) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d videos)\n", p.Title, p.Len())
	for i, e := range p.Entries {
		fmt.Fprintf(&b, "%3d. %s\n     %s\n", i+1, e.Title, e.URL)
	}
	return b.String()
}
