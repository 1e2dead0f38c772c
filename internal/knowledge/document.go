// Package knowledge owns the project knowledge file: the three-section
// markdown document session stubs are inserted into and the external
// curation commands later consolidate.
package knowledge

import (
	"fmt"
	"strings"
)

const (
	// FileName is the knowledge file at the project root.
	FileName = "CLAUDE-learned.md"

	HeaderRecent       = "## Recent Sessions"
	HeaderConsolidated = "## Consolidated Learnings"
	HeaderArchived     = "## Archived"

	// Marker is the sentinel under the Recent Sessions header that new
	// stubs are inserted after, keeping the section newest-first.
	Marker = "<!-- New entries are prepended below this line -->"
)

// Template is the initial knowledge file content. Creation from it is
// idempotent: an existing file is never overwritten.
const Template = `# Project Learnings

Auto-captured session knowledge. Entries under Recent Sessions are raw
stubs awaiting review; curation moves the durable ones into
Consolidated Learnings and retires the rest to Archived.

Last curated: (never)

` + HeaderRecent + `

` + Marker + `

` + HeaderConsolidated + `

` + HeaderArchived + `
`

// Document is the parsed knowledge file: the line arena plus indices
// of the three section headers and the insertion sentinel. Indexing
// the regions up front keeps insertion independent of incidental
// formatting drift elsewhere in the file.
type Document struct {
	lines []string

	recent       int
	consolidated int
	archived     int
	marker       int // -1 when the sentinel was removed by hand
}

// Parse validates and indexes knowledge file content. All three
// section headers must be present, in order.
func Parse(content string) (*Document, error) {
	d := &Document{
		lines:        strings.Split(content, "\n"),
		recent:       -1,
		consolidated: -1,
		archived:     -1,
		marker:       -1,
	}

	for i, line := range d.lines {
		switch strings.TrimRight(line, " \t") {
		case HeaderRecent:
			if d.recent == -1 {
				d.recent = i
			}
		case HeaderConsolidated:
			if d.consolidated == -1 {
				d.consolidated = i
			}
		case HeaderArchived:
			if d.archived == -1 {
				d.archived = i
			}
		case Marker:
			if d.marker == -1 {
				d.marker = i
			}
		}
	}

	switch {
	case d.recent == -1:
		return nil, fmt.Errorf("knowledge file: missing %q section", HeaderRecent)
	case d.consolidated == -1:
		return nil, fmt.Errorf("knowledge file: missing %q section", HeaderConsolidated)
	case d.archived == -1:
		return nil, fmt.Errorf("knowledge file: missing %q section", HeaderArchived)
	case d.recent > d.consolidated || d.consolidated > d.archived:
		return nil, fmt.Errorf("knowledge file: sections out of order")
	}
	// A hand-edited file may have lost the sentinel, or carry one in a
	// later section; only one under Recent Sessions counts.
	if d.marker < d.recent || d.marker > d.consolidated {
		d.marker = -1
	}

	return d, nil
}

// InsertStub places a stub entry at the head of the Recent Sessions
// region: right after the sentinel, or after the section header when
// the sentinel is gone. Existing lines are never removed or reordered.
func (d *Document) InsertStub(stub string) {
	at := d.marker
	if at == -1 {
		at = d.recent
	}

	block := append([]string{""}, strings.Split(strings.TrimRight(stub, "\n"), "\n")...)

	lines := make([]string, 0, len(d.lines)+len(block))
	lines = append(lines, d.lines[:at+1]...)
	lines = append(lines, block...)
	lines = append(lines, d.lines[at+1:]...)
	d.lines = lines

	shift := len(block)
	if d.marker != -1 && d.marker > at {
		d.marker += shift
	}
	if d.consolidated > at {
		d.consolidated += shift
	}
	if d.archived > at {
		d.archived += shift
	}
}

// RecentStubs returns the raw lines of the Recent Sessions region,
// between the sentinel (or header) and the next section.
func (d *Document) RecentStubs() []string {
	start := d.marker
	if start == -1 {
		start = d.recent
	}
	return d.lines[start+1 : d.consolidated]
}

func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}
