package client

import (
	"fmt"
	"strings"

	"github.com/jlaffaye/ftp"
)

// Listing is the parsed result of one LIST command: directory and file
// names in server order, without size or timestamp metadata.
type Listing struct {
	Dirs  []string
	Files []string
}

// HasDir reports whether name appears among the directory names. The
// comparison is exact; "." counts as always present.
func (l Listing) HasDir(name string) bool {
	if name == "." {
		return true
	}
	for _, d := range l.Dirs {
		if d == name {
			return true
		}
	}
	return false
}

// HasFile reports whether name appears among the file names, compared
// case-insensitively. No other normalization is applied.
func (l Listing) HasFile(name string) bool {
	for _, f := range l.Files {
		if strings.EqualFold(f, name) {
			return true
		}
	}
	return false
}

// ParseLines partitions raw long-format LIST lines into a Listing. A
// line whose first character is 'd' is a directory; the entry name is
// the whitespace-delimited tokens from the 9th onward joined by single
// spaces. Deployed archive servers answer in exactly this shape, so the
// fixed offsets are kept verbatim; servers with another dialect need a
// different parser, which is why this is the only place the rule lives.
func ParseLines(lines []string) Listing {
	var l Listing
	for _, line := range lines {
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		name := ""
		if len(fields) > 8 {
			name = strings.Join(fields[8:], " ")
		}
		if line[0] == 'd' {
			l.Dirs = append(l.Dirs, name)
		} else {
			l.Files = append(l.Files, name)
		}
	}
	return l
}

// partitionEntries builds a Listing from the transport's typed entries,
// keeping server order. Symlinks are reported as files, matching what
// the long-format rule does with their 'l' type indicator.
func partitionEntries(entries []*ftp.Entry) Listing {
	var l Listing
	for _, e := range entries {
		if e.Type == ftp.EntryTypeFolder {
			l.Dirs = append(l.Dirs, e.Name)
		} else {
			l.Files = append(l.Files, e.Name)
		}
	}
	return l
}

// ListContents lists path on the server. An empty path means the
// current working directory. Every call re-issues the LIST command;
// nothing is cached.
func (s *Session) ListContents(path string) (Listing, error) {
	if err := s.ready(); err != nil {
		return Listing{}, err
	}

	if rl, ok := s.conn.(rawLister); ok {
		lines, err := rl.ListLines(path)
		if err != nil {
			s.log.Error("list failed", "path", path, "err", err)
			return Listing{}, fmt.Errorf("list %q: %w", path, err)
		}
		return ParseLines(lines), nil
	}

	entries, err := s.conn.List(path)
	if err != nil {
		s.log.Error("list failed", "path", path, "err", err)
		return Listing{}, fmt.Errorf("list %q: %w", path, err)
	}
	return partitionEntries(entries), nil
}

// FileExists checks path-free filename membership in the current remote
// directory, case-insensitively. The listing is fetched fresh.
func (s *Session) FileExists(name string) (bool, error) {
	l, err := s.ListContents("")
	if err != nil {
		return false, err
	}
	return l.HasFile(name), nil
}
