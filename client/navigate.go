package client

import (
	"fmt"
	"regexp"
)

// Directory names pushed to the archive are restricted to a safe
// character set; anything else collapses to underscores.
var dirNameSanitizer = regexp.MustCompile(`[^0-9a-zA-Z_]+`)

// ChangeDirectory ensures dir exists under the current working
// directory, enters it, then does the same for the current four-digit
// year. After ChangeDirectory("logs") in 2024 the session sits in
// .../logs/2024, whether or not either level pre-existed.
//
// Characters outside [0-9A-Za-z_] in dir are replaced with underscores
// before any command is sent; the substitution is logged as a warning
// and is not an error.
func (s *Session) ChangeDirectory(dir string) error {
	if err := s.ready(); err != nil {
		return err
	}

	checked := dirNameSanitizer.ReplaceAllString(dir, "_")
	if checked != dir {
		s.log.Warn("invalid characters in directory name",
			"requested", dir, "using", checked)
	}

	if err := s.enterSubdir(checked); err != nil {
		s.log.Error("could not change directory", "dir", dir, "err", err)
		return &DirError{Path: dir, Err: err}
	}

	year := s.now().Format("2006")
	if err := s.enterSubdir(year); err != nil {
		s.log.Error("could not change to year directory", "dir", dir, "year", year, "err", err)
		return &DirError{Path: dir + "/" + year, Err: err}
	}

	return nil
}

// enterSubdir creates name under the current directory when it is
// missing, then changes into it.
func (s *Session) enterSubdir(name string) error {
	if err := s.ensureSubdir(name); err != nil {
		return err
	}
	return s.conn.ChangeDir(name)
}

// ensureSubdir checks the current directory's listing for name and
// issues MKD when it is absent. The listing and the create are not
// atomic; this session is the only writer, so no concurrent creation is
// expected.
func (s *Session) ensureSubdir(name string) error {
	l, err := s.ListContents("")
	if err != nil {
		return err
	}
	if l.HasDir(name) {
		return nil
	}

	s.log.Debug("creating directory on server", "dir", name)
	return s.conn.MakeDir(name)
}

// CurrentDir returns the server-reported working directory.
func (s *Session) CurrentDir() (string, error) {
	if err := s.ready(); err != nil {
		return "", err
	}

	wd, err := s.conn.CurrentDir()
	if err != nil {
		s.log.Error("pwd failed", "err", err)
		return "", fmt.Errorf("pwd: %w", err)
	}
	return wd, nil
}
