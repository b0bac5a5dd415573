package client

import (
	"fmt"
	"os"
	"path/filepath"
)

type uploadOptions struct {
	remoteName string
	overwrite  bool
}

// UploadOption adjusts a single UploadFile call.
type UploadOption func(*uploadOptions)

// WithRemoteName stores the upload under name instead of the local base
// name.
func WithRemoteName(name string) UploadOption {
	return func(o *uploadOptions) { o.remoteName = name }
}

// NoOverwrite makes UploadFile fail with ErrRemoteFileExists instead of
// replacing a file already present (case-insensitively) on the server.
func NoOverwrite() UploadOption {
	return func(o *uploadOptions) { o.overwrite = false }
}

// UploadFile streams the local file into the session's current remote
// directory. The working directory is left untouched.
//
// The local path must name an existing regular file; that is checked
// before any network traffic. After the transfer the directory is
// re-listed and the target name must be present, otherwise an
// *UploadError is returned. Some servers acknowledge a STOR they never
// applied; the listing check is the only integrity guard here.
func (s *Session) UploadFile(localPath string, opts ...UploadOption) error {
	if err := s.ready(); err != nil {
		return err
	}

	o := uploadOptions{overwrite: true}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(localPath)
	if err != nil || !info.Mode().IsRegular() {
		s.log.Error("upload source missing", "file", localPath)
		return fmt.Errorf("%q: %w", localPath, ErrLocalFileNotFound)
	}

	remoteName := o.remoteName
	if remoteName == "" {
		remoteName = filepath.Base(localPath)
	}

	if !o.overwrite {
		exists, err := s.FileExists(remoteName)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%q: %w", remoteName, ErrRemoteFileExists)
		}
	}

	f, err := os.Open(localPath)
	if err != nil {
		s.log.Error("could not open upload source", "file", localPath, "err", err)
		return fmt.Errorf("open %q: %w", localPath, err)
	}
	defer f.Close()

	if err := s.conn.Stor(remoteName, f); err != nil {
		s.log.Error("stor failed", "file", localPath, "remote", remoteName, "err", err)
		return fmt.Errorf("stor %q: %w", remoteName, err)
	}
	storResp := ""
	if sr, ok := s.conn.(storResponder); ok {
		storResp = sr.LastStorResponse()
	}

	uploaded, err := s.FileExists(remoteName)
	if err != nil {
		return err
	}
	if !uploaded {
		s.log.Error("upload missing on server after transfer",
			"file", localPath, "remote", remoteName, "response", storResp)
		return &UploadError{Local: localPath, Remote: remoteName, Response: storResp}
	}

	return nil
}
