package client

import (
	"errors"
	"fmt"
)

// Sentinel errors that callers are expected to branch on with errors.Is.
var (
	// ErrLocalFileNotFound is returned by UploadFile when the local path
	// does not name an existing regular file. No network traffic has
	// happened when this is returned.
	ErrLocalFileNotFound = errors.New("local file does not exist")

	// ErrRemoteFileExists is returned by UploadFile when overwriting is
	// disabled and the remote directory already holds the target name
	// (compared case-insensitively). It signals an expected outcome, not
	// a transfer failure.
	ErrRemoteFileExists = errors.New("file already exists on server")

	// ErrSessionClosed is returned when a command is issued after Close.
	ErrSessionClosed = errors.New("session is closed")

	// ErrNotAuthenticated is returned when a command is issued before a
	// successful Login.
	ErrNotAuthenticated = errors.New("session is not authenticated")
)

// ConnError reports a failure to reach the server: name resolution,
// socket connection or the TLS handshake. The attempt produced no usable
// session; a retry needs a fresh Connect.
type ConnError struct {
	Host string
	Err  error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Host, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// AuthError reports rejected credentials. The control connection is still
// open but the session must not be used for further commands.
type AuthError struct {
	Host string
	User string
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login %s@%s: %v", e.User, e.Host, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// DirError reports a rejected CWD or MKD. The session remains usable.
type DirError struct {
	Path string
	Err  error
}

func (e *DirError) Error() string {
	return fmt.Sprintf("change directory %q: %v", e.Path, e.Err)
}

func (e *DirError) Unwrap() error { return e.Err }

// UploadError reports a transfer that the server accepted without error
// but whose target did not appear in the directory listing afterwards.
// Response carries whatever completion text the transfer returned, for
// diagnostics against silently failing servers.
type UploadError struct {
	Local    string
	Remote   string
	Response string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %s as %s: file missing on server after transfer (response %q)",
		e.Local, e.Remote, e.Response)
}
