package client

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jlaffaye/ftp"
)

// fakeConn is a scripted, in-memory transport. It models a single
// remote directory (dirs + files), records every command it receives
// and lets tests inject failures per command.
type fakeConn struct {
	calls []string

	dirs  []string
	files []string

	loginErr error
	cwdErr   error
	mkdErr   error
	listErr  error
	storErr  error
	quitErr  error

	// storAppears controls whether a stored file shows up in later
	// listings, to simulate servers that acknowledge and drop uploads.
	storAppears bool
	storResp    string
	storBody    []byte

	sizes   map[string]int64
	sizeErr error
}

func newFakeConn() *fakeConn {
	return &fakeConn{storAppears: true, sizes: map[string]int64{}}
}

func (c *fakeConn) record(format string, args ...any) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

func (c *fakeConn) count(prefix string) int {
	n := 0
	for _, call := range c.calls {
		if len(call) >= len(prefix) && call[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (c *fakeConn) Login(user, password string) error {
	c.record("USER %s", user)
	return c.loginErr
}

func (c *fakeConn) ChangeDir(path string) error {
	c.record("CWD %s", path)
	return c.cwdErr
}

func (c *fakeConn) MakeDir(path string) error {
	c.record("MKD %s", path)
	if c.mkdErr != nil {
		return c.mkdErr
	}
	c.dirs = append(c.dirs, path)
	return nil
}

func (c *fakeConn) CurrentDir() (string, error) {
	c.record("PWD")
	return "/remote", nil
}

func (c *fakeConn) List(path string) ([]*ftp.Entry, error) {
	c.record("LIST %s", path)
	if c.listErr != nil {
		return nil, c.listErr
	}
	var entries []*ftp.Entry
	for _, d := range c.dirs {
		entries = append(entries, &ftp.Entry{Name: d, Type: ftp.EntryTypeFolder})
	}
	for _, f := range c.files {
		entries = append(entries, &ftp.Entry{Name: f, Type: ftp.EntryTypeFile})
	}
	return entries, nil
}

func (c *fakeConn) Stor(path string, r io.Reader) error {
	c.record("STOR %s", path)
	if c.storErr != nil {
		return c.storErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.storBody = body
	if c.storAppears {
		c.files = append(c.files, path)
	}
	return nil
}

func (c *fakeConn) LastStorResponse() string { return c.storResp }

func (c *fakeConn) FileSize(path string) (int64, error) {
	c.record("SIZE %s", path)
	if c.sizeErr != nil {
		return 0, c.sizeErr
	}
	return c.sizes[path], nil
}

func (c *fakeConn) Type(t ftp.TransferType) error {
	c.record("TYPE %s", string(t))
	return nil
}

func (c *fakeConn) Quit() error {
	c.record("QUIT")
	return c.quitErr
}

// fakeRawConn additionally exposes raw LIST lines, exercising the
// fixed-offset parsing path of ListContents.
type fakeRawConn struct {
	*fakeConn
	lines []string
}

func (c *fakeRawConn) ListLines(path string) ([]string, error) {
	c.record("LIST(raw) %s", path)
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.lines, nil
}

// testSession wires a fake transport into an authenticated Session with
// a fixed clock.
func testSession(c Conn) *Session {
	return &Session{
		conn:  c,
		host:  "archive.test:21",
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		state: stateAuthenticated,
		now:   func() time.Time { return time.Date(2025, time.March, 14, 10, 0, 0, 0, time.UTC) },
	}
}
