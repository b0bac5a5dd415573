package client

import (
	"crypto/tls"
	"io"
	"net"

	"github.com/jlaffaye/ftp"
)

// Conn is the slice of the FTP protocol this package needs from its
// transport library. *ftp.ServerConn satisfies it directly; tests use
// scripted fakes.
type Conn interface {
	Login(user, password string) error
	ChangeDir(path string) error
	MakeDir(path string) error
	CurrentDir() (string, error)
	List(path string) ([]*ftp.Entry, error)
	Stor(path string, r io.Reader) error
	FileSize(path string) (int64, error)
	Type(transferType ftp.TransferType) error
	Quit() error
}

// rawLister is optionally implemented by transports that expose the raw
// LIST response lines. When available, listings go through ParseLines
// instead of the transport's own entry parsing.
type rawLister interface {
	ListLines(path string) ([]string, error)
}

// storResponder is optionally implemented by transports that retain the
// completion text of the last STOR. It feeds the diagnostic field of
// UploadError; transports without it report an empty response.
type storResponder interface {
	LastStorResponse() string
}

// dial opens the control connection. The address may omit the port, in
// which case the standard FTP port is used.
func dial(addr string, o *options) (Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
		addr = net.JoinHostPort(addr, "21")
	}

	dialOpts := []ftp.DialOption{ftp.DialWithTimeout(o.timeout)}
	if o.secure {
		cfg := o.tlsConfig
		if cfg == nil {
			cfg = &tls.Config{ServerName: host}
		}
		dialOpts = append(dialOpts, ftp.DialWithExplicitTLS(cfg))
	}

	return ftp.Dial(addr, dialOpts...)
}
