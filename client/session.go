// Package client implements an FTP session wrapper for pushing
// instrument data and log files to a central archive. Uploads land in a
// year-stamped subdirectory of the configured base directory, which is
// created on demand.
//
// A Session speaks to exactly one server over one connection and must be
// used from a single goroutine; callers that want parallel pushes open
// independent sessions.
package client

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/textproto"
	"time"
)

// DefaultTimeout is the connection timeout used when WithTimeout is not
// given.
const DefaultTimeout = 20 * time.Second

type state int

const (
	stateConnected state = iota // transport open, not logged in
	stateAuthenticated
	stateClosed
)

type options struct {
	timeout   time.Duration
	secure    bool
	tlsConfig *tls.Config
	logger    *slog.Logger
}

// Option configures a Session at Connect time.
type Option func(*options)

// WithTimeout sets the timeout for the control connection.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithTransportSecurity switches transport encryption on or off. It is
// on by default (explicit TLS on the standard port).
func WithTransportSecurity(enabled bool) Option {
	return func(o *options) { o.secure = enabled }
}

// WithTLSConfig supplies the TLS configuration used when transport
// security is enabled. Without it a default configuration with the
// server name filled in is used.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) { o.tlsConfig = cfg }
}

// WithLogger sets the logger the Session reports failures and warnings
// to. Without it nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Session is one connection to the archive server. Its lifecycle is
// Connect (transport open) -> Login (commands allowed) -> Close
// (transport released, session unusable).
type Session struct {
	conn   Conn
	host   string
	secure bool
	log    *slog.Logger
	state  state
	now    func() time.Time
}

// Connect resolves addr and opens the control connection. The address
// may be "host" or "host:port". No credentials are sent; call Login
// before issuing commands.
func Connect(addr string, opts ...Option) (*Session, error) {
	o := &options{
		timeout: DefaultTimeout,
		secure:  true,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	conn, err := dial(addr, o)
	if err != nil {
		o.logger.Error("could not connect", "host", addr, "err", err)
		return nil, &ConnError{Host: addr, Err: err}
	}

	return &Session{
		conn:   conn,
		host:   addr,
		secure: o.secure,
		log:    o.logger,
		state:  stateConnected,
		now:    time.Now,
	}, nil
}

// Open is Connect followed by Login. On a login failure the connection
// is released before returning.
func Open(addr, user, password string, opts ...Option) (*Session, error) {
	s, err := Connect(addr, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Login(user, password); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// With runs fn against a freshly opened session and always releases it,
// whether fn succeeds, fails or panics.
func With(addr, user, password string, fn func(*Session) error, opts ...Option) error {
	s, err := Open(addr, user, password, opts...)
	if err != nil {
		return err
	}
	return runScoped(s, fn)
}

func runScoped(s *Session, fn func(*Session) error) error {
	defer s.Close()
	return fn(s)
}

// Login authenticates with the server. On rejection the session stays
// connected but unauthenticated; the caller must not issue further
// commands.
func (s *Session) Login(user, password string) error {
	if s.state == stateClosed {
		return ErrSessionClosed
	}

	if err := s.conn.Login(user, password); err != nil {
		s.log.Error("could not log in", "host", s.host, "user", user, "err", err)
		var perr *textproto.Error
		if errors.As(err, &perr) {
			return &AuthError{Host: s.host, User: user, Err: err}
		}
		return fmt.Errorf("login %s: %w", s.host, err)
	}

	s.state = stateAuthenticated
	return nil
}

// Close sends QUIT and releases the transport. The session is unusable
// afterward even when the server answered QUIT with an error. Close is
// idempotent so a deferred call fires at most once against the server.
func (s *Session) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed

	if err := s.conn.Quit(); err != nil {
		s.log.Error("quit failed", "host", s.host, "err", err)
		return fmt.Errorf("quit %s: %w", s.host, err)
	}
	return nil
}

// Secure reports whether transport security was negotiated for this
// session.
func (s *Session) Secure() bool { return s.secure }

// ready gates the commands that need an authenticated session.
func (s *Session) ready() error {
	switch s.state {
	case stateClosed:
		return ErrSessionClosed
	case stateConnected:
		return ErrNotAuthenticated
	}
	return nil
}
