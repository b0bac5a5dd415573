package client

import (
	"errors"
	"fmt"
	"net/textproto"

	"github.com/jlaffaye/ftp"
)

// Size asks the server for the byte size of name in the current remote
// directory. The transfer type is forced to binary first; some servers
// refuse SIZE in ASCII mode.
//
// The second result reports whether the server answered. A server that
// declines the SIZE command yields (0, false, nil) rather than an
// error, since that refusal is legitimate; only transport failures are
// returned as errors.
func (s *Session) Size(name string) (int64, bool, error) {
	if err := s.ready(); err != nil {
		return 0, false, err
	}

	if err := s.conn.Type(ftp.TransferTypeBinary); err != nil {
		s.log.Error("could not switch to binary mode", "file", name, "err", err)
		return 0, false, fmt.Errorf("type binary: %w", err)
	}

	n, err := s.conn.FileSize(name)
	if err != nil {
		var perr *textproto.Error
		if errors.As(err, &perr) {
			s.log.Debug("server declined size query", "file", name, "code", perr.Code)
			return 0, false, nil
		}
		s.log.Error("size query failed", "file", name, "err", err)
		return 0, false, fmt.Errorf("size %q: %w", name, err)
	}

	return n, true, nil
}
