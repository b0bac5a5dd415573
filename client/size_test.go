package client

import (
	"errors"
	"net/textproto"
	"reflect"
	"testing"
)

func TestSize(t *testing.T) {
	conn := newFakeConn()
	conn.sizes["data.csv"] = 4096
	s := testSession(conn)

	n, known, err := s.Size("data.csv")
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if !known || n != 4096 {
		t.Errorf("Size = (%d, %v), want (4096, true)", n, known)
	}

	// Binary mode must be forced before the query.
	want := []string{"TYPE I", "SIZE data.csv"}
	if !reflect.DeepEqual(conn.calls, want) {
		t.Errorf("calls:\n got %v\nwant %v", conn.calls, want)
	}
}

func TestSizeDeclinedByServer(t *testing.T) {
	conn := newFakeConn()
	conn.sizeErr = &textproto.Error{Code: 550, Msg: "SIZE not allowed in ASCII mode"}
	s := testSession(conn)

	n, known, err := s.Size("data.csv")
	if err != nil {
		t.Fatalf("a declined SIZE must not be an error, got %v", err)
	}
	if known || n != 0 {
		t.Errorf("Size = (%d, %v), want (0, false)", n, known)
	}
}

func TestSizeTransportFailure(t *testing.T) {
	conn := newFakeConn()
	conn.sizeErr = errors.New("connection reset")
	s := testSession(conn)

	_, _, err := s.Size("data.csv")
	if err == nil {
		t.Fatal("transport failure must surface as an error")
	}
}
