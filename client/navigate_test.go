package client

import (
	"errors"
	"net/textproto"
	"reflect"
	"testing"
)

func TestChangeDirectoryCreatesBaseAndYear(t *testing.T) {
	conn := newFakeConn() // empty remote directory, clock fixed to 2025
	s := testSession(conn)

	if err := s.ChangeDirectory("archive"); err != nil {
		t.Fatalf("ChangeDirectory: %v", err)
	}

	want := []string{
		"LIST ", "MKD archive", "CWD archive",
		"LIST ", "MKD 2025", "CWD 2025",
	}
	if !reflect.DeepEqual(conn.calls, want) {
		t.Errorf("calls:\n got %v\nwant %v", conn.calls, want)
	}
}

func TestChangeDirectorySkipsExistingDirectories(t *testing.T) {
	conn := newFakeConn()
	conn.dirs = []string{"archive", "2025"}
	s := testSession(conn)

	if err := s.ChangeDirectory("archive"); err != nil {
		t.Fatalf("ChangeDirectory: %v", err)
	}

	if got := conn.count("MKD"); got != 0 {
		t.Errorf("expected no MKD for pre-existing directories, calls: %v", conn.calls)
	}
	want := []string{"LIST ", "CWD archive", "LIST ", "CWD 2025"}
	if !reflect.DeepEqual(conn.calls, want) {
		t.Errorf("calls:\n got %v\nwant %v", conn.calls, want)
	}
}

func TestChangeDirectorySanitizesName(t *testing.T) {
	conn := newFakeConn()
	s := testSession(conn)

	name := "my logs!"
	if err := s.ChangeDirectory(name); err != nil {
		t.Fatalf("ChangeDirectory: %v", err)
	}
	if name != "my logs!" {
		t.Error("argument mutated")
	}

	for _, call := range conn.calls {
		if call == "MKD my logs!" || call == "CWD my logs!" {
			t.Fatalf("unsanitized name sent to server: %v", conn.calls)
		}
	}
	if conn.count("MKD my_logs_") != 1 || conn.count("CWD my_logs_") != 1 {
		t.Errorf("expected sanitized my_logs_ in commands, calls: %v", conn.calls)
	}
}

func TestChangeDirectoryRejectionIsDirError(t *testing.T) {
	conn := newFakeConn()
	conn.cwdErr = &textproto.Error{Code: 550, Msg: "Permission denied"}
	s := testSession(conn)

	err := s.ChangeDirectory("archive")
	var derr *DirError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want *DirError", err)
	}
	if derr.Path != "archive" {
		t.Errorf("DirError.Path = %q, want archive", derr.Path)
	}
}

func TestCurrentDir(t *testing.T) {
	conn := newFakeConn()
	s := testSession(conn)

	wd, err := s.CurrentDir()
	if err != nil {
		t.Fatalf("CurrentDir: %v", err)
	}
	if wd != "/remote" {
		t.Errorf("CurrentDir = %q, want /remote", wd)
	}
	if !reflect.DeepEqual(conn.calls, []string{"PWD"}) {
		t.Errorf("calls: %v", conn.calls)
	}
}
