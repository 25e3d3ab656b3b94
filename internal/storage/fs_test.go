package storage

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFSStorePutGetDelete(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	key, err := s.Put("imports/q1/raw.txt", strings.NewReader("Wat is 2 + 2?|4"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "imports/q1/raw.txt" {
		t.Fatalf("key = %q", key)
	}
	rc, err := s.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	rc.Close()
	if string(b) != "Wat is 2 + 2?|4" {
		t.Fatalf("content = %q", b)
	}
	if err := s.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(key); err != nil {
		t.Fatalf("second Delete should be a no-op, got %v", err)
	}
}

func TestFSStoreKeysStayInsideBase(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key, err := s.Put("../../etc/passwd", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if key != "etc/passwd" {
		t.Fatalf("escaping key was not confined: %q", key)
	}
	if _, err := s.Put("", strings.NewReader("x")); !errors.Is(err, ErrBadKey) {
		t.Fatalf("empty key err = %v", err)
	}
}
