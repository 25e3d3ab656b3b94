package storage

import (
	"errors"
	"io"
)

var ErrBadKey = errors.New("bad blob key")

// BlobStore keeps raw uploads, e.g. the pasted text of a bulk import.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}
