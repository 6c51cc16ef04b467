package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrNotFound is returned when a result file does not exist.
var ErrNotFound = errors.New("result file not found")

// ResultStore is a read-only view of the result files. Names are plain
// file names such as "test.2025.hsc.science.2024-2025.json".
type ResultStore interface {
	// List returns every "*.json" name in the store.
	List(ctx context.Context) ([]string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type Driver string

const (
	DriverFS Driver = "fs"
	DriverS3 Driver = "s3"
)

// Options selects and configures a store backend.
type Options struct {
	Driver Driver
	Dir    string
	S3     S3Config
}

// New opens the configured backend.
func New(ctx context.Context, o Options) (ResultStore, error) {
	switch o.Driver {
	case "", DriverFS:
		return NewFSStore(o.Dir), nil
	case DriverS3:
		if o.S3.Bucket == "" {
			return nil, errors.New("S3_BUCKET is required for the s3 results driver")
		}
		return NewS3Store(ctx, o.S3)
	default:
		return nil, fmt.Errorf("unsupported results driver: %s", o.Driver)
	}
}
