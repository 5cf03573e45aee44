package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"internship-tracker/internal/shared/storage/object"
	"internship-tracker/internal/shared/util"
)

const snapshotContentType = "application/json"

// ObjectStore keeps each value as a <key>.json blob in an object store.
type ObjectStore struct {
	objects object.ObjectStore
}

// NewObjectStore wraps an object store (local filesystem or S3).
func NewObjectStore(objects object.ObjectStore) *ObjectStore {
	return &ObjectStore{objects: objects}
}

func (o *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	storageKey, err := storageKeyFor(key)
	if err != nil {
		return nil, err
	}
	rc, err := o.objects.Open(ctx, storageKey)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", storageKey, err)
	}
	return data, nil
}

func (o *ObjectStore) Set(ctx context.Context, key string, value []byte) error {
	storageKey, err := storageKeyFor(key)
	if err != nil {
		return err
	}
	_, err = o.objects.Put(ctx, storageKey, snapshotContentType, bytes.NewReader(value))
	return err
}

func storageKeyFor(key string) (string, error) {
	name, err := util.SanitizeFileName(key)
	if err != nil {
		return "", fmt.Errorf("storage key %q: %w", key, err)
	}
	return name + ".json", nil
}
