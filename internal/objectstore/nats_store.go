// Package objectstore stores synthesized audio in a NATS JetStream object store.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
)

// NatsObjectStore implements the core.ObjectStore interface using NATS JetStream.
type NatsObjectStore struct {
	bucket string
	store  nats.ObjectStore
}

// New binds to bucketName, creating the bucket when it does not exist yet.
func New(jetstreamContext nats.JetStreamContext, bucketName string) (*NatsObjectStore, error) {
	store, err := jetstreamContext.ObjectStore(bucketName)
	if errors.Is(err, nats.ErrStreamNotFound) || errors.Is(err, nats.ErrBucketNotFound) {
		store, err = jetstreamContext.CreateObjectStore(&nats.ObjectStoreConfig{
			Bucket:      bucketName,
			Description: fmt.Sprintf("Synthesized audio for the %s bucket.", bucketName),
			Storage:     nats.FileStorage,
			Replicas:    1,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create object store bucket '%s': %w", bucketName, err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to bind to object store bucket '%s': %w", bucketName, err)
	}

	return &NatsObjectStore{
		bucket: bucketName,
		store:  store,
	}, nil
}

// Download retrieves an object from the NATS object store.
func (n *NatsObjectStore) Download(_ context.Context, key string) ([]byte, error) {
	obj, err := n.store.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s' from bucket '%s': %w", key, n.bucket, err)
	}

	data, readErr := io.ReadAll(obj)
	closeErr := obj.Close()

	if readErr != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", key, readErr)
	}

	if closeErr != nil {
		return data, fmt.Errorf("failed to close object '%s': %w", key, closeErr)
	}

	return data, nil
}

// Upload saves an object to the NATS object store, replacing any previous
// object with the same key.
func (n *NatsObjectStore) Upload(_ context.Context, key string, data []byte) error {
	_, err := n.store.Put(&nats.ObjectMeta{Name: key}, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to put object '%s' to bucket '%s': %w", key, n.bucket, err)
	}

	return nil
}
