// Package scenestore persists rendered scenes in Redis, keyed by
// namespace:scene-name. The store works on scene bytes only; rendering and
// schema validation stay with the world.
package scenestore

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// ErrSceneNotFound is returned by Load when no scene is stored under the
// given name.
var ErrSceneNotFound = eris.New("scene not found")

type Options = redis.Options

type Store struct {
	Namespace string
	Client    *redis.Client
	Log       zerolog.Logger
}

func New(options Options, namespace string) *Store {
	client := redis.NewClient(&options)
	return &Store{
		Namespace: namespace,
		Client:    client,
		Log:       zerolog.New(os.Stderr),
	}
}

func (s *Store) key(name string) string {
	return s.Namespace + ":scene:" + name
}

// Save writes the rendered scene bytes under the given name, overwriting any
// prior save.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := s.Client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return eris.Wrapf(err, "failed to save scene %q", name)
	}
	s.Log.Debug().Str("scene", name).Int("bytes", len(data)).Msg("saved scene")
	return nil
}

// Load reads the scene bytes stored under the given name.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	data, err := s.Client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if eris.Is(err, redis.Nil) {
			return nil, eris.Wrapf(ErrSceneNotFound, "%q", name)
		}
		return nil, eris.Wrapf(err, "failed to load scene %q", name)
	}
	return data, nil
}

// List returns the names of every stored scene in the namespace.
func (s *Store) List(ctx context.Context) ([]string, error) {
	prefix := s.key("")
	var names []string
	iter := s.Client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, iter.Val()[len(prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, eris.Wrap(err, "failed to list scenes")
	}
	return names, nil
}

// Delete removes the scene stored under the given name. Deleting a missing
// scene is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := s.Client.Del(ctx, s.key(name)).Err(); err != nil {
		return eris.Wrapf(err, "failed to delete scene %q", name)
	}
	return nil
}

// Close shuts down the underlying client.
func (s *Store) Close() error {
	if err := s.Client.Close(); err != nil {
		return eris.Wrap(err, "")
	}
	return nil
}
