package metadata

import (
	"context"
)

// Repository is a string-keyed byte store holding the session marker and
// one record per profile. Get reports common.ErrNotFound for absent keys;
// Set overwrites; Delete of an absent key is not an error. List matches keys
// by prefix, which is how profile records are enumerated.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) (map[string][]byte, error)
}
