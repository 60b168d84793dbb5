package graph

import (
	"io"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("pymapper-highwayhash-content-key")

// Hash returns a 64-bit content hash
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// HashReader returns a 64-bit hash of the reader content
func HashReader(reader io.Reader) (uint64, error) {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		return 0, err
	}
	if _, err = io.Copy(hash, reader); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}
