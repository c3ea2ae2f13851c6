package fixtures

import (
	"encoding/base64"
	"fmt"
	"iter"
	"math/rand"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/xxh3"
)

// Item is an element type carrying a heap payload, so copies that share or
// drop the payload show up in fingerprints.
type Item struct {
	Key     uint32 `cbor:"1,keyasint"`
	Payload []byte `cbor:"2,keyasint"`
}

func RandItem(rng *rand.Rand, maxPayload int) Item {
	payload := make([]byte, rng.Intn(maxPayload+1))
	rng.Read(payload)
	return Item{Key: rng.Uint32(), Payload: payload}
}

func (i Item) String() string {
	return fmt.Sprintf("%d:%s", i.Key, base64.URLEncoding.EncodeToString(i.Payload))
}

// Clone copies the payload into fresh storage.
func (i Item) Clone() (Item, error) {
	return Item{Key: i.Key, Payload: append([]byte(nil), i.Payload...)}, nil
}

// Fingerprint hashes the CBOR encoding of every value in order.
func Fingerprint[T any](values iter.Seq[T]) (uint64, error) {
	hasher := xxh3.New()
	for v := range values {
		bytes, err := cbor.Marshal(v)
		if err != nil {
			return 0, err
		}
		if _, err := hasher.Write(bytes); err != nil {
			return 0, err
		}
	}
	return hasher.Sum64(), nil
}

// SliceValues adapts a slice to an iter.Seq for Fingerprint.
func SliceValues[T any](values []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}
