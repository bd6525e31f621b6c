package storage

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// Encode marshals a record
func Encode(v interface{}) ([]byte, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

// Decode unmarshals a record
func Decode(data []byte, v interface{}) error {
	if err := sonic.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return nil
}

// SaveJSON encodes v and stores it under key
func SaveJSON(s Store, key string, v interface{}) error {
	data, err := Encode(v)
	if err != nil {
		return err
	}
	return s.Set(key, data)
}

// LoadJSON reads key into v. found is false when nothing was stored; a
// decode failure returns found=true with the error so callers can tell a
// corrupt record from a missing one.
func LoadJSON(s Store, key string, v interface{}) (found bool, err error) {
	data, found, err := s.Get(key)
	if err != nil || !found {
		return found, err
	}
	return true, Decode(data, v)
}
