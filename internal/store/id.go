package store

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/pkg/errors"
)

// IDLength is the length of generated booking ids.
const IDLength = 15

// maxIDAttempts bounds re-draws when a generated id is already taken.
const maxIDAttempts = 8

// NewID returns a random IDLength-character id from the URL-safe alphabet.
func NewID() (string, error) {
	id, err := gonanoid.New(IDLength)
	if err != nil {
		return "", errors.Wrap(err, "generate id")
	}
	return id, nil
}

// NewUniqueID draws ids until taken reports false for one of them.
func NewUniqueID(taken func(id string) bool) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id, err := NewID()
		if err != nil {
			return "", err
		}
		if taken == nil || !taken(id) {
			return id, nil
		}
	}
	return "", errors.Errorf("no free id after %d attempts", maxIDAttempts)
}
