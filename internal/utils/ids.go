package utils

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewItemID returns a fresh 24-character hex id in the same format as catalog and save data ids.
func NewItemID() string {
	return primitive.NewObjectID().Hex()
}

// NewItemIDAvoiding returns a fresh id that is not a key of taken.
func NewItemIDAvoiding(taken map[string]struct{}) string {
	for {
		id := NewItemID()
		if _, clash := taken[id]; !clash {
			return id
		}
	}
}

// IsItemID reports whether s is a well-formed hex object id.
func IsItemID(s string) bool {
	return primitive.IsValidObjectID(s)
}
