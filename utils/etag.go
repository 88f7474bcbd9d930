package utils

import (
	"crypto/sha256"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerateETag derives a strong ETag from a document id and its last update
// time, so unchanged resources can be answered with 304.
func GenerateETag(id primitive.ObjectID, updatedAt time.Time) string {
	sum := sha256.Sum256([]byte(id.Hex() + updatedAt.UTC().Format(time.RFC3339Nano)))
	return fmt.Sprintf(`"%x"`, sum[:16])
}
