package richtext

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

// Digest returns the hex BLAKE3 hash of t's JSON wire form. Two texts with
// the same text and the same entities in the same order share a digest.
// It returns "" if an extra entity field cannot be encoded.
func (t *Text) Digest() string {
	data, err := jsonMarshal(t)
	if err != nil {
		return ""
	}
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}
