package assets

import _ "embed"

// Seed is the document a fresh store starts from when the storage slot
// is empty.
//
//go:embed data/seed.json
var Seed []byte
