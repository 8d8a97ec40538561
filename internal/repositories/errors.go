package repositories

import "errors"

// ErrRecordNotFound is returned by every repository when the requested
// row does not exist, regardless of the backing store. Services
// translate it into their own taxonomy.
var ErrRecordNotFound = errors.New("record not found")
