// Package documents provides document upload, storage, and management.
// It composes the metadata catalog and the blob store behind one interface,
// preserving the invariant that a catalog record never outlives its blob
// and vice versa.
package documents

// CreateCommand contains the data required to create a new document.
// Data holds the raw file bytes to be stored.
type CreateCommand struct {
	Name string
	Data []byte
}
