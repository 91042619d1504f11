// Package codec translates between live contacts and a portable JSON backup
// document. Contact ids are not part of the document: importing always
// creates fresh records, so ids are never preserved across a round trip.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"contactbook/models"
)

// DocumentVersion is the current backup document format version.
const DocumentVersion = 1

// ErrMalformedDocument is returned when an import payload cannot be parsed
// as a contacts document.
var ErrMalformedDocument = errors.New("malformed contacts document")

// Document is the on-the-wire backup format.
type Document struct {
	Version  int                    `json:"version"`
	Contacts []models.ContactRecord `json:"contacts"`
}

// Marshal renders the given contacts as a backup document. Name, bookmark
// flag, and details (type, value, label, order) survive a round trip; ids
// and timestamps do not.
func Marshal(contacts []models.Contact) ([]byte, error) {
	doc := Document{
		Version:  DocumentVersion,
		Contacts: make([]models.ContactRecord, 0, len(contacts)),
	}
	for _, c := range contacts {
		doc.Contacts = append(doc.Contacts, models.ContactRecord{
			Name:         c.Name,
			IsBookmarked: c.IsBookmarked,
			Details:      c.Details,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Parse reads a backup document and returns its records in document order.
// Structural problems surface as ErrMalformedDocument; record-level
// invariant violations are left to the store, which reports them with
// record indexes.
func Parse(r io.Reader) ([]models.ContactRecord, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Version != DocumentVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedDocument, doc.Version)
	}
	return doc.Contacts, nil
}
