package answers

import "context"

// Store is the document store behind the answer records, one document per
// user id.
//
// Save is a full-record conditional replace: a record with Revision 0 is
// inserted (ErrRevisionMismatch if the user already has a document),
// otherwise the stored document is replaced only while its revision still
// matches the one the caller read. Implementations must never patch
// individual fields, so the answer map and its derived count cannot be
// observed in mutually inconsistent states.
type Store interface {
	// Get returns the record for the user or ErrRecordNotFound.
	Get(ctx context.Context, userID string) (AnswerRecord, error)

	// Save persists the record as a whole and returns it with the new
	// revision. Returns ErrRevisionMismatch on a concurrent write.
	Save(ctx context.Context, record AnswerRecord) (AnswerRecord, error)

	// Delete removes the record, absent records are not an error.
	Delete(ctx context.Context, userID string) error
}
