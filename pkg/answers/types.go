package answers

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerRecord is the single per-user document holding the AI question
// answers and the metadata derived from them. TotalQuestions always equals
// the size of Answers and is recomputed on every write, never incremented
// in place.
type AnswerRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID         string             `bson:"userId" json:"user_id"`
	Answers        map[string]string  `bson:"answers" json:"answers"`
	TotalQuestions int                `bson:"totalQuestions" json:"total_questions"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`

	// Revision guards the conditional replace in the store, it is not part
	// of the API surface.
	Revision int64 `bson:"revision" json:"-"`
}

// AnswerStats summarizes a user's answer record. All counters are derived
// from the live answer map when the stats are read.
type AnswerStats struct {
	TotalQuestions       int       `json:"total_questions"`
	CompletedQuestions   int       `json:"completed_questions"`
	CompletionPercentage float64   `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
