package answers

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	answerTypes "github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/answers"
)

var indexesForAnswerRecordsCollection = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("idx_answer_records_userId").SetUnique(true),
	},
}

func (dbService *AnswersDBService) CreateDefaultIndexes() {
	ctx, cancel := dbService.getContext(context.Background())
	defer cancel()

	_, err := dbService.collectionAnswerRecords().Indexes().CreateMany(ctx, indexesForAnswerRecordsCollection)
	if err != nil {
		slog.Error("Error creating index for answer records", slog.String("error", err.Error()))
	}
}

// Get returns the answer record for a user.
func (dbService *AnswersDBService) Get(ctx context.Context, userID string) (answerTypes.AnswerRecord, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	var record answerTypes.AnswerRecord
	err := dbService.collectionAnswerRecords().FindOne(ctx, bson.M{"userId": userID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return answerTypes.AnswerRecord{}, answerTypes.ErrRecordNotFound
		}
		return answerTypes.AnswerRecord{}, err
	}
	return record, nil
}

// Save writes the record as a whole document. A record read at revision N is
// only replaced while the stored revision is still N; a record the caller
// saw as absent (revision 0) is inserted, with the unique userId index
// turning a concurrent insert into a revision mismatch.
func (dbService *AnswersDBService) Save(ctx context.Context, record answerTypes.AnswerRecord) (answerTypes.AnswerRecord, error) {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	expectedRevision := record.Revision
	record.Revision = expectedRevision + 1

	if expectedRevision == 0 {
		record.ID = primitive.NewObjectID()
		if _, err := dbService.collectionAnswerRecords().InsertOne(ctx, record); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return answerTypes.AnswerRecord{}, answerTypes.ErrRevisionMismatch
			}
			return answerTypes.AnswerRecord{}, err
		}
		return record, nil
	}

	res, err := dbService.collectionAnswerRecords().ReplaceOne(
		ctx,
		bson.M{"userId": record.UserID, "revision": expectedRevision},
		record,
	)
	if err != nil {
		return answerTypes.AnswerRecord{}, err
	}
	if res.MatchedCount < 1 {
		return answerTypes.AnswerRecord{}, answerTypes.ErrRevisionMismatch
	}
	return record, nil
}

// Delete removes the record for a user. Absent records are not an error.
func (dbService *AnswersDBService) Delete(ctx context.Context, userID string) error {
	ctx, cancel := dbService.getContext(ctx)
	defer cancel()

	_, err := dbService.collectionAnswerRecords().DeleteOne(ctx, bson.M{"userId": userID})
	return err
}
