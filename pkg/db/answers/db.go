package answers

import (
	"context"
	"time"

	"github.com/OkunrinmetaWebDevelopment/AphiniTi-Profile-Answers/pkg/db"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collection names
const (
	COLLECTION_NAME_ANSWER_RECORDS = "aiAnswers"
)

type AnswersDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewAnswersDBService(configs db.DBConfig) (*AnswersDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	aDBSc := &AnswersDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		aDBSc.CreateDefaultIndexes()
	}
	return aDBSc, nil
}

func (dbService *AnswersDBService) getDBName() string {
	return dbService.DBNamePrefix + "answers"
}

// getContext bounds a store operation by the configured timeout, so a slow
// or unreachable DB fails the request instead of hanging it.
func (dbService *AnswersDBService) getContext(parent context.Context) (ctx context.Context, cancel context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, time.Duration(dbService.timeout)*time.Second)
}

func (dbService *AnswersDBService) collectionAnswerRecords() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_ANSWER_RECORDS)
}
