package paymentRepo

import (
	"context"
	"testing"
	"time"

	"visionhealth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoPaymentRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create sets id", func(mt *mtest.T) {
		repo := &MongoPaymentRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Payment{BookingID: primitive.NewObjectID().Hex(), TransactionID: "pi_1"}
		id, err := repo.Create(context.Background(), p)

		require.NoError(mt, err)
		assert.Equal(mt, p.ID.Hex(), id)
		assert.False(mt, p.ID.IsZero())
	})

	mt.Run("duplicate transaction id", func(mt *mtest.T) {
		repo := &MongoPaymentRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: payments index: transactionId_1",
		}))

		_, err := repo.Create(context.Background(), &models.Payment{TransactionID: "pi_1"})

		assert.ErrorIs(mt, err, ErrDuplicatePayment)
	})

	mt.Run("find unsettled skips failed, oldest first, bounded", func(mt *mtest.T) {
		repo := &MongoPaymentRepo{coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		older := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "transactionId", Value: "pi_1"}, {Key: "createdAt", Value: older}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "transactionId", Value: "pi_2"}, {Key: "createdAt", Value: older.Add(time.Hour)}},
			),
			mtest.CreateCursorResponse(0, ns, mtest.NextBatch),
		)

		got, err := repo.FindUnsettled(context.Background(), 100)

		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "pi_1", got[0].TransactionID)

		cmd := mt.GetStartedEvent().Command
		assert.False(mt, cmd.Lookup("filter", "settled").Boolean())
		assert.True(mt, cmd.Lookup("filter", "failed", "$ne").Boolean())
		assert.Equal(mt, int64(1), cmd.Lookup("sort", "createdAt").AsInt64())
		assert.Equal(mt, int64(100), cmd.Lookup("limit").AsInt64())
	})

	mt.Run("mark failed records reason", func(mt *mtest.T) {
		repo := &MongoPaymentRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		err := repo.MarkFailed(context.Background(), primitive.NewObjectID(), "booking not found")
		require.NoError(mt, err)

		set := mt.GetStartedEvent().Command.Lookup("updates").Array().Index(0).Value().Document().Lookup("u", "$set")
		assert.True(mt, set.Document().Lookup("failed").Boolean())
		assert.Equal(mt, "booking not found", set.Document().Lookup("failureReason").StringValue())
	})

	mt.Run("mark settled", func(mt *mtest.T) {
		repo := &MongoPaymentRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		assert.NoError(mt, repo.MarkSettled(context.Background(), primitive.NewObjectID()))
	})
}
