package doctorRepo

import (
	"context"
	"testing"

	"visionhealth/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoDoctorRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create sets id", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		d := &models.Doctor{Name: "Dr. Iris", Specialty: "Retina"}
		id, err := repo.Create(context.Background(), d)

		require.NoError(mt, err)
		assert.False(mt, d.ID.IsZero())
		assert.Equal(mt, d.ID.Hex(), id)
	})

	mt.Run("get all decodes", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Dr. Iris"}, {Key: "specialty", Value: "Retina"}},
		))

		got, err := repo.GetAll(context.Background())

		require.NoError(mt, err)
		require.Len(mt, got, 1)
		assert.Equal(mt, "Retina", got[0].Specialty)
	})

	mt.Run("delete malformed id", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}

		_, err := repo.Delete(context.Background(), "nope")

		assert.ErrorIs(mt, err, ErrDoctorNotFound)
	})

	mt.Run("delete unknown id", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		_, err := repo.Delete(context.Background(), primitive.NewObjectID().Hex())

		assert.ErrorIs(mt, err, ErrDoctorNotFound)
	})
}
