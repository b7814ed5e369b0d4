package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/tagdemo/storefront/internal/core/ports"
)

func TestKVStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get returns stored bytes", func(mt *mtest.T) {
		kv := &KVStore{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "storefront.kv", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "storefront:cart"},
			{Key: "value", Value: []byte(`[{"productId":"1","quantity":2}]`)},
		}))

		got, err := kv.Get(ctx, "storefront:cart")
		require.NoError(mt, err)
		assert.JSONEq(mt, `[{"productId":"1","quantity":2}]`, string(got))
	})

	mt.Run("get missing key", func(mt *mtest.T) {
		kv := &KVStore{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.kv", mtest.FirstBatch))

		_, err := kv.Get(ctx, "storefront:favorites")
		assert.ErrorIs(mt, err, ports.ErrKeyNotFound)
	})

	mt.Run("set upserts", func(mt *mtest.T) {
		kv := &KVStore{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, kv.Set(ctx, "storefront:cart", []byte(`[]`)))
	})

	mt.Run("set surfaces write errors", func(mt *mtest.T) {
		kv := &KVStore{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		err := kv.Set(ctx, "storefront:cart", []byte(`[]`))
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "mongo set storefront:cart")
	})

	mt.Run("delete", func(mt *mtest.T) {
		kv := &KVStore{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, kv.Delete(ctx, "storefront:current_user"))
	})
}
