package menu

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func decodeDoc(t *testing.T, src bson.M) *MenuDocument {
	t.Helper()
	raw, err := bson.Marshal(src)
	require.NoError(t, err)
	var d MenuDocument
	require.NoError(t, bson.Unmarshal(raw, &d))
	return &d
}

func TestRestaurant(t *testing.T) {
	cases := []struct {
		name string
		doc  bson.M
		want string
		ok   bool
	}{
		{"numeric", bson.M{"restaurantId": 42}, "42", true},
		{"string", bson.M{"restaurantId": "r-9"}, "r-9", true},
		{"missing", bson.M{}, "", false},
		{"empty string", bson.M{"restaurantId": ""}, "", false},
		{"zero", bson.M{"restaurantId": 0}, "", false},
		{"null", bson.M{"restaurantId": nil}, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := decodeDoc(t, tc.doc).Restaurant()
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeItems(t *testing.T) {
	d := decodeDoc(t, bson.M{
		"restaurantId": 42,
		"items": bson.A{
			bson.M{"id": 1, "image": "http://ex.com/a.png", "name": "dosa", "price": 120},
			bson.M{"id": 2, "image": nil},
		},
	})

	items, err := d.DecodeItems()
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "1", FormatID(items[0].ID))
	require.Equal(t, "http://ex.com/a.png", items[0].ImageURL())
	require.Equal(t, "dosa", items[0].Rest["name"])

	// null image reads as empty
	require.Equal(t, "", items[1].ImageURL())
}

func TestDecodeItemsShapeViolations(t *testing.T) {
	for _, doc := range []bson.M{
		{"restaurantId": 42},                    // items missing
		{"restaurantId": 42, "items": "nope"},   // items not an array
		{"restaurantId": 42, "items": bson.M{}}, // items an object
	} {
		_, err := decodeDoc(t, doc).DecodeItems()
		require.Error(t, err)
	}
}

func TestItemRoundTripPreservesFields(t *testing.T) {
	src := bson.M{
		"id":             7,
		"image":          "http://ex.com/x.jpg",
		"name":           "paneer tikka",
		"price":          240.5,
		"isVeg":          true,
		"customisations": bson.A{"extra cheese"},
	}
	raw, err := bson.Marshal(src)
	require.NoError(t, err)

	var item MenuItem
	require.NoError(t, bson.Unmarshal(raw, &item))
	item.Image = "https://bucket.s3.region.amazonaws.com/7/7-7.jpg"

	out, err := bson.Marshal(&item)
	require.NoError(t, err)
	var got bson.M
	require.NoError(t, bson.Unmarshal(out, &got))

	require.Equal(t, "paneer tikka", got["name"])
	require.Equal(t, 240.5, got["price"])
	require.Equal(t, true, got["isVeg"])
	require.Equal(t, bson.A{"extra cheese"}, got["customisations"])
	require.Equal(t, "https://bucket.s3.region.amazonaws.com/7/7-7.jpg", got["image"])
}

func TestFormatID(t *testing.T) {
	require.Equal(t, "42", FormatID(int32(42)))
	require.Equal(t, "42", FormatID(int64(42)))
	require.Equal(t, "42", FormatID(float64(42)))
	require.Equal(t, "42.5", FormatID(42.5))
	require.Equal(t, "abc", FormatID("abc"))
}
