package menu

import (
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuDocument is the projection the migration reads: the document id, the
// owning restaurant and the raw items array. Items stays raw bson so a
// document whose items field is not an array shows up as a shape violation
// instead of a decode failure.
type MenuDocument struct {
	ID           interface{}   `bson:"_id"`
	RestaurantID interface{}   `bson:"restaurantId"`
	Items        bson.RawValue `bson:"items"`
}

// MenuItem carries the two fields the migration cares about; everything else
// a menu item holds round-trips unchanged through the inline map.
type MenuItem struct {
	ID    interface{}            `bson:"id"`
	Image interface{}            `bson:"image"`
	Rest  map[string]interface{} `bson:",inline"`
}

// ImageURL returns the item's image as a string, or "" when the image is
// absent, null or not a string.
func (i *MenuItem) ImageURL() string {
	s, _ := i.Image.(string)
	return s
}

// Restaurant returns the restaurant id in string form. ok is false when the
// field is missing or falsy (nil, empty string, numeric zero), which marks
// the document as skippable.
func (d *MenuDocument) Restaurant() (string, bool) {
	switch t := d.RestaurantID.(type) {
	case nil:
		return "", false
	case string:
		if t == "" {
			return "", false
		}
	case int32:
		if t == 0 {
			return "", false
		}
	case int64:
		if t == 0 {
			return "", false
		}
	case float64:
		if t == 0 {
			return "", false
		}
	}
	return FormatID(d.RestaurantID), true
}

// DecodeItems unmarshals the raw items array. A non-array value (including a
// missing field) is an error; callers treat it as a shape violation and skip
// the document.
func (d *MenuDocument) DecodeItems() ([]MenuItem, error) {
	if d.Items.Type != bson.TypeArray {
		return nil, fmt.Errorf("items is %v, want array", d.Items.Type)
	}
	var items []MenuItem
	if err := d.Items.Unmarshal(&items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

// FormatID renders a document or item identifier for use in storage keys.
// Menu ids are numeric or string depending on the restaurant integration, so
// normalize the bson numeric types to their plain decimal form.
func FormatID(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case primitive.ObjectID:
		return t.Hex()
	default:
		return fmt.Sprintf("%v", v)
	}
}
