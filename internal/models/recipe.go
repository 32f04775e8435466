package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Recipe is the persisted recipe document. The core fields below are owned
// by the server; anything else the client sends (title, ingredients, steps,
// image URLs, ...) is kept schemaless in Extra and round-trips through both
// BSON (inline) and JSON unchanged.
type Recipe struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	UserName  string             `bson:"userName"`
	Likes     int                `bson:"likes"`
	LikedBy   []string           `bson:"likedBy"`
	CreatedAt time.Time          `bson:"createdAt"`
	Extra     map[string]any     `bson:",inline"`
}

// coreKeys are the JSON keys backed by typed fields. They are stripped from
// Extra on unmarshal so a client cannot smuggle values past the server-side
// stamping.
var coreKeys = map[string]bool{
	"id":        true,
	"userId":    true,
	"userName":  true,
	"likes":     true,
	"likedBy":   true,
	"createdAt": true,
}

func (r Recipe) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+6)
	for k, v := range r.Extra {
		if !coreKeys[k] {
			out[k] = v
		}
	}

	if !r.ID.IsZero() {
		out["id"] = r.ID.Hex()
	}
	out["userId"] = r.UserID
	out["userName"] = r.UserName
	out["likes"] = r.Likes
	likedBy := r.LikedBy
	if likedBy == nil {
		likedBy = []string{}
	}
	out["likedBy"] = likedBy
	out["createdAt"] = r.CreatedAt.UTC().Format(time.RFC3339)

	return json.Marshal(out)
}

func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["id"]; ok {
		var hex string
		if err := json.Unmarshal(v, &hex); err == nil && hex != "" {
			if oid, err := primitive.ObjectIDFromHex(hex); err == nil {
				r.ID = oid
			}
		}
	}
	if v, ok := raw["userId"]; ok {
		_ = json.Unmarshal(v, &r.UserID)
	}
	if v, ok := raw["userName"]; ok {
		_ = json.Unmarshal(v, &r.UserName)
	}
	if v, ok := raw["likes"]; ok {
		_ = json.Unmarshal(v, &r.Likes)
	}
	if v, ok := raw["likedBy"]; ok {
		_ = json.Unmarshal(v, &r.LikedBy)
	}
	if v, ok := raw["createdAt"]; ok {
		var ts string
		if err := json.Unmarshal(v, &ts); err == nil {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				r.CreatedAt = t
			}
		}
	}

	for k, v := range raw {
		if coreKeys[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if r.Extra == nil {
			r.Extra = map[string]any{}
		}
		r.Extra[k] = val
	}
	return nil
}
