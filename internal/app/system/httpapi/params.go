// internal/app/system/httpapi/params.go
package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrBadID is returned when a URL parameter is not a valid ObjectID.
var ErrBadID = errors.New("invalid id")

// ObjectIDParam parses a chi URL parameter as a Mongo ObjectID.
func ObjectIDParam(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, ErrBadID
	}
	return id, nil
}

// ObjectIDs parses a slice of hex strings. A nil or empty input returns
// nil so callers can distinguish "absent" from "present but empty".
func ObjectIDs(hex []string) ([]primitive.ObjectID, error) {
	if len(hex) == 0 {
		return nil, nil
	}
	ids := make([]primitive.ObjectID, 0, len(hex))
	for _, h := range hex {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, ErrBadID
		}
		ids = append(ids, id)
	}
	return ids, nil
}
