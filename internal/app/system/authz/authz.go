// Package authz centralizes the caller-identity and ownership checks that
// guard every mutation.
package authz

import (
	"net/http"

	"github.com/notehub-app/notehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verdict is the outcome of an ownership check.
type Verdict int

const (
	// Allow means the caller is authenticated and owns the resource.
	Allow Verdict = iota
	// Unauthenticated means no valid caller identity is present.
	Unauthenticated
	// Forbidden means the caller is authenticated but is not the owner.
	Forbidden
)

// Caller returns the authenticated caller's user ID and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// NilObjectID, false. This ensures callers can trust that ok=true means a
// valid, authenticated user with a valid ObjectID.
func Caller(r *http.Request) (primitive.ObjectID, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return primitive.NilObjectID, false
	}
	return userID, true
}

// AssertOwner is the single authorization predicate applied before every
// workspace and note mutation: the operation proceeds only when the caller is
// authenticated and equals the resource's owner.
//
// Not-found is the store layer's concern; by the time AssertOwner runs the
// resource has already been loaded.
func AssertOwner(r *http.Request, ownerID primitive.ObjectID) Verdict {
	caller, ok := Caller(r)
	if !ok {
		return Unauthenticated
	}
	if caller != ownerID {
		return Forbidden
	}
	return Allow
}
