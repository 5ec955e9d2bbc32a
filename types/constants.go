package types

// Firestore layout written by the publishing app.
const (
	FIREBASE_POSTS_COLLECTION = "posts"
	FIREBASE_USERS_COLLECTION = "users"

	FIREBASE_POSTS_FIELDS_VERIFICATION_ID = "verificationId"
)

// MongoDB layout, same shape as the Firestore one.
const (
	MONGO_POSTS_COLLECTION = "posts"
	MONGO_USERS_COLLECTION = "users"
)

const (
	DEFAULT_PROFILE_PICTURE = "/default.png"
	REQUEST_ID_HEADER       = "X-Request-ID"
)

// Gin context keys.
const (
	REQUEST_ID_CONTEXT_KEY = "requestId"
	ERROR_KIND_CONTEXT_KEY = "errorKind"
)
