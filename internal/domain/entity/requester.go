package entity

// Requester is the identity decoded from a verified bearer token.
// It lives for a single request and is passed explicitly to services.
type Requester struct {
	UserID string
	Email  string
}
