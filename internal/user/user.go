package user

// StorageKey is key of the access token in client storage.
const StorageKey string = "rdrt_access_token"

// TokenResponse is response of the auth backend on login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// RegisterRequest is body of account creation request.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StorageEntry is one record of the storage journal.
type StorageEntry struct {
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}
