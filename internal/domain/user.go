package domain

// UserInfo is the signed-in user's session record: the auth token plus the
// profile fields the storefront prefills from. Persisted under "userInfo".
type UserInfo struct {
	Token   string `json:"token"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	IsAdmin bool   `json:"isAdmin"`
}

// User is a user record as listed by the admin API.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
