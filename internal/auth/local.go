package auth

// LocalAuthenticator is a config-backed identity for the CLI: the operator
// states who they are and every session is owned by that user. Real sign-in
// lives behind the same interface elsewhere.
type LocalAuthenticator struct {
	UserID string
	Email  string
}

func NewLocalAuthenticator(userID, email string) *LocalAuthenticator {
	return &LocalAuthenticator{UserID: userID, Email: email}
}

func (a *LocalAuthenticator) IsSignedIn() bool {
	return a.UserID != ""
}

func (a *LocalAuthenticator) CurrentUserID() string {
	return a.UserID
}

func (a *LocalAuthenticator) CurrentEmail() string {
	return a.Email
}
