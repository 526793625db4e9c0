package models

// Invitation is a pre-authorization for a specific username to sign up.
// Administrators hand out the username/secret pair ahead of time; the secret
// is stored in plain text because it is short-lived and only ever good for
// one signup. A consumed invitation is deleted, never marked.
type Invitation struct {
	Username string
	Secret   string
}
