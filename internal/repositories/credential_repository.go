package repositories

// CredentialRepository persists the session's token/user pair. Implementations
// write and clear both entries together; Load reports each entry as found or
// not so callers can detect a half-written pair.
type CredentialRepository interface {
	Load() (token string, hasToken bool, user string, hasUser bool, err error)
	Save(token, user string) error
	Clear() error
}
