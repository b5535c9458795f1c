package entity

// Account is the aggregate root for the account domain.
// Password always holds a one-way hash, never the plain text.
type Account struct {
	ID          string
	Name        string
	Email       string
	Password    string
	AccessToken string
}
