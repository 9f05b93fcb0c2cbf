package domain

import "time"

// User is a directory entry. Name is the trigram similarity target for
// relevance search; Name and Username feed the weighted search vector.
type User struct {
	ID       string
	Name     string
	Username string
	Alias    string
	Created  time.Time
	Modified time.Time
}
