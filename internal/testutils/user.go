package testutils

// TestUser is the account the fake backend knows about.
type TestUser struct {
	ID         int64
	Email      string
	Password   string
	FirstName  string
	LastName   string
	NationalID string
}

// DefaultUser is accepted by NewAuthBackend.
var DefaultUser = TestUser{
	ID:         7,
	Email:      "dana@example.com",
	Password:   "secret1",
	FirstName:  "Dana",
	LastName:   "Levi",
	NationalID: "123456789",
}
