package domain

import "time"

// User is a registered account. PassHash is a bcrypt string, which encodes
// its own salt and cost.
type User struct {
	Id        UserId    `json:"id"`
	Email     Email     `json:"email"`
	PassHash  string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Admin     bool      `json:"admin"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Credentials struct {
	Email    Email
	Password Password
}

// to iterate thru layers: handler -> service -> storage
type UserCreationData struct {
	Email     Email
	PassHash  string
	FirstName string
	LastName  string
}
