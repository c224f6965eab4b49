package types

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

// User represents a community member. Reputation is owned by the reputation
// ledger and is only ever mutated through signed point deltas.
type User struct {
	ID         int64     `bun:",pk,autoincrement"      json:"id"`
	Username   string    `bun:",notnull,unique"        json:"username"`
	Email      string    `bun:",notnull"               json:"email"`
	Reputation int       `bun:",notnull,default:0"     json:"reputation"`
	IsActive   bool      `bun:",notnull,default:true"  json:"isActive"`
	CreatedAt  time.Time `bun:",notnull"               json:"createdAt"`
}
