package entity

import (
	"github.com/google/uuid"
)

type Rating struct {
	Base
	UserID  uuid.UUID `db:"user_id"`
	StoreID uuid.UUID `db:"store_id"`
	Value   int       `db:"rating"` // 1-5, one row per (user, store)
}
