package entity

import (
	"time"
)

type Base struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

type BaseTimestamps struct {
	Base
	UpdatedAt time.Time `db:"updated_at"`
}
