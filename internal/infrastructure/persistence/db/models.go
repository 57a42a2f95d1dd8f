package db

import (
	"time"

	"github.com/google/uuid"
)

type Owner struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

type User struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}
