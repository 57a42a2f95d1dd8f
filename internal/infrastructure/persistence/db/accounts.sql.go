package db

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const createOwner = `
INSERT INTO owners (id, name, email, role, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, name, email, role, created_at
`

type CreateOwnerParams struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

func (q *Queries) CreateOwner(ctx context.Context, arg CreateOwnerParams) (Owner, error) {
	row := q.db.QueryRow(ctx, createOwner, arg.ID, arg.Name, arg.Email, arg.Role, arg.CreatedAt)
	var i Owner
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Role, &i.CreatedAt)
	return i, err
}

const getOwnerByID = `
SELECT id, name, email, role, created_at FROM owners WHERE id = $1
`

func (q *Queries) GetOwnerByID(ctx context.Context, id uuid.UUID) (Owner, error) {
	row := q.db.QueryRow(ctx, getOwnerByID, id)
	var i Owner
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Role, &i.CreatedAt)
	return i, err
}

const getOwnerByEmail = `
SELECT id, name, email, role, created_at FROM owners WHERE email = $1
`

func (q *Queries) GetOwnerByEmail(ctx context.Context, email string) (Owner, error) {
	row := q.db.QueryRow(ctx, getOwnerByEmail, email)
	var i Owner
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.Role, &i.CreatedAt)
	return i, err
}

const deleteOwner = `
DELETE FROM owners WHERE id = $1
`

func (q *Queries) DeleteOwner(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteOwner, id)
	return err
}

const createUser = `
INSERT INTO users (id, owner_id, name, email, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, owner_id, name, email, role, created_at
`

type CreateUserParams struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.ID, arg.OwnerID, arg.Name, arg.Email, arg.Role, arg.CreatedAt)
	var i User
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Email, &i.Role, &i.CreatedAt)
	return i, err
}

const getUserByID = `
SELECT id, owner_id, name, email, role, created_at FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, id)
	var i User
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Email, &i.Role, &i.CreatedAt)
	return i, err
}

const getUserByEmail = `
SELECT id, owner_id, name, email, role, created_at FROM users WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Email, &i.Role, &i.CreatedAt)
	return i, err
}

const listUsersByOwnerID = `
SELECT id, owner_id, name, email, role, created_at FROM users
WHERE owner_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListUsersByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]User, error) {
	rows, err := q.db.Query(ctx, listUsersByOwnerID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Email, &i.Role, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateUserRole = `
UPDATE users SET role = $2 WHERE id = $1
`

type UpdateUserRoleParams struct {
	ID   uuid.UUID
	Role string
}

func (q *Queries) UpdateUserRole(ctx context.Context, arg UpdateUserRoleParams) error {
	_, err := q.db.Exec(ctx, updateUserRole, arg.ID, arg.Role)
	return err
}

const deleteUser = `
DELETE FROM users WHERE id = $1
`

func (q *Queries) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteUser, id)
	return err
}
