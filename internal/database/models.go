package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the persisted form of an account
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name         string    `bun:"name,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Role         string    `bun:"role,notnull,default:'user'"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Book is the persisted form of a catalog entry
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID            int64     `bun:"id,pk,autoincrement"`
	Title         string    `bun:"title,notnull"`
	Author        string    `bun:"author,notnull"`
	Description   string    `bun:"description,notnull,default:''"`
	Genre         string    `bun:"genre,notnull,default:''"`
	ISBN          string    `bun:"isbn,notnull,default:''"`
	PublishedYear int       `bun:"published_year,nullzero"`
	Price         float64   `bun:"price,notnull,default:0"`
	Rating        float64   `bun:"rating,notnull,default:0"`
	CoverURL      string    `bun:"cover_url,notnull,default:''"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
