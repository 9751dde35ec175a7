package blog

import (
	"time"

	"github.com/mercadito/storefront/internal/domain/user"
)

// Blog is a published article with its author profile embedded.
type Blog struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	Author    user.User `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}
