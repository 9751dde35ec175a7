package user

// Role is the authorization level assigned to an account by the backend.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// User is the authenticated account profile returned by the backend.
type User struct {
	ID             string `json:"_id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
}

// CanModerate reports whether the account may manage other users' content.
func (u User) CanModerate() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}
