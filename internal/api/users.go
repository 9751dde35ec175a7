package api

import (
	"context"
	"io"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/mercadito/storefront/internal/domain/user"
)

// loginRequest is the POST /users/login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. The backend sets the session
// cookie on the http.Client's jar; the returned profile is what callers
// persist in the session store. Unlike the other endpoints, login carries
// the user at the body root rather than under data.
func (c *Client) Login(ctx context.Context, email, password string) (user.User, error) {
	var out struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/users/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return user.User{}, errors.Wrap(err, "login")
	}
	return out.User, nil
}

// Logout invalidates the server-side session. The caller clears local
// session state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/users/logout", nil, nil); err != nil {
		return errors.Wrap(err, "logout")
	}
	return nil
}

// RegisterParams is the input for Register. The optional avatar travels as
// the image multipart field.
type RegisterParams struct {
	Username  string
	Name      string
	LastName  string
	Email     string
	Password  string
	ImageName string
	Image     io.Reader
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, p RegisterParams) (user.User, error) {
	fields := map[string]string{
		"username": p.Username,
		"name":     p.Name,
		"lastName": p.LastName,
		"email":    p.Email,
		"password": p.Password,
	}
	var files []filePart
	if p.Image != nil {
		files = append(files, filePart{Field: "image", Filename: p.ImageName, Reader: p.Image})
	}

	var out struct {
		User user.User `json:"user"`
	}
	if err := c.doMultipart(ctx, http.MethodPost, "/users/register", fields, files, &out); err != nil {
		return user.User{}, errors.Wrap(err, "register")
	}
	return out.User, nil
}

// Profile retrieves the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (user.User, error) {
	var out struct {
		User user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &out); err != nil {
		return user.User{}, errors.Wrap(err, "get profile")
	}
	return out.User, nil
}

// UpdateProfileParams holds the profile fields to change. Empty strings are
// omitted from the request so the backend keeps the stored value.
type UpdateProfileParams struct {
	Name      string
	LastName  string
	Email     string
	Address   string
	Phone     string
	ImageName string
	Image     io.Reader
}

// UpdateProfile patches the authenticated user's profile and returns the
// updated record.
func (c *Client) UpdateProfile(ctx context.Context, p UpdateProfileParams) (user.User, error) {
	fields := make(map[string]string)
	for k, v := range map[string]string{
		"name":     p.Name,
		"lastName": p.LastName,
		"email":    p.Email,
		"address":  p.Address,
		"phone":    p.Phone,
	} {
		if v != "" {
			fields[k] = v
		}
	}
	var files []filePart
	if p.Image != nil {
		files = append(files, filePart{Field: "profilePicture", Filename: p.ImageName, Reader: p.Image})
	}

	var out struct {
		User user.User `json:"user"`
	}
	if err := c.doMultipart(ctx, http.MethodPatch, "/users/update", fields, files, &out); err != nil {
		return user.User{}, errors.Wrap(err, "update profile")
	}
	return out.User, nil
}

// ForgotPassword requests a password-recovery PIN for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if err := c.do(ctx, http.MethodPost, "/users/forgotpassword", body, nil); err != nil {
		return errors.Wrap(err, "forgot password")
	}
	return nil
}

// ResetPassword sets a new password using the recovery PIN.
func (c *Client) ResetPassword(ctx context.Context, email, pin, password string) error {
	body := map[string]string{"email": email, "pin": pin, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/resetpassword", body, nil); err != nil {
		return errors.Wrap(err, "reset password")
	}
	return nil
}
