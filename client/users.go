package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Registration is the payload for creating an account.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone,omitempty"`
	Birth    string `json:"birth,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

// CheckEmail reports whether an email address is already registered.
// The endpoint is in the exempt family: a non-2xx here never counts as
// session expiry.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	q := url.Values{"email": {email}}
	if err := c.getJSON(ctx, "/users/check-email", q, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// CheckNickname reports whether a nickname is already taken.
func (c *Client) CheckNickname(ctx context.Context, nickname string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	q := url.Values{"nickname": {nickname}}
	if err := c.getJSON(ctx, "/users/check-nickname", q, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, reg Registration) (*User, error) {
	var user User
	if err := c.postJSON(ctx, "/users", reg, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.getJSON(ctx, "/user/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyRole satisfies session.RoleVerifier by fetching the current
// profile and returning its role.
func (c *Client) VerifyRole(ctx context.Context) (string, error) {
	user, err := c.Me(ctx)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// UpdateNickname changes the display nickname and refreshes the cached
// copy in the credential store.
func (c *Client) UpdateNickname(ctx context.Context, nickname string) error {
	if err := c.putJSON(ctx, "/user/nickname", map[string]string{"nickname": nickname}, nil); err != nil {
		return err
	}
	return c.store.SetNickname(nickname)
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{"currentPassword": current, "newPassword": next}
	return c.putJSON(ctx, "/user/password", body, nil)
}

// UpdateExtraInfo updates optional profile fields (birth, gender, phone).
func (c *Client) UpdateExtraInfo(ctx context.Context, payload map[string]string) error {
	return c.putJSON(ctx, "/user/extra-info", payload, nil)
}

// UploadProfileImage sends image bytes and returns the hosted URL.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	resp, err := c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        "/user/profile-image",
		Raw:         &buf,
		ContentType: mw.FormDataContentType(),
	})
	if err != nil {
		return "", err
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(resp, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// DeleteProfileImage removes the hosted profile image.
func (c *Client) DeleteProfileImage(ctx context.Context) error {
	return c.delete(ctx, "/user/profile-image")
}

// DeleteAccount deletes the account and discards the stored credential.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.delete(ctx, "/user"); err != nil {
		return err
	}
	return c.store.Clear()
}
