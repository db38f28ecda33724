package client

import "context"

// Login authenticates with email and password and stores the issued
// credential (token, role, nickname) in the credential store.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/login", body, &result); err != nil {
		return nil, err
	}
	if err := c.store.SetSession(result.Token, result.Role, result.Nickname); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout discards the stored credential. Purely local: the backend keeps
// no server-side session state beyond token validity.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// RequestPhoneVerification asks the backend to send a verification code
// to the given phone number.
func (c *Client) RequestPhoneVerification(ctx context.Context, phone string) error {
	return c.postJSON(ctx, "/user/phone/request", map[string]string{"phone": phone}, nil)
}

// VerifyPhoneCode confirms a previously requested verification code.
func (c *Client) VerifyPhoneCode(ctx context.Context, code string) error {
	return c.postJSON(ctx, "/user/phone/verify", map[string]string{"code": code}, nil)
}
