package api

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	verifyPath = "/api/token/verify/"
	mePath     = "/api/me/"
)

type verifyRequest struct {
	Token string `json:"token"`
}

// Identity — ответ /api/me/. Остальные поля игнорируются.
type Identity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// VerifyToken asks the authority whether token is valid. Any 2xx means valid,
// any other status means invalid; transport failures are returned as errors.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	resp, _, err := c.PostJSON(ctx, verifyPath, verifyRequest{Token: token}, "")
	if err != nil {
		return false, err
	}
	return IsSuccess(resp.StatusCode), nil
}

// Me fetches the identity the access token belongs to.
// Non-2xx answers are returned as *StatusError.
func (c *Client) Me(ctx context.Context, token string) (*Identity, error) {
	resp, body, err := c.GetJSON(ctx, mePath, token)
	if err != nil {
		return nil, err
	}
	if !IsSuccess(resp.StatusCode) {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &id, nil
}
