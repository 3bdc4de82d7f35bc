package errorhandler

import (
	"context"
	"fmt"
	"net/http"
)

// UsersManager manages user records.
type UsersManager struct {
	client *Client
}

// Get fetches one user by ID.
func (m *UsersManager) Get(ctx context.Context, id string) (*User, error) {
	var resp User
	err := m.client.do(ctx, http.MethodGet, fmt.Sprintf("/v1/users/%s", id), nil, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns all users.
func (m *UsersManager) List(ctx context.Context) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	err := m.client.do(ctx, http.MethodGet, "/v1/users", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// Create creates a user.
func (m *UsersManager) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	var resp User
	err := m.client.do(ctx, http.MethodPost, "/v1/users", req, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a user.
func (m *UsersManager) Delete(ctx context.Context, id string) error {
	return m.client.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/users/%s", id), nil, nil)
}
