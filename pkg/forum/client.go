// Package forum is a client for the hosted platform's forum-post API.
// It covers the single call the announcer needs: creating a titled post in a
// forum experience on behalf of a user and company.
package forum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	headerOnBehalfOf = "X-On-Behalf-Of"
	headerCompanyID  = "X-Company-Id"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient returns a forum API client for the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// CreatePost submits a new post to the forum experience named in params and
// returns the created post's id. The call is single-attempt; any transport
// error or non-2xx response is returned as an error and never retried here.
func (c *Client) CreatePost(ctx context.Context, params CreatePostParams) (string, error) {
	if params.ExperienceID == "" {
		return "", errors.New("forum: experience id is required")
	}
	if params.UserID == "" || params.CompanyID == "" {
		return "", errors.New("forum: user and company ids are required")
	}

	payload, err := json.Marshal(createPostRequest{
		ForumExperienceID: params.ExperienceID,
		Title:             params.Title,
		Content:           params.Content,
		NotifyAllMembers:  params.NotifyAllMembers,
	})
	if err != nil {
		return "", fmt.Errorf("forum: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/forum/posts", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("forum: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set(headerOnBehalfOf, params.UserID)
	req.Header.Set(headerCompanyID, params.CompanyID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("forum: create post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("forum: create post: %s", errorMessage(resp))
	}

	var created createPostResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("forum: decode response: %w", err)
	}
	if created.ID == "" {
		return "", errors.New("forum: response missing post id")
	}
	return created.ID, nil
}

// errorMessage extracts the API's error message from a failed response,
// falling back to the HTTP status when the body isn't the expected shape.
func errorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Sprintf("%s (status %d)", apiErr.Error.Message, resp.StatusCode)
		}
	}
	return resp.Status
}
