package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// post fields the sync tool sends to the API
type PostPayload struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Excerpt  string   `json:"excerpt,omitempty"`
	Status   string   `json:"status"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags"`
}

// the part of the API response the tool cares about
type PostResult struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Status string `json:"status"`
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// REST client for the blog API with a bearer token
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) CreatePost(ctx context.Context, payload PostPayload) (*PostResult, error) {
	return c.do(ctx, http.MethodPost, c.baseURL+"/posts", payload)
}

func (c *Client) UpdatePost(ctx context.Context, postID string, payload PostPayload) (*PostResult, error) {
	return c.do(ctx, http.MethodPut, c.baseURL+"/posts/"+postID, payload)
}

func (c *Client) do(ctx context.Context, method, url string, payload PostPayload) (*PostResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("не удалось сериализовать пост: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("не удалось создать запрос: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос к API не удался: %w", err)
	}
	defer resp.Body.Close()

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("не удалось разобрать ответ API (статус %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("ошибка аутентификации, проверьте SYNC_TOKEN: %s", apiResp.Message)
	}
	if !apiResp.Success {
		return nil, fmt.Errorf("API вернул ошибку (статус %d): %s", resp.StatusCode, apiResp.Message)
	}

	var result PostResult
	if err := json.Unmarshal(apiResp.Data, &result); err != nil {
		return nil, fmt.Errorf("не удалось разобрать данные поста: %w", err)
	}
	return &result, nil
}
