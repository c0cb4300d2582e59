package commerceRepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"closetcircle/models"
)

// flexID decodes backend identifiers that may be numbers, strings or null.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", raw, err)
	}
	*f = flexID(n.String())
	return nil
}

// MarshalJSON sends numeric ids back as numbers, everything else as strings.
func (f flexID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(f), 10, 64); err == nil {
		return []byte(f), nil
	}
	return json.Marshal(string(f))
}

type postDTO struct {
	PostID      flexID   `json:"post_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Categories  []int    `json:"categories"`
	OwnerID     string   `json:"owner_id"`
	Lister      *struct {
		Display   string  `json:"display"`
		Username  string  `json:"username"`
		AvatarURL *string `json:"avatarUrl"`
	} `json:"lister"`
}

func (p postDTO) toModel() models.CatalogItem {
	item := models.CatalogItem{
		ID:          string(p.PostID),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		Categories:  p.Categories,
		OwnerID:     p.OwnerID,
	}
	if p.Lister != nil {
		item.Lister = models.Lister{Display: p.Lister.Display, Username: p.Lister.Username}
		if p.Lister.AvatarURL != nil {
			item.Lister.AvatarURL = *p.Lister.AvatarURL
		}
	}
	return item
}

type cartLineDTO struct {
	PostID flexID  `json:"post_id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
}

// HTTPBackend talks to the marketplace REST API.
type HTTPBackend struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPBackend creates a REST backend client. Every call is bounded by timeout.
func NewHTTPBackend(baseURL string, timeout time.Duration) *HTTPBackend {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// ListItems fetches GET /api/posts-all.
func (b *HTTPBackend) ListItems(ctx context.Context) ([]models.CatalogItem, error) {
	var body struct {
		Posts []postDTO `json:"posts"`
	}
	if err := b.do(ctx, http.MethodGet, "/api/posts-all", nil, nil, &body); err != nil {
		return nil, err
	}
	items := make([]models.CatalogItem, 0, len(body.Posts))
	for _, p := range body.Posts {
		items = append(items, p.toModel())
	}
	return items, nil
}

// GetItem refetches the catalog and looks the item up by id.
// The marketplace API has no single-post endpoint for postable items.
func (b *HTTPBackend) GetItem(ctx context.Context, id string) (*models.CatalogItem, error) {
	items, err := b.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrItemNotFound
}

// ActiveTransactionID fetches GET /api/profile/cart/id?email=.
func (b *HTTPBackend) ActiveTransactionID(ctx context.Context, email string) (string, error) {
	var body struct {
		TransactionID flexID `json:"transactionId"`
	}
	q := url.Values{"email": {email}}
	if err := b.do(ctx, http.MethodGet, "/api/profile/cart/id", q, nil, &body); err != nil {
		return "", err
	}
	return string(body.TransactionID), nil
}

// CreateTransaction calls POST /api/profile/cart/create.
func (b *HTTPBackend) CreateTransaction(ctx context.Context, email string) (string, error) {
	var body struct {
		TransactionID flexID `json:"transactionId"`
	}
	payload := map[string]string{"email": email}
	if err := b.do(ctx, http.MethodPost, "/api/profile/cart/create", nil, payload, &body); err != nil {
		return "", err
	}
	return string(body.TransactionID), nil
}

// AddItem calls PUT /api/profile/cart/addItem.
func (b *HTTPBackend) AddItem(ctx context.Context, transactionID, itemID string) error {
	payload := struct {
		TransactionID flexID `json:"transactionId"`
		PostID        flexID `json:"postId"`
	}{flexID(transactionID), flexID(itemID)}
	return b.do(ctx, http.MethodPut, "/api/profile/cart/addItem", nil, payload, nil)
}

// Transaction fetches GET /api/profile/cart?email=.
func (b *HTTPBackend) Transaction(ctx context.Context, email string) (*models.CartTransaction, error) {
	var body struct {
		TransID flexID        `json:"transId"`
		Cart    []cartLineDTO `json:"cart"`
	}
	q := url.Values{"email": {email}}
	if err := b.do(ctx, http.MethodGet, "/api/profile/cart", q, nil, &body); err != nil {
		return nil, err
	}
	tx := &models.CartTransaction{ID: string(body.TransID), Email: email, Items: make([]models.CartLine, 0, len(body.Cart))}
	for _, line := range body.Cart {
		tx.Items = append(tx.Items, models.CartLine{ItemID: string(line.PostID), Title: line.Title, Price: line.Price})
	}
	return tx, nil
}

func (b *HTTPBackend) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	endpoint := b.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

var _ Backend = (*HTTPBackend)(nil)
