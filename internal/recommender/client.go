package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cristhianleonardo/ventas-inteligentes/internal/config"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/domain"
	"github.com/cristhianleonardo/ventas-inteligentes/internal/port"
)

// Client talks to the external AI recommendation service. The model behind
// it is opaque; only ranked product identifiers cross this boundary.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type scoredProduct struct {
	ProductID  string  `json:"product_id"`
	Score      float64 `json:"score"`
	Similarity float64 `json:"similarity"`
}

type recommendationsResponse struct {
	Recommendations []scoredProduct `json:"recommendations"`
	SimilarProducts []scoredProduct `json:"similar_products"`
}

func (c *Client) ForUser(ctx context.Context, userID string, limit int) ([]port.Recommendation, error) {
	endpoint := fmt.Sprintf("%s/api/recommendations/%s?limit=%s",
		c.baseURL, url.PathEscape(userID), strconv.Itoa(limit))

	var resp recommendationsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	return mapScored(resp.Recommendations, false), nil
}

func (c *Client) SimilarProducts(ctx context.Context, productID string, limit int) ([]port.Recommendation, error) {
	endpoint := fmt.Sprintf("%s/api/recommendations/product/%s?limit=%s",
		c.baseURL, url.PathEscape(productID), strconv.Itoa(limit))

	var resp recommendationsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	return mapScored(resp.SimilarProducts, true), nil
}

func (c *Client) Train(ctx context.Context) (port.TrainResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/recommendations/train", nil)
	if err != nil {
		return port.TrainResult{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	var result port.TrainResult
	if err := c.do(req, &result); err != nil {
		return port.TrainResult{}, err
	}

	return result, nil
}

func (c *Client) Accuracy(ctx context.Context) (port.TrainResult, error) {
	var result port.TrainResult
	if err := c.get(ctx, c.baseURL+"/api/recommendations/accuracy", &result); err != nil {
		return port.TrainResult{}, err
	}

	return result, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// Connection failures surface as a retryable Unavailable, the same
		// as an explicit 503 from the service.
		return domain.ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return domain.ErrUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recommendation service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("json.Decode: %w", err)
	}

	return nil
}

func mapScored(scored []scoredProduct, useSimilarity bool) []port.Recommendation {
	recs := make([]port.Recommendation, 0, len(scored))
	for _, s := range scored {
		score := s.Score
		if useSimilarity {
			score = s.Similarity
		}
		recs = append(recs, port.Recommendation{ProductID: s.ProductID, Score: score})
	}

	return recs
}

var _ port.Recommender = (*Client)(nil)
