package jikan

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/AniSwipe/internal/app"
	"github.com/Guilhem-Bonnet/AniSwipe/internal/domain"
)

const defaultEndpoint = "https://api.jikan.moe/v4"

// Client résout un ID MAL en métadonnées via l'API Jikan v4 (non
// authentifiée, rate-limitée côté serveur — d'où la porte partagée en
// amont ; le client lui-même ne throttle pas).
type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient() *Client {
	return &Client{
		endpoint: defaultEndpoint,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) WithEndpoint(endpoint string) *Client {
	if strings.TrimSpace(endpoint) != "" {
		c.endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	}
	return c
}

type animeResponse struct {
	Data struct {
		MalID        int     `json:"mal_id"`
		Title        string  `json:"title"`
		TitleEnglish string  `json:"title_english"`
		Episodes     int     `json:"episodes"`
		Type         string  `json:"type"`
		Score        float64 `json:"score"`
		Images       struct {
			JPG struct {
				ImageURL      string `json:"image_url"`
				LargeImageURL string `json:"large_image_url"`
			} `json:"jpg"`
		} `json:"images"`
	} `json:"data"`
}

func (c *Client) Resolve(ctx context.Context, malID int) (domain.AnimeMetadata, error) {
	url := c.endpoint + "/anime/" + strconv.Itoa(malID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.AnimeMetadata{}, &app.ResolveError{MalID: malID, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "aniswipe-server")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.AnimeMetadata{}, &app.ResolveError{MalID: malID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 404, 429, 5xx : même traitement, échec transitoire.
		return domain.AnimeMetadata{}, &app.ResolveError{MalID: malID, StatusCode: resp.StatusCode}
	}

	var out animeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.AnimeMetadata{}, &app.ResolveError{MalID: malID, Err: err}
	}

	return domain.AnimeMetadata{
		MalID:         out.Data.MalID,
		Title:         out.Data.Title,
		TitleEnglish:  out.Data.TitleEnglish,
		ImageURL:      out.Data.Images.JPG.ImageURL,
		LargeImageURL: out.Data.Images.JPG.LargeImageURL,
		Episodes:      out.Data.Episodes,
		Type:          out.Data.Type,
		Score:         out.Data.Score,
	}, nil
}
