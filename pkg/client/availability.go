package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"openinterview/pkg/model"
)

// AvailabilityClient talks to the availability service. The bookings service
// uses it to fetch the schedule document backing slot generation.
type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(baseUrl string) *AvailabilityClient {
	return &AvailabilityClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *AvailabilityClient) Get(ctx context.Context, profileID string) (*Response, error) {
	path := "/api/v1/availability/" + url.PathEscape(profileID)
	return c.httpClient.GET(ctx, path)
}

func (c *AvailabilityClient) Put(ctx context.Context, profileID string, body any) (*Response, error) {
	path := "/api/v1/availability/" + url.PathEscape(profileID)
	return c.httpClient.PUT(ctx, path, body)
}

// FetchTemplate retrieves the normalized availability template for a profile.
func (c *AvailabilityClient) FetchTemplate(ctx context.Context, profileID string) (model.AvailabilityTemplate, error) {
	resp, err := c.Get(ctx, profileID)
	if err != nil {
		return model.AvailabilityTemplate{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return model.AvailabilityTemplate{}, fmt.Errorf("availability service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	_, tpl, err := c.DecodeAvailability(resp)
	return tpl, err
}

// DecodeAvailability unwraps the service response into the raw document and
// its normalized template.
func (c *AvailabilityClient) DecodeAvailability(resp *Response) (*model.AvailabilityDocument, model.AvailabilityTemplate, error) {
	var wrapper struct {
		Data struct {
			Raw        *model.AvailabilityDocument `json:"raw"`
			Normalized model.AvailabilityTemplate  `json:"normalized"`
		} `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, model.AvailabilityTemplate{}, fmt.Errorf("could not decode availability json:\n%+v\n%s", resp.ToString(), err)
	}

	return wrapper.Data.Raw, wrapper.Data.Normalized, nil
}
