package portalapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/counseling_portal/internal/model"
)

// GetAvailability loads the counselor's weekly slots and overrides
func (c *Client) GetAvailability(ctx context.Context, token string) (*model.Availability, error) {
	var availability model.Availability
	if err := c.do(ctx, token, http.MethodGet, "/availability", nil, &availability); err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	return &availability, nil
}

// PutAvailability replaces the counselor's availability as a whole
func (c *Client) PutAvailability(ctx context.Context, token string, availability *model.Availability) (*model.Availability, error) {
	payload := model.Availability{
		Weekly:    availability.Weekly,
		Overrides: availability.Overrides,
	}
	if payload.Weekly == nil {
		payload.Weekly = []model.WeeklySlot{}
	}
	if payload.Overrides == nil {
		payload.Overrides = []model.DateOverride{}
	}

	var saved model.Availability
	if err := c.do(ctx, token, http.MethodPut, "/availability", payload, &saved); err != nil {
		return nil, fmt.Errorf("put availability: %w", err)
	}
	return &saved, nil
}
