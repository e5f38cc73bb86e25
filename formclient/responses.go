package formclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-easeform-client/cache"
)

func responsesListKey(formID uuid.UUID) string {
	return cache.Key(responsesNamespace, "list", formID.String())
}

// ListResponses returns every response submitted to the given form. Owner
// only; the API enforces ownership.
func (c *Client) ListResponses(ctx context.Context, formID uuid.UUID, onUpdate ...func([]ResponseData)) ([]ResponseData, error) {
	return resolveAs(ctx, c, responsesListKey(formID),
		c.getFetch("/forms/"+formID.String()+"/responses", true),
		c.cfg.ResponseTTL, firstHandler(onUpdate))
}

// ResponseSummary aggregates the form's responses. It reads through the same
// cache key as ListResponses, so the two views never disagree.
func (c *Client) ResponseSummary(ctx context.Context, formID uuid.UUID) (ResponseSummary, error) {
	responses, err := c.ListResponses(ctx, formID)
	if err != nil {
		return ResponseSummary{}, err
	}

	summary := ResponseSummary{TotalResponses: len(responses)}
	for _, r := range responses {
		if summary.LatestResponse == nil || r.CreatedAt.After(*summary.LatestResponse) {
			created := r.CreatedAt
			summary.LatestResponse = &created
		}
	}
	return summary, nil
}

// SubmitResponse submits a response through the public endpoint. The server
// enforces one response per device; a duplicate reads as IsConflict.
func (c *Client) SubmitResponse(ctx context.Context, formID uuid.UUID, response ResponseSubmit) error {
	if _, err := c.do(ctx, http.MethodPost, "/forms/"+formID.String()+"/responses", response, false); err != nil {
		return err
	}
	c.store.Invalidate(responsesListKey(formID))
	return nil
}

// DeleteResponse removes a single response from a form the host owns.
func (c *Client) DeleteResponse(ctx context.Context, formID, responseID uuid.UUID) error {
	if _, err := c.do(ctx, http.MethodDelete, "/responses/"+responseID.String(), nil, true); err != nil {
		return err
	}
	c.store.Invalidate(responsesListKey(formID))
	return nil
}
