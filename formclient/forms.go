package formclient

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-easeform-client/cache"
)

// Cache key namespaces. Writes invalidate by these prefixes, so every read
// key must live under the namespace of the resource it belongs to.
const (
	formsNamespace     = "forms"
	publicNamespace    = "public"
	responsesNamespace = "responses"
	keyFormsList       = "forms::list"
	keyHostProfile     = "host::profile"
)

func formKey(id uuid.UUID) string {
	return cache.Key(formsNamespace, "get", id.String())
}

func publicFormKey(id uuid.UUID) string {
	return cache.Key(publicNamespace, "form", id.String())
}

// ListForms returns the authenticated host's forms. An optional onUpdate
// handler (at most one) fires after a stale read when fresher data arrives.
func (c *Client) ListForms(ctx context.Context, onUpdate ...func([]FormListItem)) ([]FormListItem, error) {
	return resolveAs(ctx, c, keyFormsList, c.getFetch("/forms", true), c.cfg.FormListTTL, firstHandler(onUpdate))
}

// GetForm returns one of the authenticated host's forms by ID.
func (c *Client) GetForm(ctx context.Context, id uuid.UUID, onUpdate ...func(Form)) (Form, error) {
	return resolveAs(ctx, c, formKey(id), c.getFetch("/forms/"+id.String(), true), c.cfg.FormTTL, firstHandler(onUpdate))
}

// GetPublicForm returns a form through the unauthenticated public endpoint.
// Closed forms are returned so the caller can render a closed notice.
func (c *Client) GetPublicForm(ctx context.Context, id uuid.UUID, onUpdate ...func(Form)) (Form, error) {
	return resolveAs(ctx, c, publicFormKey(id), c.getFetch("/public/forms/"+id.String(), false), c.cfg.PublicFormTTL, firstHandler(onUpdate))
}

// CreateForm creates a form owned by the authenticated host and invalidates
// the forms namespace so lists pick it up.
func (c *Client) CreateForm(ctx context.Context, form FormCreate) (Form, error) {
	raw, err := c.do(ctx, http.MethodPost, "/forms", form, true)
	if err != nil {
		return Form{}, err
	}
	created, err := decode[Form](raw)
	if err != nil {
		return Form{}, err
	}
	c.store.InvalidatePattern(cache.MatchPrefix(formsNamespace + cache.KeySeparator))
	return created, nil
}

// UpdateForm applies a partial update and invalidates both the owner-facing
// and public views of the form.
func (c *Client) UpdateForm(ctx context.Context, id uuid.UUID, update FormUpdate) (Form, error) {
	raw, err := c.do(ctx, http.MethodPut, "/forms/"+id.String(), update, true)
	if err != nil {
		return Form{}, err
	}
	updated, err := decode[Form](raw)
	if err != nil {
		return Form{}, err
	}
	c.invalidateForm(id)
	return updated, nil
}

// StopForm closes a form to new responses.
func (c *Client) StopForm(ctx context.Context, id uuid.UUID) (Form, error) {
	raw, err := c.do(ctx, http.MethodPatch, "/forms/"+id.String()+"/stop", nil, true)
	if err != nil {
		return Form{}, err
	}
	stopped, err := decode[Form](raw)
	if err != nil {
		return Form{}, err
	}
	c.invalidateForm(id)
	return stopped, nil
}

// DeleteForm deletes a form and drops every cached view of it, responses
// included.
func (c *Client) DeleteForm(ctx context.Context, id uuid.UUID) error {
	if _, err := c.do(ctx, http.MethodDelete, "/forms/"+id.String(), nil, true); err != nil {
		return err
	}
	c.invalidateForm(id)
	c.store.InvalidatePattern(cache.MatchPrefix(responsesListKey(id)))
	return nil
}

// HostProfile returns the authenticated host's profile.
func (c *Client) HostProfile(ctx context.Context, onUpdate ...func(HostProfile)) (HostProfile, error) {
	return resolveAs(ctx, c, keyHostProfile, c.getFetch("/hosts/me", true), c.cfg.HostProfileTTL, firstHandler(onUpdate))
}

func (c *Client) invalidateForm(id uuid.UUID) {
	c.store.InvalidatePattern(cache.MatchPrefix(formsNamespace + cache.KeySeparator))
	c.store.Invalidate(publicFormKey(id))
}
