package services

import (
	"context"
	"net/http"
	"net/url"

	"portfolio-bff/internal/models"
)

// API groups one client object per backend resource.
type API struct {
	client *ServiceClient

	Auth     *Auth
	Sections *Sections
	Hero     *Singleton
	About    *Singleton
	Slider   *Slider
	Contact  *Contact
}

func NewAPI(s *ServiceClient) *API {
	return &API{
		client:   s,
		Auth:     &Auth{s: s},
		Sections: &Sections{s: s},
		Hero:     &Singleton{s: s, path: "/hero"},
		About:    &Singleton{s: s, path: "/about"},
		Slider:   &Slider{s: s},
		Contact:  &Contact{s: s},
	}
}

// Resource returns the client for the collection at "/"+name.
func (a *API) Resource(name string) *Resource {
	return &Resource{s: a.client, path: "/" + name}
}

// Singleton returns the client for a singleton at "/"+name.
func (a *API) Singleton(name string) *Singleton {
	switch name {
	case "hero":
		return a.Hero
	case "about":
		return a.About
	}
	return &Singleton{s: a.client, path: "/" + name}
}

type Auth struct{ s *ServiceClient }

func (a *Auth) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := a.s.mutate(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) Register(ctx context.Context, user models.Record) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := a.s.mutate(ctx, http.MethodPost, "/auth/register", user, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user owning the token in ctx.
func (a *Auth) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.s.get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Auth) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	return a.s.mutate(ctx, http.MethodPut, "/auth/change-password", change, nil)
}

type Sections struct{ s *ServiceClient }

func (c *Sections) GetAll(ctx context.Context) ([]models.Section, error) {
	var out []models.Section
	if err := c.s.get(ctx, "/sections", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEnabled returns the enabled sections in display order.
func (c *Sections) GetEnabled(ctx context.Context) ([]models.Section, error) {
	var out []models.Section
	if err := c.s.get(ctx, "/sections/enabled", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Sections) Update(ctx context.Context, name string, section models.Section) (*models.Section, error) {
	var out models.Section
	if err := c.s.mutate(ctx, http.MethodPut, "/sections/"+url.PathEscape(name), section, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Sections) Toggle(ctx context.Context, name string) (*models.Section, error) {
	var out models.Section
	if err := c.s.mutate(ctx, http.MethodPatch, "/sections/"+url.PathEscape(name)+"/toggle", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type Slider struct{ s *ServiceClient }

func (c *Slider) Get(ctx context.Context) (*models.Slider, error) {
	var out models.Slider
	if err := c.s.get(ctx, "/slider", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Slider) AddImage(ctx context.Context, img models.SliderImage) error {
	return c.s.mutate(ctx, http.MethodPost, "/slider/add-image", img, nil)
}

func (c *Slider) UpdateImage(ctx context.Context, id string, img models.SliderImage) error {
	return c.s.mutate(ctx, http.MethodPut, "/slider/update-image/"+url.PathEscape(id), img, nil)
}

func (c *Slider) DeleteImage(ctx context.Context, id string) error {
	return c.s.mutate(ctx, http.MethodDelete, "/slider/delete-image/"+url.PathEscape(id), nil, nil)
}

func (c *Slider) Toggle(ctx context.Context) error {
	return c.s.mutate(ctx, http.MethodPost, "/slider/toggle", nil, nil)
}

func (c *Slider) Reorder(ctx context.Context, imageIDs []string) error {
	body := struct {
		ImageIDs []string `json:"imageIds"`
	}{ImageIDs: imageIDs}
	return c.s.mutate(ctx, http.MethodPost, "/slider/reorder", body, nil)
}

type Contact struct{ s *ServiceClient }

func (c *Contact) Submit(ctx context.Context, msg models.ContactMessage) error {
	return c.s.mutate(ctx, http.MethodPost, "/contact", msg, nil)
}

func (c *Contact) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	if err := c.s.get(ctx, "/contact", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Contact) MarkAsRead(ctx context.Context, id string) error {
	return c.s.mutate(ctx, http.MethodPatch, "/contact/"+url.PathEscape(id)+"/read", nil, nil)
}

func (c *Contact) Delete(ctx context.Context, id string) error {
	return c.s.mutate(ctx, http.MethodDelete, "/contact/"+url.PathEscape(id), nil, nil)
}
