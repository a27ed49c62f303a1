package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"portfolio-bff/internal/models"
	"portfolio-bff/internal/sections"
	"portfolio-bff/internal/services"
)

type managerItem struct {
	ID      string
	Summary sections.Summary
}

type managerData struct {
	Desc     *sections.Descriptor
	Items    []managerItem
	ShowForm bool
	EditID   string
	Action   string
	Fields   []sections.FormField
	Error    string
}

func managerURL(d *sections.Descriptor) string {
	return "/admin/sections/" + d.Name
}

func (h *Handler) descriptor(c *gin.Context) (*sections.Descriptor, bool) {
	d, ok := sections.Lookup(c.Param("name"))
	if !ok {
		h.render(c, http.StatusNotFound, "error.html", "Not found", gin.H{"Message": "Unknown section " + c.Param("name") + "."})
	}
	return d, ok
}

// formInput collects a submitted form, multipart or urlencoded.
func formInput(c *gin.Context) (sections.Input, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			return sections.Input{}, err
		}
		return sections.Input{Values: form.Value, Files: form.File}, nil
	}
	if err := c.Request.ParseForm(); err != nil {
		return sections.Input{}, err
	}
	return sections.Input{Values: c.Request.PostForm}, nil
}

func (h *Handler) manager(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	data := managerData{Desc: d, Action: managerURL(d)}

	if d.Singleton {
		rec, err := h.api.Singleton(d.Path).Get(ctx)
		if err != nil {
			if errors.Is(err, services.ErrUnauthorized) {
				h.expire(c)
				return
			}
			slog.Error("Section fetch error", "section", d.Name, "error", err)
			data.Error = "Failed to load " + strings.ToLower(d.Label) + ": " + services.Message(err)
		}
		if rec != nil {
			data.Items = []managerItem{{Summary: d.Summary(rec)}}
		}
		data.ShowForm = true
		data.Fields = sections.FormFields(d, sections.Values(d, rec), nil)
		h.render(c, http.StatusOK, "manager.html", d.Label, data)
		return
	}

	if !h.loadItems(c, d, &data) {
		return
	}

	switch {
	case c.Query("edit") != "":
		id := c.Query("edit")
		rec, err := h.api.Resource(d.Path).Get(ctx, id)
		if err != nil {
			h.fail(c, err, "load "+strings.ToLower(d.Label), managerURL(d))
			return
		}
		data.ShowForm = true
		data.EditID = id
		data.Action = managerURL(d) + "/items/" + id
		data.Fields = sections.FormFields(d, sections.Values(d, rec), nil)
	case c.Query("new") != "":
		data.ShowForm = true
		data.Fields = sections.FormFields(d, nil, nil)
	}

	h.render(c, http.StatusOK, "manager.html", d.Label, data)
}

// loadItems fills data.Items. It returns false when it already answered the
// request.
func (h *Handler) loadItems(c *gin.Context, d *sections.Descriptor, data *managerData) bool {
	list, err := h.api.Resource(d.Path).GetAll(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			h.expire(c)
			return false
		}
		slog.Error("Section fetch error", "section", d.Name, "error", err)
		data.Error = "Failed to load " + strings.ToLower(d.Label) + ": " + services.Message(err)
		return true
	}
	for _, rec := range list {
		data.Items = append(data.Items, managerItem{ID: rec.ID(), Summary: d.Summary(rec)})
	}
	return true
}

// decodeEntry validates the submitted form. On failure it re-renders the
// manager with the problems and returns false.
func (h *Handler) decodeEntry(c *gin.Context, d *sections.Descriptor, editID string) (models.Record, bool) {
	in, err := formInput(c)
	if err != nil {
		slog.Warn("Form parse error", "section", d.Name, "error", err)
		flashError(c, "The form could not be read. Images must be at most "+humanLimit(h.cfg.MaxImageBytes)+".")
		h.redirect(c, managerURL(d))
		return nil, false
	}

	rec, err := sections.Decode(d, in, h.cfg.MaxImageBytes)
	if err == nil {
		return rec, true
	}

	var fe sections.FieldErrors
	if !errors.As(err, &fe) {
		slog.Error("Form decode error", "section", d.Name, "error", err)
		flashError(c, "Failed to save "+strings.ToLower(d.Label)+": "+err.Error())
		h.redirect(c, managerURL(d))
		return nil, false
	}

	data := managerData{
		Desc:     d,
		ShowForm: true,
		EditID:   editID,
		Action:   managerURL(d),
		Fields:   sections.FormFields(d, sections.Submitted(d, in), fe),
		Error:    "Please correct the highlighted fields.",
	}
	if editID != "" {
		data.Action = managerURL(d) + "/items/" + editID
	}
	if !d.Singleton && !h.loadItems(c, d, &data) {
		return nil, false
	}
	h.render(c, http.StatusUnprocessableEntity, "manager.html", d.Label, data)
	return nil, false
}

func (h *Handler) createEntry(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}
	rec, ok := h.decodeEntry(c, d, "")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	verb := "created"
	var err error
	if d.Singleton {
		verb = "updated"
		err = h.api.Singleton(d.Path).Update(ctx, rec)
	} else {
		_, err = h.api.Resource(d.Path).Create(ctx, rec)
	}
	if err != nil {
		h.fail(c, err, "save "+strings.ToLower(d.Label), managerURL(d))
		return
	}

	h.invalidate(ctx)
	flashSuccess(c, d.Label+" "+verb+" successfully")
	h.redirect(c, managerURL(d))
}

func (h *Handler) updateEntry(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}
	id := c.Param("id")
	rec, ok := h.decodeEntry(c, d, id)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if _, err := h.api.Resource(d.Path).Update(ctx, id, rec); err != nil {
		h.fail(c, err, "save "+strings.ToLower(d.Label), managerURL(d))
		return
	}

	h.invalidate(ctx)
	flashSuccess(c, d.Label+" updated successfully")
	h.redirect(c, managerURL(d))
}

func (h *Handler) deleteEntry(c *gin.Context) {
	d, ok := h.descriptor(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.api.Resource(d.Path).Delete(ctx, c.Param("id")); err != nil {
		h.fail(c, err, "delete "+strings.ToLower(d.Label), managerURL(d))
		return
	}

	h.invalidate(ctx)
	flashSuccess(c, d.Label+" deleted successfully")
	h.redirect(c, managerURL(d))
}

type overviewRow struct {
	Desc    *sections.Descriptor
	Count   int
	Enabled bool
	Failed  bool
}

type overviewGroup struct {
	Label string
	Rows  []overviewRow
}

// activitiesAdmin lists the activity, paper and gallery managers with their
// entry counts.
func (h *Handler) activitiesAdmin(c *gin.Context) {
	ctx := c.Request.Context()

	layout := []struct {
		label string
		names []string
	}{
		{"Activities", sections.Activities},
		{"Publications", sections.Papers},
		{"Gallery", []string{"gallery"}},
	}

	var (
		wg      sync.WaitGroup
		groups  = make([]overviewGroup, len(layout))
		enabled = map[string]bool{}
		authErr bool
		mu      sync.Mutex
	)

	all, err := h.api.Sections.GetAll(ctx)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			h.expire(c)
			return
		}
		slog.Warn("Sections fetch error", "error", err)
	}
	for _, s := range all {
		enabled[s.Name] = s.IsEnabled
	}

	for gi, g := range layout {
		groups[gi] = overviewGroup{Label: g.label, Rows: make([]overviewRow, len(g.names))}
		for ri, name := range g.names {
			d, _ := sections.Lookup(name)
			groups[gi].Rows[ri] = overviewRow{Desc: d, Enabled: enabled[name]}
			wg.Add(1)
			go func(row *overviewRow) {
				defer wg.Done()
				list, err := h.api.Resource(row.Desc.Path).GetAll(ctx)
				if err != nil {
					slog.Error("Section fetch error", "section", row.Desc.Name, "error", err)
					row.Failed = true
					if errors.Is(err, services.ErrUnauthorized) {
						mu.Lock()
						authErr = true
						mu.Unlock()
					}
					return
				}
				row.Count = len(list)
			}(&groups[gi].Rows[ri])
		}
	}
	wg.Wait()

	if authErr {
		h.expire(c)
		return
	}

	h.render(c, http.StatusOK, "overview.html", "Activities & Publications", gin.H{"Groups": groups})
}
