package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-bff/internal/models"
	"portfolio-bff/internal/sections"
	"portfolio-bff/internal/services"
)

const sliderPath = "/admin/slider"

type sliderRow struct {
	models.SliderImage
	Index  int
	First  bool
	Last   bool
	Fields []sections.FormField
}

func (h *Handler) sliderPage(c *gin.Context) {
	slider, err := h.api.Slider.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			h.expire(c)
			return
		}
		slog.Error("Slider fetch error", "error", err)
		h.render(c, http.StatusBadGateway, "slider.html", "Homepage Slider", gin.H{
			"Slider": models.Slider{},
			"Rows":   []sliderRow{},
			"New":    sections.FormFields(sections.SliderImage, nil, nil),
			"Error":  "Failed to load slider: " + services.Message(err),
		})
		return
	}

	rows := make([]sliderRow, len(slider.Images))
	for i, img := range slider.Images {
		rows[i] = sliderRow{
			SliderImage: img,
			Index:       i,
			First:       i == 0,
			Last:        i == len(slider.Images)-1,
			Fields:      sections.FormFields(sections.SliderImage, sliderValues(img), nil),
		}
	}

	h.render(c, http.StatusOK, "slider.html", "Homepage Slider", gin.H{
		"Slider": slider,
		"Rows":   rows,
		"New":    sections.FormFields(sections.SliderImage, nil, nil),
		"Error":  "",
	})
}

func sliderValues(img models.SliderImage) map[string]string {
	return sections.Values(sections.SliderImage, models.Record{
		"url":         img.URL,
		"title":       img.Title,
		"description": img.Description,
	})
}

// decodeSliderImage reads the image form, flashing the first problem.
func (h *Handler) decodeSliderImage(c *gin.Context) (models.SliderImage, bool) {
	var img models.SliderImage

	in, err := formInput(c)
	if err != nil {
		flashError(c, "The form could not be read. Images must be at most "+humanLimit(h.cfg.MaxImageBytes)+".")
		h.redirect(c, sliderPath)
		return img, false
	}

	rec, err := sections.Decode(sections.SliderImage, in, h.cfg.MaxImageBytes)
	if err != nil {
		var fe sections.FieldErrors
		msg := err.Error()
		if errors.As(err, &fe) {
			for _, f := range sections.SliderImage.Fields {
				if problem, ok := fe[f.Name]; ok {
					msg = problem
					break
				}
			}
		}
		flashError(c, msg)
		h.redirect(c, sliderPath)
		return img, false
	}

	if err := rec.Decode(&img); err != nil {
		flashError(c, "Failed to read image: "+err.Error())
		h.redirect(c, sliderPath)
		return img, false
	}
	return img, true
}

func (h *Handler) toggleSlider(c *gin.Context) {
	if err := h.api.Slider.Toggle(c.Request.Context()); err != nil {
		h.fail(c, err, "toggle slider", sliderPath)
		return
	}
	h.invalidate(c.Request.Context())
	flashSuccess(c, "Slider updated successfully")
	h.redirect(c, sliderPath)
}

func (h *Handler) addSliderImage(c *gin.Context) {
	img, ok := h.decodeSliderImage(c)
	if !ok {
		return
	}
	if err := h.api.Slider.AddImage(c.Request.Context(), img); err != nil {
		h.fail(c, err, "add image", sliderPath)
		return
	}
	h.invalidate(c.Request.Context())
	flashSuccess(c, "Image added successfully")
	h.redirect(c, sliderPath)
}

func (h *Handler) updateSliderImage(c *gin.Context) {
	img, ok := h.decodeSliderImage(c)
	if !ok {
		return
	}
	if err := h.api.Slider.UpdateImage(c.Request.Context(), c.Param("id"), img); err != nil {
		h.fail(c, err, "update image", sliderPath)
		return
	}
	h.invalidate(c.Request.Context())
	flashSuccess(c, "Image updated successfully")
	h.redirect(c, sliderPath)
}

func (h *Handler) deleteSliderImage(c *gin.Context) {
	if err := h.api.Slider.DeleteImage(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "delete image", sliderPath)
		return
	}
	h.invalidate(c.Request.Context())
	flashSuccess(c, "Image deleted successfully")
	h.redirect(c, sliderPath)
}

// moveSliderImage swaps an image with its neighbour and sends the full new
// order to the backend.
func (h *Handler) moveSliderImage(c *gin.Context) {
	ctx := c.Request.Context()
	slider, err := h.api.Slider.Get(ctx)
	if err != nil {
		h.fail(c, err, "load slider", sliderPath)
		return
	}

	ids, moved := moveID(slider.Images, c.Param("id"), c.Query("dir"))
	if !moved {
		h.redirect(c, sliderPath)
		return
	}

	if err := h.api.Slider.Reorder(ctx, ids); err != nil {
		h.fail(c, err, "reorder images", sliderPath)
		return
	}
	h.invalidate(ctx)
	flashSuccess(c, "Images reordered successfully")
	h.redirect(c, sliderPath)
}

// moveID returns the image ids with id moved one step in dir ("up" or
// "down"), and whether anything changed.
func moveID(images []models.SliderImage, id, dir string) ([]string, bool) {
	ids := make([]string, len(images))
	pos := -1
	for i, img := range images {
		ids[i] = img.ID
		if img.ID == id {
			pos = i
		}
	}
	if pos < 0 {
		return ids, false
	}

	target := pos + 1
	if dir == "up" {
		target = pos - 1
	} else if dir != "down" {
		return ids, false
	}
	if target < 0 || target >= len(ids) {
		return ids, false
	}

	ids[pos], ids[target] = ids[target], ids[pos]
	return ids, true
}
