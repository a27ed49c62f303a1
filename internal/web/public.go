package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"portfolio-bff/internal/models"
	"portfolio-bff/internal/sections"
	"portfolio-bff/internal/services"
)

const navKey = "nav"

type navGroup struct {
	Label string
	Links []navLink
}

type navLink struct {
	Label string
	Href  string
}

var navCategories = []struct {
	label    string
	sections []string
}{
	{"About", []string{"about", "skills", "languages"}},
	{"Experience", []string{"experience", "education", "certifications", "courses"}},
	{"Work", []string{"projects", "publications", "patents"}},
	{"Recognition", []string{"awards", "testscores", "volunteer"}},
}

// buildNav groups the enabled home sections into menus. Empty menus are
// dropped; contact gets its own entry.
func buildNav(enabled []string) []navGroup {
	on := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		on[name] = true
	}

	var nav []navGroup
	for _, cat := range navCategories {
		g := navGroup{Label: cat.label}
		for _, name := range cat.sections {
			if on[name] {
				g.Links = append(g.Links, navLink{Label: sections.Label(name), Href: "/#" + name})
			}
		}
		if len(g.Links) > 0 {
			nav = append(nav, g)
		}
	}
	nav = append(nav, navGroup{Label: "More", Links: []navLink{
		{Label: "Activities", Href: "/activities"},
		{Label: "Research", Href: "/publications"},
		{Label: "Gallery", Href: "/gallery"},
	}})
	if on["contact"] {
		nav = append(nav, navGroup{Label: "Contact", Links: []navLink{{Label: "Contact", Href: "/#contact"}}})
	}
	return nav
}

type homeData struct {
	Sections       []string
	Hero           *models.Hero
	About          *models.About
	Slider         *models.Slider
	Experience     []models.Experience
	Education      []models.Education
	Skills         []models.SkillGroup
	Projects       []models.Project
	Volunteer      []models.Volunteer
	Publications   []models.Publication
	Patents        []models.Patent
	Awards         []models.Award
	TestScores     []models.TestScore
	Languages      []models.Language
	Certifications []models.Certification
	Courses        []models.Course
}

// homeLoaders fetch the data of one home section into d. Sections without a
// loader, such as contact, render from static markup.
var homeLoaders = map[string]func(ctx context.Context, api *services.API, d *homeData) error{
	"hero": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		if d.Hero, err = services.FetchOne[models.Hero](ctx, api.Hero); err != nil {
			return err
		}
		slider, err := api.Slider.Get(ctx)
		if err != nil {
			slog.Warn("Slider fallback", "error", err)
			return nil
		}
		if slider.IsEnabled && len(slider.Images) > 0 {
			d.Slider = slider
		}
		return nil
	},
	"about": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.About, err = services.FetchOne[models.About](ctx, api.About)
		return err
	},
	"experience": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Experience, err = services.FetchList[models.Experience](ctx, api.Resource("experience"), "")
		return err
	},
	"education": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Education, err = services.FetchList[models.Education](ctx, api.Resource("education"), "")
		return err
	},
	"skills": func(ctx context.Context, api *services.API, d *homeData) error {
		skills, err := services.FetchList[models.Skill](ctx, api.Resource("skills"), "")
		d.Skills = groupSkills(skills)
		return err
	},
	"projects": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Projects, err = services.FetchList[models.Project](ctx, api.Resource("projects"), "")
		return err
	},
	"volunteer": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Volunteer, err = services.FetchList[models.Volunteer](ctx, api.Resource("volunteer"), "")
		return err
	},
	"publications": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Publications, err = services.FetchList[models.Publication](ctx, api.Resource("publications"), "")
		return err
	},
	"patents": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Patents, err = services.FetchList[models.Patent](ctx, api.Resource("patents"), "")
		return err
	},
	"awards": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Awards, err = services.FetchList[models.Award](ctx, api.Resource("awards"), "")
		return err
	},
	"testscores": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.TestScores, err = services.FetchList[models.TestScore](ctx, api.Resource("testscores"), "")
		return err
	},
	"languages": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Languages, err = services.FetchList[models.Language](ctx, api.Resource("languages"), "")
		return err
	},
	"certifications": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Certifications, err = services.FetchList[models.Certification](ctx, api.Resource("certifications"), "")
		return err
	},
	"courses": func(ctx context.Context, api *services.API, d *homeData) (err error) {
		d.Courses, err = services.FetchList[models.Course](ctx, api.Resource("courses"), "")
		return err
	},
}

// homeSections are the sections the home page knows how to render.
var homeSections = map[string]bool{"contact": true}

func init() {
	for name := range homeLoaders {
		homeSections[name] = true
	}
}

func (h *Handler) loadHome(ctx context.Context) (homeData, bool) {
	var d homeData

	enabled, err := h.api.Sections.GetEnabled(ctx)
	if err != nil {
		slog.Error("Enabled sections fetch error", "error", err)
		return d, false
	}

	for _, s := range enabled {
		if homeSections[s.Name] {
			d.Sections = append(d.Sections, s.Name)
		}
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		complete = true
	)

	for _, name := range d.Sections {
		load, ok := homeLoaders[name]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := load(ctx, h.api, &d); err != nil {
				slog.Error("Section fetch error", "section", name, "error", err)
				mu.Lock()
				complete = false
				mu.Unlock()
			}
		}(name)
	}

	wg.Wait()
	return d, complete
}

func (h *Handler) home(c *gin.Context) {
	d := cached(c.Request.Context(), h, "home", h.loadHome)
	c.Set(navKey, buildNav(d.Sections))
	h.render(c, http.StatusOK, "home.html", "Portfolio", d)
}

// groupSkills buckets skills by category in first-seen order.
func groupSkills(skills []models.Skill) []models.SkillGroup {
	var groups []models.SkillGroup
	index := make(map[string]int)
	for _, s := range skills {
		cat := s.Category
		if cat == "" {
			cat = "Other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, models.SkillGroup{Category: cat})
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}

type tab struct {
	Key    string
	Label  string
	Count  int
	Active bool
}

type tabSet struct {
	Base string
	Tabs []tab
}

type activitiesData struct {
	Talks         []models.Talk
	Internships   []models.Internship
	Workshops     []models.Workshop
	Trainings     []models.Training
	Appreciations []models.Appreciation
}

func (h *Handler) loadActivities(ctx context.Context) (activitiesData, bool) {
	var (
		d    activitiesData
		wg   sync.WaitGroup
		errs = make([]error, 5)
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		d.Talks, errs[0] = services.FetchList[models.Talk](ctx, h.api.Resource("talks"), "")
	}()
	go func() {
		defer wg.Done()
		d.Internships, errs[1] = services.FetchList[models.Internship](ctx, h.api.Resource("internships"), "")
	}()
	go func() {
		defer wg.Done()
		d.Workshops, errs[2] = services.FetchList[models.Workshop](ctx, h.api.Resource("workshops"), "")
	}()
	go func() {
		defer wg.Done()
		d.Trainings, errs[3] = services.FetchList[models.Training](ctx, h.api.Resource("trainings"), "")
	}()
	go func() {
		defer wg.Done()
		d.Appreciations, errs[4] = services.FetchList[models.Appreciation](ctx, h.api.Resource("appreciations"), "")
	}()
	wg.Wait()

	return d, logFailures("activities", errs)
}

func (h *Handler) activities(c *gin.Context) {
	d := cached(c.Request.Context(), h, "activities", h.loadActivities)

	active := c.DefaultQuery("tab", "talks")
	counts := []int{len(d.Talks), len(d.Internships), len(d.Workshops), len(d.Trainings), len(d.Appreciations)}
	tabs := make([]tab, len(sections.Activities))
	valid := false
	for i, name := range sections.Activities {
		tabs[i] = tab{Key: name, Label: sections.Label(name), Count: counts[i], Active: name == active}
		valid = valid || tabs[i].Active
	}
	if !valid {
		active = "talks"
		tabs[0].Active = true
	}

	h.render(c, http.StatusOK, "activities.html", "Activities", gin.H{
		"Tabs":       tabs,
		"Active":     active,
		"Activities": d,
	})
}

type publicationsData struct {
	Papers map[string][]models.Paper
}

// paperTabs maps the public tab keys onto paper sections.
var paperTabs = []struct{ key, section string }{
	{"journal", "journalpapers"},
	{"research", "researchpapers"},
	{"conference", "conferencepapers"},
	{"book", "bookchapters"},
}

func (h *Handler) loadPublications(ctx context.Context) (publicationsData, bool) {
	var (
		wg     sync.WaitGroup
		lists  = make([][]models.Paper, len(paperTabs))
		errs   = make([]error, len(paperTabs))
		papers = make(map[string][]models.Paper, len(paperTabs))
	)

	for i, pt := range paperTabs {
		desc, _ := sections.Lookup(pt.section)
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			lists[i], errs[i] = services.FetchList[models.Paper](ctx, h.api.Resource(path), "")
		}(i, desc.Path)
	}
	wg.Wait()

	for i, pt := range paperTabs {
		papers[pt.key] = lists[i]
	}
	return publicationsData{Papers: papers}, logFailures("publications", errs)
}

func (h *Handler) publications(c *gin.Context) {
	d := cached(c.Request.Context(), h, "publications", h.loadPublications)

	active := c.DefaultQuery("tab", "journal")
	if _, ok := d.Papers[active]; !ok {
		active = "journal"
	}
	tabs := make([]tab, len(paperTabs))
	for i, pt := range paperTabs {
		tabs[i] = tab{Key: pt.key, Label: sections.Label(pt.section), Count: len(d.Papers[pt.key]), Active: pt.key == active}
	}

	h.render(c, http.StatusOK, "publications.html", "Research & Publications", gin.H{
		"Tabs":   tabs,
		"Active": active,
		"Papers": d.Papers[active],
	})
}

func (h *Handler) gallery(c *gin.Context) {
	featured := c.Query("featured") == "1"
	key, variant := "gallery", ""
	if featured {
		key, variant = "gallery:featured", "featured"
	}

	images := cached(c.Request.Context(), h, key, func(ctx context.Context) ([]models.GalleryImage, bool) {
		images, err := services.FetchList[models.GalleryImage](ctx, h.api.Resource("gallery"), variant)
		if err != nil {
			slog.Error("Gallery fetch error", "error", err)
			return nil, false
		}
		return images, true
	})

	category := c.DefaultQuery("category", "all")
	categories := []string{"all"}
	seen := map[string]bool{}
	var shown []models.GalleryImage
	for _, img := range images {
		if img.Category != "" && !seen[img.Category] {
			seen[img.Category] = true
			categories = append(categories, img.Category)
		}
		if category == "all" || img.Category == category {
			shown = append(shown, img)
		}
	}

	h.render(c, http.StatusOK, "gallery.html", "Gallery", gin.H{
		"Images":     shown,
		"Categories": categories,
		"Category":   category,
		"Featured":   featured,
	})
}

type contactForm struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email"`
	Subject string `form:"subject" binding:"required,max=200"`
	Message string `form:"message" binding:"required,max=5000"`
}

func (h *Handler) contact(c *gin.Context) {
	ctx := c.Request.Context()

	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		flashError(c, "Please fill in your name, a valid email, a subject and a message.")
		h.redirect(c, "/#contact")
		return
	}

	// Only well-formed submissions count towards the limit.
	if h.cache.IsRateLimited(ctx, "contact:"+c.ClientIP(), h.cfg.ContactRateLimit, h.cfg.ContactRateWindow) {
		slog.Warn("Rate limit exceeded", "ip", c.ClientIP())
		flashError(c, "Too many messages. Please try again later.")
		h.redirect(c, "/#contact")
		return
	}

	err := h.api.Contact.Submit(ctx, models.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		slog.Error("Contact submit error", "error", err)
		flashError(c, "Failed to send message: "+services.Message(err))
		h.redirect(c, "/#contact")
		return
	}

	flashSuccess(c, "Message sent successfully!")
	h.redirect(c, "/#contact")
}

// logFailures logs every non-nil error and reports whether there were none.
func logFailures(page string, errs []error) bool {
	ok := true
	for _, err := range errs {
		if err != nil {
			slog.Error("Section fetch error", "page", page, "error", err)
			ok = false
		}
	}
	return ok
}
