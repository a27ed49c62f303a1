// Package sections describes every managed content type: its backend path,
// its form fields and how an entry is summarised in admin lists. The admin
// console renders all managers from these descriptors.
package sections

import (
	"fmt"
	"strings"

	"portfolio-bff/internal/models"
)

type Group string

const (
	GroupPersonal    Group = "personal"
	GroupExperience  Group = "experience"
	GroupWork        Group = "work"
	GroupRecognition Group = "recognition"
	GroupGallery     Group = "gallery"
)

// Groups lists the dashboard groups in display order.
var Groups = []struct {
	Group Group
	Label string
}{
	{GroupPersonal, "Personal"},
	{GroupExperience, "Experience & Education"},
	{GroupWork, "Work & Research"},
	{GroupRecognition, "Recognition"},
	{GroupGallery, "Gallery"},
}

// Summary is the two line rendering of an entry in a manager list.
type Summary struct {
	Title  string
	Detail string
}

type Descriptor struct {
	Name      string
	Label     string
	Path      string
	Singleton bool
	Group     Group
	Fields    []Field
	Summarize func(models.Record) Summary
}

// Summary renders rec for a manager list.
func (d *Descriptor) Summary(rec models.Record) Summary {
	if d.Summarize == nil {
		return Summary{Title: str(rec, "title")}
	}
	return d.Summarize(rec)
}

var (
	// Activities and Papers are the tabs of the public activities and
	// publications pages, in tab order.
	Activities = []string{"talks", "internships", "workshops", "trainings", "appreciations"}
	Papers     = []string{"journalpapers", "researchpapers", "conferencepapers", "bookchapters"}
)

var labels = map[string]string{"contact": "Contact"}

var registry = map[string]*Descriptor{}

var order []string

func register(d *Descriptor) {
	if d.Path == "" {
		d.Path = d.Name
	}
	registry[d.Name] = d
	labels[d.Name] = d.Label
	order = append(order, d.Name)
}

// Lookup returns the descriptor of a managed section.
func Lookup(name string) (*Descriptor, bool) {
	d, ok := registry[name]
	return d, ok
}

// All returns every managed section in registration order.
func All() []*Descriptor {
	out := make([]*Descriptor, 0, len(order))
	for _, name := range order {
		out = append(out, registry[name])
	}
	return out
}

func InGroup(g Group) []*Descriptor {
	var out []*Descriptor
	for _, name := range order {
		if registry[name].Group == g {
			out = append(out, registry[name])
		}
	}
	return out
}

// Label returns the display name for any section known to the site, falling
// back to a title-cased name for sections the backend adds later.
func Label(name string) string {
	if l, ok := labels[name]; ok {
		return l
	}
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func str(rec models.Record, path string) string {
	v, ok := rec.Lookup(path)
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatNumber(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	return fmt.Sprint(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func titled(title, detail string) func(models.Record) Summary {
	return func(rec models.Record) Summary {
		return Summary{Title: str(rec, title), Detail: str(rec, detail)}
	}
}

func init() {
	register(&Descriptor{
		Name: "hero", Label: "Hero Section", Singleton: true, Group: GroupPersonal,
		Fields: []Field{
			required(text("name", "Name")),
			required(text("tagline", "Tagline")),
			textarea("description", "Description"),
			image("profileImage", "Profile Image"),
			link("resumeUrl", "Resume URL"),
			link("socials.linkedin", "LinkedIn URL"),
			link("socials.github", "GitHub URL"),
			link("socials.twitter", "Twitter URL"),
			email("socials.email", "Email"),
			link("socials.website", "Website URL"),
		},
		Summarize: titled("name", "tagline"),
	})
	register(&Descriptor{
		Name: "about", Label: "About", Singleton: true, Group: GroupPersonal,
		Fields: []Field{
			text("title", "Title"),
			required(textarea("content", "Content")),
			image("image", "About Image"),
		},
		Summarize: func(rec models.Record) Summary {
			return Summary{Title: str(rec, "title"), Detail: truncate(str(rec, "content"), 100)}
		},
	})
	register(&Descriptor{
		Name: "skills", Label: "Skills", Group: GroupPersonal,
		Fields: []Field{
			required(text("name", "Skill Name")),
			choice("category", "Category", "Programming Languages", "Frameworks", "Databases", "Tools", "Cloud", "Other"),
			choice("level", "Level", "Beginner", "Intermediate", "Advanced", "Expert"),
			number("yearsOfExperience", "Years of Experience"),
			checkbox("featured", "Featured Skill"),
			text("icon", "Icon"),
		},
		Summarize: func(rec models.Record) Summary {
			return Summary{Title: str(rec, "name"), Detail: joinNonEmpty(" - ", str(rec, "category"), str(rec, "level"))}
		},
	})
	register(&Descriptor{
		Name: "languages", Label: "Languages", Group: GroupPersonal,
		Fields: []Field{
			required(text("language", "Language")),
			choice("proficiency", "Proficiency", proficiencyLevels...),
			choice("speaking", "Speaking", proficiencyLevels...),
			choice("writing", "Writing", proficiencyLevels...),
			choice("reading", "Reading", proficiencyLevels...),
			link("certificateUrl", "Certificate URL"),
		},
		Summarize: titled("language", "proficiency"),
	})

	register(&Descriptor{
		Name: "experience", Label: "Experience", Group: GroupExperience,
		Fields: []Field{
			required(text("company", "Company")),
			required(text("position", "Position")),
			text("location", "Location"),
			checkbox("current", "Current Position"),
			required(date("startDate", "Start Date")),
			date("endDate", "End Date"),
			textarea("description", "Job Description"),
			commaList("technologies", "Technologies"),
			lineList("achievements", "Achievements"),
		},
		Summarize: titled("position", "company"),
	})
	register(&Descriptor{
		Name: "education", Label: "Education", Group: GroupExperience,
		Fields: []Field{
			required(text("institution", "Institution")),
			required(text("degree", "Degree")),
			text("field", "Field of Study"),
			text("location", "Location"),
			number("gpa", "GPA"),
			number("maxGpa", "Max GPA"),
			required(date("startDate", "Start Date")),
			date("endDate", "End Date"),
			textarea("description", "Description"),
			commaList("coursework", "Relevant Coursework"),
		},
		Summarize: titled("degree", "institution"),
	})
	register(&Descriptor{
		Name: "certifications", Label: "Certifications", Group: GroupExperience,
		Fields: []Field{
			required(text("name", "Certification Name")),
			text("issuer", "Issuing Organization"),
			date("issueDate", "Issue Date"),
			date("expiryDate", "Expiry Date"),
			text("credentialId", "Credential ID"),
			link("credentialUrl", "Credential URL"),
			textarea("description", "Description"),
			commaList("skills", "Skills"),
		},
		Summarize: titled("name", "issuer"),
	})
	register(&Descriptor{
		Name: "courses", Label: "Courses", Group: GroupExperience,
		Fields: []Field{
			required(text("title", "Course Title")),
			text("provider", "Provider"),
			text("instructor", "Instructor"),
			date("completionDate", "Completion Date"),
			text("duration", "Duration"),
			link("certificateUrl", "Certificate URL"),
			textarea("description", "Description"),
			commaList("skills", "Skills"),
			text("grade", "Grade/Score"),
		},
		Summarize: titled("title", "provider"),
	})

	register(&Descriptor{
		Name: "projects", Label: "Projects", Group: GroupWork,
		Fields: []Field{
			required(text("title", "Title")),
			image("image", "Project Image"),
			required(textarea("description", "Description")),
			commaList("technologies", "Technologies"),
			checkbox("featured", "Featured Project"),
			link("liveUrl", "Live URL"),
			link("githubUrl", "GitHub URL"),
			date("startDate", "Start Date"),
			date("endDate", "End Date"),
		},
		Summarize: func(rec models.Record) Summary {
			return Summary{Title: str(rec, "title"), Detail: truncate(str(rec, "description"), 100)}
		},
	})
	register(&Descriptor{
		Name: "publications", Label: "Publications", Group: GroupWork,
		Fields: []Field{
			required(text("title", "Title")),
			text("journal", "Journal/Conference"),
			commaList("authors", "Authors"),
			date("publishDate", "Publish Date"),
			text("doi", "DOI"),
			link("url", "URL"),
			textarea("abstract", "Abstract"),
			commaList("keywords", "Keywords"),
			choice("type", "Publication Type", "Journal Article", "Conference Paper", "Book Chapter", "Thesis", "Other"),
		},
		Summarize: titled("title", "journal"),
	})
	register(&Descriptor{
		Name: "patents", Label: "Patents", Group: GroupWork,
		Fields: []Field{
			required(text("title", "Title")),
			text("patentNumber", "Patent Number"),
			commaList("inventors", "Inventors"),
			text("assignee", "Assignee"),
			date("filingDate", "Filing Date"),
			date("publicationDate", "Publication Date"),
			date("grantDate", "Grant Date"),
			choice("status", "Patent Status", "Filed", "Published", "Granted", "Expired"),
			textarea("abstract", "Abstract"),
			link("url", "URL"),
			text("field", "Field"),
		},
		Summarize: func(rec models.Record) Summary {
			return Summary{Title: str(rec, "title"), Detail: joinNonEmpty(" - ", str(rec, "patentNumber"), str(rec, "status"))}
		},
	})
	register(&Descriptor{
		Name: "talks", Label: "Talks", Group: GroupWork,
		Fields: []Field{
			required(text("title", "Title")),
			text("event", "Event"),
			date("date", "Date"),
			text("location", "Location"),
			textarea("description", "Description"),
			link("url", "URL"),
		},
		Summarize: titled("title", "event"),
	})
	register(&Descriptor{
		Name: "internships", Label: "Internships", Group: GroupWork,
		Fields: []Field{
			required(text("title", "Title")),
			text("company", "Company"),
			date("startDate", "Start Date"),
			date("endDate", "End Date"),
			text("location", "Location"),
			textarea("description", "Description"),
			commaList("skills", "Skills"),
		},
		Summarize: titled("title", "company"),
	})
	register(&Descriptor{
		Name: "workshops", Label: "Workshops", Group: GroupWork,
		Fields: []Field{
			required(text("title", "Title")),
			required(choice("type", "Type", "attended", "conducted")),
			text("organizer", "Organizer"),
			date("date", "Date"),
			text("duration", "Duration"),
			text("location", "Location"),
			textarea("description", "Description"),
		},
		Summarize: func(rec models.Record) Summary {
			return Summary{Title: str(rec, "title"), Detail: joinNonEmpty(" - ", str(rec, "type"), str(rec, "organizer"))}
		},
	})
	register(&Descriptor{
		Name: "trainings", Label: "Trainings", Group: GroupWork,
		Fields: []Field{
			required(text("title", "Title")),
			text("provider", "Provider"),
			date("startDate", "Start Date"),
			date("endDate", "End Date"),
			text("duration", "Duration"),
			textarea("description", "Description"),
			commaList("skills", "Skills"),
		},
		Summarize: titled("title", "provider"),
	})
	register(&Descriptor{
		Name: "journalpapers", Label: "Journal Papers", Path: "journal-papers", Group: GroupWork,
		Fields: paperFields(
			text("journal", "Journal"),
			text("volume", "Volume"),
			text("issue", "Issue"),
		),
		Summarize: titled("title", "journal"),
	})
	register(&Descriptor{
		Name: "researchpapers", Label: "Research Papers", Path: "research-papers", Group: GroupWork,
		Fields: paperFields(
			text("journal", "Journal"),
			text("publisher", "Publisher"),
		),
		Summarize: func(rec models.Record) Summary {
			return Summary{Title: str(rec, "title"), Detail: joinNonEmpty(" - ", str(rec, "journal"), str(rec, "publisher"))}
		},
	})
	register(&Descriptor{
		Name: "conferencepapers", Label: "Conference Papers", Path: "conference-papers", Group: GroupWork,
		Fields: paperFields(
			text("conference", "Conference"),
			date("conferenceDate", "Conference Date"),
			text("location", "Location"),
		),
		Summarize: titled("title", "conference"),
	})
	register(&Descriptor{
		Name: "bookchapters", Label: "Book Chapters", Path: "book-chapters", Group: GroupWork,
		Fields: paperFields(
			text("bookTitle", "Book Title"),
			text("chapterNumber", "Chapter Number"),
			text("publisher", "Publisher"),
		),
		Summarize: titled("title", "bookTitle"),
	})

	register(&Descriptor{
		Name: "awards", Label: "Awards & Honors", Group: GroupRecognition,
		Fields: []Field{
			required(text("title", "Award Title")),
			text("issuer", "Issuer"),
			date("date", "Date"),
			Field{Name: "level", Label: "Level", Kind: KindText, Placeholder: "e.g. National, Regional"},
			textarea("description", "Description"),
			text("amount", "Amount"),
			link("url", "URL"),
		},
		Summarize: titled("title", "issuer"),
	})
	register(&Descriptor{
		Name: "testscores", Label: "Test Scores", Group: GroupRecognition,
		Fields: []Field{
			required(text("testName", "Test Name")),
			number("score", "Score"),
			number("maxScore", "Max Score"),
			number("percentile", "Percentile"),
			date("testDate", "Test Date"),
			date("validUntil", "Valid Until"),
			textarea("breakdown", "Score Breakdown"),
			link("certificateUrl", "Certificate URL"),
		},
		Summarize: func(rec models.Record) Summary {
			return Summary{Title: str(rec, "testName"), Detail: fmt.Sprintf("Score: %s/%s", str(rec, "score"), str(rec, "maxScore"))}
		},
	})
	register(&Descriptor{
		Name: "volunteer", Label: "Volunteer Experience", Group: GroupRecognition,
		Fields: []Field{
			required(text("organization", "Organization")),
			required(text("position", "Position")),
			text("location", "Location"),
			text("cause", "Cause"),
			required(date("startDate", "Start Date")),
			date("endDate", "End Date"),
			textarea("description", "Description"),
			number("hoursPerWeek", "Hours per Week"),
			link("website", "Website"),
		},
		Summarize: titled("position", "organization"),
	})
	register(&Descriptor{
		Name: "appreciations", Label: "Appreciations", Group: GroupRecognition,
		Fields: []Field{
			required(text("title", "Title")),
			text("awardedBy", "Awarded By"),
			text("category", "Category"),
			date("date", "Date"),
			textarea("description", "Description"),
		},
		Summarize: titled("title", "awardedBy"),
	})

	register(&Descriptor{
		Name: "gallery", Label: "Gallery", Group: GroupGallery,
		Fields: []Field{
			required(text("title", "Title")),
			Field{Name: "image", Label: "Image", Kind: KindImage, Required: true, Wide: true},
			text("category", "Category"),
			textarea("description", "Description"),
			checkbox("featured", "Featured"),
		},
		Summarize: titled("title", "category"),
	})
}

// paperFields builds the shared paper form around the kind specific fields.
func paperFields(specific ...Field) []Field {
	fields := []Field{
		required(text("title", "Title")),
		commaList("authors", "Authors"),
	}
	fields = append(fields, specific...)
	return append(fields,
		date("publishDate", "Publish Date"),
		text("doi", "DOI"),
		link("url", "URL"),
		link("pdf", "PDF URL"),
		textarea("abstract", "Abstract"),
		imageList("images", "Images"),
	)
}

// SliderImage is the form of one homepage slider image. The slider is not a
// section, so it is not registered.
var SliderImage = &Descriptor{
	Name:  "slider",
	Label: "Slider Image",
	Fields: []Field{
		{Name: "url", Label: "Image", Kind: KindImage, Required: true, Wide: true},
		text("title", "Title"),
		textarea("description", "Description"),
	},
	Summarize: titled("title", "description"),
}
