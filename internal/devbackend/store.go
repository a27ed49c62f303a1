package devbackend

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfolio-bff/internal/models"
)

// DefaultSections is the seeded section list in display order.
var DefaultSections = []string{
	"hero", "about", "experience", "education", "skills", "projects",
	"volunteer", "publications", "patents", "awards", "testscores",
	"languages", "certifications", "courses", "talks", "internships",
	"workshops", "trainings", "appreciations", "journalpapers",
	"researchpapers", "conferencepapers", "bookchapters", "gallery", "contact",
}

var collections = map[string]bool{
	"experience": true, "education": true, "skills": true, "projects": true,
	"volunteer": true, "publications": true, "patents": true, "awards": true,
	"testscores": true, "languages": true, "certifications": true, "courses": true,
	"talks": true, "internships": true, "workshops": true, "trainings": true,
	"appreciations": true, "journal-papers": true, "research-papers": true,
	"conference-papers": true, "book-chapters": true, "gallery": true,
}

var singletons = map[string]bool{"hero": true, "about": true}

// Store keeps all backend state in memory.
type Store struct {
	mu         sync.RWMutex
	sections   []models.Section
	singletons map[string]models.Record
	items      map[string][]models.Record
	slider     models.Slider
	messages   []models.ContactMessage
}

func NewStore() *Store {
	s := &Store{
		singletons: make(map[string]models.Record),
		items:      make(map[string][]models.Record),
		slider:     models.Slider{Images: []models.SliderImage{}},
	}
	for _, name := range DefaultSections {
		s.sections = append(s.sections, models.Section{Name: name, IsEnabled: true})
	}
	return s
}

func (s *Store) Sections(enabledOnly bool) []models.Section {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Section, 0, len(s.sections))
	for _, sec := range s.sections {
		if enabledOnly && !sec.IsEnabled {
			continue
		}
		out = append(out, sec)
	}
	return out
}

func (s *Store) SetSection(name string, enabled bool) (models.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sections {
		if s.sections[i].Name == name {
			s.sections[i].IsEnabled = enabled
			return s.sections[i], true
		}
	}
	return models.Section{}, false
}

func (s *Store) ToggleSection(name string) (models.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sections {
		if s.sections[i].Name == name {
			s.sections[i].IsEnabled = !s.sections[i].IsEnabled
			return s.sections[i], true
		}
	}
	return models.Section{}, false
}

func (s *Store) Singleton(name string) models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.singletons[name]
}

func (s *Store) ReplaceSingleton(name string, rec models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(rec, "_id")
	s.singletons[name] = rec
}

func (s *Store) List(resource string, keep func(models.Record) bool) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, 0, len(s.items[resource]))
	for _, rec := range s.items[resource] {
		if keep == nil || keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Store) Item(resource, id string) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.items[resource] {
		if rec.ID() == id {
			return rec, true
		}
	}
	return nil, false
}

func (s *Store) Create(resource string, rec models.Record) models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec["_id"] = uuid.NewString()
	s.items[resource] = append(s.items[resource], rec)
	return rec
}

func (s *Store) Update(resource, id string, rec models.Record) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items[resource] {
		if existing.ID() == id {
			rec["_id"] = id
			s.items[resource][i] = rec
			return rec, true
		}
	}
	return nil, false
}

func (s *Store) Delete(resource, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.items[resource]
	for i, rec := range list {
		if rec.ID() == id {
			s.items[resource] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Slider() models.Slider {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.slider
	out.Images = append([]models.SliderImage{}, s.slider.Images...)
	return out
}

func (s *Store) AddSliderImage(img models.SliderImage) models.SliderImage {
	s.mu.Lock()
	defer s.mu.Unlock()

	img.ID = uuid.NewString()
	s.slider.Images = append(s.slider.Images, img)
	return img
}

func (s *Store) UpdateSliderImage(id string, img models.SliderImage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.slider.Images {
		if s.slider.Images[i].ID == id {
			img.ID = id
			s.slider.Images[i] = img
			return true
		}
	}
	return false
}

func (s *Store) DeleteSliderImage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	imgs := s.slider.Images
	for i := range imgs {
		if imgs[i].ID == id {
			s.slider.Images = append(imgs[:i:i], imgs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) ToggleSlider() models.Slider {
	s.mu.Lock()
	s.slider.IsEnabled = !s.slider.IsEnabled
	s.mu.Unlock()
	return s.Slider()
}

// ReorderSlider puts the listed images first, in the given order. Unknown ids
// are ignored and unlisted images keep their relative order at the end.
func (s *Store) ReorderSlider(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rank := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := rank[id]; !dup {
			rank[id] = i
		}
	}
	sort.SliceStable(s.slider.Images, func(a, b int) bool {
		ra, okA := rank[s.slider.Images[a].ID]
		rb, okB := rank[s.slider.Images[b].ID]
		switch {
		case okA && okB:
			return ra < rb
		case okA:
			return true
		default:
			return false
		}
	})
}

func (s *Store) AddMessage(msg models.ContactMessage) models.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = uuid.NewString()
	msg.Read = false
	msg.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	s.messages = append(s.messages, msg)
	return msg
}

// Messages returns the inbox newest first.
func (s *Store) Messages() []models.ContactMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ContactMessage, len(s.messages))
	for i, m := range s.messages {
		out[len(out)-1-i] = m
	}
	return out
}

func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Read = true
			return true
		}
	}
	return false
}

func (s *Store) DeleteMessage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i:i], s.messages[i+1:]...)
			return true
		}
	}
	return false
}
