package models

type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type Section struct {
	Name      string `json:"name"`
	IsEnabled bool   `json:"isEnabled"`
}

type Socials struct {
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Email    string `json:"email,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Hero struct {
	Name         string  `json:"name"`
	Tagline      string  `json:"tagline"`
	Description  string  `json:"description,omitempty"`
	ProfileImage string  `json:"profileImage,omitempty"`
	ResumeURL    string  `json:"resumeUrl,omitempty"`
	Socials      Socials `json:"socials"`
}

type About struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

type Experience struct {
	ID           string   `json:"_id,omitempty"`
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

type Education struct {
	ID          string   `json:"_id,omitempty"`
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field,omitempty"`
	Location    string   `json:"location,omitempty"`
	GPA         float64  `json:"gpa,omitempty"`
	MaxGPA      float64  `json:"maxGpa,omitempty"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	Description string   `json:"description,omitempty"`
	Coursework  []string `json:"coursework,omitempty"`
}

type Skill struct {
	ID                string  `json:"_id,omitempty"`
	Name              string  `json:"name"`
	Category          string  `json:"category,omitempty"`
	Level             string  `json:"level,omitempty"`
	YearsOfExperience float64 `json:"yearsOfExperience,omitempty"`
	Featured          bool    `json:"featured"`
	Icon              string  `json:"icon,omitempty"`
}

// SkillGroup is a category of skills as shown on the public page.
type SkillGroup struct {
	Category string
	Skills   []Skill
}

type Project struct {
	ID           string   `json:"_id,omitempty"`
	Title        string   `json:"title"`
	Image        string   `json:"image,omitempty"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Featured     bool     `json:"featured"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	GithubURL    string   `json:"githubUrl,omitempty"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
}

type Volunteer struct {
	ID           string  `json:"_id,omitempty"`
	Organization string  `json:"organization"`
	Position     string  `json:"position"`
	Location     string  `json:"location,omitempty"`
	Cause        string  `json:"cause,omitempty"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate,omitempty"`
	Description  string  `json:"description,omitempty"`
	HoursPerWeek float64 `json:"hoursPerWeek,omitempty"`
	Website      string  `json:"website,omitempty"`
}

type Publication struct {
	ID          string   `json:"_id,omitempty"`
	Title       string   `json:"title"`
	Journal     string   `json:"journal,omitempty"`
	Authors     []string `json:"authors,omitempty"`
	PublishDate string   `json:"publishDate,omitempty"`
	DOI         string   `json:"doi,omitempty"`
	URL         string   `json:"url,omitempty"`
	Abstract    string   `json:"abstract,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Type        string   `json:"type,omitempty"`
}

type Patent struct {
	ID              string   `json:"_id,omitempty"`
	Title           string   `json:"title"`
	PatentNumber    string   `json:"patentNumber,omitempty"`
	Inventors       []string `json:"inventors,omitempty"`
	Assignee        string   `json:"assignee,omitempty"`
	FilingDate      string   `json:"filingDate,omitempty"`
	PublicationDate string   `json:"publicationDate,omitempty"`
	GrantDate       string   `json:"grantDate,omitempty"`
	Status          string   `json:"status,omitempty"`
	Abstract        string   `json:"abstract,omitempty"`
	URL             string   `json:"url,omitempty"`
	Field           string   `json:"field,omitempty"`
}

type Award struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Issuer      string `json:"issuer,omitempty"`
	Date        string `json:"date,omitempty"`
	Level       string `json:"level,omitempty"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount,omitempty"`
	URL         string `json:"url,omitempty"`
}

type TestScore struct {
	ID             string  `json:"_id,omitempty"`
	TestName       string  `json:"testName"`
	Score          float64 `json:"score,omitempty"`
	MaxScore       float64 `json:"maxScore,omitempty"`
	Percentile     float64 `json:"percentile,omitempty"`
	TestDate       string  `json:"testDate,omitempty"`
	ValidUntil     string  `json:"validUntil,omitempty"`
	Breakdown      string  `json:"breakdown,omitempty"`
	CertificateURL string  `json:"certificateUrl,omitempty"`
}

type Language struct {
	ID             string `json:"_id,omitempty"`
	Language       string `json:"language"`
	Proficiency    string `json:"proficiency,omitempty"`
	Speaking       string `json:"speaking,omitempty"`
	Writing        string `json:"writing,omitempty"`
	Reading        string `json:"reading,omitempty"`
	CertificateURL string `json:"certificateUrl,omitempty"`
}

type Certification struct {
	ID            string   `json:"_id,omitempty"`
	Name          string   `json:"name"`
	Issuer        string   `json:"issuer,omitempty"`
	IssueDate     string   `json:"issueDate,omitempty"`
	ExpiryDate    string   `json:"expiryDate,omitempty"`
	CredentialID  string   `json:"credentialId,omitempty"`
	CredentialURL string   `json:"credentialUrl,omitempty"`
	Description   string   `json:"description,omitempty"`
	Skills        []string `json:"skills,omitempty"`
}

type Course struct {
	ID             string   `json:"_id,omitempty"`
	Title          string   `json:"title"`
	Provider       string   `json:"provider,omitempty"`
	Instructor     string   `json:"instructor,omitempty"`
	CompletionDate string   `json:"completionDate,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	CertificateURL string   `json:"certificateUrl,omitempty"`
	Description    string   `json:"description,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Grade          string   `json:"grade,omitempty"`
}

type Talk struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Event       string `json:"event,omitempty"`
	Date        string `json:"date,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

type Internship struct {
	ID          string   `json:"_id,omitempty"`
	Title       string   `json:"title"`
	Company     string   `json:"company,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

type Workshop struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Type        string `json:"type,omitempty"`
	Organizer   string `json:"organizer,omitempty"`
	Date        string `json:"date,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

type Training struct {
	ID          string   `json:"_id,omitempty"`
	Title       string   `json:"title"`
	Provider    string   `json:"provider,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

type Appreciation struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	AwardedBy   string `json:"awardedBy,omitempty"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Paper covers journal papers, research papers, conference papers and book
// chapters; each kind fills the subset of fields that applies to it.
type Paper struct {
	ID             string   `json:"_id,omitempty"`
	Title          string   `json:"title"`
	Authors        []string `json:"authors,omitempty"`
	Journal        string   `json:"journal,omitempty"`
	Volume         string   `json:"volume,omitempty"`
	Issue          string   `json:"issue,omitempty"`
	Conference     string   `json:"conference,omitempty"`
	ConferenceDate string   `json:"conferenceDate,omitempty"`
	Location       string   `json:"location,omitempty"`
	BookTitle      string   `json:"bookTitle,omitempty"`
	ChapterNumber  string   `json:"chapterNumber,omitempty"`
	Publisher      string   `json:"publisher,omitempty"`
	PublishDate    string   `json:"publishDate,omitempty"`
	DOI            string   `json:"doi,omitempty"`
	URL            string   `json:"url,omitempty"`
	PDF            string   `json:"pdf,omitempty"`
	Abstract       string   `json:"abstract,omitempty"`
	Images         []string `json:"images,omitempty"`
}

type GalleryImage struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Image       string `json:"image"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Featured    bool   `json:"featured"`
}

type SliderImage struct {
	ID          string `json:"_id,omitempty"`
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

type Slider struct {
	IsEnabled bool          `json:"isEnabled"`
	Images    []SliderImage `json:"images"`
}

type ContactMessage struct {
	ID        string `json:"_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt,omitempty"`
}
