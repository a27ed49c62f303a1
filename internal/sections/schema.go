package sections

// Kind selects how a field is rendered and how its submitted value is decoded.
type Kind int

const (
	KindText Kind = iota
	KindTextarea
	KindEmail
	KindURL
	KindDate
	KindNumber
	KindCheckbox
	KindSelect
	// KindCommaList is a []string edited as one comma separated line.
	KindCommaList
	// KindLineList is a []string edited one entry per line.
	KindLineList
	// KindImage holds a URL or a data URL built from an upload.
	KindImage
	// KindImageList is a []string of image URLs with additional uploads.
	KindImageList
)

var kindNames = [...]string{
	KindText:      "text",
	KindTextarea:  "textarea",
	KindEmail:     "email",
	KindURL:       "url",
	KindDate:      "date",
	KindNumber:    "number",
	KindCheckbox:  "checkbox",
	KindSelect:    "select",
	KindCommaList: "commalist",
	KindLineList:  "linelist",
	KindImage:     "image",
	KindImageList: "imagelist",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "text"
}

// Field describes one form input. Name may be a dotted path such as
// "socials.github", which maps to a nested object in the record.
type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Options     []string
	Placeholder string
	// Wide fields span the whole form row.
	Wide bool
}

func text(name, label string) Field { return Field{Name: name, Label: label, Kind: KindText} }

func required(f Field) Field {
	f.Required = true
	return f
}

func textarea(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindTextarea, Wide: true}
}

func email(name, label string) Field { return Field{Name: name, Label: label, Kind: KindEmail} }

func link(name, label string) Field { return Field{Name: name, Label: label, Kind: KindURL} }

func date(name, label string) Field { return Field{Name: name, Label: label, Kind: KindDate} }

func number(name, label string) Field { return Field{Name: name, Label: label, Kind: KindNumber} }

func checkbox(name, label string) Field { return Field{Name: name, Label: label, Kind: KindCheckbox} }

func choice(name, label string, options ...string) Field {
	return Field{Name: name, Label: label, Kind: KindSelect, Options: options}
}

func commaList(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindCommaList, Placeholder: "comma separated", Wide: true}
}

func lineList(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindLineList, Placeholder: "one per line", Wide: true}
}

func image(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindImage, Wide: true}
}

func imageList(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindImageList, Wide: true}
}

var proficiencyLevels = []string{"Native", "Fluent", "Advanced", "Intermediate", "Beginner"}
