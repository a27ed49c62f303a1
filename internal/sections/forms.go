package sections

import (
	"fmt"
	"mime/multipart"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"portfolio-bff/internal/models"
)

const dateLayout = "2006-01-02"

// Suffixes of the auxiliary inputs rendered next to image fields.
const (
	FileSuffix  = ".file"
	ClearSuffix = ".clear"
)

var validate = validator.New()

// FieldErrors maps field names to a user facing problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fe[name])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Input is a submitted form.
type Input struct {
	Values url.Values
	Files  map[string][]*multipart.FileHeader
}

func (in Input) get(name string) string {
	return strings.TrimSpace(in.Values.Get(name))
}

// Decode validates a submitted form against d and builds the record to send
// to the backend. A non-nil error is either FieldErrors or an upload failure.
func Decode(d *Descriptor, in Input, maxImageBytes int64) (models.Record, error) {
	rec := models.Record{}
	errs := FieldErrors{}

	for _, f := range d.Fields {
		value, problem := decodeField(f, in, maxImageBytes)
		if problem != "" {
			errs[f.Name] = problem
			continue
		}
		if value != nil {
			rec.Set(f.Name, value)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return rec, nil
}

// decodeField returns the value to store (nil to leave the key out) or a
// problem description.
func decodeField(f Field, in Input, maxImageBytes int64) (any, string) {
	raw := in.get(f.Name)

	switch f.Kind {
	case KindCheckbox:
		return isChecked(raw), ""

	case KindNumber:
		if raw == "" {
			if f.Required {
				return nil, f.Label + " is required"
			}
			return nil, ""
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, f.Label + " must be a number"
		}
		return n, ""

	case KindCommaList, KindLineList:
		sep := ","
		if f.Kind == KindLineList {
			sep = "\n"
		}
		list := splitList(in.Values.Get(f.Name), sep)
		if f.Required && len(list) == 0 {
			return nil, f.Label + " is required"
		}
		return list, ""

	case KindImage:
		return decodeImage(f, in, maxImageBytes)

	case KindImageList:
		return decodeImageList(f, in, maxImageBytes)
	}

	if raw == "" {
		if f.Required {
			return nil, f.Label + " is required"
		}
		return "", ""
	}

	switch f.Kind {
	case KindEmail:
		if validate.Var(raw, "email") != nil {
			return nil, f.Label + " must be a valid email address"
		}
	case KindURL:
		if validate.Var(raw, "url") != nil {
			return nil, f.Label + " must be a valid URL"
		}
	case KindDate:
		if _, err := time.Parse(dateLayout, raw); err != nil {
			return nil, f.Label + " must be a date (YYYY-MM-DD)"
		}
	case KindSelect:
		if !contains(f.Options, raw) {
			return nil, f.Label + " has an unknown option"
		}
	}
	return raw, ""
}

func decodeImage(f Field, in Input, maxImageBytes int64) (any, string) {
	if isChecked(in.get(f.Name + ClearSuffix)) {
		if f.Required {
			return nil, f.Label + " is required"
		}
		return "", ""
	}

	if files := in.Files[f.Name+FileSuffix]; len(files) > 0 && files[0].Size > 0 {
		dataURL, err := ImageDataURL(files[0], maxImageBytes)
		if err != nil {
			return nil, err.Error()
		}
		return dataURL, ""
	}

	raw := in.get(f.Name)
	if raw == "" {
		if f.Required {
			return nil, f.Label + " is required"
		}
		return "", ""
	}
	if !imageRef(raw) {
		return nil, f.Label + " must be an image URL"
	}
	return raw, ""
}

func decodeImageList(f Field, in Input, maxImageBytes int64) (any, string) {
	var list []string
	if !isChecked(in.get(f.Name + ClearSuffix)) {
		list = splitList(in.Values.Get(f.Name), "\n")
	}
	for _, ref := range list {
		if !imageRef(ref) {
			return nil, f.Label + " must contain image URLs only"
		}
	}
	for _, fh := range in.Files[f.Name+FileSuffix] {
		if fh.Size == 0 {
			continue
		}
		dataURL, err := ImageDataURL(fh, maxImageBytes)
		if err != nil {
			return nil, fmt.Sprintf("%s: %v", fh.Filename, err)
		}
		list = append(list, dataURL)
	}
	if f.Required && len(list) == 0 {
		return nil, f.Label + " is required"
	}
	return list, ""
}

// imageRef accepts absolute URLs, data URLs and site relative paths.
func imageRef(s string) bool {
	if strings.HasPrefix(s, "data:image/") || strings.HasPrefix(s, "/") {
		return true
	}
	return validate.Var(s, "url") == nil
}

func isChecked(v string) bool {
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func splitList(raw, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// Values renders rec as form values, the inverse of Decode. Checkboxes are
// "on" when set, lists are joined the way their input expects them.
func Values(d *Descriptor, rec models.Record) map[string]string {
	out := make(map[string]string, len(d.Fields))
	if rec == nil {
		return out
	}
	for _, f := range d.Fields {
		v, ok := rec.Lookup(f.Name)
		if !ok || v == nil {
			continue
		}
		switch f.Kind {
		case KindCheckbox:
			if b, _ := v.(bool); b {
				out[f.Name] = "on"
			}
		case KindCommaList:
			out[f.Name] = strings.Join(toStrings(v), ", ")
		case KindLineList, KindImageList:
			out[f.Name] = strings.Join(toStrings(v), "\n")
		case KindDate:
			out[f.Name] = dateValue(str(rec, f.Name))
		default:
			out[f.Name] = str(rec, f.Name)
		}
	}
	return out
}

// Submitted returns the raw values of a rejected form so it can be shown
// again. File inputs cannot be refilled.
func Submitted(d *Descriptor, in Input) map[string]string {
	out := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		if v := in.Values.Get(f.Name); v != "" {
			out[f.Name] = v
		}
	}
	return out
}

// FormField is a field ready for the form template.
type FormField struct {
	Field
	Value string
	Error string
}

func (f FormField) Checked() bool { return f.Value == "on" }

// Images lists the current entries of an image list field.
func (f FormField) Images() []string { return splitList(f.Value, "\n") }

func (f FormField) Selected(option string) bool { return f.Value == option }

// FileName and ClearName are the input names of an image field's helpers.
func (f FormField) FileName() string  { return f.Name + FileSuffix }
func (f FormField) ClearName() string { return f.Name + ClearSuffix }

func FormFields(d *Descriptor, values map[string]string, errs FieldErrors) []FormField {
	out := make([]FormField, 0, len(d.Fields))
	for _, f := range d.Fields {
		out = append(out, FormField{Field: f, Value: values[f.Name], Error: errs[f.Name]})
	}
	return out
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	case string:
		return splitList(t, ",")
	}
	return nil
}

// dateValue trims backend timestamps such as "2021-04-01T00:00:00.000Z" to
// what a date input accepts.
func dateValue(s string) string {
	if len(s) >= len(dateLayout) {
		if _, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return s[:len(dateLayout)]
		}
	}
	return s
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
