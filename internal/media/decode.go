package media

import (
	"encoding/json"
	"fmt"

	"streamable/internal/generic"
)

// FieldError reports a required field that was missing or null.
type FieldError struct {
	Object string
	Field  string
	Null   bool
}

func (e *FieldError) Error() string {
	if e.Null {
		return fmt.Sprintf("%s: field %q is null", e.Object, e.Field)
	}
	return fmt.Sprintf("%s: missing field %q", e.Object, e.Field)
}

// Null is a field the API always sends as JSON null. Any other value is rejected.
type Null struct{}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

func (*Null) UnmarshalJSON(data []byte) error {
	if !generic.IsNull(data) {
		return fmt.Errorf("expected null, got %s", truncate(data, 32))
	}
	return nil
}

func (v *VideoResource) UnmarshalJSON(data []byte) error {
	if err := requireFields("video", data,
		"status", "percent", "url", "embed_code", "thumbnail_url", "title", "files"); err != nil {
		return err
	}
	type plain VideoResource
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = VideoResource(p)
	return nil
}

func (f *Files) UnmarshalJSON(data []byte) error {
	if err := requireFields("files", data, "mp4", "original"); err != nil {
		return err
	}
	type plain Files
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*f = Files(p)
	return nil
}

func (r *Rendition) UnmarshalJSON(data []byte) error {
	if err := requireFields("rendition", data,
		"framerate", "height", "width", "bitrate", "size", "duration"); err != nil {
		return err
	}
	type plain Rendition
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = Rendition(p)
	return nil
}

// requireFields checks that data is an object carrying every named field with a non-null value.
func requireFields(object string, data []byte, names ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%s: %w", object, err)
	}
	for _, name := range names {
		raw, ok := fields[name]
		if !ok {
			return &FieldError{Object: object, Field: name}
		}
		if generic.IsNull(raw) {
			return &FieldError{Object: object, Field: name, Null: true}
		}
	}
	return nil
}

func truncate(data []byte, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}
