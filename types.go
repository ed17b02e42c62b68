package nudocs

import (
	"encoding/json"
	"time"
)

// Document is a document as listed by the service.
type Document struct {
	ULID  string `json:"ulid"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// DisplayTitle returns the title, or "Untitled" when the service sent none.
func (d Document) DisplayTitle() string {
	if d.Title == "" {
		return "Untitled"
	}
	return d.Title
}

// DocumentLink is the shareable edit URL of a document.
type DocumentLink struct {
	URL string `json:"url"`
}

// LastUpload points at the most recent successful upload.
type LastUpload struct {
	ULID       string    `json:"ulid"`
	Title      string    `json:"title"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// State is the record persisted in state.json.
//
// Extra holds top-level keys this program does not know about so that a
// rewrite does not drop them.
type State struct {
	LastUpload *LastUpload                `json:"-"`
	Extra      map[string]json.RawMessage `json:"-"`
}

const lastUploadKey = "lastUpload"

// MarshalJSON implements json.Marshaler.
func (s State) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+1)
	for k, v := range s.Extra {
		if k == lastUploadKey {
			continue
		}
		out[k] = v
	}
	if s.LastUpload != nil {
		out[lastUploadKey] = s.LastUpload
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = State{}
	if v, ok := raw[lastUploadKey]; ok {
		delete(raw, lastUploadKey)
		if string(v) != "null" {
			var lu LastUpload
			if err := json.Unmarshal(v, &lu); err != nil {
				return err
			}
			s.LastUpload = &lu
		}
	}
	if len(raw) > 0 {
		s.Extra = raw
	}
	return nil
}
