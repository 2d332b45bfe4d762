package models

// Document is a schemaless Firestore document as the dashboard sees it.
type Document map[string]any

const (
	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

func (d Document) ID() string {
	id, _ := d[FieldID].(string)
	return id
}

// OwnerID returns the uid stored in user_id, or "" when absent.
func (d Document) OwnerID() string {
	uid, _ := d[FieldUserID].(string)
	return uid
}

// Clone returns a shallow copy so callers can stamp fields without
// mutating the request payload.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
