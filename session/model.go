package session

// Record is the durable session layout: one JSON entry mirroring what the
// gateway returned at login. APIKey is optional and only present for
// merchant accounts.
type Record struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Access string `json:"access"`
	APIKey string `json:"api_key,omitempty"`
}

var validRoles = map[string]struct{}{
	"admin":    {},
	"merchant": {},
	"user":     {},
}

// Valid reports whether the record is structurally complete. Hydration
// discards invalid records instead of surfacing them.
func (r *Record) Valid() bool {
	if r == nil {
		return false
	}
	if r.Email == "" || r.Name == "" || r.Access == "" {
		return false
	}
	_, ok := validRoles[r.Role]
	return ok
}

func (r *Record) clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}
