package storage

// Project is a catalog record for a housing project. UF bounds are pointers
// because many listings publish only one bound, or none; a nil bound is
// excluded by SQL comparison semantics rather than custom logic.
type Project struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Comuna     string   `json:"comuna"`
	Address    string   `json:"address,omitempty"`
	UFMin      *float64 `json:"uf_min,omitempty"`
	UFMax      *float64 `json:"uf_max,omitempty"`
	Status     string   `json:"status,omitempty"`
	Tipologias string   `json:"tipologias,omitempty"`
	Slug       string   `json:"slug,omitempty"`
	ProjectURL string   `json:"project_url,omitempty"`
}

// Filters constrains a catalog query. Zero values mean "no constraint";
// Dormitorios uses 0 to mean studio/loft units.
type Filters struct {
	Comuna      string
	Status      string
	ProjectName string
	MinPrice    *float64
	MaxPrice    *float64
	Dormitorios []int
}

// ChatLog is one persisted agent turn: what the user asked and what the
// assistant finally replied.
type ChatLog struct {
	ID             string
	UserMessage    string
	AssistantReply string
	ClientIP       string
	Source         string
}

// Lead is a contact-form submission.
type Lead struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Message     string
	ProjectSlug string
	ClientIP    string
}
