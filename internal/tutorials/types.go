package tutorials

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Difficulty is the audience level of a tutorial.
type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// ParseDifficulty accepts any casing of a known level.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range []Difficulty{Beginner, Intermediate, Advanced} {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

// Kind tells readers how a tutorial's body is laid out.
type Kind string

const (
	KindFlat      Kind = "flat"
	KindChaptered Kind = "chaptered"
	// KindEmpty marks stored rows that carry neither content nor chapters.
	KindEmpty Kind = "empty"
)

// Body is the content of a tutorial: either one markdown document or an
// ordered list of chapters.
type Body interface {
	Kind() Kind
}

// FlatBody is a single-document tutorial.
type FlatBody struct {
	Content string
}

func (FlatBody) Kind() Kind { return KindFlat }

// ChapteredBody is a multi-chapter tutorial. Chapters are kept sorted by
// Order.
type ChapteredBody struct {
	Chapters []Chapter
}

func (ChapteredBody) Kind() Kind { return KindChaptered }

// Chapter is one markdown file of a folder import.
type Chapter struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	ReadTime int    `json:"readTime"`
}

// Tutorial is a stored tutorial.
type Tutorial struct {
	ID            string
	Title         string
	Description   string
	Body          Body
	GitHubURL     string
	Author        string
	Category      string
	Difficulty    Difficulty
	ReadTime      int // minutes; 0 when unknown
	TotalChapters int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks a tutorial before it is written.
func (t Tutorial) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&t.GitHubURL, validation.Required, is.URL),
		validation.Field(&t.Difficulty, validation.In(Beginner, Intermediate, Advanced)),
		validation.Field(&t.ReadTime, validation.Min(0)),
		validation.Field(&t.TotalChapters, validation.Min(0)),
	)
}

// Kind reports the body layout; a nil body is KindEmpty.
func (t *Tutorial) Kind() Kind {
	if t.Body == nil {
		return KindEmpty
	}
	return t.Body.Kind()
}

// Content returns the markdown of a flat tutorial, or "".
func (t *Tutorial) Content() string {
	if b, ok := t.Body.(FlatBody); ok {
		return b.Content
	}
	return ""
}

// Chapters returns the chapters of a chaptered tutorial in order, or nil.
func (t *Tutorial) Chapters() []Chapter {
	if b, ok := t.Body.(ChapteredBody); ok {
		return b.Chapters
	}
	return nil
}

// ChapterNav locates a chapter and its neighbours.
type ChapterNav struct {
	Chapter Chapter
	Index   int // 0-based position among the tutorial's chapters
	Prev    int // order of the previous chapter, 0 if none
	Next    int // order of the next chapter, 0 if none
}

// ChapterAt finds the chapter with the given order. Gaps in the ordering
// are tolerated: neighbours are the nearest existing orders.
func (t *Tutorial) ChapterAt(order int) (ChapterNav, bool) {
	chapters := t.Chapters()
	i := sort.Search(len(chapters), func(i int) bool { return chapters[i].Order >= order })
	if i == len(chapters) || chapters[i].Order != order {
		return ChapterNav{}, false
	}

	nav := ChapterNav{Chapter: chapters[i], Index: i}
	if i > 0 {
		nav.Prev = chapters[i-1].Order
	}
	if i+1 < len(chapters) {
		nav.Next = chapters[i+1].Order
	}
	return nav, true
}

type tutorialJSON struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Kind          Kind       `json:"kind"`
	Content       *string    `json:"content,omitempty"`
	Chapters      []Chapter  `json:"chapters,omitempty"`
	GitHubURL     string     `json:"githubUrl"`
	Author        string     `json:"author,omitempty"`
	Category      string     `json:"category,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
	ReadTime      int        `json:"readTime,omitempty"`
	TotalChapters int        `json:"totalChapters"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// MarshalJSON flattens the body into "content" or "chapters".
func (t Tutorial) MarshalJSON() ([]byte, error) {
	out := tutorialJSON{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Kind:          t.Kind(),
		GitHubURL:     t.GitHubURL,
		Author:        t.Author,
		Category:      t.Category,
		Difficulty:    t.Difficulty,
		ReadTime:      t.ReadTime,
		TotalChapters: t.TotalChapters,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
	switch b := t.Body.(type) {
	case FlatBody:
		out.Content = &b.Content
	case ChapteredBody:
		out.Chapters = b.Chapters
	}
	return json.Marshal(out)
}

// Summary is the list projection of a tutorial.
type Summary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Author        string     `json:"author,omitempty"`
	Category      string     `json:"category,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
	ReadTime      int        `json:"readTime,omitempty"`
	TotalChapters int        `json:"totalChapters"`
	CreatedAt     time.Time  `json:"createdAt"`
}
