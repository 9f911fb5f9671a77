package domain

import (
	"io"
	"time"
)

// Branch top-level academic track
type Branch string

const (
	// BranchCS computer science
	BranchCS Branch = "cs"
	// BranchIT information technology
	BranchIT Branch = "it"
)

// Valid check the branch is one of the known tracks
func (b Branch) Valid() bool {
	return b == BranchCS || b == BranchIT
}

// Tag classification of an uploaded resource
type Tag string

const (
	// TagAll filter value matching every tag
	TagAll Tag = "All"
	// TagEndsem end-semester material
	TagEndsem Tag = "Endsem"
	// TagMidterm mid-term material
	TagMidterm Tag = "Midterm"
	// TagImpQuestions important questions
	TagImpQuestions Tag = "Imp Questions"
	// TagTutorial tutorial material
	TagTutorial Tag = "Tutorial"
	// TagOther anything else
	TagOther Tag = "Other"
)

// Valid check the tag is an allowed classification (filter value excluded)
func (t Tag) Valid() bool {
	switch t {
	case TagEndsem, TagMidterm, TagImpQuestions, TagTutorial, TagOther:
		return true
	}
	return false
}

// Resource a single uploaded file of study material. Rows are insert-only:
// FileURL never changes once issued, and nothing here updates or deletes them.
type Resource struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	Branch        Branch    `gorm:"index:idx_resources_scope" json:"branch"`
	SubjectID     string    `gorm:"index:idx_resources_scope" json:"subject_id"`
	FileName      string    `json:"file_name"`
	FileType      string    `json:"file_type"`
	FileSizeLabel string    `json:"file_size_label"`
	Tag           Tag       `json:"tag"`
	FileURL       string    `json:"file_url"`
	CreatedAt     time.Time `json:"created_at"`
}

// UploadResourceReq usecase upload resource request
type UploadResourceReq struct {
	Branch    Branch
	SubjectID string
	FileName  string
	FileSize  int64
	Tag       Tag
	File      io.Reader
}

// UploadResourceRes usecase upload resource response
type UploadResourceRes struct {
	Message  string
	Resource *Resource
}
