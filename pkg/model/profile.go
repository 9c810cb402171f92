package model

import "time"

type Profile struct {
	ID          string       `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Handle      string       `json:"handle" bson:"handle" validate:"required,min=2,max=60,public_handle"`
	FullName    string       `json:"full_name" bson:"full_name" validate:"required,min=2,max=100"`
	Headline    string       `json:"headline,omitempty" bson:"headline,omitempty" validate:"omitempty,max=140"`
	Summary     string       `json:"summary,omitempty" bson:"summary,omitempty" validate:"omitempty,max=4000"`
	Skills      []string     `json:"skills,omitempty" bson:"skills,omitempty" validate:"omitempty,max=50,dive,required"`
	Links       []Link       `json:"links,omitempty" bson:"links,omitempty" validate:"omitempty,max=10,dive"`
	Resume      *Attachment  `json:"resume,omitempty" bson:"resume,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty" bson:"attachments,omitempty" validate:"omitempty,max=20,dive"`
	IsDefault   bool         `json:"is_default" bson:"is_default"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time    `json:"updated_at,omitempty" bson:"updated_at,omitempty" validate:"omitempty"`
}

type ProfileUpdate struct {
	Handle    string    `json:"handle,omitempty" validate:"omitempty,min=2,max=60,public_handle"`
	FullName  string    `json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Headline  *string   `json:"headline,omitempty" validate:"omitempty,max=140"`
	Summary   *string   `json:"summary,omitempty" validate:"omitempty,max=4000"`
	Skills    *[]string `json:"skills,omitempty" validate:"omitempty,max=50,dive,required"`
	Links     *[]Link   `json:"links,omitempty" validate:"omitempty,max=10,dive"`
	IsDefault *bool     `json:"is_default,omitempty"`
}

type Link struct {
	Label string `json:"label" bson:"label" validate:"required,min=1,max=50"`
	URL   string `json:"url" bson:"url" validate:"required,url"`
}

// Attachment is file metadata only. Bytes live wherever the upload layer put
// them; this service never touches them.
type Attachment struct {
	ID          string    `json:"id" bson:"_id" validate:"required"`
	FileName    string    `json:"file_name" bson:"file_name" validate:"required,min=1,max=255"`
	ContentType string    `json:"content_type,omitempty" bson:"content_type,omitempty" validate:"omitempty,max=100"`
	SizeBytes   int64     `json:"size_bytes,omitempty" bson:"size_bytes,omitempty" validate:"omitempty,min=0"`
	UploadedAt  time.Time `json:"uploaded_at" bson:"uploaded_at" validate:"omitempty"`
}

// PublicProfile is the view served on the public booking page. It exposes no
// attachment internals beyond whether a resume exists.
type PublicProfile struct {
	Handle    string   `json:"handle"`
	FullName  string   `json:"full_name"`
	Headline  string   `json:"headline,omitempty"`
	Summary   string   `json:"summary,omitempty"`
	Skills    []string `json:"skills,omitempty"`
	Links     []Link   `json:"links,omitempty"`
	HasResume bool     `json:"has_resume"`
}

// Public projects the owner-facing profile into its public view.
func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		Handle:    p.Handle,
		FullName:  p.FullName,
		Headline:  p.Headline,
		Summary:   p.Summary,
		Skills:    p.Skills,
		Links:     p.Links,
		HasResume: p.Resume != nil,
	}
}
