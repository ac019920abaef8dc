package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionKind identifies which intake form produced a submission.
type SubmissionKind string

const (
	KindContact    SubmissionKind = "contact"
	KindSales      SubmissionKind = "sales"
	KindDemo       SubmissionKind = "demo"
	KindNewsletter SubmissionKind = "newsletter"
	KindVote       SubmissionKind = "vote"
)

// Submission lifecycle states. Only admins move a submission forward;
// the intake path always creates it as StatusNew.
const (
	StatusNew       = "new"
	StatusResponded = "responded"
	StatusClosed    = "closed"
)

// Submission is one accepted lead-intake record. Payload fields are
// immutable after Create; only Status and Notes change, via the admin
// surface.
type Submission struct {
	ID    string         `json:"id"`
	Kind  SubmissionKind `json:"kind"`
	Name  string         `json:"name"`
	Email string         `json:"email"`

	Role        string `json:"role,omitempty"`
	Institution string `json:"institution,omitempty"`
	TeamSize    string `json:"team_size,omitempty"`
	Message     string `json:"message,omitempty"`

	PreferredDate string `json:"preferred_date,omitempty"`

	ClientIP  string `json:"client_ip"`
	UserAgent string `json:"user_agent"`
	Source    string `json:"source,omitempty"`

	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientMeta carries the request metadata captured with every submission.
type ClientMeta struct {
	IP        string
	UserAgent string
	Source    string
}

func NewSubmission(kind SubmissionKind, name, email string, meta ClientMeta) *Submission {
	now := time.Now()
	ip := meta.IP
	if ip == "" {
		ip = "unknown"
	}
	return &Submission{
		ID:        uuid.New().String(),
		Kind:      kind,
		Name:      name,
		Email:     email,
		ClientIP:  ip,
		UserAgent: meta.UserAgent,
		Source:    meta.Source,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidStatus reports whether s is one of the admin-assignable states.
func ValidStatus(s string) bool {
	return s == StatusNew || s == StatusResponded || s == StatusClosed
}

// SubmissionFilter narrows admin listings.
type SubmissionFilter struct {
	Kind   SubmissionKind
	Status string
	Limit  int
	Offset int
}

type SubmissionRepositoryInterface interface {
	Create(ctx context.Context, s *Submission) error
	FindByID(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, f SubmissionFilter) ([]*Submission, error)
	UpdateStatus(ctx context.Context, id, status, notes string) error
}
