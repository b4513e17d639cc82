package partner

import (
	"strings"
	"time"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// CommentType distinguishes user comments from system notes
type CommentType string

const (
	CommentTypeComment CommentType = "Comment"
	CommentTypeInfo    CommentType = "Info"
)

// Comment is a timeline entry attached to a document
type Comment struct {
	ID               uuid.UUID
	TenantID         uuid.UUID
	ReferenceDoctype string
	ReferenceName    string
	CommentType      CommentType
	Content          string
	CommentBy        string
	CreatedAt        time.Time
}

// NewComment creates a comment against doctype/name
func NewComment(tenantID uuid.UUID, commentType CommentType, doctype, name, content, by string) (*Comment, error) {
	if commentType != CommentTypeComment && commentType != CommentTypeInfo {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Comment type must be 'Comment' or 'Info'")
	}
	if doctype == "" || name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Comment must reference a document")
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "Comment cannot be empty")
	}
	return &Comment{
		ID:               uuid.New(),
		TenantID:         tenantID,
		ReferenceDoctype: doctype,
		ReferenceName:    name,
		CommentType:      commentType,
		Content:          content,
		CommentBy:        by,
		CreatedAt:        time.Now(),
	}, nil
}
