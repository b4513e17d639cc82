package partner

import (
	"context"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"github.com/google/uuid"
)

// CommentService manages timeline comments on customers
type CommentService struct {
	commentRepo  partner.CommentRepository
	customerRepo partner.CustomerRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo partner.CommentRepository, customerRepo partner.CustomerRepository) *CommentService {
	return &CommentService{
		commentRepo:  commentRepo,
		customerRepo: customerRepo,
	}
}

// AddComment adds a user comment to a customer
func (s *CommentService) AddComment(ctx context.Context, tenantID uuid.UUID, customer, content string, actor shared.Actor) (*CommentResponse, error) {
	exists, err := s.customerRepo.ExistsByName(ctx, tenantID, customer)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError(shared.CodeNotFound, "Customer "+customer+" not found")
	}

	comment, err := partner.NewComment(tenantID, partner.CommentTypeComment, partner.DocTypeCustomer, customer, content, actor.Display())
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, err
	}

	response := ToCommentResponse(comment)
	return &response, nil
}

// ListComments lists a customer's comments, newest first
func (s *CommentService) ListComments(ctx context.Context, tenantID uuid.UUID, customer string) ([]CommentResponse, error) {
	comments, err := s.commentRepo.FindByReference(ctx, tenantID, partner.DocTypeCustomer, customer)
	if err != nil {
		return nil, err
	}
	responses := make([]CommentResponse, len(comments))
	for i := range comments {
		responses[i] = ToCommentResponse(&comments[i])
	}
	return responses, nil
}

// FindComment returns the newest comment of a type on a document
func (s *CommentService) FindComment(ctx context.Context, tenantID uuid.UUID, commentType partner.CommentType, doctype, name string) (*CommentResponse, error) {
	comment, err := s.commentRepo.FindLatest(ctx, tenantID, commentType, doctype, name)
	if err != nil {
		return nil, err
	}
	response := ToCommentResponse(comment)
	return &response, nil
}
