package partner

import (
	"context"
	"fmt"

	"github.com/erp/selling/internal/domain/partner"
	"github.com/erp/selling/internal/domain/shared"
	"go.uber.org/zap"
)

// activityCommentBy is recorded as the author of system comments
const activityCommentBy = "Administrator"

// CustomerActivityHandler writes Info comments on a customer's timeline when it
// is renamed, frozen, unfrozen, disabled or enabled
type CustomerActivityHandler struct {
	commentRepo partner.CommentRepository
	logger      *zap.Logger
}

// NewCustomerActivityHandler creates a new CustomerActivityHandler
func NewCustomerActivityHandler(commentRepo partner.CommentRepository, logger *zap.Logger) *CustomerActivityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerActivityHandler{
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CustomerActivityHandler) EventTypes() []string {
	return []string{
		partner.EventTypeCustomerRenamed,
		partner.EventTypeCustomerFrozen,
		partner.EventTypeCustomerUnfrozen,
		partner.EventTypeCustomerDisabled,
		partner.EventTypeCustomerEnabled,
	}
}

// Handle records the comment for one event
func (h *CustomerActivityHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var name, content string
	switch e := event.(type) {
	case *partner.CustomerRenamedEvent:
		name = e.NewName
		if e.Merged {
			content = fmt.Sprintf("merged %s into %s", e.OldName, e.NewName)
		} else {
			content = fmt.Sprintf("renamed from %s to %s", e.OldName, e.NewName)
		}
	case *partner.CustomerStateChangedEvent:
		name = e.Name
		switch e.EventType() {
		case partner.EventTypeCustomerFrozen:
			content = "froze this customer"
		case partner.EventTypeCustomerUnfrozen:
			content = "unfroze this customer"
		case partner.EventTypeCustomerDisabled:
			content = "disabled this customer"
		default:
			content = "enabled this customer"
		}
	default:
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	comment, err := partner.NewComment(event.TenantID(), partner.CommentTypeInfo, partner.DocTypeCustomer, name, content, activityCommentBy)
	if err != nil {
		return err
	}
	if err := h.commentRepo.Save(ctx, comment); err != nil {
		h.logger.Error("failed to record customer activity",
			zap.String("customer", name),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*CustomerActivityHandler)(nil)
