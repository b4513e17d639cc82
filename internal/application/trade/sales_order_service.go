package trade

import (
	"context"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SalesOrderService handles sales order business operations
type SalesOrderService struct {
	documentSupport
	orderRepo trade.SalesOrderRepository
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo trade.SalesOrderRepository,
	parties PartyValidator,
	credit CreditChecker,
	namingSeries shared.NamingSeries,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		documentSupport: newDocumentSupport(parties, credit, namingSeries, logger),
		orderRepo:       orderRepo,
	}
}

// Create saves a draft sales order for a customer that may transact
func (s *SalesOrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateSalesOrderRequest, actor shared.Actor) (*SalesOrderResponse, error) {
	name, err := s.nextName(ctx, tenantID, SalesOrderSeries)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewSalesOrder(tenantID, name, req.Customer, req.Company, dateOrZero(req.PostingDate), dateOrZero(req.DeliveryDate))
	if err != nil {
		return nil, err
	}
	if actor.UserID != nil {
		order.SetCreatedBy(*actor.UserID)
	}
	order.SetPricing(req.Currency, req.SellingPriceList)
	order.Remarks = req.Remarks
	if err := applyLines(&order.SalesDocument, req.Items, req.Taxes); err != nil {
		return nil, err
	}
	if err := (sourceDocuments{}).validate(ctx, &order.SalesDocument); err != nil {
		return nil, err
	}
	if err := s.validateParty(ctx, &order.SalesDocument, actor); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByName retrieves a sales order by name
func (s *SalesOrderService) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List retrieves a list of sales orders with filtering and pagination
func (s *SalesOrderService) List(ctx context.Context, tenantID uuid.UUID, filter SalesDocumentListFilter) ([]SalesOrderResponse, int64, error) {
	domainFilter := documentFilter(filter)

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// Update edits a draft sales order
func (s *SalesOrderService) Update(ctx context.Context, tenantID uuid.UUID, name string, req UpdateSalesOrderRequest, actor shared.Actor) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}

	if err := applyHeaderUpdate(&order.SalesDocument, req.UpdateSalesDocumentRequest); err != nil {
		return nil, err
	}
	if err := (sourceDocuments{}).validate(ctx, &order.SalesDocument); err != nil {
		return nil, err
	}
	if req.DeliveryDate != nil {
		if err := order.SetDeliveryDate(*req.DeliveryDate); err != nil {
			return nil, err
		}
	}
	if err := s.validateParty(ctx, &order.SalesDocument, actor); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Submit moves a draft to submitted after the party and credit checks.
// A repeated call with the same idempotency key returns the order unchanged.
func (s *SalesOrderService) Submit(ctx context.Context, tenantID uuid.UUID, name, idempotencyKey string, actor shared.Actor) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}

	key := submitKey(tenantID, trade.DocTypeSalesOrder, name, idempotencyKey)
	replay, err := s.alreadySubmitted(ctx, key)
	if err != nil {
		return nil, err
	}
	if replay {
		response := ToSalesOrderResponse(order)
		return &response, nil
	}

	if err := s.validateParty(ctx, &order.SalesDocument, actor); err != nil {
		return nil, err
	}
	if err := order.Submit(); err != nil {
		return nil, err
	}
	if err := s.checkCredit(ctx, &order.SalesDocument, actor); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.submitted(ctx, &order.SalesDocument, key)
	s.publish(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Cancel cancels a submitted sales order that has not been invoiced
func (s *SalesOrderService) Cancel(ctx context.Context, tenantID uuid.UUID, name string) (*SalesOrderResponse, error) {
	return s.transition(ctx, tenantID, name, (*trade.SalesOrder).Cancel)
}

// Close removes a submitted order from the customer's outstanding amount
func (s *SalesOrderService) Close(ctx context.Context, tenantID uuid.UUID, name string) (*SalesOrderResponse, error) {
	return s.transition(ctx, tenantID, name, (*trade.SalesOrder).Close)
}

// Reopen undoes Close
func (s *SalesOrderService) Reopen(ctx context.Context, tenantID uuid.UUID, name string) (*SalesOrderResponse, error) {
	return s.transition(ctx, tenantID, name, (*trade.SalesOrder).Reopen)
}

func (s *SalesOrderService) transition(ctx context.Context, tenantID uuid.UUID, name string, apply func(*trade.SalesOrder) error) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := apply(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publish(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// Delete deletes a draft sales order
func (s *SalesOrderService) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	order, err := s.orderRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return err
	}
	if err := ensureDeletable(&order.SalesDocument); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, tenantID, name)
}
