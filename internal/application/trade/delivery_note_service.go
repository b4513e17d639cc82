package trade

import (
	"context"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeliveryNoteService handles delivery note business operations
type DeliveryNoteService struct {
	documentSupport
	noteRepo trade.DeliveryNoteRepository
	sources  sourceDocuments
}

// NewDeliveryNoteService creates a new DeliveryNoteService
func NewDeliveryNoteService(
	noteRepo trade.DeliveryNoteRepository,
	orderRepo trade.SalesOrderRepository,
	invoiceRepo trade.SalesInvoiceRepository,
	parties PartyValidator,
	credit CreditChecker,
	namingSeries shared.NamingSeries,
	logger *zap.Logger,
) *DeliveryNoteService {
	return &DeliveryNoteService{
		documentSupport: newDocumentSupport(parties, credit, namingSeries, logger),
		noteRepo:        noteRepo,
		sources:         sourceDocuments{orders: orderRepo, invoices: invoiceRepo},
	}
}

// Create saves a draft delivery note
func (s *DeliveryNoteService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDeliveryNoteRequest, actor shared.Actor) (*DeliveryNoteResponse, error) {
	name, err := s.nextName(ctx, tenantID, DeliveryNoteSeries)
	if err != nil {
		return nil, err
	}

	note, err := trade.NewDeliveryNote(tenantID, name, req.Customer, req.Company, dateOrZero(req.PostingDate))
	if err != nil {
		return nil, err
	}
	if actor.UserID != nil {
		note.SetCreatedBy(*actor.UserID)
	}
	note.SetPricing(req.Currency, req.SellingPriceList)
	note.Remarks = req.Remarks
	if err := applyLines(&note.SalesDocument, req.Items, req.Taxes); err != nil {
		return nil, err
	}
	if err := s.validateParty(ctx, &note.SalesDocument, actor); err != nil {
		return nil, err
	}
	if err := s.sources.validate(ctx, &note.SalesDocument); err != nil {
		return nil, err
	}

	if err := s.noteRepo.Save(ctx, note); err != nil {
		return nil, err
	}

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// GetByName retrieves a delivery note by name
func (s *DeliveryNoteService) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*DeliveryNoteResponse, error) {
	note, err := s.noteRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// List retrieves a list of delivery notes with filtering and pagination
func (s *DeliveryNoteService) List(ctx context.Context, tenantID uuid.UUID, filter SalesDocumentListFilter) ([]DeliveryNoteResponse, int64, error) {
	domainFilter := documentFilter(filter)

	notes, err := s.noteRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.noteRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DeliveryNoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToDeliveryNoteResponse(&notes[i])
	}
	return responses, total, nil
}

// Update edits a draft delivery note
func (s *DeliveryNoteService) Update(ctx context.Context, tenantID uuid.UUID, name string, req UpdateSalesDocumentRequest, actor shared.Actor) (*DeliveryNoteResponse, error) {
	note, err := s.noteRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := applyHeaderUpdate(&note.SalesDocument, req); err != nil {
		return nil, err
	}
	if err := s.validateParty(ctx, &note.SalesDocument, actor); err != nil {
		return nil, err
	}
	if err := s.sources.validate(ctx, &note.SalesDocument); err != nil {
		return nil, err
	}
	if err := s.noteRepo.SaveWithLock(ctx, note); err != nil {
		return nil, err
	}

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// Submit moves a draft to submitted. Row references must resolve to submitted
// documents of the same party; the credit check only runs when some row was
// not made from a sales order or invoice.
func (s *DeliveryNoteService) Submit(ctx context.Context, tenantID uuid.UUID, name, idempotencyKey string, actor shared.Actor) (*DeliveryNoteResponse, error) {
	note, err := s.noteRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}

	key := submitKey(tenantID, trade.DocTypeDeliveryNote, name, idempotencyKey)
	replay, err := s.alreadySubmitted(ctx, key)
	if err != nil {
		return nil, err
	}
	if replay {
		response := ToDeliveryNoteResponse(note)
		return &response, nil
	}

	if err := s.validateParty(ctx, &note.SalesDocument, actor); err != nil {
		return nil, err
	}
	if err := s.sources.validate(ctx, &note.SalesDocument); err != nil {
		return nil, err
	}
	if err := note.Submit(); err != nil {
		return nil, err
	}
	if note.NeedsCreditCheck() {
		if err := s.checkCredit(ctx, &note.SalesDocument, actor); err != nil {
			return nil, err
		}
	}

	if err := s.noteRepo.SaveWithLock(ctx, note); err != nil {
		return nil, err
	}
	s.submitted(ctx, &note.SalesDocument, key)
	s.publish(ctx, note)

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// Cancel cancels a submitted delivery note
func (s *DeliveryNoteService) Cancel(ctx context.Context, tenantID uuid.UUID, name string) (*DeliveryNoteResponse, error) {
	return s.transition(ctx, tenantID, name, (*trade.DeliveryNote).Cancel)
}

// Close stops billing of a submitted delivery note
func (s *DeliveryNoteService) Close(ctx context.Context, tenantID uuid.UUID, name string) (*DeliveryNoteResponse, error) {
	return s.transition(ctx, tenantID, name, (*trade.DeliveryNote).Close)
}

func (s *DeliveryNoteService) transition(ctx context.Context, tenantID uuid.UUID, name string, apply func(*trade.DeliveryNote) error) (*DeliveryNoteResponse, error) {
	note, err := s.noteRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if err := apply(note); err != nil {
		return nil, err
	}
	if err := s.noteRepo.SaveWithLock(ctx, note); err != nil {
		return nil, err
	}
	s.publish(ctx, note)

	response := ToDeliveryNoteResponse(note)
	return &response, nil
}

// Delete deletes a draft delivery note
func (s *DeliveryNoteService) Delete(ctx context.Context, tenantID uuid.UUID, name string) error {
	note, err := s.noteRepo.FindByName(ctx, tenantID, name)
	if err != nil {
		return err
	}
	if err := ensureDeletable(&note.SalesDocument); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, tenantID, name)
}
