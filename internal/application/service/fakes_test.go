package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/routerlabs/einvoice-bridge/internal/domain/entity"
	"github.com/routerlabs/einvoice-bridge/internal/domain/enum"
	"github.com/routerlabs/einvoice-bridge/internal/domain/repository"
	"github.com/routerlabs/einvoice-bridge/pkg/b2brouter"
)

type fakeOrderRepo struct {
	orders map[int64]*entity.Order
	notes  []*entity.OrderNote

	getErr    error
	updateErr error
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	repo := &fakeOrderRepo{orders: make(map[int64]*entity.Order)}
	for _, o := range orders {
		if o.ID == uuid.Nil {
			o.ID = uuid.New()
		}
		repo.orders[o.Number] = o
	}
	return repo
}

func (r *fakeOrderRepo) GetByNumber(ctx context.Context, number int64) (*entity.Order, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.orders[number], nil
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders[order.Number] = order
	return nil
}

func (r *fakeOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.orders[order.Number] = order
	return nil
}

func (r *fakeOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	for _, o := range r.orders {
		orders = append(orders, *o)
	}
	return orders, int64(len(orders)), nil
}

func (r *fakeOrderRepo) AddNote(ctx context.Context, note *entity.OrderNote) error {
	r.notes = append(r.notes, note)
	return nil
}

func (r *fakeOrderRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) CountInvoiced(ctx context.Context) (int64, error) {
	var n int64
	for _, o := range r.orders {
		if o.HasInvoice() {
			n++
		}
	}
	return n, nil
}

func (r *fakeOrderRepo) notesFor(number int64) []string {
	order := r.orders[number]
	if order == nil {
		return nil
	}
	var texts []string
	for _, note := range r.notes {
		if note.OrderID == order.ID {
			texts = append(texts, note.Note)
		}
	}
	return texts
}

type fakeSettingsRepo struct {
	settings *entity.StoreSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.StoreSettings, error) {
	return r.settings, nil
}

func (r *fakeSettingsRepo) Create(ctx context.Context, settings *entity.StoreSettings) error {
	r.settings = settings
	return nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *entity.StoreSettings) error {
	r.settings = settings
	return nil
}

type fakeGateway struct {
	apiKey string
	env    enum.Environment

	createCalls int
	sendCalls   int
	listCalls   int

	createErr error
	sendErr   error
	listErr   error

	record      *b2brouter.InvoiceRecord
	accounts    []b2brouter.Account
	lastAccount string
	lastInvoice *b2brouter.Invoice
}

func (g *fakeGateway) factory() GatewayFactory {
	return func(apiKey string, env enum.Environment) InvoiceGateway {
		g.apiKey = apiKey
		g.env = env
		return g
	}
}

func (g *fakeGateway) CreateInvoice(ctx context.Context, accountID string, invoice *b2brouter.Invoice) (*b2brouter.InvoiceRecord, error) {
	g.createCalls++
	g.lastAccount = accountID
	g.lastInvoice = invoice
	if g.createErr != nil {
		return nil, g.createErr
	}
	if g.record != nil {
		return g.record, nil
	}
	return &b2brouter.InvoiceRecord{ID: 987, Number: invoice.Number, State: "draft"}, nil
}

func (g *fakeGateway) SendInvoice(ctx context.Context, invoiceID int64) error {
	g.sendCalls++
	return g.sendErr
}

func (g *fakeGateway) ListAccounts(ctx context.Context, limit int) ([]b2brouter.Account, error) {
	g.listCalls++
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.accounts, nil
}
