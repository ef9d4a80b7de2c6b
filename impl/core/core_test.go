package core

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/aeg58/crm-v2/entity"
)

// MockRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateCustomer(ctx context.Context, customer *entity.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockRepository) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockRepository) FindCustomerByContact(ctx context.Context, phone, email string) (*entity.Customer, error) {
	args := m.Called(ctx, phone, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockRepository) ListCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Customer), args.Error(1)
}

func (m *MockRepository) UpdateCustomer(ctx context.Context, customer *entity.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockRepository) DeleteCustomer(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockRepository) GetMessage(ctx context.Context, id string) (*entity.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *MockRepository) ListMessages(ctx context.Context, customerID string, limit, offset int) ([]entity.Message, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Message), args.Error(1)
}

func (m *MockRepository) UpdateMessage(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockRepository) DeleteMessage(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) UpdateMessageEnrichment(ctx context.Context, id string, analysis entity.Analysis, status string) (*entity.Message, error) {
	args := m.Called(ctx, id, analysis, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *MockRepository) MarkMessageAnalysisFailed(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateLead(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockRepository) GetLead(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockRepository) FindActiveLeadByCustomer(ctx context.Context, customerID string) (*entity.Lead, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockRepository) ListLeads(ctx context.Context, status string, limit, offset int) ([]entity.Lead, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockRepository) UpdateLead(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockRepository) DeleteLead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) RaiseLeadScore(ctx context.Context, id string, score int, note string) (*entity.Lead, error) {
	args := m.Called(ctx, id, score, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockRepository) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DashboardStats), args.Error(1)
}

func (m *MockRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockAnalyzer
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, content string) (entity.Analysis, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(entity.Analysis), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BroadcastCustomerNew(customer *entity.Customer) {
	m.Called(customer)
}

func (m *MockNotifier) BroadcastMessageNew(message *entity.Message) {
	m.Called(message)
}

func (m *MockNotifier) BroadcastMessageUpdated(message *entity.Message) {
	m.Called(message)
}

func (m *MockNotifier) BroadcastLeadNew(lead *entity.Lead) {
	m.Called(lead)
}

func (m *MockNotifier) BroadcastLeadUpdate(lead *entity.Lead) {
	m.Called(lead)
}

func newTestCore(repo *MockRepository, analyzer *MockAnalyzer, notifier *MockNotifier) *Core {
	c := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if repo != nil {
		c.SetRepository(repo)
	}
	if analyzer != nil {
		c.SetAnalyzer(analyzer)
	}
	if notifier != nil {
		c.SetNotifier(notifier)
	}
	return c
}
