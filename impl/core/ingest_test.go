package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aeg58/crm-v2/entity"
)

// stubEnrichment keeps the detached enrichment goroutine on a short,
// fully stubbed path so ingestion tests stay deterministic.
func stubEnrichment(repo *MockRepository, analyzer *MockAnalyzer) {
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(entity.Analysis{}, errors.New("analyzer offline")).Maybe()
	repo.On("UpdateMessageEnrichment", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, entity.ErrNotFound).Maybe()
	repo.On("MarkMessageAnalysisFailed", mock.Anything, mock.Anything).Return(entity.ErrNotFound).Maybe()
}

func inboundEvent() *entity.InboundEvent {
	return &entity.InboundEvent{
		Platform: "whatsapp",
		Customer: entity.InboundCustomer{
			Name:  "Maria",
			Phone: "+5511999990000",
			Email: "Maria@Example.com",
		},
		Message: entity.InboundMessage{
			Content: "I need pricing for the enterprise plan",
		},
	}
}

func TestHandleInboundMessageCreatesCustomer(t *testing.T) {
	repo := new(MockRepository)
	analyzer := new(MockAnalyzer)
	notifier := new(MockNotifier)
	stubEnrichment(repo, analyzer)

	repo.On("FindCustomerByContact", mock.Anything, "+5511999990000", "maria@example.com").
		Return(nil, entity.ErrNotFound).Once()
	repo.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(c *entity.Customer) bool {
		return c.Name == "Maria" &&
			c.Email == "maria@example.com" &&
			c.Source == entity.SourceWhatsApp &&
			c.Status == entity.CustomerActive
	})).Return(nil).Once()
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.Platform == entity.PlatformWhatsApp &&
			m.Direction == entity.DirectionInbound &&
			m.AnalysisStatus == entity.AnalysisPending
	})).Return(nil).Once()
	notifier.On("BroadcastCustomerNew", mock.Anything).Once()
	notifier.On("BroadcastMessageNew", mock.Anything).Once()

	c := newTestCore(repo, analyzer, notifier)
	result, err := c.HandleInboundMessage(context.Background(), inboundEvent())

	assert.NoError(t, err)
	assert.True(t, result.NewCustomer)
	assert.NotEmpty(t, result.CustomerID)
	assert.NotEmpty(t, result.MessageID)
	notifier.AssertCalled(t, "BroadcastCustomerNew", mock.Anything)
	notifier.AssertCalled(t, "BroadcastMessageNew", mock.Anything)
}

func TestHandleInboundMessageReusesExistingCustomer(t *testing.T) {
	repo := new(MockRepository)
	analyzer := new(MockAnalyzer)
	notifier := new(MockNotifier)
	stubEnrichment(repo, analyzer)

	existing := &entity.Customer{ID: "cust-1", Name: "Maria", Status: entity.CustomerActive}
	repo.On("FindCustomerByContact", mock.Anything, "+5511999990000", "maria@example.com").
		Return(existing, nil).Once()
	repo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil).Once()
	notifier.On("BroadcastMessageNew", mock.Anything).Once()

	c := newTestCore(repo, analyzer, notifier)
	result, err := c.HandleInboundMessage(context.Background(), inboundEvent())

	assert.NoError(t, err)
	assert.False(t, result.NewCustomer)
	assert.Equal(t, "cust-1", result.CustomerID)
	repo.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "BroadcastCustomerNew", mock.Anything)
}

func TestHandleInboundMessageUnknownPlatform(t *testing.T) {
	repo := new(MockRepository)
	analyzer := new(MockAnalyzer)
	notifier := new(MockNotifier)
	stubEnrichment(repo, analyzer)

	repo.On("FindCustomerByContact", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, entity.ErrNotFound).Once()
	repo.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(c *entity.Customer) bool {
		return c.Source == entity.SourceOther
	})).Return(nil).Once()
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.Platform == entity.PlatformUnknown
	})).Return(nil).Once()
	notifier.On("BroadcastCustomerNew", mock.Anything).Once()
	notifier.On("BroadcastMessageNew", mock.Anything).Once()

	event := inboundEvent()
	event.Platform = "telegram"

	c := newTestCore(repo, analyzer, notifier)
	result, err := c.HandleInboundMessage(context.Background(), event)

	assert.NoError(t, err)
	assert.True(t, result.NewCustomer)
}

func TestResolveCustomerLosesInsertRace(t *testing.T) {
	repo := new(MockRepository)

	winner := &entity.Customer{ID: "winner"}
	repo.On("FindCustomerByContact", mock.Anything, "+5511999990000", "maria@example.com").
		Return(nil, entity.ErrNotFound).Once()
	repo.On("CreateCustomer", mock.Anything, mock.Anything).Return(entity.ErrDuplicate).Once()
	repo.On("FindCustomerByContact", mock.Anything, "+5511999990000", "maria@example.com").
		Return(winner, nil).Once()

	c := newTestCore(repo, nil, nil)
	customer, created, err := c.resolveCustomer(context.Background(), inboundEvent(), entity.PlatformWhatsApp)

	assert.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "winner", customer.ID)
}

func TestResolveCustomerNoContactSkipsLookup(t *testing.T) {
	repo := new(MockRepository)

	repo.On("CreateCustomer", mock.Anything, mock.Anything).Return(nil).Once()

	event := inboundEvent()
	event.Customer.Phone = ""
	event.Customer.Email = ""

	c := newTestCore(repo, nil, nil)
	customer, created, err := c.resolveCustomer(context.Background(), event, entity.PlatformInstagram)

	assert.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.SourceInstagram, customer.Source)
	repo.AssertNotCalled(t, "FindCustomerByContact", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleInboundMessageStoreFailure(t *testing.T) {
	repo := new(MockRepository)
	analyzer := new(MockAnalyzer)
	notifier := new(MockNotifier)

	existing := &entity.Customer{ID: "cust-1"}
	repo.On("FindCustomerByContact", mock.Anything, mock.Anything, mock.Anything).
		Return(existing, nil).Once()
	repo.On("CreateMessage", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	c := newTestCore(repo, analyzer, notifier)
	result, err := c.HandleInboundMessage(context.Background(), inboundEvent())

	assert.Error(t, err)
	assert.Nil(t, result)
	notifier.AssertNotCalled(t, "BroadcastMessageNew", mock.Anything)
}

func TestHandleTestMessage(t *testing.T) {
	repo := new(MockRepository)
	analyzer := new(MockAnalyzer)
	notifier := new(MockNotifier)
	stubEnrichment(repo, analyzer)

	repo.On("FindCustomerByContact", mock.Anything, "+5511999990000", "test.customer@example.com").
		Return(nil, entity.ErrNotFound).Once()
	repo.On("CreateCustomer", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.Platform == entity.PlatformWhatsApp
	})).Return(nil).Once()
	notifier.On("BroadcastCustomerNew", mock.Anything).Once()
	notifier.On("BroadcastMessageNew", mock.Anything).Once()

	c := newTestCore(repo, analyzer, notifier)
	result, err := c.HandleTestMessage(context.Background())

	assert.NoError(t, err)
	assert.True(t, result.NewCustomer)
}
