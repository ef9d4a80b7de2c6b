package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aeg58/crm-v2/entity"
)

func TestCreateMessageUnknownCustomer(t *testing.T) {
	repo := new(MockRepository)

	repo.On("GetCustomer", mock.Anything, "ghost").Return(nil, entity.ErrNotFound).Once()

	c := newTestCore(repo, nil, nil)
	_, err := c.CreateMessage(context.Background(), "ghost", "hello", "", "", nil)

	assert.ErrorIs(t, err, entity.ErrNotFound)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestCreateMessageDefaultsToManualPlatform(t *testing.T) {
	repo := new(MockRepository)
	analyzer := new(MockAnalyzer)
	notifier := new(MockNotifier)
	stubEnrichment(repo, analyzer)

	customer := &entity.Customer{ID: "cust-1", Name: "Ana"}
	repo.On("GetCustomer", mock.Anything, "cust-1").Return(customer, nil).Once()
	repo.On("CreateMessage", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.Platform == entity.PlatformManual && m.Direction == entity.DirectionOutbound
	})).Return(nil).Once()
	notifier.On("BroadcastMessageNew", mock.Anything).Once()

	c := newTestCore(repo, analyzer, notifier)
	message, err := c.CreateMessage(context.Background(), "cust-1", "following up on our call", "outbound", "", nil)

	assert.NoError(t, err)
	assert.Equal(t, entity.PlatformManual, message.Platform)
	assert.Equal(t, entity.AnalysisPending, message.AnalysisStatus)
}

func TestUpdateMessageAppliesPatch(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)

	stored := &entity.Message{ID: "msg-1", CustomerID: "cust-1", Content: "old text"}
	repo.On("GetMessage", mock.Anything, "msg-1").Return(stored, nil).Once()
	repo.On("UpdateMessage", mock.Anything, mock.MatchedBy(func(m *entity.Message) bool {
		return m.ID == "msg-1" && m.Content == "new text"
	})).Return(nil).Once()
	notifier.On("BroadcastMessageUpdated", mock.Anything).Once()

	content := "  new text  "
	c := newTestCore(repo, nil, notifier)
	message, err := c.UpdateMessage(context.Background(), "msg-1", entity.MessagePatch{Content: &content})

	assert.NoError(t, err)
	assert.Equal(t, "new text", message.Content)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdateMessageRejectsEmptyContent(t *testing.T) {
	repo := new(MockRepository)

	stored := &entity.Message{ID: "msg-1", CustomerID: "cust-1", Content: "old text"}
	repo.On("GetMessage", mock.Anything, "msg-1").Return(stored, nil).Once()

	content := "   "
	c := newTestCore(repo, nil, nil)
	_, err := c.UpdateMessage(context.Background(), "msg-1", entity.MessagePatch{Content: &content})

	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	repo.AssertNotCalled(t, "UpdateMessage", mock.Anything, mock.Anything)
}

func TestListMessagesNormalizesLimit(t *testing.T) {
	repo := new(MockRepository)

	repo.On("ListMessages", mock.Anything, "cust-1", 50, 0).
		Return([]entity.Message{}, nil).Once()

	c := newTestCore(repo, nil, nil)
	_, err := c.ListMessages(context.Background(), "cust-1", 0, -1)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
