package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/aeg58/crm-v2/entity"
)

func TestCreateLeadChecksCustomer(t *testing.T) {
	repo := new(MockRepository)

	repo.On("GetCustomer", mock.Anything, "ghost").Return(nil, entity.ErrNotFound).Once()

	c := newTestCore(repo, nil, nil)
	_, err := c.CreateLead(context.Background(), &entity.Lead{CustomerID: "ghost", Score: 80})

	assert.ErrorIs(t, err, entity.ErrNotFound)
	repo.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestCreateLeadDefaults(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)

	customer := &entity.Customer{ID: "cust-1", Name: "Ana"}
	repo.On("GetCustomer", mock.Anything, "cust-1").Return(customer, nil).Once()
	repo.On("CreateLead", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.CustomerID == "cust-1" &&
			l.Score == 100 &&
			l.Source == "Manual" &&
			l.Status == entity.LeadContacted
	})).Return(nil).Once()
	notifier.On("BroadcastLeadNew", mock.Anything).Once()

	c := newTestCore(repo, nil, notifier)
	lead, err := c.CreateLead(context.Background(), &entity.Lead{
		CustomerID: "cust-1",
		Score:      140,
		Status:     "contacted",
	})

	assert.NoError(t, err)
	assert.Equal(t, 100, lead.Score)
	repo.AssertExpectations(t)
}

func TestCreateLeadRejectsUnknownStatus(t *testing.T) {
	repo := new(MockRepository)

	customer := &entity.Customer{ID: "cust-1"}
	repo.On("GetCustomer", mock.Anything, "cust-1").Return(customer, nil).Once()

	c := newTestCore(repo, nil, nil)
	_, err := c.CreateLead(context.Background(), &entity.Lead{CustomerID: "cust-1", Status: "archived"})

	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	repo.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything)
}

func TestUpdateLeadAppliesPatch(t *testing.T) {
	repo := new(MockRepository)
	notifier := new(MockNotifier)

	existing := &entity.Lead{ID: "lead-1", CustomerID: "cust-1", Score: 70, Status: entity.LeadNew}
	repo.On("GetLead", mock.Anything, "lead-1").Return(existing, nil).Once()
	repo.On("UpdateLead", mock.Anything, mock.MatchedBy(func(l *entity.Lead) bool {
		return l.Score == 100 && l.Status == entity.LeadClosedWon
	})).Return(nil).Once()
	notifier.On("BroadcastLeadUpdate", mock.Anything).Once()

	score := 130
	status := "closed-won"
	c := newTestCore(repo, nil, notifier)
	lead, err := c.UpdateLead(context.Background(), "lead-1", entity.LeadPatch{
		Score:  &score,
		Status: &status,
	})

	assert.NoError(t, err)
	assert.Equal(t, 100, lead.Score)
	assert.Equal(t, entity.LeadClosedWon, lead.Status)
	notifier.AssertExpectations(t)
}

func TestListLeadsCanonicalizesStatus(t *testing.T) {
	repo := new(MockRepository)

	repo.On("ListLeads", mock.Anything, entity.LeadClosedWon, 50, 0).
		Return([]entity.Lead{}, nil).Once()

	c := newTestCore(repo, nil, nil)
	_, err := c.ListLeads(context.Background(), "closed won", 0, 0)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestListLeadsRejectsUnknownStatus(t *testing.T) {
	repo := new(MockRepository)

	c := newTestCore(repo, nil, nil)
	_, err := c.ListLeads(context.Background(), "archived", 0, 0)

	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	repo.AssertNotCalled(t, "ListLeads", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
