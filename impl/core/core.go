package core

import (
	"context"
	"log/slog"

	"github.com/aeg58/crm-v2/entity"
	"github.com/aeg58/crm-v2/internal/lib/sl"
)

type Repository interface {
	CreateCustomer(ctx context.Context, customer *entity.Customer) error
	GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
	FindCustomerByContact(ctx context.Context, phone, email string) (*entity.Customer, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]entity.Customer, error)
	UpdateCustomer(ctx context.Context, customer *entity.Customer) error
	DeleteCustomer(ctx context.Context, id string) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	GetMessage(ctx context.Context, id string) (*entity.Message, error)
	ListMessages(ctx context.Context, customerID string, limit, offset int) ([]entity.Message, error)
	UpdateMessage(ctx context.Context, message *entity.Message) error
	DeleteMessage(ctx context.Context, id string) error
	UpdateMessageEnrichment(ctx context.Context, id string, analysis entity.Analysis, status string) (*entity.Message, error)
	MarkMessageAnalysisFailed(ctx context.Context, id string) error

	CreateLead(ctx context.Context, lead *entity.Lead) error
	GetLead(ctx context.Context, id string) (*entity.Lead, error)
	FindActiveLeadByCustomer(ctx context.Context, customerID string) (*entity.Lead, error)
	ListLeads(ctx context.Context, status string, limit, offset int) ([]entity.Lead, error)
	UpdateLead(ctx context.Context, lead *entity.Lead) error
	DeleteLead(ctx context.Context, id string) error
	RaiseLeadScore(ctx context.Context, id string, score int, note string) (*entity.Lead, error)

	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)
	Ping(ctx context.Context) error
}

// Analyzer scores message content. Implementations bound their own
// call; the core substitutes the neutral default on any error.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (entity.Analysis, error)
}

// Notifier pushes real-time events to connected CRM clients. All
// methods are non-blocking.
type Notifier interface {
	BroadcastCustomerNew(customer *entity.Customer)
	BroadcastMessageNew(message *entity.Message)
	BroadcastMessageUpdated(message *entity.Message)
	BroadcastLeadNew(lead *entity.Lead)
	BroadcastLeadUpdate(lead *entity.Lead)
}

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	AuthenticateByToken(token string) (*entity.UserAuth, error)
}

type Core struct {
	repo        Repository
	analyzer    Analyzer
	notifier    Notifier
	authService AuthService
	log         *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetAnalyzer(analyzer Analyzer) {
	c.analyzer = analyzer
}

func (c *Core) SetNotifier(notifier Notifier) {
	c.notifier = notifier
}

func (c *Core) SetAuthService(auth AuthService) {
	c.authService = auth
}

func (c *Core) Ping(ctx context.Context) error {
	return c.repo.Ping(ctx)
}
