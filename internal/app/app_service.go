package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"billfold/internal/ai"
	"billfold/internal/core"
	"billfold/internal/export"
)

type appService struct {
	admins    core.AdminService
	clients   core.ClientService
	products  core.ProductService
	pricing   core.PricingService
	billing   core.BillingService
	payments  core.PaymentService
	reports   core.ReportService
	audit     core.AuditService
	suggester ai.SuggestionService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	admins core.AdminService,
	clients core.ClientService,
	products core.ProductService,
	pricing core.PricingService,
	billing core.BillingService,
	payments core.PaymentService,
	reports core.ReportService,
	audit core.AuditService,
	suggester ai.SuggestionService,
) ApplicationService {
	return &appService{
		admins:    admins,
		clients:   clients,
		products:  products,
		pricing:   pricing,
		billing:   billing,
		payments:  payments,
		reports:   reports,
		audit:     audit,
		suggester: suggester,
	}
}

func (s *appService) AuthenticateAdmin(ctx context.Context, username, password string) (*AdminSession, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("authentication failed: invalid credentials")
	}
	return &AdminSession{AdminID: admin.ID, Username: admin.Username}, nil
}

func (s *appService) GetAdmin(ctx context.Context, adminID int) (*core.Admin, error) {
	return s.admins.GetByID(ctx, adminID)
}

func (s *appService) ListClients(ctx context.Context, adminID int) (*ClientListResult, error) {
	clients, err := s.clients.GetClients(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return &ClientListResult{Clients: clients}, nil
}

func (s *appService) CreateClient(ctx context.Context, adminID int, name, email string) (*core.Client, error) {
	return s.clients.CreateClient(ctx, adminID, name, email)
}

func (s *appService) DeleteClient(ctx context.Context, adminID, clientID int) error {
	return s.clients.DeleteClient(ctx, adminID, clientID)
}

func (s *appService) ListProducts(ctx context.Context, adminID int) (*ProductListResult, error) {
	products, err := s.products.GetProducts(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) CreateProduct(ctx context.Context, adminID int, req ProductRequest) (*core.Product, error) {
	return s.products.CreateProduct(ctx, adminID, core.ProductInput{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DefaultPrice: req.DefaultPrice,
	}, req.Overrides)
}

func (s *appService) UpdateProduct(ctx context.Context, adminID, productID int, req ProductRequest) (*core.Product, error) {
	return s.products.UpdateProduct(ctx, adminID, productID, core.ProductInput{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		DefaultPrice: req.DefaultPrice,
	}, req.Overrides)
}

func (s *appService) DeleteProduct(ctx context.Context, adminID, productID int) error {
	return s.products.DeleteProduct(ctx, adminID, productID)
}

func (s *appService) ResolvePrice(ctx context.Context, adminID, clientID, productID int) (*core.ResolvedPrice, error) {
	return s.pricing.ResolveUnitPrice(ctx, adminID, clientID, productID)
}

func (s *appService) CreateBill(ctx context.Context, adminID int, req CreateBillRequest) (*core.Bill, error) {
	return s.billing.CreateBill(ctx, adminID, req.ClientID, req.Items)
}

func (s *appService) GetBill(ctx context.Context, adminID, billID int) (*core.Bill, error) {
	return s.billing.GetBill(ctx, adminID, billID)
}

func (s *appService) ListBills(ctx context.Context, adminID, clientID int) (*BillListResult, error) {
	bills, err := s.billing.GetBills(ctx, adminID, clientID)
	if err != nil {
		return nil, err
	}
	return &BillListResult{Bills: bills}, nil
}

func (s *appService) RecordPayment(ctx context.Context, adminID int, req RecordPaymentRequest) (*core.IncomeEntry, error) {
	return s.payments.RecordPayment(ctx, adminID, req.ClientID, req.Amount, req.Description, req.EntryDate)
}

func (s *appService) ListPayments(ctx context.Context, adminID, clientID int) (*PaymentListResult, error) {
	payments, err := s.payments.GetPayments(ctx, adminID, clientID)
	if err != nil {
		return nil, err
	}
	return &PaymentListResult{Payments: payments}, nil
}

func (s *appService) IncomeReport(ctx context.Context, adminID int, q ReportQuery) (*core.Report, error) {
	window, err := q.Window(time.Now())
	if err != nil {
		return nil, err
	}
	return s.reports.IncomeReport(ctx, adminID, window)
}

func (s *appService) ExportIncomeReport(ctx context.Context, adminID int, q ReportQuery) ([]byte, error) {
	report, err := s.IncomeReport(ctx, adminID, q)
	if err != nil {
		return nil, err
	}
	return export.ReportXLSX(report)
}

func (s *appService) Dashboard(ctx context.Context, adminID int) (*DashboardResult, error) {
	now := time.Now()
	summary, err := s.reports.Dashboard(ctx, adminID, now)
	if err != nil {
		return nil, err
	}
	series, err := s.reports.MonthlyIncomeSeries(ctx, adminID, now.Year())
	if err != nil {
		return nil, err
	}
	recent, err := s.clients.RecentClients(ctx, adminID, 5)
	if err != nil {
		return nil, err
	}
	return &DashboardResult{Summary: summary, MonthlyIncome: series, RecentClients: recent}, nil
}

func (s *appService) SuggestBillMessage(ctx context.Context, adminID, billID int) (*SuggestionResult, error) {
	bill, err := s.billing.GetBill(ctx, adminID, billID)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.suggester.SuggestBillMessage(ctx, ai.SuggestionInput{
		AccountPersonName: bill.ClientName,
		PastBalance:       bill.PreviousBalance,
		CurrentBalance:    bill.NewBalance,
		BillAmount:        bill.TotalAmount,
	})
	if err != nil {
		return nil, err
	}
	return &SuggestionResult{SuggestedContent: suggestion.SuggestedContent}, nil
}

func (s *appService) AuditBalances(ctx context.Context, adminID int) (*AuditResult, error) {
	drifts, err := s.audit.AuditBalances(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return &AuditResult{Consistent: len(drifts) == 0, Drifts: drifts}, nil
}
