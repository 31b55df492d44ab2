// Package service wires the ledger, the metrics aggregator, the invoice
// builder, and the stateless tools behind one API for the HTTP layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"vyaparhub/backend/internal/domain"
	"vyaparhub/backend/internal/invoice"
	"vyaparhub/backend/internal/ledger"
	"vyaparhub/backend/internal/metrics"
	"vyaparhub/backend/internal/tools"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const recentTransactionLimit = 5

type Service struct {
	ledger  *ledger.Store
	weather *tools.WeatherService
}

func New(store *ledger.Store, weather *tools.WeatherService) *Service {
	return &Service{ledger: store, weather: weather}
}

// Dashboard recomputes the metrics from the full ledger and returns them
// with the most recent transactions.
func (s *Service) Dashboard(ctx context.Context) (*domain.DashboardResponse, error) {
	transactions, products, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	recent, err := s.ledger.RecentTransactions(ctx, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("load recent transactions: %w", err)
	}

	return &domain.DashboardResponse{
		Metrics:            metrics.Compute(transactions, products, time.Now()),
		RecentTransactions: recent,
	}, nil
}

// GenerateInvoice prices the request, records the sale, and returns the
// invoice together with refreshed metrics. The recorded amount is the
// unrounded grand total. Product stock is left untouched; the catalog and
// the billed line names are independent. A failed persist degrades to a
// warning: the invoice is still issued and the sale stays in memory.
func (s *Service) GenerateInvoice(ctx context.Context, req domain.InvoiceRequest) (*domain.InvoiceResponse, error) {
	inv, err := invoice.Build(req, time.Now())
	if err != nil {
		if errors.Is(err, invoice.ErrNoValidLines) {
			return nil, ErrInvalidInput
		}
		return nil, err
	}

	tx := domain.Transaction{
		Customer: inv.CustomerName,
		Amount:   inv.GrandTotal,
		Date:     inv.Date,
		Type:     domain.TxTypeSale,
		Items:    inv.Items,
	}
	saved, err := s.ledger.AppendTransaction(ctx, tx)
	if err != nil {
		log.Printf("WARN invoice transaction not persisted: %v", err)
	}

	transactions, products, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	return &domain.InvoiceResponse{
		Invoice:      *inv,
		Transaction:  *saved,
		Metrics:      metrics.Compute(transactions, products, time.Now()),
		Notification: "Invoice generated successfully!",
	}, nil
}

func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	return s.ledger.Products(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	product, err := s.ledger.CreateProduct(ctx, req)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			return nil, ErrInvalidInput
		}
		log.Printf("WARN product not persisted: %v", err)
	}
	return product, nil
}

func (s *Service) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.ledger.Transactions(ctx)
}

func (s *Service) Notes(ctx context.Context) ([]domain.Note, error) {
	return s.ledger.Notes(ctx)
}

func (s *Service) AddNote(ctx context.Context, req domain.NoteCreateRequest) (*domain.Note, error) {
	note, err := s.ledger.AddNote(ctx, req.Text)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			return nil, ErrInvalidInput
		}
		log.Printf("WARN note not persisted: %v", err)
	}
	return note, nil
}

func (s *Service) Expenses(ctx context.Context) ([]domain.Expense, error) {
	return s.ledger.Expenses(ctx)
}

func (s *Service) AddExpense(ctx context.Context, req domain.ExpenseCreateRequest) (*domain.Expense, error) {
	expense, err := s.ledger.AddExpense(ctx, req.Label, req.Amount)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			return nil, ErrInvalidInput
		}
		log.Printf("WARN expense not persisted: %v", err)
	}
	return expense, nil
}

func (s *Service) Todos(ctx context.Context) ([]domain.Todo, error) {
	return s.ledger.Todos(ctx)
}

func (s *Service) AddTodo(ctx context.Context, req domain.TodoCreateRequest) (*domain.Todo, error) {
	todo, err := s.ledger.AddTodo(ctx, req.Text)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidInput) {
			return nil, ErrInvalidInput
		}
		log.Printf("WARN todo not persisted: %v", err)
	}
	return todo, nil
}

func (s *Service) Wallet(ctx context.Context) (domain.Wallet, error) {
	return s.ledger.Wallet(ctx)
}

func (s *Service) Theme(ctx context.Context) domain.ThemeResponse {
	return domain.ThemeResponse{DarkMode: s.ledger.DarkMode(ctx)}
}

func (s *Service) SetTheme(ctx context.Context, req domain.ThemeRequest) (domain.ThemeResponse, error) {
	if err := s.ledger.SetDarkMode(ctx, req.DarkMode); err != nil {
		log.Printf("WARN theme preference not persisted: %v", err)
	}
	return domain.ThemeResponse{DarkMode: req.DarkMode}, nil
}

func (s *Service) CalculateEMI(_ context.Context, req domain.EMIRequest) (*domain.EMIResult, error) {
	result, err := tools.CalculateEMI(req)
	if err != nil {
		return nil, mapToolErr(err)
	}
	return result, nil
}

func (s *Service) ConvertCurrency(_ context.Context, req domain.CurrencyRequest) (*domain.CurrencyResult, error) {
	result, err := tools.ConvertCurrency(req)
	if err != nil {
		return nil, mapToolErr(err)
	}
	return result, nil
}

func (s *Service) Weather(ctx context.Context, pincode string) (*domain.WeatherReport, error) {
	report, err := s.weather.Lookup(ctx, pincode)
	if err != nil {
		return nil, mapToolErr(err)
	}
	return report, nil
}

func (s *Service) GenerateQR(_ context.Context, req domain.QRRequest) (*domain.QRPlaceholder, error) {
	result, err := tools.GenerateQR(req)
	if err != nil {
		return nil, mapToolErr(err)
	}
	return result, nil
}

func (s *Service) Chat(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	reply, err := tools.Reply(req)
	if err != nil {
		return nil, mapToolErr(err)
	}
	return reply, nil
}

func (s *Service) RunCommand(_ context.Context, req domain.ChatRequest) (*domain.CommandResult, error) {
	result, err := tools.RunCommand(req)
	if err != nil {
		return nil, mapToolErr(err)
	}
	return result, nil
}

func mapToolErr(err error) error {
	if errors.Is(err, tools.ErrInvalidInput) {
		return ErrInvalidInput
	}
	return err
}
