package tools

import (
	"strings"

	"vyaparhub/backend/internal/domain"
)

// Reply matches keywords in the message and returns the canned assistant
// response. Keyword checks are substring matches on the lowercased input,
// first hit wins.
func Reply(req domain.ChatRequest) (*domain.ChatReply, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	lower := strings.ToLower(message)
	var reply string
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		reply = "Hello! How can I assist you with your business today?"
	case strings.Contains(lower, "invoice") || strings.Contains(lower, "bill"):
		reply = "I can help you create invoices. Go to the GST Billing section to generate professional invoices with GST calculation."
	case strings.Contains(lower, "weather"):
		reply = "Check the weather in your area by entering your PIN code in the Weather section."
	case strings.Contains(lower, "emi") || strings.Contains(lower, "loan"):
		reply = "Use the EMI calculator in the Tools section to calculate your monthly loan payments."
	case strings.Contains(lower, "product") || strings.Contains(lower, "inventory"):
		reply = "Manage your products and inventory in the Shop Management section. You can add, edit, and track stock levels."
	default:
		reply = "I'm here to help with your business needs. You can ask about invoices, weather, EMI calculations, or product management."
	}

	return &domain.ChatReply{Reply: reply}, nil
}

// RunCommand dispatches a quick command. Known commands answer with a
// navigation hint; commands only steer the UI and never mutate data.
// Unknown commands get the generic acknowledgement.
func RunCommand(req domain.ChatRequest) (*domain.CommandResult, error) {
	command := strings.TrimSpace(req.Message)
	if command == "" {
		return nil, ErrInvalidInput
	}

	switch strings.ToLower(command) {
	case "create invoice":
		return &domain.CommandResult{
			Reply:   "I'll help you create an invoice. Please go to the GST Billing section and fill in the customer details and items.",
			Section: domain.SectionBilling,
		}, nil
	case "add product":
		return &domain.CommandResult{
			Reply:   "Let's add a new product. Navigate to Shop Management and click 'Add Product'.",
			Section: domain.SectionShop,
		}, nil
	case "check weather":
		return &domain.CommandResult{
			Reply:   "To check weather, go to the Weather section and enter your PIN code.",
			Section: domain.SectionWeather,
		}, nil
	case "calculate emi":
		return &domain.CommandResult{
			Reply:   "Opening EMI calculator...",
			Section: domain.SectionTools,
			Tool:    "emi",
		}, nil
	case "show sales report":
		return &domain.CommandResult{
			Reply:   "Your sales reports are available in the Shop Management section under Sales Reports.",
			Section: domain.SectionShop,
		}, nil
	case "add expense":
		return &domain.CommandResult{
			Reply:   "Let's add an expense. Go to Customer Utilities and switch to the Expenses tab.",
			Section: domain.SectionCustomer,
			Tab:     "expenses",
		}, nil
	default:
		return &domain.CommandResult{
			Reply: "I've noted your command. How else can I assist you?",
		}, nil
	}
}
