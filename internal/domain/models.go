package domain

// Product is a shop inventory entry. Stock is never decremented by a sale;
// the dashboard only reads it for the low-stock figure.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"minStock"`
}

type ProductCreateRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"minStock"`
}

// Transaction is an append-only ledger entry. Date is kept as the stored
// RFC3339 string rather than a time.Time so entries with unparsable dates
// survive a load/save round trip unchanged.
type Transaction struct {
	ID       string            `json:"id"`
	Customer string            `json:"customer,omitempty"`
	Amount   float64           `json:"amount"`
	Date     string            `json:"date"`
	Type     string            `json:"type"`
	Items    []InvoiceLineItem `json:"items,omitempty"`
}

// InvoiceLineItem exists for the duration of one invoice build and is
// embedded into the resulting Transaction.
type InvoiceLineItem struct {
	Name  string  `json:"name"`
	Qty   float64 `json:"qty"`
	Price float64 `json:"price"`
	GST   float64 `json:"gst"`
	Total float64 `json:"total"`
}

type WalletEntry struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

// Wallet is declared in the store but never mutated by any operation.
type Wallet struct {
	Balance float64       `json:"balance"`
	History []WalletEntry `json:"history"`
}

type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

type Expense struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type Todo struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// DashboardMetrics is recomputed from the full ledger on every mutation.
type DashboardMetrics struct {
	TodaySales    float64 `json:"today_sales"`
	MonthlySales  float64 `json:"monthly_sales"`
	LowStockCount int     `json:"low_stock_count"`
	PendingBills  int     `json:"pending_bills"`
}

type DashboardResponse struct {
	Metrics            DashboardMetrics `json:"metrics"`
	RecentTransactions []Transaction    `json:"recent_transactions"`
}

// InvoiceLineInput carries raw form-field strings; parsing happens in the
// invoice builder with parse-or-default semantics.
type InvoiceLineInput struct {
	Name  string `json:"name"`
	Qty   string `json:"qty"`
	Price string `json:"price"`
	GST   string `json:"gst"`
}

type InvoiceRequest struct {
	CustomerName   string             `json:"customer_name"`
	CustomerMobile string             `json:"customer_mobile"`
	Items          []InvoiceLineInput `json:"items"`
}

type Invoice struct {
	CustomerName   string            `json:"customer_name"`
	CustomerMobile string            `json:"customer_mobile"`
	Date           string            `json:"date"`
	Items          []InvoiceLineItem `json:"items"`
	Subtotal       float64           `json:"subtotal"`
	TotalGST       float64           `json:"total_gst"`
	GrandTotal     float64           `json:"grand_total"`
}

type InvoiceResponse struct {
	Invoice      Invoice          `json:"invoice"`
	Transaction  Transaction      `json:"transaction"`
	Metrics      DashboardMetrics `json:"metrics"`
	Notification string           `json:"notification"`
}

type EMIRequest struct {
	LoanAmount   float64 `json:"loan_amount"`
	InterestRate float64 `json:"interest_rate"`
	TenureMonths float64 `json:"tenure_months"`
}

type EMIResult struct {
	MonthlyEMI    float64 `json:"monthly_emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

type CurrencyRequest struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

type CurrencyResult struct {
	Amount          float64 `json:"amount"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	ConvertedAmount float64 `json:"converted_amount"`
	ExchangeRate    float64 `json:"exchange_rate"`
	Display         string  `json:"display"`
	RateDisplay     string  `json:"rate_display"`
}

type WeatherReport struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"wind_speed"`
	Pressure    int    `json:"pressure"`
}

type QRRequest struct {
	Text string `json:"text"`
}

type QRPlaceholder struct {
	Text string   `json:"text"`
	Size int      `json:"size"`
	Grid [][]bool `json:"grid"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

// CommandResult carries the chatbot's canned reply plus a navigation hint for
// the UI. Commands only navigate; they never mutate ledger data.
type CommandResult struct {
	Reply   string `json:"reply"`
	Section string `json:"section,omitempty"`
	Tab     string `json:"tab,omitempty"`
	Tool    string `json:"tool,omitempty"`
}

type ThemeRequest struct {
	DarkMode bool `json:"dark_mode"`
}

type ThemeResponse struct {
	DarkMode bool `json:"dark_mode"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

type NoteCreateRequest struct {
	Text string `json:"text"`
}

type ExpenseCreateRequest struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type TodoCreateRequest struct {
	Text string `json:"text"`
}

const TxTypeSale = "sale"

const (
	SectionDashboard = "dashboard"
	SectionBilling   = "billing"
	SectionShop      = "shop"
	SectionWeather   = "weather"
	SectionTools     = "tools"
	SectionCustomer  = "customer"
)
