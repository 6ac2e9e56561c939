// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/order"
)

// Service handles receipt PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Generate renders a printable PDF receipt for an order
func (s *Service) Generate(o *order.Order) (*bytes.Buffer, error) {
	data := receiptData{
		Order: o,
		Org: orgInfo{
			Name:    s.config.Org.Name,
			Address: s.config.Org.Address,
			Phone:   s.config.Org.Phone,
			Email:   s.config.Org.Email,
		},
		Currency: o.Currency,
		TaxLabel: s.config.Org.TaxLabel,
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set("A5")

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from the receipt template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Funcs(template.FuncMap{
		"money": formatMoney,
	}).Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// formatMoney renders minor units as a decimal amount, e.g. 1850 -> "18.50"
func formatMoney(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// receiptData represents the data passed to the receipt template
type receiptData struct {
	Order    *order.Order
	Org      orgInfo
	Currency string
	TaxLabel string
}

// orgInfo represents the business information printed on the receipt
type orgInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.Order.OrderNumber}}</title>
    <style>
        body {
            font-family: "Courier New", monospace;
            margin: 0;
            padding: 16px;
            color: #111;
            font-size: 12px;
        }
        .org {
            text-align: center;
            margin-bottom: 12px;
        }
        .org h1 {
            font-size: 16px;
            margin: 0 0 4px 0;
        }
        .org p {
            margin: 2px 0;
        }
        .meta {
            border-top: 1px dashed #111;
            border-bottom: 1px dashed #111;
            padding: 6px 0;
            margin-bottom: 8px;
        }
        .meta p {
            margin: 2px 0;
        }
        .items {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 8px;
        }
        .items th, .items td {
            text-align: left;
            padding: 2px 0;
        }
        .items .num {
            text-align: right;
        }
        .totals {
            width: 100%;
            border-top: 1px dashed #111;
            padding-top: 6px;
        }
        .totals td {
            padding: 2px 0;
        }
        .totals .num {
            text-align: right;
        }
        .grand {
            font-size: 14px;
            font-weight: bold;
        }
        .footer {
            margin-top: 12px;
            text-align: center;
            border-top: 1px dashed #111;
            padding-top: 8px;
        }
    </style>
</head>
<body>
    <div class="org">
        <h1>{{.Org.Name}}</h1>
        {{if .Org.Address}}<p>{{.Org.Address}}</p>{{end}}
        {{if .Org.Phone}}<p>Tel: {{.Org.Phone}}</p>{{end}}
        {{if .Org.Email}}<p>{{.Org.Email}}</p>{{end}}
    </div>

    <div class="meta">
        <p>Receipt #: {{.Order.OrderNumber}}</p>
        <p>Date: {{.Order.CreatedAt.Format "02 Jan 2006 15:04"}}</p>
        {{if .Order.OrderType}}<p>Order type: {{.Order.OrderType}}</p>{{end}}
        {{if .Order.LocationName}}<p>Location: {{.Order.LocationName}}</p>{{end}}
    </div>

    <table class="items">
        <thead>
            <tr>
                <th>Item</th>
                <th class="num">Qty</th>
                <th class="num">Price</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>
                    {{.Name}}
                    {{if .Variant}}<br><small>{{.Variant}}</small>{{end}}
                    {{if .Addition}}<br><small>+ {{.Addition}}</small>{{end}}
                </td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{money .UnitPrice}}</td>
                <td class="num">{{money .LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <table class="totals">
        <tr>
            <td>Subtotal</td>
            <td class="num">{{.Currency}} {{money .Order.SubtotalAmount}}</td>
        </tr>
        {{if gt .Order.DiscountAmount 0}}
        <tr>
            <td>Discount</td>
            <td class="num">-{{.Currency}} {{money .Order.DiscountAmount}}</td>
        </tr>
        {{end}}
        {{if gt .Order.TaxAmount 0}}
        <tr>
            <td>{{if .TaxLabel}}{{.TaxLabel}}{{else}}Tax{{end}}</td>
            <td class="num">{{.Currency}} {{money .Order.TaxAmount}}</td>
        </tr>
        {{end}}
        <tr class="grand">
            <td>Total</td>
            <td class="num">{{.Currency}} {{money .Order.TotalAmount}}</td>
        </tr>
        {{if eq .Order.PaymentMethod "cash"}}
        <tr>
            <td>Cash</td>
            <td class="num">{{.Currency}} {{money .Order.AmountPaid}}</td>
        </tr>
        <tr>
            <td>Change</td>
            <td class="num">{{.Currency}} {{money .Order.ChangeAmount}}</td>
        </tr>
        {{else}}
        <tr>
            <td>Paid by</td>
            <td class="num">{{.Order.PaymentMethod}}</td>
        </tr>
        {{end}}
    </table>

    <div class="footer">
        <p>Thank you for your purchase!</p>
    </div>
</body>
</html>
`
