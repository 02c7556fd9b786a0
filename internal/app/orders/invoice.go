package orders

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"softglow/internal/domain"
)

// displayAmount renders a minor-unit amount as a major-unit decimal string,
// e.g. 24900 -> "249.00".
func displayAmount(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// WriteInvoice renders the order as a PDF straight into w. Nothing is
// persisted; only completed orders get an invoice.
func (s *orderService) WriteInvoice(ctx context.Context, customerID, orderID string, w io.Writer) error {
	order, err := s.getOwnedOrder(ctx, customerID, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusCompleted {
		return ErrInvoiceUnavailable
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+order.OrderNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SoftGlow Candles")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice for order %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Order date: %s", order.CreatedAt.Format("2 Jan 2006")))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, "Billed to")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 5, order.Shipping.Name)
	pdf.Ln(5)
	pdf.Cell(0, 5, order.Shipping.Line1)
	pdf.Ln(5)
	if order.Shipping.Line2 != "" {
		pdf.Cell(0, 5, order.Shipping.Line2)
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, fmt.Sprintf("%s, %s %s", order.Shipping.City, order.Shipping.State, order.Shipping.PostalCode))
	pdf.Ln(5)
	pdf.Cell(0, 5, order.Shipping.Country)
	pdf.Ln(5)
	pdf.Cell(0, 5, "Phone: "+order.Shipping.Phone)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Unit price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Subtotal", "1", 0, "R", false, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		pdf.CellFormat(90, 7, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, displayAmount(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, displayAmount(item.UnitPrice*item.Quantity), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(140, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%s %s", displayAmount(order.TotalAmount), order.Currency), "1", 0, "R", false, 0, "")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 5, "Thank you for shopping with SoftGlow.")

	if err := pdf.Output(w); err != nil {
		s.logger.Error("Failed to render invoice PDF", zap.String("order_id", orderID), zap.Error(err))
		return fmt.Errorf("failed to render invoice: %w", err)
	}
	return nil
}
