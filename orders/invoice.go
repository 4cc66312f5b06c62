package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"atelier/db"
	"atelier/finance"
	"atelier/models"
	"atelier/settings"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PrintInvoice renders an order's invoice / packing slip as a PDF with a
// fresh financial snapshot and a QR code for the tracking desk.
func PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orderID := ps.ByName("orderid")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Failed to fetch order", http.StatusInternalServerError)
		return
	}
	UpgradeShape(&order)

	ref, err := LoadRefData(ctx)
	if err != nil {
		http.Error(w, "Failed to load reference data", http.StatusInternalServerError)
		return
	}
	snap := finance.Reconcile(order, ref, settings.LoadRates(ctx))

	qrData := fmt.Sprintf("order=%s&tracking=%s", order.ID, order.Shipping.ShippingInfo.TrackingNumber)
	qrPNG, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Order Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"Order: %s\nCustomer: %s\nEmail: %s\nPhone: %s\nDate: %s\nStatus: %s",
		order.ID,
		order.CustomerName,
		order.CustomerEmail,
		order.CustomerPhone,
		order.OrderDate.Format("02 Jan 2006"),
		order.Status,
	), "", "L", false)
	pdf.Ln(4)

	addr := order.Shipping.ShippingAddress
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Ship To", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("%s\n%s, %s\n%s %s",
		addr.Street, addr.City, addr.State, addr.Country, addr.PostalCode), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(100, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "B", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		name := item.ProductID
		if p, ok := ref.Catalog[item.ProductID]; ok {
			name = p.Name
		}
		pdf.CellFormat(100, 7, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%s %.2f", order.Currency, item.Price), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"Total: %s %.2f  (NGN %.2f)\nShipping (actual): NGN %.2f",
		order.Currency, order.TotalAmount, snap.TotalAmountInNGN, snap.ShippingCostInNGN,
	), "", "L", false)

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
