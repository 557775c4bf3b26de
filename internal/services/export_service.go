package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

const exportLimit = 10000

func formatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// displayNames resolves user ids to display names in one query. Deleted
// users keep their row, so exports can still name them.
func displayNames() (map[uuid.UUID]string, error) {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	return names, nil
}

// ExportConsumptionsCSV renders the consumption history as CSV.
func ExportConsumptionsCSV() ([]byte, error) {
	names, err := displayNames()
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := database.DB.Find(&products).Error; err != nil {
		return nil, err
	}
	productNames := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		productNames[p.ID] = p.Name
	}

	var consumptions []models.Consumption
	err = database.DB.Order("at desc").Limit(exportLimit).Find(&consumptions).Error
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Date", "User", "Product", "Quantity", "Unit Price", "Total Amount", "Created By"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, c := range consumptions {
		record := []string{
			formatTime(c.At),
			names[c.UserID],
			productNames[c.ProductID],
			fmt.Sprintf("%d", c.Qty),
			formatCents(c.UnitPriceCents),
			formatCents(c.AmountCents),
			names[c.CreatedBy],
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// ExportMoneyMovesCSV renders the money move history as CSV.
func ExportMoneyMovesCSV() ([]byte, error) {
	names, err := displayNames()
	if err != nil {
		return nil, err
	}

	var moves []models.MoneyMove
	err = database.DB.Order("created_at desc").Limit(exportLimit).Find(&moves).Error
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Created Date", "Type", "User", "Amount", "Status", "Note", "Created By", "Resolved Date", "Resolved By"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, m := range moves {
		resolvedAt := ""
		if m.ConfirmedAt != nil {
			resolvedAt = formatTime(*m.ConfirmedAt)
		}
		resolvedBy := ""
		if m.ConfirmedBy != nil {
			resolvedBy = names[*m.ConfirmedBy]
		}
		record := []string{
			formatTime(m.CreatedAt),
			string(m.Type),
			names[m.UserID],
			formatCents(m.AmountCents),
			string(m.Status),
			m.Note,
			names[m.CreatedBy],
			resolvedAt,
			resolvedBy,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// ExportBalancesCSV renders the current balance of every active user.
func ExportBalancesCSV() ([]byte, error) {
	entries, err := AllBalances()
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"User", "Email", "Role", "Balance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		record := []string{
			entry.User.DisplayName,
			entry.User.Email,
			string(entry.User.Role),
			formatCents(entry.BalanceCents),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// ExportAuditCSV renders the audit trail as CSV, newest first.
func ExportAuditCSV() ([]byte, error) {
	names, err := displayNames()
	if err != nil {
		return nil, err
	}

	var entries []models.AuditEntry
	err = database.DB.Order("at desc, id desc").Limit(exportLimit).Find(&entries).Error
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Time", "Actor", "Action", "Entity", "Entity ID", "Metadata"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, e := range entries {
		record := []string{
			formatTime(e.At),
			names[e.ActorID],
			e.Action,
			e.Entity,
			e.EntityID.String(),
			string(e.Meta),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// ExportStockPurchasesCSV renders the stock purchase log as CSV.
func ExportStockPurchasesCSV() ([]byte, error) {
	names, err := displayNames()
	if err != nil {
		return nil, err
	}

	var purchases []models.StockPurchase
	err = database.DB.Order("purchase_date desc").Limit(exportLimit).Find(&purchases).Error
	if err != nil {
		return nil, err
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Purchase Date", "Item", "Supplier", "Quantity", "Unit Price", "Total Amount", "Receipt", "Cash-Out Processed", "Created By"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range purchases {
		record := []string{
			formatTime(p.PurchaseDate),
			p.ItemName,
			p.Supplier,
			fmt.Sprintf("%d", p.Quantity),
			formatCents(p.UnitPriceCents),
			formatCents(p.TotalAmountCents),
			p.ReceiptNumber,
			fmt.Sprintf("%t", p.IsCashOutProcessed),
			names[p.CreatedBy],
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
