package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var exportPrinter = message.NewPrinter(language.English)

// BuildOverviewWorkbook renders the overview report plus both rankings into a
// spreadsheet with one sheet per section.
func BuildOverviewWorkbook(overview OverviewReport, products ProductRanking, categories CategoryRanking) (*excelize.File, error) {
	book := excelize.NewFile()

	const overviewSheet = "Overview"
	if err := book.SetSheetName(book.GetSheetName(0), overviewSheet); err != nil {
		return nil, fmt.Errorf("reports: rename sheet: %w", err)
	}

	periodLabel := "all time"
	if overview.Period.Start != nil && overview.Period.End != nil {
		periodLabel = *overview.Period.Start + " to " + *overview.Period.End
	}
	rows := [][]interface{}{
		{"Period", periodLabel},
		{"Mode", overview.Period.Mode},
		{},
		{"Total profit", money(overview.Overview.TotalProfit)},
		{"Revenue", money(overview.Overview.Revenue)},
		{"Sales cost", money(overview.Overview.SalesCost)},
		{"Net purchase value", money(overview.Overview.NetPurchaseValue)},
		{"Net sales value", money(overview.Overview.NetSalesValue)},
		{"MoM profit %", pctCell(overview.Overview.MoMProfitPct)},
		{"YoY profit %", pctCell(overview.Overview.YoYProfitPct)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := book.SetSheetRow(overviewSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("reports: write overview row: %w", err)
		}
	}

	const productSheet = "Best products"
	if _, err := book.NewSheet(productSheet); err != nil {
		return nil, fmt.Errorf("reports: new sheet: %w", err)
	}
	header := []interface{}{"Product", "Category", "Sold", "Remaining", "Turnover", "Change %"}
	if err := book.SetSheetRow(productSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("reports: write product header: %w", err)
	}
	for i, item := range products.Items {
		category := ""
		if item.Category != nil {
			category = *item.Category
		}
		row := []interface{}{item.Product, category, item.SoldQuantity, item.RemainingQuantity, money(item.Turnover), pctCell(item.IncreasePct)}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := book.SetSheetRow(productSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("reports: write product row: %w", err)
		}
	}

	const categorySheet = "Best categories"
	if _, err := book.NewSheet(categorySheet); err != nil {
		return nil, fmt.Errorf("reports: new sheet: %w", err)
	}
	header = []interface{}{"Category", "Turnover", "Change %"}
	if err := book.SetSheetRow(categorySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("reports: write category header: %w", err)
	}
	for i, item := range categories.Items {
		row := []interface{}{item.Category, money(item.Turnover), pctCell(item.IncreasePct)}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := book.SetSheetRow(categorySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("reports: write category row: %w", err)
		}
	}

	return book, nil
}

func money(v float64) string {
	return exportPrinter.Sprintf("%.2f", v)
}

func pctCell(v *float64) interface{} {
	if v == nil {
		return "n/a"
	}
	return *v
}
