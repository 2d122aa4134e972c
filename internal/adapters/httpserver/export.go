package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/jhavlik/venceflor/internal/domain"
	"github.com/jhavlik/venceflor/internal/money"
)

const pricelistSheet = "Pricelist"

// apiAdminExportPricelist streams the catalog as an xlsx price list: one
// base-price row per product followed by one row per option choice with its
// modifier and the price of wreath + that choice. The florist hands the file
// to funeral homes, so prices carry both the numeric and the "Kč" form.
func (s *Server) apiAdminExportPricelist(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	_ = f.SetSheetName("Sheet1", pricelistSheet)

	headers := []string{"Product (cs)", "Product (en)", "Slug", "Category", "Option", "Choice", "Modifier", "Price", "Price (Kč)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(pricelistSheet, cell, h)
	}

	row := 2
	set := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(pricelistSheet, cell, v)
	}
	page := 1
	for {
		list, total, err := s.catalog.List(r.Context(), domain.ProductFilter{Page: page, PageSize: 200})
		if err != nil || len(list) == 0 {
			break
		}
		for _, p := range list {
			set(1, p.Name.CS)
			set(2, p.Name.EN)
			set(3, p.Slug)
			set(4, p.Category)
			set(8, crowns(p.BasePrice))
			set(9, money.FormatCZK(p.BasePrice))
			row++
			for _, opt := range p.Options {
				for _, c := range opt.Choices {
					set(1, p.Name.CS)
					set(2, p.Name.EN)
					set(3, p.Slug)
					set(4, p.Category)
					set(5, opt.Name.CS)
					set(6, c.Label.CS)
					set(7, crowns(c.PriceModifier))
					set(8, crowns(p.BasePrice+c.PriceModifier))
					set(9, money.FormatCZK(p.BasePrice+c.PriceModifier))
					row++
				}
			}
		}
		if page*200 >= int(total) {
			break
		}
		page++
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=pricelist.xlsx")
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("write pricelist")
	}
}

// crowns converts minor units to whole crowns for spreadsheet cells.
func crowns(m money.Money) float64 {
	return float64(m) / 100
}
