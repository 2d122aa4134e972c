package app

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/jhavlik/venceflor/internal/adapters/httpserver"
	"github.com/jhavlik/venceflor/internal/adapters/repo/postgres"
	"github.com/jhavlik/venceflor/internal/configurator"
	"github.com/jhavlik/venceflor/internal/domain"
	"github.com/jhavlik/venceflor/internal/money"
	"github.com/jhavlik/venceflor/internal/usecase"
)

type App struct {
	DB          *gorm.DB
	CatalogUC   *usecase.CatalogUC
	ConfigureUC *usecase.ConfigureUC
	CartUC      *usecase.CartUC
	OrderUC     *usecase.OrderUC
}

func NewApp(db *gorm.DB) (*App, error) {
	prodRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)
	custRepo := postgres.NewCustomerRepo(db)
	featRepo := postgres.NewFeaturedRepo(db)

	// Stale selections (deleted options, renamed choices) are skipped by the
	// engine; log them so catalog edits that orphan live carts show up.
	engine := &configurator.Engine{
		Diag: func(ev configurator.DiagnosticEvent) {
			log.Warn().
				Str("kind", string(ev.Kind)).
				Str("option_id", ev.OptionID).
				Str("choice_id", ev.ChoiceID).
				Msg("stale selection skipped")
		},
	}

	app := &App{DB: db}
	app.CatalogUC = &usecase.CatalogUC{Products: prodRepo, Featured: featRepo}
	app.ConfigureUC = &usecase.ConfigureUC{Products: prodRepo, Engine: engine}
	app.CartUC = &usecase.CartUC{Products: prodRepo, Engine: engine}
	app.OrderUC = &usecase.OrderUC{Orders: orderRepo, Customers: custRepo}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.CatalogUC, a.ConfigureUC, a.CartUC, a.OrderUC)
}

func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Product{}, &domain.Image{}, &domain.Order{}, &domain.OrderItem{}, &domain.Customer{}, &domain.FeaturedWreath{},
	); err != nil {
		return err
	}

	var count int64
	if err := a.DB.Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		seedCatalog(a.DB)
	}
	return nil
}

// seedCatalog loads the florist's starting assortment so a fresh install has
// a configurable catalog to show.
func seedCatalog(db *gorm.DB) {
	wreaths := []domain.Product{
		{
			ID:          uuid.New(),
			Slug:        "smutecni-venec-ruze",
			Name:        domain.Localized{CS: "Smuteční věnec z růží", EN: "Funeral wreath of roses"},
			Description: domain.Localized{CS: "Klasický smuteční věnec z čerstvých růží a zeleně.", EN: "A classic funeral wreath of fresh roses and greenery."},
			Category:    "wreaths",
			BasePrice:   money.FromCZK(1200),
			Active:      true,
			Options:     standardWreathOptions(),
			Images: []domain.Image{{
				ID:  uuid.New(),
				URL: "/assets/img/smutecni-venec-ruze.jpg",
				Alt: domain.Localized{CS: "Věnec z červených růží", EN: "Wreath of red roses"},
			}},
		},
		{
			ID:          uuid.New(),
			Slug:        "smutecni-venec-lilie",
			Name:        domain.Localized{CS: "Smuteční věnec z bílých lilií", EN: "Funeral wreath of white lilies"},
			Description: domain.Localized{CS: "Elegantní věnec z bílých lilií.", EN: "An elegant wreath of white lilies."},
			Category:    "wreaths",
			BasePrice:   money.FromCZK(1450),
			Active:      true,
			Options:     standardWreathOptions(),
			Images: []domain.Image{{
				ID:  uuid.New(),
				URL: "/assets/img/smutecni-venec-lilie.jpg",
				Alt: domain.Localized{CS: "Věnec z bílých lilií", EN: "Wreath of white lilies"},
			}},
		},
		{
			ID:          uuid.New(),
			Slug:        "smutecni-srdce",
			Name:        domain.Localized{CS: "Smuteční srdce z květin", EN: "Funeral flower heart"},
			Description: domain.Localized{CS: "Srdce z květin dle vlastního výběru.", EN: "A flower heart with your choice of blooms."},
			Category:    "wreaths",
			BasePrice:   money.FromCZK(1650),
			Active:      true,
			Options:     append(standardWreathOptions(), flowerMixOption()),
		},
		{
			ID:          uuid.New(),
			Slug:        "smutecni-kytice",
			Name:        domain.Localized{CS: "Smuteční kytice", EN: "Sympathy bouquet"},
			Description: domain.Localized{CS: "Vázaná kytice pro poslední rozloučení.", EN: "A hand-tied bouquet for the final farewell."},
			Category:    "bouquets",
			BasePrice:   money.FromCZK(850),
			Active:      true,
			Options:     bouquetOptions(),
		},
	}
	for i := range wreaths {
		if err := db.Create(&wreaths[i]).Error; err != nil {
			log.Error().Err(err).Str("slug", wreaths[i].Slug).Msg("seed product")
		}
	}
	for i, p := range wreaths[:2] {
		if err := db.Create(&domain.FeaturedWreath{ID: uuid.New(), ProductID: p.ID, DisplayOrder: i}).Error; err != nil {
			log.Error().Err(err).Str("slug", p.Slug).Msg("seed featured")
		}
	}
}

func standardWreathOptions() []domain.CustomizationOption {
	return []domain.CustomizationOption{
		{
			ID:       "size",
			Type:     domain.OptionTypeSize,
			Name:     domain.Localized{CS: "Velikost věnce", EN: "Wreath size"},
			Required: true,
			Choices: []domain.CustomizationChoice{
				{ID: "size_120", Label: domain.Localized{CS: "120 cm", EN: "120 cm"}, Available: true},
				{ID: "size_150", Label: domain.Localized{CS: "150 cm", EN: "150 cm"}, PriceModifier: money.FromCZK(500), Available: true},
				{ID: "size_180", Label: domain.Localized{CS: "180 cm", EN: "180 cm"}, PriceModifier: money.FromCZK(1200), Available: true},
			},
		},
		{
			ID:   "ribbon",
			Type: domain.OptionTypeRibbon,
			Name: domain.Localized{CS: "Stuha", EN: "Ribbon"},
			Choices: []domain.CustomizationChoice{
				{ID: "ribbon_yes", Label: domain.Localized{CS: "Se stuhou", EN: "With ribbon"}, PriceModifier: money.FromCZK(150), Available: true},
				{ID: "ribbon_no", Label: domain.Localized{CS: "Bez stuhy", EN: "No ribbon"}, Available: true},
			},
		},
		{
			ID:        "ribbon_color",
			Type:      domain.OptionTypeRibbonColor,
			Name:      domain.Localized{CS: "Barva stuhy", EN: "Ribbon color"},
			DependsOn: &domain.OptionDependency{OptionID: "ribbon", RequiredChoiceIDs: []string{"ribbon_yes"}},
			Choices: []domain.CustomizationChoice{
				{ID: "color_black", Label: domain.Localized{CS: "Černá", EN: "Black"}, Available: true},
				{ID: "color_purple", Label: domain.Localized{CS: "Fialová", EN: "Purple"}, Available: true},
				{ID: "color_white", Label: domain.Localized{CS: "Bílá", EN: "White"}, Available: true},
				{ID: "color_gold", Label: domain.Localized{CS: "Zlatá", EN: "Gold"}, PriceModifier: money.FromCZK(50), Available: true},
			},
		},
		{
			ID:        "ribbon_text",
			Type:      domain.OptionTypeRibbonText,
			Name:      domain.Localized{CS: "Text stuhy", EN: "Ribbon text"},
			DependsOn: &domain.OptionDependency{OptionID: "ribbon", RequiredChoiceIDs: []string{"ribbon_yes"}},
			Choices: []domain.CustomizationChoice{
				{ID: "text_sympathy", Label: domain.Localized{CS: "Upřímnou soustrast", EN: "With deepest sympathy"}, Available: true},
				{ID: "text_memory", Label: domain.Localized{CS: "S láskou vzpomínáme", EN: "In loving memory"}, Available: true},
				{ID: "text_custom", Label: domain.Localized{CS: "Vlastní text", EN: "Custom text"}, PriceModifier: money.FromCZK(100), Available: true, AllowCustomInput: true, MaxLength: 50},
			},
		},
		deliveryOption(),
	}
}

func deliveryOption() domain.CustomizationOption {
	return domain.CustomizationOption{
		ID:   "delivery",
		Type: domain.OptionTypeDelivery,
		Name: domain.Localized{CS: "Doručení", EN: "Delivery"},
		Choices: []domain.CustomizationChoice{
			{ID: "delivery_standard", Label: domain.Localized{CS: "Standardní doručení (3-5 dní)", EN: "Standard delivery (3-5 days)"}, Available: true},
			{ID: "delivery_express", Label: domain.Localized{CS: "Expresní doručení do 24 hodin", EN: "Express delivery within 24 hours"}, PriceModifier: money.FromCZK(200), Available: true},
			{ID: "delivery_date", Label: domain.Localized{CS: "Doručení v konkrétní den", EN: "Delivery on a chosen day"}, Available: true, RequiresCalendar: true, MinDaysFromNow: 2, MaxDaysFromNow: 30},
		},
	}
}

// flowerMixOption lets the shopper pick one to three flower kinds for the
// heart arrangement.
func flowerMixOption() domain.CustomizationOption {
	one, three := 1, 3
	return domain.CustomizationOption{
		ID:            "flowers",
		Type:          domain.OptionTypeOther,
		Name:          domain.Localized{CS: "Květinová výplň", EN: "Flower mix"},
		Required:      true,
		MinSelections: &one,
		MaxSelections: &three,
		Choices: []domain.CustomizationChoice{
			{ID: "flowers_roses", Label: domain.Localized{CS: "Růže", EN: "Roses"}, Available: true},
			{ID: "flowers_lilies", Label: domain.Localized{CS: "Lilie", EN: "Lilies"}, Available: true},
			{ID: "flowers_chrysanthemums", Label: domain.Localized{CS: "Chryzantémy", EN: "Chrysanthemums"}, Available: true},
			{ID: "flowers_carnations", Label: domain.Localized{CS: "Karafiáty", EN: "Carnations"}, PriceModifier: money.FromCZK(80), Available: true},
		},
	}
}

func bouquetOptions() []domain.CustomizationOption {
	return []domain.CustomizationOption{
		{
			ID:   "ribbon",
			Type: domain.OptionTypeRibbon,
			Name: domain.Localized{CS: "Stuha", EN: "Ribbon"},
			Choices: []domain.CustomizationChoice{
				{ID: "ribbon_yes", Label: domain.Localized{CS: "Se stuhou", EN: "With ribbon"}, PriceModifier: money.FromCZK(100), Available: true},
				{ID: "ribbon_no", Label: domain.Localized{CS: "Bez stuhy", EN: "No ribbon"}, Available: true},
			},
		},
		{
			ID:        "ribbon_text",
			Type:      domain.OptionTypeRibbonText,
			Name:      domain.Localized{CS: "Text stuhy", EN: "Ribbon text"},
			DependsOn: &domain.OptionDependency{OptionID: "ribbon", RequiredChoiceIDs: []string{"ribbon_yes"}},
			Choices: []domain.CustomizationChoice{
				{ID: "text_sympathy", Label: domain.Localized{CS: "Upřímnou soustrast", EN: "With deepest sympathy"}, Available: true},
				{ID: "text_custom", Label: domain.Localized{CS: "Vlastní text", EN: "Custom text"}, PriceModifier: money.FromCZK(100), Available: true, AllowCustomInput: true, MaxLength: 50},
			},
		},
		deliveryOption(),
	}
}
