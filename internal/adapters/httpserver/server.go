package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhavlik/venceflor/internal/domain"
	"github.com/jhavlik/venceflor/internal/money"
	"github.com/jhavlik/venceflor/internal/usecase"
)

// Server is the JSON API of the storefront. The configurator UI, the cart
// and the florist's admin panel all talk to it; HTML rendering lives in a
// separate frontend.
type Server struct {
	mux     *http.ServeMux
	catalog *usecase.CatalogUC
	config  *usecase.ConfigureUC
	cart    *usecase.CartUC
	orders  *usecase.OrderUC

	adminToken string
}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func New(catalog *usecase.CatalogUC, config *usecase.ConfigureUC, cart *usecase.CartUC, orders *usecase.OrderUC) http.Handler {
	s := &Server{catalog: catalog, config: config, cart: cart, orders: orders, mux: http.NewServeMux()}

	s.adminToken = os.Getenv("ADMIN_TOKEN")
	if s.adminToken == "" {
		s.adminToken = "dev-admin-token"
	}

	s.routes()
	return Chain(s.mux,
		RateLimit(60),
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductBySlug)
	s.mux.HandleFunc("/api/categories", s.apiCategories)
	s.mux.HandleFunc("/api/featured", s.apiFeatured)

	s.mux.HandleFunc("/api/cart", s.apiCart)
	s.mux.HandleFunc("/api/cart/remove", s.apiCartRemove)
	s.mux.HandleFunc("/api/checkout", s.apiCheckout)

	s.mux.HandleFunc("/api/admin/products", s.apiAdminProducts)
	s.mux.HandleFunc("/api/admin/orders", s.apiAdminOrders)
	s.mux.HandleFunc("/api/admin/orders/status", s.apiAdminOrderStatus)
	s.mux.HandleFunc("/api/admin/featured", s.apiAdminFeatured)
	s.mux.HandleFunc("/api/admin/export/pricelist", s.apiAdminExportPricelist)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

// localeFrom negotiates the response language: explicit ?lang= wins, then
// the Accept-Language header, Czech by default.
func localeFrom(r *http.Request) domain.Locale {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return domain.ParseLocale(strings.TrimSpace(lang))
	}
	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return domain.LocaleCS
	}
	if i := strings.IndexAny(accept, ",;"); i >= 0 {
		accept = accept[:i]
	}
	return domain.ParseLocale(strings.TrimSpace(accept))
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	qv := r.URL.Query()
	page, _ := strconv.Atoi(qv.Get("page"))
	if page < 1 {
		page = 1
	}
	active := true
	list, total, err := s.catalog.List(r.Context(), domain.ProductFilter{
		Page:     page,
		PageSize: 24,
		Sort:     qv.Get("sort"),
		Query:    qv.Get("q"),
		Category: qv.Get("category"),
		Active:   &active,
	})
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"items": list, "total": total})
}

func (s *Server) apiProductBySlug(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if rest == "" {
		http.NotFound(w, r)
		return
	}
	if strings.HasSuffix(rest, "/configure") {
		s.apiConfigure(w, r, strings.TrimSuffix(rest, "/configure"))
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	p, err := s.catalog.GetBySlug(r.Context(), rest)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, 200, p)
}

// apiConfigure recomputes the configurator state for one product: visible
// options, validation messages and the price breakdown for the submitted
// selections. The UI calls it on every selection change, so an invalid
// selection is a normal 200 with isValid=false, not an error status.
func (s *Server) apiConfigure(w http.ResponseWriter, r *http.Request, slug string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 16<<10))
	var req struct {
		Selections []domain.Customization `json:"selections"`
		Strict     bool                   `json:"strict"`
	}
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "json", 400)
		return
	}
	res, err := s.config.Configure(r.Context(), slug, req.Selections, usecase.ConfigureParams{
		Locale: localeFrom(r),
		Strict: req.Strict,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "err", 500)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, 200, res)
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	cats, err := s.catalog.Categories(r.Context())
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"categories": cats})
}

func (s *Server) apiFeatured(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	list, err := s.catalog.FeaturedWreaths(r.Context())
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"items": list})
}

// cartPayload is what the signed cart cookie carries: full frozen lines, so
// a price change in the catalog never touches a cart already built.
type cartPayload struct {
	Items []usecase.CartLine `json:"items"`
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	loc := localeFrom(r)
	switch r.Method {
	case http.MethodGet:
		cp := readCart(r)
		writeJSON(w, 200, s.cart.Aggregate(r.Context(), cp.Items, loc))
	case http.MethodPost:
		dec := json.NewDecoder(io.LimitReader(r.Body, 16<<10))
		var req struct {
			Slug       string                 `json:"slug"`
			Qty        int                    `json:"qty"`
			Selections []domain.Customization `json:"selections"`
		}
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "json", 400)
			return
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		if req.Qty < 0 {
			http.Error(w, "qty", 400)
			return
		}
		line, validation, err := s.cart.BuildLine(r.Context(), req.Slug, req.Qty, req.Selections, loc)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "err", 500)
			return
		}
		if line == nil {
			// selections did not pass validation; the messages tell the
			// shopper what to fix
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"validation": validation})
			return
		}
		cp := readCart(r)
		cp.Items = append(cp.Items, *line)
		writeCart(w, cp)
		writeJSON(w, 200, map[string]any{"line": line, "cart": s.cart.Aggregate(r.Context(), cp.Items, loc)})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 2048))
	var req struct {
		ID string `json:"id"`
	}
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "json", 400)
		return
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		http.Error(w, "id", 400)
		return
	}
	cp := readCart(r)
	kept := cp.Items[:0]
	for _, it := range cp.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	cp.Items = kept
	writeCart(w, cp)
	writeJSON(w, 200, s.cart.Aggregate(r.Context(), cp.Items, localeFrom(r)))
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 8<<10))
	var req struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Note  string `json:"note"`
	}
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "json", 400)
		return
	}
	if !emailRe.MatchString(strings.TrimSpace(req.Email)) {
		http.Error(w, "email", 400)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name", 400)
		return
	}
	cp := readCart(r)
	if len(cp.Items) == 0 {
		http.Error(w, "cart empty", 400)
		return
	}
	order, err := s.orders.Capture(r.Context(), usecase.CheckoutContact{
		Email:  req.Email,
		Name:   req.Name,
		Phone:  req.Phone,
		Note:   req.Note,
		Locale: localeFrom(r),
	}, cp.Items)
	if err != nil {
		log.Error().Err(err).Msg("capture order")
		http.Error(w, "order", 500)
		return
	}
	writeCart(w, cartPayload{})
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, 201, order)
}

func (s *Server) apiAdminProducts(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		qv := r.URL.Query()
		page, _ := strconv.Atoi(qv.Get("page"))
		if page < 1 {
			page = 1
		}
		list, total, err := s.catalog.List(r.Context(), domain.ProductFilter{Page: page, PageSize: 100, Query: qv.Get("q")})
		if err != nil {
			http.Error(w, "err", 500)
			return
		}
		writeJSON(w, 200, map[string]any{"items": list, "total": total})
	case http.MethodPost:
		dec := json.NewDecoder(io.LimitReader(r.Body, 256<<10))
		var req struct {
			ID          string                       `json:"id"`
			Slug        string                       `json:"slug"`
			Name        domain.Localized             `json:"name"`
			Description domain.Localized             `json:"description"`
			Category    string                       `json:"category"`
			BasePrice   money.Money                  `json:"basePrice"`
			Active      *bool                        `json:"active"`
			Options     []domain.CustomizationOption `json:"customizationOptions"`
			Images      []domain.Image               `json:"images"`
		}
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "json", 400)
			return
		}
		p := &domain.Product{
			Slug:        strings.TrimSpace(req.Slug),
			Name:        req.Name,
			Description: req.Description,
			Category:    strings.TrimSpace(req.Category),
			BasePrice:   req.BasePrice,
			Active:      true,
			Options:     req.Options,
		}
		if req.ID != "" {
			id, err := uuid.Parse(req.ID)
			if err != nil {
				http.Error(w, "id", 400)
				return
			}
			p.ID = id
		}
		if req.Active != nil {
			p.Active = *req.Active
		}
		if err := s.catalog.Upsert(r.Context(), p); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if len(req.Images) > 0 {
			if err := s.catalog.AddImages(r.Context(), p.ID, req.Images); err != nil {
				log.Error().Err(err).Str("slug", p.Slug).Msg("add images")
			}
		}
		writeJSON(w, 201, p)
	case http.MethodDelete:
		slug := strings.TrimSpace(r.URL.Query().Get("slug"))
		if slug == "" {
			http.Error(w, "slug", 400)
			return
		}
		if err := s.catalog.DeleteBySlug(r.Context(), slug); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, "err", 500)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiAdminOrders(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	qv := r.URL.Query()
	page, _ := strconv.Atoi(qv.Get("page"))
	if page < 1 {
		page = 1
	}
	list, total, err := s.orders.List(r.Context(), domain.OrderFilter{
		Page:     page,
		PageSize: 50,
		Status:   domain.OrderStatus(qv.Get("status")),
		Email:    qv.Get("email"),
	})
	if err != nil {
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"items": list, "total": total})
}

func (s *Server) apiAdminOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 2048))
	var req struct {
		OrderID string `json:"order_id"`
		Status  string `json:"status"`
	}
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "json", 400)
		return
	}
	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		http.Error(w, "order_id", 400)
		return
	}
	o, err := s.orders.UpdateStatus(r.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.NotFound(w, r)
		case errors.Is(err, usecase.ErrBadTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "err", 500)
		}
		return
	}
	writeJSON(w, 200, o)
}

func (s *Server) apiAdminFeatured(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 8<<10))
	var req struct {
		ProductIDs []string `json:"product_ids"`
	}
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "json", 400)
		return
	}
	ids := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "product id", 400)
			return
		}
		ids = append(ids, id)
	}
	if err := s.catalog.SetFeatured(r.Context(), ids); err != nil {
		http.Error(w, "err", 500)
		return
	}
	writeJSON(w, 200, map[string]any{"featured": len(ids)})
}

func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		if secureCompare(strings.TrimSpace(auth[7:]), s.adminToken) {
			return true
		}
	}
	http.Error(w, "unauthorized", 401)
	return false
}

func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := 0; i < len(a); i++ {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func secretKey() []byte {
	k := os.Getenv("SESSION_KEY")
	if k == "" {
		k = "dev-insecure"
	}
	return []byte(k)
}

func readCart(r *http.Request) cartPayload {
	c, err := r.Cookie("cart")
	if err != nil {
		return cartPayload{}
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 {
		return cartPayload{}
	}
	sig, _ := base64.RawURLEncoding.DecodeString(parts[0])
	payload, _ := base64.RawURLEncoding.DecodeString(parts[1])
	h := hmac.New(sha256.New, secretKey())
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return cartPayload{}
	}
	var cp cartPayload
	_ = json.Unmarshal(payload, &cp)
	return cp
}

func writeCart(w http.ResponseWriter, cp cartPayload) {
	b, _ := json.Marshal(cp)
	h := hmac.New(sha256.New, secretKey())
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	val := sig + "." + base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{Name: "cart", Value: val, Path: "/", MaxAge: 60 * 60 * 24 * 7, HttpOnly: true})
}
