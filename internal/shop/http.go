package shop

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"EduCom/internal/auth"
	"EduCom/internal/cart"
	"EduCom/internal/catalog"
	"EduCom/internal/notify"
	"EduCom/internal/order"
	"EduCom/pkg/kit"
)

const (
	msgFavoriteAdded   = "Đã thêm vào yêu thích!"
	msgFavoriteRemoved = "Đã xóa khỏi yêu thích!"
)

type loginResp struct {
	User        auth.Session `json:"user"`
	AccessToken string       `json:"access_token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.Credentials
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	sess, err := s.App.Session.Login(r.Context(), req)
	if err != nil {
		s.writeError(w, r, "login", err)
		return
	}

	tok, err := s.App.Tokens.New(sess, s.TokenTTL)
	if err != nil {
		s.Log.Error("token issue", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{User: sess, AccessToken: tok})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.Profile
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if err := s.App.Session.Register(r.Context(), req); err != nil {
		s.writeError(w, r, "register", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.App.Session.Logout(r.Context()); err != nil {
		s.writeError(w, r, "logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, _ *http.Request) {
	sess, ok := s.App.Session.Current()
	resp := map[string]any{
		"authenticated": ok,
		"state":         s.App.Session.State().String(),
	}
	if ok {
		resp["user"] = sess
	}
	kit.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req auth.ProfileUpdate
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	sess, err := s.App.Session.UpdateProfile(r.Context(), req)
	if err != nil {
		s.writeError(w, r, "update profile", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, sess)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.App.Catalog.List(r.Context())
	if err != nil {
		s.writeError(w, r, "list products", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.App.Catalog.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get product", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.App.Catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, "search products", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) filterProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := s.App.Catalog.Filter(r.Context(), catalog.Filter{
		Category:   q.Get("category"),
		Level:      q.Get("level"),
		PriceRange: q.Get("price"),
	})
	if err != nil {
		s.writeError(w, r, "filter products", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) drainNotifications(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.App.Feed.Drain())
}

func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	uid, _ := UserIDFromContext(r.Context())

	out, err := s.App.Catalog.Suggest(r.Context(), uid)
	if err != nil {
		s.writeError(w, r, "suggest", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, out)
}

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	all, err := s.App.Catalog.Products(r.Context())
	if err != nil {
		s.writeError(w, r, "list favorites", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.App.Interactions.FavoriteProducts(all))
}

func (s *Server) addFavorite(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := s.App.Interactions.AddFavorite(r.Context(), p.ID); err != nil {
		s.writeError(w, r, "add favorite", err)
		return
	}
	s.App.Bus.Notify(notify.Success, msgFavoriteAdded)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.App.Interactions.RemoveFavorite(r.Context(), id); err != nil {
		s.writeError(w, r, "remove favorite", err)
		return
	}
	s.App.Bus.Notify(notify.Info, msgFavoriteRemoved)
	w.WriteHeader(http.StatusNoContent)
}

type historyResp struct {
	IDs      []string          `json:"ids"`
	Products []catalog.Product `json:"products"`
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	all, err := s.App.Catalog.Products(r.Context())
	if err != nil {
		s.writeError(w, r, "list history", err)
		return
	}

	ids := s.App.Interactions.History()
	if ids == nil {
		ids = []string{}
	}
	kit.WriteJSON(w, http.StatusOK, historyResp{IDs: ids, Products: s.App.Interactions.HistoryProducts(all)})
}

func (s *Server) viewProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := s.App.Interactions.AddToHistory(r.Context(), p.ID); err != nil {
		s.writeError(w, r, "add history", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.App.Interactions.ClearHistory(r.Context()); err != nil {
		s.writeError(w, r, "clear history", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type cartResp struct {
	Items          []cart.Item `json:"items"`
	Total          int64       `json:"total"`
	FormattedTotal string      `json:"formattedTotal"`
}

func (s *Server) writeCart(w http.ResponseWriter, status int) {
	total := s.App.Cart.Total()
	kit.WriteJSON(w, status, cartResp{
		Items:          s.App.Cart.Items(),
		Total:          total,
		FormattedTotal: catalog.FormatPrice(total),
	})
}

func (s *Server) getCart(w http.ResponseWriter, _ *http.Request) {
	s.writeCart(w, http.StatusOK)
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}

	status := http.StatusCreated
	if s.App.Cart.Contains(p.ID) {
		status = http.StatusOK
	}
	if err := s.App.Cart.Add(r.Context(), p); err != nil {
		s.writeError(w, r, "add to cart", err)
		return
	}
	s.writeCart(w, status)
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	if err := s.App.Cart.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, "remove from cart", err)
		return
	}
	s.writeCart(w, http.StatusOK)
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := s.App.Cart.Clear(r.Context()); err != nil {
		s.writeError(w, r, "clear cart", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkoutReq struct {
	PaymentMethod order.PaymentMethod `json:"paymentMethod"`
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := kit.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	o, err := s.App.Orders.Checkout(r.Context(), req.PaymentMethod)
	if err != nil {
		s.writeError(w, r, "checkout", err)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, o)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	list, err := s.App.Orders.Orders(r.Context())
	if err != nil {
		s.writeError(w, r, "list orders", err)
		return
	}
	if list == nil {
		list = []order.Order{}
	}
	kit.WriteJSON(w, http.StatusOK, list)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	o, ok, err := s.App.Orders.Order(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "get order", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, o)
}

func (s *Server) exportOrders(w http.ResponseWriter, r *http.Request) {
	list, err := s.App.Orders.Orders(r.Context())
	if err != nil {
		s.writeError(w, r, "export orders", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := order.WriteCSV(w, list); err != nil {
		s.Log.Warn("export orders", zap.Error(err))
	}
}

// lookup resolves the {id} route param against the catalog and writes a 404
// when it is unknown.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (catalog.Product, bool) {
	id := chi.URLParam(r, "id")

	p, ok, err := s.App.Catalog.Lookup(r.Context(), id)
	if err != nil {
		s.writeError(w, r, "lookup product", err)
		return catalog.Product{}, false
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return catalog.Product{}, false
	}
	return p, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *auth.ValidationError
	switch {
	case errors.As(err, &ve):
		kit.WriteError(w, r, http.StatusBadRequest, "validation failed", map[string]any{
			"reason":  ve.Reason,
			"message": ve.Message(),
		})
	case errors.Is(err, auth.ErrInvalidCredentials):
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, order.ErrNoUser):
		kit.WriteError(w, r, http.StatusUnauthorized, "not authenticated", nil)
	case errors.Is(err, auth.ErrEmailExists):
		kit.WriteError(w, r, http.StatusConflict, "email already exists", nil)
	case errors.Is(err, order.ErrEmptyCart):
		kit.WriteError(w, r, http.StatusConflict, "cart is empty", nil)
	case errors.Is(err, order.ErrPaymentMethod):
		kit.WriteError(w, r, http.StatusBadRequest, "unsupported payment method", map[string]any{"accepted": order.PaymentMethods})
	case errors.Is(err, order.ErrTotalOverflow):
		kit.WriteError(w, r, http.StatusBadRequest, "total overflow", nil)
	case isTimeoutErr(err):
		kit.WriteError(w, r, http.StatusGatewayTimeout, "timeout", nil)
	default:
		s.Log.Error(op+" failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	}
}

func isTimeoutErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
