package app

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"

	platformerrors "github.com/louisbranch/homestream/internal/platform/errors"
	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
)

// withRequestSpan wraps every request in a trace span. With no provider
// registered the tracer is a no-op.
func withRequestSpan(next http.Handler) http.Handler {
	tracer := otel.Tracer("backends")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type errorBody struct {
	Error struct {
		Code     string            `json:"code"`
		Message  string            `json:"message"`
		Metadata map[string]string `json:"metadata,omitempty"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeError renders a platform error with the HTTP status its code maps
// to; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	code := platformerrors.GetCode(err)
	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = err.Error()
	body.Error.Metadata = platformerrors.GetMetadata(err)
	writeJSON(w, httpStatus(code), body)
}

func httpStatus(code platformerrors.Code) int {
	switch code.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.FailedPrecondition, codes.AlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return platformerrors.Wrap(platformerrors.CodeInvalidArgument, "invalid request body", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.app.GetCustomer(r.Context(), r.PathValue("customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCustomerContact(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	c, err := s.app.UpdateCustomerContact(r.Context(), r.PathValue("customerID"), body.Email, body.Phone)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleListRecentOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	orders, err := s.app.ListRecentOrders(r.Context(), r.PathValue("customerID"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (s *Server) handleSearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := catalog.Filters{
		Query:       q.Get("query"),
		Category:    catalog.Category(q.Get("category")),
		InStockOnly: q.Get("in_stock") == "true",
	}
	if v := q.Get("min_price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			writeError(w, platformerrors.New(platformerrors.CodeInvalidArgument, "invalid min_price"))
			return
		}
		filters.MinPrice = price
	}
	if v := q.Get("max_price"); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			writeError(w, platformerrors.New(platformerrors.CodeInvalidArgument, "invalid max_price"))
			return
		}
		filters.MaxPrice = price
	}
	if v := q.Get("wifi_standard"); v != "" {
		std, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, platformerrors.New(platformerrors.CodeInvalidArgument, "invalid wifi_standard"))
			return
		}
		filters.WifiStandard = std
	}
	if v := q.Get("lifecycle"); v != "" {
		lifecycle, ok := catalog.ParseLifecycle(v)
		if !ok {
			writeError(w, platformerrors.New(platformerrors.CodeInvalidArgument, "invalid lifecycle"))
			return
		}
		filters.Lifecycle = lifecycle
	}

	products, err := s.app.SearchProducts(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateRMA(w http.ResponseWriter, r *http.Request) {
	var params CreateRMAParams
	if err := decodeBody(r, &params); err != nil {
		writeError(w, err)
		return
	}
	rma, err := s.app.CreateRMA(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rma)
}

func (s *Server) handleListRMAs(w http.ResponseWriter, r *http.Request) {
	rmas, err := s.app.ListRMAs(r.Context(), r.URL.Query().Get("customer_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rmas)
}

func (s *Server) handleGetRMA(w http.ResponseWriter, r *http.Request) {
	rma, err := s.app.GetRMA(r.Context(), r.PathValue("rmaID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rma)
}

func (s *Server) handleCloseRMA(w http.ResponseWriter, r *http.Request) {
	rma, err := s.app.CloseRMA(r.Context(), r.PathValue("rmaID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rma)
}

func (s *Server) handleCreateCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID string `json:"customer_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	cart, err := s.app.CreateCart(r.Context(), body.CustomerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cart)
}

type cartResponse struct {
	Cart   any `json:"cart"`
	Totals any `json:"totals"`
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, totals, err := s.app.GetCart(r.Context(), r.PathValue("cartID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cartResponse{Cart: cart, Totals: totals})
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SKU      string `json:"sku"`
		Quantity int    `json:"quantity"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	cart, err := s.app.AddCartItem(r.Context(), r.PathValue("cartID"), body.SKU, body.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := s.app.RemoveCartItem(r.Context(), r.PathValue("cartID"), r.PathValue("sku"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleApplyStoreCredit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CreditID string `json:"credit_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	cart, err := s.app.ApplyStoreCredit(r.Context(), r.PathValue("cartID"), body.CreditID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CartID string `json:"cart_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	o, err := s.app.PlaceOrder(r.Context(), body.CartID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := s.app.GetOrder(r.Context(), r.PathValue("orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) handleGetSKU(w http.ResponseWriter, r *http.Request) {
	p, err := s.app.GetProduct(r.Context(), r.PathValue("sku"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCheckReturnEligibility(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	if orderID == "" {
		writeError(w, platformerrors.New(platformerrors.CodeInvalidArgument, "orderId is required"))
		return
	}
	days, err := strconv.Atoi(r.URL.Query().Get("daysSinceDelivery"))
	if err != nil {
		writeError(w, platformerrors.New(platformerrors.CodeInvalidArgument, "daysSinceDelivery must be an integer"))
		return
	}
	eligibility, err := s.app.CheckReturnEligibility(r.Context(), r.PathValue("sku"), orderID, days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eligibility)
}

func (s *Server) handleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	sku := r.URL.Query().Get("sku")
	if sku == "" {
		writeError(w, platformerrors.New(platformerrors.CodeInvalidArgument, "sku is required"))
		return
	}
	availability, err := s.app.CheckAvailability(r.Context(), sku)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

func (s *Server) handleEvaluateReturn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID           string `json:"order_id"`
		SKU               string `json:"sku"`
		DaysSinceDelivery int    `json:"days_since_delivery"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	evaluation, err := s.app.EvaluateReturn(r.Context(), body.OrderID, body.SKU, body.DaysSinceDelivery)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evaluation)
}

func (s *Server) handleCheckFulfillment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	eligibility, err := s.app.CheckFulfillment(r.Context(), q.Get("sku"), q.Get("postalCode"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eligibility)
}

func (s *Server) handleRegisterExpectedReturn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RMAID          string `json:"rma_id"`
		OverrideReason string `json:"override_reason"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	expected, err := s.app.RegisterExpectedReturn(r.Context(), body.RMAID, body.OverrideReason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expected)
}

func (s *Server) handleListExpectedReturns(w http.ResponseWriter, r *http.Request) {
	expected, err := s.app.ListExpectedReturns(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expected)
}

func (s *Server) handleReceiveReturn(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RMAID string `json:"rma_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	rma, err := s.app.ReceiveReturn(r.Context(), body.RMAID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rma)
}

func (s *Server) handleReleaseShipment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID        string `json:"order_id"`
		ShippingMethod string `json:"shipping_method"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	shipment, err := s.app.ReleaseShipment(r.Context(), body.OrderID, body.ShippingMethod)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (s *Server) handleMarkShipmentDelivered(w http.ResponseWriter, r *http.Request) {
	shipment, err := s.app.MarkShipmentDelivered(r.Context(), r.PathValue("shipmentID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (s *Server) handleGenerateLabel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RMAID   string `json:"rma_id"`
		Carrier string `json:"carrier"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	label, err := s.app.GenerateLabel(r.Context(), body.RMAID, body.Carrier)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, label)
}

func (s *Server) handleIssueCredit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RMAID  string          `json:"rma_id"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	credit, err := s.app.IssueCredit(r.Context(), body.RMAID, body.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, credit)
}

func (s *Server) handleIssueManualCredit(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID string          `json:"customer_id"`
		Amount     decimal.Decimal `json:"amount"`
		Reason     string          `json:"reason"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	credit, err := s.app.IssueManualCredit(r.Context(), body.CustomerID, body.Amount, body.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, credit)
}

func (s *Server) handleListCredits(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		writeError(w, platformerrors.New(platformerrors.CodeInvalidArgument, "customer_id is required"))
		return
	}
	credits, err := s.app.ListCredits(r.Context(), customerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

func (s *Server) handleGetCredit(w http.ResponseWriter, r *http.Request) {
	credit, err := s.app.GetCredit(r.Context(), r.PathValue("creditID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credit)
}

func (s *Server) handleChargeOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	charge, err := s.app.ChargeOrder(r.Context(), body.OrderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, charge)
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID string `json:"customer_id"`
		To         string `json:"to"`
		Subject    string `json:"subject"`
		Body       string `json:"body"`
		Template   string `json:"template"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	email, err := s.app.SendEmail(r.Context(), body.CustomerID, body.To, body.Subject, body.Body, body.Template)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, email)
}

func (s *Server) handleListEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := s.app.ListEmails(r.Context(), r.URL.Query().Get("customer_id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emails)
}

func (s *Server) handleAdminReset(w http.ResponseWriter, r *http.Request) {
	if err := s.app.ResetDemoData(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Demo data has been reset.",
	})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.app.JournalEntries(r.Context(), r.URL.Query().Get("system"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
