package app

import (
	"html/template"
	"log"
	"net/http"

	"github.com/louisbranch/homestream/internal/services/backends/domain/catalog"
	"github.com/louisbranch/homestream/internal/services/backends/domain/customer"
	"github.com/louisbranch/homestream/internal/services/backends/domain/order"
	"github.com/louisbranch/homestream/internal/services/backends/storage"
)

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head>
<title>HomeStream Demo Backends</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
h2 { margin-top: 1.5rem; }
</style>
</head>
<body>
<h1>HomeStream Demo Backends</h1>

<h2>Customers</h2>
<table>
<tr><th>ID</th><th>Name</th><th>Email</th></tr>
{{range .Customers}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.Email}}</td></tr>
{{end}}</table>

<h2>Products</h2>
<table>
<tr><th>SKU</th><th>Name</th><th>Price</th><th>Lifecycle</th><th>Stock</th></tr>
{{range .Products}}<tr><td>{{.SKU}}</td><td>{{.Name}}</td><td>{{.Price}}</td><td>{{.Lifecycle}}</td><td>{{.Stock}}</td></tr>
{{end}}</table>

<h2>Orders</h2>
<table>
<tr><th>ID</th><th>Customer</th><th>Status</th><th>Total</th></tr>
{{range .Orders}}<tr><td>{{.ID}}</td><td>{{.CustomerID}}</td><td>{{.Status}}</td><td>{{.Totals.Total}}</td></tr>
{{end}}</table>
</body>
</html>
`))

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	var data struct {
		Customers []customer.Customer
		Products  []catalog.Product
		Orders    []order.Order
	}
	err := s.app.store.View(r.Context(), func(tx storage.ReadTx) error {
		data.Customers = tx.Customers()
		data.Products = tx.Products()
		data.Orders = tx.Orders()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTemplate.Execute(w, data); err != nil {
		log.Printf("render homepage: %v", err)
	}
}
