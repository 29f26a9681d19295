package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"github.com/saimonkat/supplement-store/internal/http/handlers"
	"github.com/saimonkat/supplement-store/internal/repos"
	"github.com/saimonkat/supplement-store/internal/services"
)

func newCartApp(t *testing.T) (*fiber.App, *services.CartService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}
	cartSvc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))
	cartH := &handlers.CartHandler{Cart: cartSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Get("/login", authH.LoginForm)
	app.Post("/cart", cartH.Add)
	app.Post("/cart/update", cartH.Update)

	return app, cartSvc
}

// Negative and non-numeric quantities on update must remove the line,
// never silently keep it at some clamped amount.
func TestCartUpdateBadQtyRemovesLine(t *testing.T) {
	app, cartSvc := newCartApp(t)

	loginResp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	csrfTok := extractCookie(loginResp, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	post := func(path, body string, sid string) *http.Response {
		req := httptest.NewRequest("POST", path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		if sid != "" {
			req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	respAdd := post("/cart", "csrf="+csrfTok+"&productId=whey-gold&qty=2", "")
	sid := extractCookie(respAdd, "sid")
	if sid == "" {
		t.Fatal("sid not set after cart add")
	}
	if got := len(cartSvc.View(sid).Items); got != 1 {
		t.Fatalf("expected 1 line after add, got %d", got)
	}

	for _, qty := range []string{"-2", "abc", "0"} {
		post("/cart", "csrf="+csrfTok+"&productId=whey-gold&qty=2", sid)
		resp := post("/cart/update", "csrf="+csrfTok+"&productId=whey-gold&qty="+qty, sid)
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("qty=%q: expected 302, got %d", qty, resp.StatusCode)
		}
		if got := len(cartSvc.View(sid).Items); got != 0 {
			t.Fatalf("qty=%q: expected line removed, still %d lines", qty, got)
		}
	}

	// a plain positive value still just updates
	post("/cart", "csrf="+csrfTok+"&productId=whey-gold&qty=1", sid)
	post("/cart/update", "csrf="+csrfTok+"&productId=whey-gold&qty=3", sid)
	cart := cartSvc.View(sid)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("expected a single line with qty 3, got %+v", cart.Items)
	}
}
