package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusmart/campus_market/internal/service"
)

// Deps carries everything the HTTP layer needs. cmd/server builds one
// and hands it to Register.
type Deps struct {
	Auth          *AuthHTTP
	Products      *ProductHTTP
	Search        *SearchHTTP
	Cart          *CartHTTP
	Purchases     *PurchaseHTTP
	Notifications *NotificationHTTP
	Reports       *ReportHTTP
	Chat          *ChatHTTP
	Tokens        *service.TokenService
}

func Register(e *echo.Echo, d Deps) {
	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	v1.POST("/logout", d.Auth.Logout)

	v1.GET("/products", d.Products.GetProducts)
	v1.GET("/products/:id", d.Products.GetProduct)
	v1.GET("/search", d.Search.Search)

	authed := v1.Group("", d.Tokens.AutoRefreshMiddleware)

	authed.POST("/products", d.Products.CreateProduct)
	authed.PATCH("/products/:id", d.Products.PatchProduct)
	authed.DELETE("/products/:id", d.Products.DeleteProduct)

	authed.GET("/cart", d.Cart.GetCart)
	authed.POST("/cart", d.Cart.AddToCart)
	authed.GET("/cart/summary", d.Cart.Summary)
	authed.PATCH("/cart/:productID", d.Cart.UpdateQuantity)
	authed.DELETE("/cart/:productID", d.Cart.RemoveFromCart)
	authed.DELETE("/cart", d.Cart.ClearCart)

	authed.POST("/purchases", d.Purchases.InitiatePurchase)
	authed.GET("/purchases", d.Purchases.History)
	authed.GET("/sales", d.Purchases.Sales)

	authed.GET("/notifications", d.Notifications.List)
	authed.GET("/notifications/stream", d.Notifications.Stream)
	authed.POST("/notifications/:id/confirm", d.Purchases.ConfirmTransaction)
	authed.POST("/notifications/:id/read", d.Notifications.MarkRead)
	authed.DELETE("/notifications/:id", d.Notifications.Delete)

	authed.POST("/reports", d.Reports.CreateReport)
	v1.GET("/reports", d.Reports.ListReports, d.Tokens.AdminOnly)

	authed.POST("/chats/:userID/messages", d.Chat.SendMessage)
	authed.GET("/chats/:userID/messages", d.Chat.ListMessages)
}
