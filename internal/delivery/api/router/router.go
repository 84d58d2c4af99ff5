package router

import (
	"brewhouse/internal/delivery/api/middleware"
	"brewhouse/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds dependencies for the Router, injected by Fx.
type RouterParams struct {
	fx.In

	SessionMiddleware   *middleware.SessionMiddleware
	SessionHandler      *handler.SessionHandler
	AuthHandler         *handler.AuthHandler
	CatalogHandler      *handler.CatalogHandler
	CartHandler         *handler.CartHandler
	CheckoutHandler     *handler.CheckoutHandler
	OrderHandler        *handler.OrderHandler
	ProfileHandler      *handler.ProfileHandler
	RewardsHandler      *handler.RewardsHandler
	NotificationHandler *handler.NotificationHandler
	WishlistHandler     *handler.WishlistHandler
	EventHandler        *handler.EventHandler
}

type router struct {
	sessionMiddleware   *middleware.SessionMiddleware
	sessionHandler      *handler.SessionHandler
	authHandler         *handler.AuthHandler
	catalogHandler      *handler.CatalogHandler
	cartHandler         *handler.CartHandler
	checkoutHandler     *handler.CheckoutHandler
	orderHandler        *handler.OrderHandler
	profileHandler      *handler.ProfileHandler
	rewardsHandler      *handler.RewardsHandler
	notificationHandler *handler.NotificationHandler
	wishlistHandler     *handler.WishlistHandler
	eventHandler        *handler.EventHandler
}

// NewRouter creates the storefront route table.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionMiddleware:   params.SessionMiddleware,
		sessionHandler:      params.SessionHandler,
		authHandler:         params.AuthHandler,
		catalogHandler:      params.CatalogHandler,
		cartHandler:         params.CartHandler,
		checkoutHandler:     params.CheckoutHandler,
		orderHandler:        params.OrderHandler,
		profileHandler:      params.ProfileHandler,
		rewardsHandler:      params.RewardsHandler,
		notificationHandler: params.NotificationHandler,
		wishlistHandler:     params.WishlistHandler,
		eventHandler:        params.EventHandler,
	}
}

// RegisterRoutes registers every API route on e.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Public routes
	e.POST("/sessions", r.sessionHandler.Open)
	e.GET("/static/avatars/*", r.profileHandler.ServeAvatar)
	e.POST("/events/push", r.eventHandler.HandlePush)

	catalog := e.Group("/catalog")
	{
		catalog.GET("/items", r.catalogHandler.ListItems)
		catalog.GET("/items/:id", r.catalogHandler.GetItem)
		catalog.GET("/categories", r.catalogHandler.Categories)
	}

	// Everything else is addressed by the session token
	api := e.Group("/api/v1")
	api.Use(r.sessionMiddleware.Authenticate)

	session := api.Group("/session")
	{
		session.GET("", r.sessionHandler.Current)
		session.POST("/theme", r.sessionHandler.ToggleTheme)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/login", r.authHandler.Login)
		auth.POST("/signup", r.authHandler.Signup)
		auth.POST("/google", r.authHandler.LoginWithGoogle)
		auth.POST("/guest", r.authHandler.ContinueAsGuest)
		auth.POST("/logout", r.authHandler.Logout)
	}

	cart := api.Group("/cart")
	{
		cart.GET("", r.cartHandler.Get)
		cart.POST("/lines", r.cartHandler.AddLine)
		cart.PUT("/lines/:index", r.cartHandler.UpdateLine)
		cart.DELETE("/lines/:index", r.cartHandler.RemoveLine)
	}

	checkout := api.Group("/checkout")
	{
		checkout.GET("/quote", r.checkoutHandler.Quote)
		checkout.POST("/discount", r.checkoutHandler.ApplyDiscount)
		checkout.DELETE("/discount", r.checkoutHandler.RemoveDiscount)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", r.checkoutHandler.PlaceOrder)
		orders.GET("", r.orderHandler.List)
		orders.GET("/:id", r.orderHandler.Get)
		orders.GET("/:id/tracking", r.orderHandler.Track)
		orders.POST("/:id/advance", r.orderHandler.Advance)
		orders.GET("/:id/qr", r.orderHandler.PickupQR)
	}

	profile := api.Group("/profile")
	{
		profile.GET("", r.profileHandler.Get)
		profile.PATCH("", r.profileHandler.Update)
		profile.POST("/avatar", r.profileHandler.UploadAvatar)

		profile.POST("/addresses", r.profileHandler.AddAddress)
		profile.PUT("/addresses/:id", r.profileHandler.UpdateAddress)
		profile.DELETE("/addresses/:id", r.profileHandler.RemoveAddress)
		profile.POST("/addresses/:id/default", r.profileHandler.SetDefaultAddress)

		profile.POST("/cards", r.profileHandler.AddCard)
		profile.DELETE("/cards/:id", r.profileHandler.RemoveCard)
		profile.POST("/cards/:id/default", r.profileHandler.SetDefaultCard)
	}

	api.GET("/rewards", r.rewardsHandler.Get)

	notifications := api.Group("/notifications")
	{
		notifications.GET("", r.notificationHandler.List)
		notifications.POST("/read-all", r.notificationHandler.MarkAllRead)
		notifications.POST("/:id/read", r.notificationHandler.MarkRead)
	}

	wishlist := api.Group("/wishlist")
	{
		wishlist.GET("", r.wishlistHandler.List)
		wishlist.POST("/:itemId", r.wishlistHandler.Add)
		wishlist.DELETE("/:itemId", r.wishlistHandler.Remove)
		wishlist.POST("/:itemId/toggle", r.wishlistHandler.Toggle)
	}
}
