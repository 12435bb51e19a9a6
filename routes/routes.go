package routes

import (
	"github.com/AnshJain2033/Backend-Ecommerce-App/controllers"
	"github.com/AnshJain2033/Backend-Ecommerce-App/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every application route onto the engine.
func RegisterRoutes(
	r *gin.Engine,
	productController *controllers.ProductController,
	paymentController *controllers.PaymentController,
	notificationController *controllers.NotificationController,
) {
	limiter := middleware.RateLimitMiddleware()

	products := r.Group("/products")
	{
		products.GET("/", productController.GetProducts)
		products.GET("/count", productController.ProductCount)
		products.GET("/list/:page", productController.ProductList)
		products.GET("/search/:keyword", productController.SearchProducts)
		products.GET("/related/:pid/:cid", productController.RelatedProducts)
		products.GET("/category/:slug", productController.ProductsByCategory)
		products.GET("/photo/:pid", productController.ProductPhoto)
		products.GET("/:slug", productController.GetProductBySlug)
		products.POST("/", limiter, productController.CreateProduct)
		products.POST("/filter", productController.FilterProducts)
		products.PUT("/:pid", limiter, productController.UpdateProduct)
		products.DELETE("/:pid", limiter, productController.DeleteProduct)
	}

	r.GET("/categories", productController.GetCategories)

	braintree := r.Group("/braintree")
	{
		braintree.GET("/token", paymentController.BraintreeToken)
		braintree.POST("/payment", limiter, middleware.AuthMiddleware(), paymentController.BraintreePayment)
	}

	r.GET("/orders/email/:oid/:cid", notificationController.SendOrderEmail)
}
