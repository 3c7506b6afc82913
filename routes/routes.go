package routes

import (
	"github.com/WA-TLE/interstellar-diet/controllers"
	"github.com/WA-TLE/interstellar-diet/middlewares"
	"github.com/WA-TLE/interstellar-diet/ws"

	"github.com/gin-gonic/gin"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Address  *controllers.AddressController
	Dish     *controllers.DishController
	Employee *controllers.AdminEmployeeController

	AdminOrder    *controllers.AdminOrderController
	AdminDish     *controllers.AdminDishController
	AdminSetmeal  *controllers.AdminSetmealController
	AdminCategory *controllers.AdminCategoryController
}

func RegisterRoutes(r *gin.Engine, ctl Controllers, hub *ws.OrderHub, jwtSecret string) {
	r.Use(middlewares.CORSMiddleware())

	// Public surface.
	r.POST("/user/user/register", ctl.Auth.Register)
	r.POST("/user/user/login", ctl.Auth.Login)
	r.POST("/admin/employee/login", ctl.Employee.Login)

	r.GET("/user/dish/list", ctl.Dish.List)
	r.GET("/user/setmeal/list", ctl.Dish.ListSetmeals)
	r.GET("/user/category/list", ctl.Dish.ListCategories)

	// Customer surface.
	user := r.Group("/user", middlewares.AuthMiddleware(jwtSecret, "customer"))
	{
		cart := user.Group("/shoppingCart")
		{
			cart.POST("/add", ctl.Cart.Add)
			cart.POST("/sub", ctl.Cart.Sub)
			cart.GET("/list", ctl.Cart.List)
			cart.DELETE("/clean", ctl.Cart.Clean)
		}

		order := user.Group("/order")
		{
			order.POST("/submit", ctl.Order.Submit)
			order.PUT("/payment", ctl.Order.Payment)
			order.POST("/paySuccess", ctl.Order.PaySuccess)
			order.GET("/historyOrders", ctl.Order.History)
			order.GET("/orderDetail/:id", ctl.Order.Detail)
			order.PUT("/cancel/:id", ctl.Order.Cancel)
			order.POST("/repetition/:id", ctl.Order.Repetition)
			order.GET("/reminder/:id", ctl.Order.Reminder)
		}

		addr := user.Group("/addressBook")
		{
			addr.POST("", ctl.Address.Create)
			addr.GET("/list", ctl.Address.List)
			addr.PUT("/:id", ctl.Address.Update)
			addr.DELETE("/:id", ctl.Address.Delete)
			addr.PUT("/default/:id", ctl.Address.SetDefault)
		}
	}

	// Merchant surface.
	admin := r.Group("/admin", middlewares.AuthMiddleware(jwtSecret, "employee"))
	{
		order := admin.Group("/order")
		{
			order.GET("/conditionSearch", ctl.AdminOrder.ConditionSearch)
			order.GET("/statistics", ctl.AdminOrder.Statistics)
			order.GET("/details/:id", ctl.AdminOrder.Details)
			order.PUT("/confirm", ctl.AdminOrder.Confirm)
			order.PUT("/rejection", ctl.AdminOrder.Rejection)
			order.PUT("/cancel", ctl.AdminOrder.Cancel)
			order.PUT("/delivery/:id", ctl.AdminOrder.Delivery)
			order.PUT("/complete/:id", ctl.AdminOrder.Complete)
		}

		dish := admin.Group("/dish")
		{
			dish.POST("", ctl.AdminDish.Create)
			dish.PUT("", ctl.AdminDish.Update)
			dish.DELETE("", ctl.AdminDish.Delete)
			dish.POST("/status/:status", ctl.AdminDish.SetStatus)
			dish.GET("/page", ctl.AdminDish.Page)
			dish.GET("/:id", ctl.AdminDish.Detail)
		}

		setmeal := admin.Group("/setmeal")
		{
			setmeal.POST("", ctl.AdminSetmeal.Create)
			setmeal.PUT("", ctl.AdminSetmeal.Update)
			setmeal.DELETE("", ctl.AdminSetmeal.Delete)
			setmeal.POST("/status/:status", ctl.AdminSetmeal.SetStatus)
			setmeal.GET("/:id", ctl.AdminSetmeal.Detail)
		}

		category := admin.Group("/category")
		{
			category.POST("", ctl.AdminCategory.Create)
			category.PUT("", ctl.AdminCategory.Update)
			category.DELETE("", ctl.AdminCategory.Delete)
			category.GET("/list", ctl.AdminCategory.List)
		}

		employee := admin.Group("/employee")
		{
			employee.POST("", ctl.Employee.Create)
			employee.POST("/status/:status", ctl.Employee.SetStatus)
			employee.GET("/page", ctl.Employee.Page)
		}
	}

	// Merchant order notifications.
	r.GET("/ws/orders", middlewares.WSAuthMiddleware(jwtSecret, "employee"), hub.HandleWebSocket)
}
