package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"restaurant-core/controllers"
	"restaurant-core/middlewares"
	"restaurant-core/models"
	"restaurant-core/repositories"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.CORSMiddlewares())

	staffCtrl := controllers.NewStaffController(repositories.NewStaffRepository(db))
	seatingCtrl := controllers.NewSeatingController(repositories.NewSeatingRepository(db))
	menuCtrl := controllers.NewMenuController(repositories.NewMenuRepository(db))
	billingCtrl := controllers.NewBillingController(repositories.NewBillingRepository(db))
	paymentCtrl := controllers.NewPaymentController(repositories.NewPaymentRepository(db))

	r.POST("/auth/login", staffCtrl.Login)
	r.POST("/persons", staffCtrl.Register)

	api := r.Group("/", middlewares.AuthMiddleware())

	// Identity & staff
	api.GET("/persons/:person_id", staffCtrl.GetPerson)
	api.POST("/persons/:person_id/role", staffCtrl.AssignRole)
	api.DELETE("/persons/:person_id", staffCtrl.DeletePerson)

	// Restaurant & seating
	api.POST("/restaurants", seatingCtrl.CreateRestaurant)
	api.DELETE("/restaurants/:restaurant_id", seatingCtrl.DeleteRestaurant)
	api.POST("/restaurants/:restaurant_id/tables", seatingCtrl.CreateTable)
	api.GET("/restaurants/:restaurant_id/tables", seatingCtrl.ListTables)
	api.PATCH("/tables/:table_id/availability", seatingCtrl.SetTableAvailability)
	api.DELETE("/tables/:table_id", seatingCtrl.DeleteTable)
	api.POST("/customers", seatingCtrl.Arrive)
	api.PATCH("/customers/:customer_id/depart", seatingCtrl.Depart)
	api.DELETE("/customers/:customer_id", seatingCtrl.DeleteCustomer)

	// Menu structure is manager territory; the kitchen toggle is not.
	manager := api.Group("/", middlewares.RequireRole(models.RoleManager))
	manager.POST("/menus", menuCtrl.CreateMenu)
	manager.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
	manager.POST("/categories", menuCtrl.CreateCategory)
	manager.PATCH("/categories/:category_id/parent", menuCtrl.ReparentCategory)
	manager.DELETE("/categories/:category_id", menuCtrl.DeleteCategory)
	manager.POST("/menu-items", menuCtrl.CreateMenuItem)
	manager.DELETE("/menu-items/:item_id", menuCtrl.DeleteMenuItem)

	api.GET("/categories/:category_id/menu-items", menuCtrl.ListItemsByCategory)
	api.PATCH("/menu-items/:item_id/availability",
		middlewares.RequireRole(models.RoleKitchenStaff, models.RoleManager),
		menuCtrl.SetMenuItemAvailability)

	// Order & billing
	api.POST("/bills", billingCtrl.CreateBill)
	api.GET("/bills/:bill_id", billingCtrl.GetBill)
	api.DELETE("/bills/:bill_id", billingCtrl.DeleteBill)
	api.PUT("/bills/:bill_id/cashiers/:cashier_id", billingCtrl.AddCashier)
	api.DELETE("/bills/:bill_id/cashiers/:cashier_id", billingCtrl.RemoveCashier)
	api.POST("/bills/:bill_id/orders", billingCtrl.CreateOrder)
	api.GET("/bills/:bill_id/orders", billingCtrl.ListOrders)
	api.PATCH("/orders/:order_id/deliver",
		middlewares.RequireRole(models.RoleKitchenStaff),
		billingCtrl.MarkDelivered)
	api.DELETE("/orders/:order_id", billingCtrl.DeleteOrder)
	api.POST("/orders/:order_id/lines", billingCtrl.AddOrderLine)
	api.GET("/orders/:order_id/lines", billingCtrl.ListOrderLines)
	api.DELETE("/order-lines/:line_id", billingCtrl.RemoveOrderLine)

	// Payment
	api.POST("/bills/:bill_id/payment",
		middlewares.RequireRole(models.RoleCashier, models.RoleManager),
		paymentCtrl.Pay)
	api.GET("/bills/:bill_id/payment", paymentCtrl.GetBillPayment)

	return r
}
