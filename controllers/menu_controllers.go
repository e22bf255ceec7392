package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"restaurant-core/repositories"
	"restaurant-core/utils"
)

type MenuController struct {
	Menu repositories.MenuRepository
}

func NewMenuController(menu repositories.MenuRepository) *MenuController {
	return &MenuController{Menu: menu}
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req struct {
		ManagerID uint `json:"manager_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu, err := mc.Menu.CreateMenu(c.Request.Context(), req.ManagerID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu %d created for manager %d", menu.ID, menu.ManagerID)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	menuID, err := pathID(c, "menu_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.Menu.DeleteMenu(c.Request.Context(), menuID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu %d deleted", menuID)
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", nil)
}

func (mc *MenuController) CreateCategory(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category, err := mc.Menu.CreateCategory(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Category created: %s", category.Name)
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (mc *MenuController) ReparentCategory(c *gin.Context) {
	categoryID, err := pathID(c, "category_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		ParentID *uint `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category, err := mc.Menu.ReparentCategory(c.Request.Context(), categoryID, req.ParentID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Category %d reparented", category.ID)
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

func (mc *MenuController) DeleteCategory(c *gin.Context) {
	categoryID, err := pathID(c, "category_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.Menu.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Category %d deleted", categoryID)
	utils.RespondJSON(c, http.StatusOK, "Category deleted", nil)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		MenuID      uint            `json:"menu_id" binding:"required"`
		CategoryID  uint            `json:"category_id" binding:"required"`
		Name        string          `json:"name" binding:"required"`
		Ingredients string          `json:"ingredients"`
		Price       decimal.Decimal `json:"price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Menu.CreateMenuItem(c.Request.Context(), req.MenuID, req.CategoryID, req.Name, req.Ingredients, req.Price)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu item created: %s (price=%s)", item.Name, item.Price)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// SetMenuItemAvailability is the kitchen staff toggle for an item.
func (mc *MenuController) SetMenuItemAvailability(c *gin.Context) {
	itemID, err := pathID(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item, err := mc.Menu.SetMenuItemAvailability(c.Request.Context(), itemID, *req.Available)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu item %d availability set to %t", item.ID, item.AvailableInKitchen)
	utils.RespondJSON(c, http.StatusOK, "Menu item availability updated", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	itemID, err := pathID(c, "item_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.Menu.DeleteMenuItem(c.Request.Context(), itemID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu item %d deleted", itemID)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", nil)
}

// ListItemsByCategory includes items of every subcategory.
func (mc *MenuController) ListItemsByCategory(c *gin.Context) {
	categoryID, err := pathID(c, "category_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items, err := mc.Menu.MenuItemsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}
