package repositories

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-core/apperr"
	"restaurant-core/models"
)

// MenuRepository manages manager-owned menus, the category tree and the
// menu items hanging off both.
type MenuRepository interface {
	CreateMenu(ctx context.Context, managerID uint) (*models.Menu, error)
	GetMenu(ctx context.Context, id uint) (*models.Menu, error)
	DeleteMenu(ctx context.Context, id uint) error
	CreateCategory(ctx context.Context, name string, parentID *uint) (*models.Category, error)
	ReparentCategory(ctx context.Context, id uint, parentID *uint) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	CreateMenuItem(ctx context.Context, menuID, categoryID uint, name, ingredients string, price decimal.Decimal) (*models.MenuItem, error)
	SetMenuItemAvailability(ctx context.Context, itemID uint, available bool) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id uint) error
	MenuItemsByCategory(ctx context.Context, categoryID uint) ([]models.MenuItem, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// CreateMenu enforces the one-menu-per-manager cardinality.
func (r *menuRepository) CreateMenu(ctx context.Context, managerID uint) (*models.Menu, error) {
	menu := models.Menu{ManagerID: managerID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var manager models.Manager
		if err := tx.First(&manager, managerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("manager", managerID)
			}
			return err
		}
		// The unique index on manager_id arbitrates: a second menu for
		// the same manager fails on insert, even under concurrency.
		if err := tx.Create(&menu).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.NewConflict("menu-exists", "manager %d already owns a menu", managerID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) GetMenu(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.db.WithContext(ctx).First(&menu, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("menu", id)
		}
		return nil, err
	}
	return &menu, nil
}

// DeleteMenu cascades to the menu's items; items still referenced by an
// order line block the whole deletion.
func (r *menuRepository) DeleteMenu(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menu models.Menu
		if err := tx.First(&menu, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("menu", id)
			}
			return err
		}
		var items []models.MenuItem
		if err := tx.Where("menu_id = ?", id).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := requireItemUnreferenced(tx, item.ID); err != nil {
				return err
			}
		}
		if err := tx.Where("menu_id = ?", id).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&menu).Error
	})
}

func requireItemUnreferenced(tx *gorm.DB, itemID uint) error {
	var lines int64
	if err := tx.Model(&models.OrderLine{}).Where("menu_item_id = ?", itemID).Count(&lines).Error; err != nil {
		return err
	}
	if lines > 0 {
		return apperr.NewIntegrity("item-in-use", "menu item %d is referenced by %d order line(s)", itemID, lines)
	}
	return nil
}

// walkAncestors reports whether needle appears in the parent chain
// starting at fromID. The walk is bounded by the total category count so
// pre-existing corruption cannot loop forever.
func walkAncestors(tx *gorm.DB, fromID, needle uint) (bool, error) {
	var bound int64
	if err := tx.Model(&models.Category{}).Count(&bound).Error; err != nil {
		return false, err
	}
	current := fromID
	for i := int64(0); i <= bound; i++ {
		if current == needle {
			return true, nil
		}
		var category models.Category
		if err := tx.First(&category, current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, apperr.NewNotFound("category", current)
			}
			return false, err
		}
		if category.ParentID == nil {
			return false, nil
		}
		current = *category.ParentID
	}
	return false, nil
}

func (r *menuRepository) CreateCategory(ctx context.Context, name string, parentID *uint) (*models.Category, error) {
	category := models.Category{Name: name, ParentID: parentID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if parentID != nil {
			var parent models.Category
			if err := tx.First(&parent, *parentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NewNotFound("category", *parentID)
				}
				return err
			}
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ReparentCategory moves a category under a new parent (or to the root
// when parentID is nil), rejecting any assignment that would make the
// category its own ancestor. The check runs before any write.
func (r *menuRepository) ReparentCategory(ctx context.Context, id uint, parentID *uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("category", id)
			}
			return err
		}
		if parentID != nil {
			if *parentID == id {
				return apperr.NewValidation("category-cycle", "category %d cannot be its own parent", id)
			}
			cyclic, err := walkAncestors(tx, *parentID, id)
			if err != nil {
				return err
			}
			if cyclic {
				return apperr.NewValidation("category-cycle",
					"category %d is an ancestor of proposed parent %d", id, *parentID)
			}
		}
		category.ParentID = parentID
		return tx.Save(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory cascades to the whole subtree, items included; any item
// in the subtree still referenced by an order line blocks the deletion.
func (r *menuRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("category", id)
			}
			return err
		}
		subtree, err := collectSubtree(tx, id)
		if err != nil {
			return err
		}
		var items []models.MenuItem
		if err := tx.Where("category_id IN ?", subtree).Find(&items).Error; err != nil {
			return err
		}
		for _, item := range items {
			if err := requireItemUnreferenced(tx, item.ID); err != nil {
				return err
			}
		}
		if err := tx.Where("category_id IN ?", subtree).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		// Children first so the parent FK never dangles mid-delete.
		for i := len(subtree) - 1; i >= 0; i-- {
			if err := tx.Delete(&models.Category{}, subtree[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// collectSubtree returns the category plus all its descendants, parents
// before children.
func collectSubtree(tx *gorm.DB, rootID uint) ([]uint, error) {
	ids := []uint{rootID}
	frontier := []uint{rootID}
	for len(frontier) > 0 {
		var children []models.Category
		if err := tx.Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, child := range children {
			ids = append(ids, child.ID)
			frontier = append(frontier, child.ID)
		}
	}
	return ids, nil
}

func (r *menuRepository) CreateMenuItem(ctx context.Context, menuID, categoryID uint, name, ingredients string, price decimal.Decimal) (*models.MenuItem, error) {
	item := models.MenuItem{
		Name:               name,
		Ingredients:        ingredients,
		Price:              price,
		AvailableInKitchen: true,
		MenuID:             menuID,
		CategoryID:         categoryID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var menu models.Menu
		if err := tx.First(&menu, menuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("menu", menuID)
			}
			return err
		}
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("category", categoryID)
			}
			return err
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SetMenuItemAvailability is the kitchen-side toggle; it is independent
// of the menu/category structure.
func (r *menuRepository) SetMenuItemAvailability(ctx context.Context, itemID uint, available bool) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("menu item", itemID)
			}
			return err
		}
		item.AvailableInKitchen = available
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) DeleteMenuItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("menu item", id)
			}
			return err
		}
		if err := requireItemUnreferenced(tx, id); err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// MenuItemsByCategory lists the items of a category and all its
// subcategories.
func (r *menuRepository) MenuItemsByCategory(ctx context.Context, categoryID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("category", categoryID)
			}
			return err
		}
		subtree, err := collectSubtree(tx, categoryID)
		if err != nil {
			return err
		}
		return tx.Where("category_id IN ?", subtree).Order("id").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
