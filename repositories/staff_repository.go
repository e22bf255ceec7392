package repositories

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant-core/apperr"
	"restaurant-core/models"
)

// ErrInvalidCredentials is returned by Authenticate; it is deliberately
// outside the apperr taxonomy so the request layer maps it to 401.
var ErrInvalidCredentials = errors.New("invalid credentials")

// StaffRepository manages the Person base entity and its disjoint role
// specializations. A person holds exactly one role after specialization,
// never zero, never two.
type StaffRepository interface {
	CreatePerson(ctx context.Context, name, login, password string) (*models.Person, error)
	GetPerson(ctx context.Context, id uint) (*models.Person, error)
	PersonRole(ctx context.Context, personID uint) (string, error)
	AssignServer(ctx context.Context, personID, restaurantID uint) (*models.Server, error)
	AssignCashier(ctx context.Context, personID uint) (*models.Cashier, error)
	AssignKitchenStaff(ctx context.Context, personID uint) (*models.KitchenStaff, error)
	AssignManager(ctx context.Context, personID uint) (*models.Manager, error)
	DeletePerson(ctx context.Context, id uint) error
	Authenticate(ctx context.Context, login, password string) (*models.Person, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) CreatePerson(ctx context.Context, name, login, password string) (*models.Person, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	person := models.Person{Name: name, Login: login, PasswordHash: string(hashed)}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Person{}).Where("login = ?", login).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.NewConflict("login-taken", "login %q is already registered", login)
		}
		return tx.Create(&person).Error
	})
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *staffRepository) GetPerson(ctx context.Context, id uint) (*models.Person, error) {
	var person models.Person
	if err := r.db.WithContext(ctx).First(&person, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("person", id)
		}
		return nil, err
	}
	return &person, nil
}

// PersonRole reports which specialization a person currently holds, or
// "" when the person has not been specialized yet.
func (r *staffRepository) PersonRole(ctx context.Context, personID uint) (string, error) {
	return personRole(r.db.WithContext(ctx), personID)
}

func personRole(tx *gorm.DB, personID uint) (string, error) {
	var count int64
	if err := tx.Model(&models.Server{}).Where("person_id = ?", personID).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return models.RoleServer, nil
	}
	if err := tx.Model(&models.Cashier{}).Where("person_id = ?", personID).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return models.RoleCashier, nil
	}
	if err := tx.Model(&models.KitchenStaff{}).Where("person_id = ?", personID).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return models.RoleKitchenStaff, nil
	}
	if err := tx.Model(&models.Manager{}).Where("person_id = ?", personID).Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return models.RoleManager, nil
	}
	return "", nil
}

// requireUnspecialized loads the person and rejects the assignment when
// a role row of any kind already exists. The store has no native
// disjoint-union constraint, so disjointness is enforced here.
func requireUnspecialized(tx *gorm.DB, personID uint) error {
	var person models.Person
	if err := tx.First(&person, personID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NewNotFound("person", personID)
		}
		return err
	}
	role, err := personRole(tx, personID)
	if err != nil {
		return err
	}
	if role != "" {
		return apperr.NewConflict("role-already-assigned", "person %d already holds role %q", personID, role)
	}
	return nil
}

func (r *staffRepository) AssignServer(ctx context.Context, personID, restaurantID uint) (*models.Server, error) {
	server := models.Server{PersonID: personID, RestaurantID: restaurantID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUnspecialized(tx, personID); err != nil {
			return err
		}
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("restaurant", restaurantID)
			}
			return err
		}
		return tx.Create(&server).Error
	})
	if err != nil {
		return nil, err
	}
	return &server, nil
}

func (r *staffRepository) AssignCashier(ctx context.Context, personID uint) (*models.Cashier, error) {
	cashier := models.Cashier{PersonID: personID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUnspecialized(tx, personID); err != nil {
			return err
		}
		return tx.Create(&cashier).Error
	})
	if err != nil {
		return nil, err
	}
	return &cashier, nil
}

func (r *staffRepository) AssignKitchenStaff(ctx context.Context, personID uint) (*models.KitchenStaff, error) {
	staff := models.KitchenStaff{PersonID: personID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUnspecialized(tx, personID); err != nil {
			return err
		}
		return tx.Create(&staff).Error
	})
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) AssignManager(ctx context.Context, personID uint) (*models.Manager, error) {
	manager := models.Manager{PersonID: personID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUnspecialized(tx, personID); err != nil {
			return err
		}
		return tx.Create(&manager).Error
	})
	if err != nil {
		return nil, err
	}
	return &manager, nil
}

// DeletePerson removes the person together with its role row. Deletion
// is blocked while tables reference the person as server, orders
// reference them as kitchen destination, or a menu references them as
// manager.
func (r *staffRepository) DeletePerson(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var person models.Person
		if err := tx.First(&person, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("person", id)
			}
			return err
		}

		var server models.Server
		if err := tx.Where("person_id = ?", id).First(&server).Error; err == nil {
			var tables int64
			if err := tx.Model(&models.Table{}).Where("server_id = ?", server.ID).Count(&tables).Error; err != nil {
				return err
			}
			if tables > 0 {
				return apperr.NewIntegrity("staff-in-use", "server %d still serves %d table(s)", server.ID, tables)
			}
			if err := tx.Delete(&server).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var kitchen models.KitchenStaff
		if err := tx.Where("person_id = ?", id).First(&kitchen).Error; err == nil {
			var orders int64
			if err := tx.Model(&models.Order{}).Where("kitchen_staff_id = ?", kitchen.ID).Count(&orders).Error; err != nil {
				return err
			}
			if orders > 0 {
				return apperr.NewIntegrity("staff-in-use", "kitchen staff %d is the destination of %d order(s)", kitchen.ID, orders)
			}
			if err := tx.Delete(&kitchen).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var manager models.Manager
		if err := tx.Where("person_id = ?", id).First(&manager).Error; err == nil {
			var menus int64
			if err := tx.Model(&models.Menu{}).Where("manager_id = ?", manager.ID).Count(&menus).Error; err != nil {
				return err
			}
			if menus > 0 {
				return apperr.NewIntegrity("staff-in-use", "manager %d still owns a menu", manager.ID)
			}
			if err := tx.Delete(&manager).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var cashier models.Cashier
		if err := tx.Where("person_id = ?", id).First(&cashier).Error; err == nil {
			if err := tx.Exec("DELETE FROM bill_cashiers WHERE cashier_id = ?", cashier.ID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&cashier).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Delete(&person).Error
	})
}

func (r *staffRepository) Authenticate(ctx context.Context, login, password string) (*models.Person, error) {
	var person models.Person
	if err := r.db.WithContext(ctx).Where("login = ?", login).First(&person).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(person.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &person, nil
}
