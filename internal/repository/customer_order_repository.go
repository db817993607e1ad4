package repository

import (
	"production_control/internal/models"

	"gorm.io/gorm"
)

type CustomerOrderRepository interface {
	Create(order *models.CustomerOrder) error
	GetByID(id uint) (*models.CustomerOrder, error)
	GetAll() ([]models.CustomerOrder, error)
	Update(order *models.CustomerOrder) error
	SetScenario(id uint, scenario models.ScenarioTag) error
	SetSecondaryFailure(id uint, note string) error
	// TransitionStatus atomically moves the order into `to` only while its
	// current status is one of `from`. Returns false when the guard did not
	// match, which callers treat as "someone else got there first".
	TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error)
}

type customerOrderRepository struct {
	db *gorm.DB
}

func NewCustomerOrderRepository(db *gorm.DB) CustomerOrderRepository {
	return &customerOrderRepository{db: db}
}

func (r *customerOrderRepository) Create(order *models.CustomerOrder) error {
	return r.db.Create(order).Error
}

func (r *customerOrderRepository) GetByID(id uint) (*models.CustomerOrder, error) {
	var order models.CustomerOrder
	err := r.db.First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *customerOrderRepository) GetAll() ([]models.CustomerOrder, error) {
	var orders []models.CustomerOrder
	err := r.db.Find(&orders).Error
	return orders, err
}

func (r *customerOrderRepository) Update(order *models.CustomerOrder) error {
	return r.db.Save(order).Error
}

func (r *customerOrderRepository) SetScenario(id uint, scenario models.ScenarioTag) error {
	return r.db.Model(&models.CustomerOrder{}).Where("id = ?", id).
		Update("scenario", string(scenario)).Error
}

func (r *customerOrderRepository) SetSecondaryFailure(id uint, note string) error {
	return r.db.Model(&models.CustomerOrder{}).Where("id = ?", id).
		Updates(map[string]interface{}{"secondary_failure": true, "secondary_failure_note": note}).Error
}

func (r *customerOrderRepository) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	return transitionStatus(r.db, &models.CustomerOrder{}, id, to, from)
}

// transitionStatus is the shared guarded update behind every order level.
// The single conditional UPDATE is what makes the completion cascade safe
// under concurrent sibling completions.
func transitionStatus(db *gorm.DB, model interface{}, id uint, to models.OrderStatus, from []models.OrderStatus) (bool, error) {
	statuses := make([]string, 0, len(from))
	for _, s := range from {
		statuses = append(statuses, string(s))
	}
	res := db.Model(model).Where("id = ? AND status IN ?", id, statuses).
		Update("status", string(to))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
