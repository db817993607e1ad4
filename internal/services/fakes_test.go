package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"production_control/internal/models"
	"production_control/internal/redis"
	"production_control/pkg/masterdata"

	"gorm.io/gorm"
)

// In-memory repository fakes. Guarded transitions are applied under a
// mutex so the concurrency tests exercise the same atomicity the SQL
// conditional UPDATE gives the real implementations.

func matchesStatus(current string, from []models.OrderStatus) bool {
	for _, s := range from {
		if current == string(s) {
			return true
		}
	}
	return false
}

type fakeLineItems struct {
	mu     sync.Mutex
	items  map[uint]*models.OrderLineItem
	nextID uint
}

func newFakeLineItems() *fakeLineItems {
	return &fakeLineItems{items: make(map[uint]*models.OrderLineItem)}
}

func (f *fakeLineItems) Create(item *models.OrderLineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item.ID = f.nextID
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeLineItems) GetByID(id uint) (*models.OrderLineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeLineItems) GetForOrder(orderType models.OrderType, orderID uint) ([]models.OrderLineItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.OrderLineItem
	for _, item := range f.items {
		if item.OrderType == string(orderType) && item.OrderID == orderID {
			result = append(result, *item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeLineItems) Update(item *models.OrderLineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeLineItems) AddFulfilled(id uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok || item.FulfilledQuantity+qty > item.Quantity {
		return fmt.Errorf("fulfilled quantity would exceed requested quantity")
	}
	item.FulfilledQuantity += qty
	return nil
}

type fakeCustomerOrders struct {
	mu     sync.Mutex
	orders map[uint]*models.CustomerOrder
	nextID uint
}

func newFakeCustomerOrders() *fakeCustomerOrders {
	return &fakeCustomerOrders{orders: make(map[uint]*models.CustomerOrder)}
}

func (f *fakeCustomerOrders) Create(o *models.CustomerOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeCustomerOrders) GetByID(id uint) (*models.CustomerOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeCustomerOrders) GetAll() ([]models.CustomerOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.CustomerOrder
	for _, o := range f.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (f *fakeCustomerOrders) Update(o *models.CustomerOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeCustomerOrders) SetScenario(id uint, scenario models.ScenarioTag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		o.Scenario = string(scenario)
	}
	return nil
}

func (f *fakeCustomerOrders) SetSecondaryFailure(id uint, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		o.SecondaryFailure = true
		o.SecondaryFailureNote = note
	}
	return nil
}

func (f *fakeCustomerOrders) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || !matchesStatus(o.Status, from) {
		return false, nil
	}
	o.Status = string(to)
	return true, nil
}

type fakeWarehouseOrders struct {
	mu     sync.Mutex
	orders map[uint]*models.WarehouseOrder
	nextID uint
	items  *fakeLineItems
}

func newFakeWarehouseOrders(items *fakeLineItems) *fakeWarehouseOrders {
	return &fakeWarehouseOrders{orders: make(map[uint]*models.WarehouseOrder), items: items}
}

func (f *fakeWarehouseOrders) Create(o *models.WarehouseOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeWarehouseOrders) CreateWithItems(o *models.WarehouseOrder, items []models.OrderLineItem) error {
	if err := f.Create(o); err != nil {
		return err
	}
	for i := range items {
		items[i].OrderType = string(models.TypeWarehouseOrder)
		items[i].OrderID = o.ID
		if err := f.items.Create(&items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeWarehouseOrders) GetByID(id uint) (*models.WarehouseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeWarehouseOrders) GetAll() ([]models.WarehouseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.WarehouseOrder
	for _, o := range f.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (f *fakeWarehouseOrders) GetByCustomerOrder(customerOrderID uint) ([]models.WarehouseOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.WarehouseOrder
	for _, o := range f.orders {
		if o.CustomerOrderID != nil && *o.CustomerOrderID == customerOrderID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeWarehouseOrders) CountByCustomerOrder(customerOrderID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, completed int64
	for _, o := range f.orders {
		if o.CustomerOrderID != nil && *o.CustomerOrderID == customerOrderID {
			total++
			if o.Status == string(models.StatusCompleted) {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (f *fakeWarehouseOrders) Update(o *models.WarehouseOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeWarehouseOrders) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || !matchesStatus(o.Status, from) {
		return false, nil
	}
	o.Status = string(to)
	return true, nil
}

type fakeProductionOrders struct {
	mu     sync.Mutex
	orders map[uint]*models.ProductionOrder
	nextID uint
	items  *fakeLineItems
}

func newFakeProductionOrders(items *fakeLineItems) *fakeProductionOrders {
	return &fakeProductionOrders{orders: make(map[uint]*models.ProductionOrder), items: items}
}

func (f *fakeProductionOrders) Create(o *models.ProductionOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeProductionOrders) CreateWithItems(o *models.ProductionOrder, items []models.OrderLineItem) error {
	if err := f.Create(o); err != nil {
		return err
	}
	for i := range items {
		items[i].OrderType = string(models.TypeProductionOrder)
		items[i].OrderID = o.ID
		if err := f.items.Create(&items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeProductionOrders) GetByID(id uint) (*models.ProductionOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeProductionOrders) GetAll() ([]models.ProductionOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.ProductionOrder
	for _, o := range f.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (f *fakeProductionOrders) GetByCustomerOrder(customerOrderID uint) ([]models.ProductionOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.ProductionOrder
	for _, o := range f.orders {
		if o.CustomerOrderID != nil && *o.CustomerOrderID == customerOrderID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeProductionOrders) GetByWarehouseOrder(warehouseOrderID uint) ([]models.ProductionOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.ProductionOrder
	for _, o := range f.orders {
		if o.WarehouseOrderID != nil && *o.WarehouseOrderID == warehouseOrderID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeProductionOrders) CountByCustomerOrder(customerOrderID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, completed int64
	for _, o := range f.orders {
		if o.CustomerOrderID != nil && *o.CustomerOrderID == customerOrderID {
			total++
			if o.Status == string(models.StatusCompleted) {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (f *fakeProductionOrders) CountByWarehouseOrder(warehouseOrderID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, completed int64
	for _, o := range f.orders {
		if o.WarehouseOrderID != nil && *o.WarehouseOrderID == warehouseOrderID {
			total++
			if o.Status == string(models.StatusCompleted) {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (f *fakeProductionOrders) Update(o *models.ProductionOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeProductionOrders) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || !matchesStatus(o.Status, from) {
		return false, nil
	}
	o.Status = string(to)
	return true, nil
}

type fakeControlOrders struct {
	mu     sync.Mutex
	orders map[uint]*models.ControlOrder
	nextID uint
}

func newFakeControlOrders() *fakeControlOrders {
	return &fakeControlOrders{orders: make(map[uint]*models.ControlOrder)}
}

func (f *fakeControlOrders) Create(o *models.ControlOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeControlOrders) GetByID(id uint) (*models.ControlOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeControlOrders) GetAll() ([]models.ControlOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.ControlOrder
	for _, o := range f.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (f *fakeControlOrders) GetByProductionOrder(productionOrderID uint) ([]models.ControlOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.ControlOrder
	for _, o := range f.orders {
		if o.ProductionOrderID != nil && *o.ProductionOrderID == productionOrderID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeControlOrders) GetByWarehouseOrder(warehouseOrderID uint) ([]models.ControlOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.ControlOrder
	for _, o := range f.orders {
		if o.WarehouseOrderID != nil && *o.WarehouseOrderID == warehouseOrderID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeControlOrders) CountByProductionOrder(productionOrderID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, completed int64
	for _, o := range f.orders {
		if o.ProductionOrderID != nil && *o.ProductionOrderID == productionOrderID {
			total++
			if o.Status == string(models.StatusCompleted) {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (f *fakeControlOrders) CountByWarehouseOrder(warehouseOrderID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, completed int64
	for _, o := range f.orders {
		if o.WarehouseOrderID != nil && *o.WarehouseOrderID == warehouseOrderID {
			total++
			if o.Status == string(models.StatusCompleted) {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (f *fakeControlOrders) Update(o *models.ControlOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeControlOrders) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || !matchesStatus(o.Status, from) {
		return false, nil
	}
	o.Status = string(to)
	return true, nil
}

type fakeWorkstationOrders struct {
	mu     sync.Mutex
	orders map[uint]*models.WorkstationOrder
	nextID uint
}

func newFakeWorkstationOrders() *fakeWorkstationOrders {
	return &fakeWorkstationOrders{orders: make(map[uint]*models.WorkstationOrder)}
}

func (f *fakeWorkstationOrders) Create(o *models.WorkstationOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeWorkstationOrders) GetByID(id uint) (*models.WorkstationOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeWorkstationOrders) GetAll() ([]models.WorkstationOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.WorkstationOrder
	for _, o := range f.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (f *fakeWorkstationOrders) GetByControlOrder(controlOrderID uint) ([]models.WorkstationOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.WorkstationOrder
	for _, o := range f.orders {
		if o.ControlOrderID != nil && *o.ControlOrderID == controlOrderID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeWorkstationOrders) CountByControlOrder(controlOrderID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, completed int64
	for _, o := range f.orders {
		if o.ControlOrderID != nil && *o.ControlOrderID == controlOrderID {
			total++
			if o.Status == string(models.StatusCompleted) {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (f *fakeWorkstationOrders) CountByWarehouseOrder(warehouseOrderID uint) (int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total, completed int64
	for _, o := range f.orders {
		if o.WarehouseOrderID != nil && *o.WarehouseOrderID == warehouseOrderID {
			total++
			if o.Status == string(models.StatusCompleted) {
				completed++
			}
		}
	}
	return total, completed, nil
}

func (f *fakeWorkstationOrders) Update(o *models.WorkstationOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *o
	f.orders[o.ID] = &copied
	return nil
}

func (f *fakeWorkstationOrders) SetSecondaryFailure(id uint, note string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.orders[id]; ok {
		o.SecondaryFailure = true
		o.SecondaryFailureNote = note
	}
	return nil
}

func (f *fakeWorkstationOrders) TransitionStatus(id uint, to models.OrderStatus, from ...models.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.orders[id]
	if !ok || !matchesStatus(o.Status, from) {
		return false, nil
	}
	o.Status = string(to)
	return true, nil
}

// fakeStock implements StockService against an in-memory quantity map.
// Debits fail when stock is short or the item is marked broken, exactly
// as the real adapter converts adjust failures to false.
type creditCall struct {
	Location string
	ItemID   uint
	Qty      int
}

type fakeStock struct {
	mu         sync.Mutex
	quantities map[string]map[uint]int
	failDebit  map[uint]bool
	failCredit bool
	credits    []creditCall
}

func newFakeStock() *fakeStock {
	return &fakeStock{
		quantities: make(map[string]map[uint]int),
		failDebit:  make(map[uint]bool),
	}
}

func (f *fakeStock) set(location string, itemID uint, qty int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.quantities[location] == nil {
		f.quantities[location] = make(map[uint]int)
	}
	f.quantities[location][itemID] = qty
}

func (f *fakeStock) CategoryForLocation(locationID string) models.ItemCategory {
	return models.CategoryModule
}

func (f *fakeStock) CheckStock(locationID string, itemID uint, qty int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quantities[locationID][itemID] >= qty
}

func (f *fakeStock) Debit(locationID string, itemID uint, qty int, reason string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDebit[itemID] || f.quantities[locationID][itemID] < qty {
		return false
	}
	f.quantities[locationID][itemID] -= qty
	return true
}

func (f *fakeStock) Credit(locationID string, itemID uint, qty int, reason string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCredit {
		return false
	}
	if f.quantities[locationID] == nil {
		f.quantities[locationID] = make(map[uint]int)
	}
	f.quantities[locationID][itemID] += qty
	f.credits = append(f.credits, creditCall{Location: locationID, ItemID: itemID, Qty: qty})
	return true
}

func (f *fakeStock) creditCalls() []creditCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]creditCall(nil), f.credits...)
}

// fakeMasterData implements MasterDataAPI from plain maps.
type fakeMasterData struct {
	productModules map[uint][]masterdata.Component
	moduleParts    map[uint][]masterdata.Component
	fail           bool
}

func (f *fakeMasterData) GetProductModules(productID uint) ([]masterdata.Component, error) {
	if f.fail {
		return nil, fmt.Errorf("master data unreachable")
	}
	return f.productModules[productID], nil
}

func (f *fakeMasterData) GetModuleParts(moduleID uint) ([]masterdata.Component, error) {
	if f.fail {
		return nil, fmt.Errorf("master data unreachable")
	}
	return f.moduleParts[moduleID], nil
}

func (f *fakeMasterData) GetName(category string, itemID uint) string {
	return fmt.Sprintf("%s#%d", category, itemID)
}

// fakeSchedulerAPI records notifications and optionally fails, to show
// failures never propagate.
type fakeSchedulerAPI struct {
	mu      sync.Mutex
	fail    bool
	updates []string
}

func (f *fakeSchedulerAPI) UpdateStatus(orderNumber, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return fmt.Errorf("scheduler unreachable")
	}
	f.updates = append(f.updates, orderNumber+":"+status)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (f *fakeEvents) Create(event *models.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeEvents) GetForOrder(orderType models.OrderType, orderID uint) ([]models.OrderEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.OrderEvent
	for _, e := range f.events {
		if e.OrderType == string(orderType) && e.OrderID == orderID {
			result = append(result, e)
		}
	}
	return result, nil
}

type fakeWebhookSubs struct {
	mu     sync.Mutex
	subs   map[uint]*models.WebhookSubscription
	nextID uint
}

func newFakeWebhookSubs() *fakeWebhookSubs {
	return &fakeWebhookSubs{subs: make(map[uint]*models.WebhookSubscription)}
}

func (f *fakeWebhookSubs) Create(sub *models.WebhookSubscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	sub.ID = f.nextID
	copied := *sub
	f.subs[sub.ID] = &copied
	return nil
}

func (f *fakeWebhookSubs) GetByID(id uint) (*models.WebhookSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sub
	return &copied, nil
}

func (f *fakeWebhookSubs) GetAll() ([]models.WebhookSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.WebhookSubscription
	for _, sub := range f.subs {
		result = append(result, *sub)
	}
	return result, nil
}

func (f *fakeWebhookSubs) GetActive() ([]models.WebhookSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []models.WebhookSubscription
	for _, sub := range f.subs {
		if sub.IsActive {
			result = append(result, *sub)
		}
	}
	return result, nil
}

func (f *fakeWebhookSubs) Delete(id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, id)
	return nil
}

type fakeSettings struct {
	mu       sync.Mutex
	settings map[string]*models.Setting
	getCalls int
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{settings: make(map[string]*models.Setting)}
}

func (f *fakeSettings) Get(name string) (*models.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	setting, ok := f.settings[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *setting
	return &copied, nil
}

func (f *fakeSettings) Create(setting *models.Setting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *setting
	f.settings[setting.SettingName] = &copied
	return nil
}

func (f *fakeSettings) Update(setting *models.Setting) error {
	return f.Create(setting)
}

// fakeSettingsCache is a map-backed SettingsCache.
type fakeSettingsCache struct {
	mu     sync.Mutex
	values map[string]int
}

func newFakeSettingsCache() *fakeSettingsCache {
	return &fakeSettingsCache{values: make(map[string]int)}
}

func (f *fakeSettingsCache) GetCachedSetting(name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[name]
	if !ok {
		return 0, fmt.Errorf("setting not cached")
	}
	return value, nil
}

func (f *fakeSettingsCache) SetCachedSetting(name string, value int, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	return nil
}

func (f *fakeSettingsCache) DeleteCachedSetting(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, name)
	return nil
}

// fakeJobStore is a map-backed JobStore.
type fakeJobStore struct {
	mu      sync.Mutex
	records map[string]*redis.JobRecord
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{records: make(map[string]*redis.JobRecord)}
}

func (f *fakeJobStore) SetJob(jobID string, record *redis.JobRecord, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *record
	f.records[jobID] = &copied
	return nil
}

func (f *fakeJobStore) GetJob(jobID string) (*redis.JobRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[jobID]
	if !ok {
		return nil, fmt.Errorf("job not found")
	}
	copied := *record
	return &copied, nil
}

// fixedThreshold is a SettingsService with a constant lot size.
type fixedThreshold int

func (t fixedThreshold) LotSizeThreshold() int           { return int(t) }
func (t fixedThreshold) SetLotSizeThreshold(v int) error { return nil }
