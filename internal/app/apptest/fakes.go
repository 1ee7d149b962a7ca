// Package apptest provides in-memory repository fakes for service
// tests.
package apptest

import (
	"context"
	"sort"

	"restaurant-bot/internal/domain"
	"restaurant-bot/internal/interfaces"
)

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Info(action, message, requestID string, details map[string]interface{})  {}
func (NopLogger) Debug(action, message, requestID string, details map[string]interface{}) {}
func (NopLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {
}

type MenuRepo struct {
	Items map[int]domain.MenuItem
}

func NewMenuRepo(items ...domain.MenuItem) *MenuRepo {
	repo := &MenuRepo{Items: make(map[int]domain.MenuItem)}
	for _, item := range items {
		repo.Items[item.ID] = item
	}
	return repo
}

var _ interfaces.MenuRepository = (*MenuRepo)(nil)

func (r *MenuRepo) ListCategories(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var categories []string
	for _, item := range r.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			categories = append(categories, item.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *MenuRepo) ListByCategory(ctx context.Context, category string) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for _, item := range r.Items {
		if item.Category == category {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MenuRepo) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for _, item := range r.Items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *MenuRepo) FindByID(ctx context.Context, itemID int) (*domain.MenuItem, error) {
	item, ok := r.Items[itemID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *MenuRepo) FindByIDs(ctx context.Context, itemIDs []int) (map[int]domain.MenuItem, error) {
	found := make(map[int]domain.MenuItem)
	for _, id := range itemIDs {
		if item, ok := r.Items[id]; ok {
			found[id] = item
		}
	}
	return found, nil
}

func (r *MenuRepo) SetAvailability(ctx context.Context, itemID int, available bool) error {
	item, ok := r.Items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Available = available
	r.Items[itemID] = item
	return nil
}

func (r *MenuRepo) SetPrice(ctx context.Context, itemID int, price float64) error {
	item, ok := r.Items[itemID]
	if !ok {
		return domain.ErrNotFound
	}
	item.Price = price
	r.Items[itemID] = item
	return nil
}

func (r *MenuRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.Items), nil
}

type CartRepo struct {
	Carts map[int64]*domain.Cart
}

func NewCartRepo() *CartRepo {
	return &CartRepo{Carts: make(map[int64]*domain.Cart)}
}

var _ interfaces.CartRepository = (*CartRepo)(nil)

func (r *CartRepo) Get(ctx context.Context, userID int64) (*domain.Cart, error) {
	if cart, ok := r.Carts[userID]; ok {
		return cart, nil
	}
	return domain.NewCart(userID), nil
}

func (r *CartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	r.Carts[cart.UserID] = cart
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, userID int64) error {
	delete(r.Carts, userID)
	return nil
}

func (r *CartRepo) CountActive(ctx context.Context) (int, error) {
	count := 0
	for _, cart := range r.Carts {
		if !cart.IsEmpty() {
			count++
		}
	}
	return count, nil
}

// OrderRepo emulates the checkout transaction against the other fakes
// when they are attached.
type OrderRepo struct {
	Orders map[int64]*domain.Order
	NextID int64
	Users  *UserRepo
	Carts  *CartRepo
}

func NewOrderRepo() *OrderRepo {
	return &OrderRepo{Orders: make(map[int64]*domain.Order), NextID: 1}
}

var _ interfaces.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) CreateFromCheckout(ctx context.Context, order *domain.Order, loyaltyPoints int) error {
	order.ID = r.NextID
	r.NextID++
	r.Orders[order.ID] = order

	if r.Users != nil {
		if profile, ok := r.Users.Profiles[order.UserID]; ok {
			profile.LoyaltyPoints += loyaltyPoints
			profile.TotalOrders++
		}
	}
	if r.Carts != nil {
		delete(r.Carts.Carts, order.UserID)
	}
	return nil
}

func (r *OrderRepo) FindByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, ok := r.Orders[orderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (r *OrderRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range r.Orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	if limit > 0 && len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (r *OrderRepo) ListByStatuses(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error) {
	var orders []*domain.Order
	for _, order := range r.Orders {
		for _, status := range statuses {
			if order.Status == status {
				orders = append(orders, order)
				break
			}
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.Status) error {
	order, ok := r.Orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *OrderRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.Orders), nil
}

func (r *OrderRepo) DeliveredStats(ctx context.Context) (int, float64, error) {
	count := 0
	revenue := 0.0
	for _, order := range r.Orders {
		if order.Status == domain.StatusDelivered {
			count++
			revenue += order.Total()
		}
	}
	return count, revenue, nil
}

type UserRepo struct {
	Profiles   map[int64]*domain.UserProfile
	NextAddrID int
}

func NewUserRepo() *UserRepo {
	return &UserRepo{Profiles: make(map[int64]*domain.UserProfile), NextAddrID: 1}
}

var _ interfaces.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) GetOrCreate(ctx context.Context, userID int64, username, firstName string) (*domain.UserProfile, error) {
	if profile, ok := r.Profiles[userID]; ok {
		if username != "" {
			profile.Username = username
		}
		if firstName != "" {
			profile.FirstName = firstName
		}
		return profile, nil
	}
	profile := &domain.UserProfile{
		UserID:      userID,
		Username:    username,
		FirstName:   firstName,
		Preferences: make(map[string]string),
	}
	r.Profiles[userID] = profile
	return profile, nil
}

func (r *UserRepo) Find(ctx context.Context, userID int64) (*domain.UserProfile, error) {
	profile, ok := r.Profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return profile, nil
}

func (r *UserRepo) UpdateContact(ctx context.Context, userID int64, phone, email *string) error {
	profile, ok := r.Profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if phone != nil {
		profile.Phone = phone
	}
	if email != nil {
		profile.Email = email
	}
	return nil
}

func (r *UserRepo) SetPreference(ctx context.Context, userID int64, key, value string) error {
	profile, ok := r.Profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if profile.Preferences == nil {
		profile.Preferences = make(map[string]string)
	}
	profile.Preferences[key] = value
	return nil
}

func (r *UserRepo) AddAddress(ctx context.Context, userID int64, address domain.Address) (int, error) {
	profile, ok := r.Profiles[userID]
	if !ok {
		return 0, domain.ErrNotFound
	}

	address.ID = r.NextAddrID
	r.NextAddrID++

	if address.IsDefault || len(profile.Addresses) == 0 {
		address.IsDefault = true
		for i := range profile.Addresses {
			profile.Addresses[i].IsDefault = false
		}
	}
	profile.Addresses = append(profile.Addresses, address)
	return address.ID, nil
}

func (r *UserRepo) DeleteAddress(ctx context.Context, userID int64, addressID int) error {
	profile, ok := r.Profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, addr := range profile.Addresses {
		if addr.ID == addressID {
			profile.Addresses = append(profile.Addresses[:i], profile.Addresses[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *UserRepo) SetDefaultAddress(ctx context.Context, userID int64, addressID int) error {
	profile, ok := r.Profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	found := false
	for i := range profile.Addresses {
		isTarget := profile.Addresses[i].ID == addressID
		profile.Addresses[i].IsDefault = isTarget
		if isTarget {
			found = true
		}
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) AddFavorite(ctx context.Context, userID int64, itemID int) error {
	profile, ok := r.Profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	if !profile.IsFavorite(itemID) {
		profile.Favorites = append(profile.Favorites, itemID)
	}
	return nil
}

func (r *UserRepo) RemoveFavorite(ctx context.Context, userID int64, itemID int) error {
	profile, ok := r.Profiles[userID]
	if !ok {
		return domain.ErrNotFound
	}
	for i, id := range profile.Favorites {
		if id == itemID {
			profile.Favorites = append(profile.Favorites[:i], profile.Favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *UserRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.Profiles), nil
}

type ReservationRepo struct {
	Reservations map[int64]*domain.Reservation
	NextID       int64
}

func NewReservationRepo() *ReservationRepo {
	return &ReservationRepo{Reservations: make(map[int64]*domain.Reservation), NextID: 1}
}

var _ interfaces.ReservationRepository = (*ReservationRepo)(nil)

func (r *ReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	reservation.ID = r.NextID
	r.NextID++
	r.Reservations[reservation.ID] = reservation
	return nil
}

func (r *ReservationRepo) FindByID(ctx context.Context, reservationID int64) (*domain.Reservation, error) {
	reservation, ok := r.Reservations[reservationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return reservation, nil
}

func (r *ReservationRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Reservation, error) {
	var reservations []*domain.Reservation
	for _, reservation := range r.Reservations {
		if reservation.UserID == userID {
			reservations = append(reservations, reservation)
		}
	}
	sort.Slice(reservations, func(i, j int) bool { return reservations[i].ID < reservations[j].ID })
	return reservations, nil
}

func (r *ReservationRepo) UpdateStatus(ctx context.Context, reservationID int64, status domain.ReservationStatus) error {
	reservation, ok := r.Reservations[reservationID]
	if !ok {
		return domain.ErrNotFound
	}
	reservation.Status = status
	return nil
}

func (r *ReservationRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.Reservations), nil
}

type ReviewRepo struct {
	Reviews map[int64]*domain.Review
	NextID  int64
}

func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{Reviews: make(map[int64]*domain.Review), NextID: 1}
}

var _ interfaces.ReviewRepository = (*ReviewRepo)(nil)

func (r *ReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	review.ID = r.NextID
	r.NextID++
	r.Reviews[review.ID] = review
	return nil
}

func (r *ReviewRepo) ListByItem(ctx context.Context, itemID int) ([]*domain.Review, error) {
	var reviews []*domain.Review
	for _, review := range r.Reviews {
		if review.ItemID != nil && *review.ItemID == itemID {
			reviews = append(reviews, review)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

func (r *ReviewRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Review, error) {
	var reviews []*domain.Review
	for _, review := range r.Reviews {
		reviews = append(reviews, review)
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID > reviews[j].ID })
	if limit > 0 && len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

func (r *ReviewRepo) AverageForItem(ctx context.Context, itemID int) (float64, int, error) {
	reviews, _ := r.ListByItem(ctx, itemID)
	if len(reviews) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews), nil
}

type PromoRepo struct {
	Promos map[string]*domain.PromoCode
}

func NewPromoRepo(promos ...*domain.PromoCode) *PromoRepo {
	repo := &PromoRepo{Promos: make(map[string]*domain.PromoCode)}
	for _, promo := range promos {
		repo.Promos[promo.Code] = promo
	}
	return repo
}

var _ interfaces.PromoRepository = (*PromoRepo)(nil)

func (r *PromoRepo) Create(ctx context.Context, promo *domain.PromoCode) error {
	if _, ok := r.Promos[promo.Code]; ok {
		return domain.ErrDuplicatePromoCode
	}
	r.Promos[promo.Code] = promo
	return nil
}

func (r *PromoRepo) Find(ctx context.Context, code string) (*domain.PromoCode, error) {
	promo, ok := r.Promos[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return promo, nil
}

func (r *PromoRepo) ListActive(ctx context.Context) ([]*domain.PromoCode, error) {
	var promos []*domain.PromoCode
	for _, promo := range r.Promos {
		if promo.IsActive {
			promos = append(promos, promo)
		}
	}
	sort.Slice(promos, func(i, j int) bool { return promos[i].Code < promos[j].Code })
	return promos, nil
}

func (r *PromoRepo) SetActive(ctx context.Context, code string, active bool) error {
	promo, ok := r.Promos[code]
	if !ok {
		return domain.ErrNotFound
	}
	promo.IsActive = active
	return nil
}

func (r *PromoRepo) CountActive(ctx context.Context) (int, error) {
	promos, _ := r.ListActive(ctx)
	return len(promos), nil
}

// Publisher records published events and can be forced to fail.
type Publisher struct {
	OrderCreated  []interfaces.OrderCreatedMessage
	StatusUpdates []interfaces.StatusUpdateMessage
	Err           error
}

var _ interfaces.EventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishOrderCreated(ctx context.Context, msg interfaces.OrderCreatedMessage) error {
	if p.Err != nil {
		return p.Err
	}
	p.OrderCreated = append(p.OrderCreated, msg)
	return nil
}

func (p *Publisher) PublishStatusUpdate(ctx context.Context, msg interfaces.StatusUpdateMessage) error {
	if p.Err != nil {
		return p.Err
	}
	p.StatusUpdates = append(p.StatusUpdates, msg)
	return nil
}
