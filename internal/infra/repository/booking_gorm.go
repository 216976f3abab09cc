package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/booking-assistant/internal/domain/booking"
	"github.com/BruksfildServices01/booking-assistant/internal/httperr"
	"github.com/BruksfildServices01/booking-assistant/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

// GetOrCreateCustomer returns the existing row for email untouched, or
// creates one. A concurrent insert of the same email is resolved by reading
// the winner back.
func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	name string,
	email string,
	phone string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{
		Name:  name,
		Email: email,
		Phone: phone,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		if !httperr.IsUniqueViolation(err) {
			return nil, err
		}
		var existing models.Customer
		if err := r.db.WithContext(ctx).
			Where("email = ?", email).
			First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	return &customer, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit("Customer").Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit("Customer").Save(b).Error
}

func applyFilter(q *gorm.DB, f domain.Filter) *gorm.DB {
	if f.Name != "" {
		q = q.Where("LOWER(customers.name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Email != "" {
		q = q.Where("LOWER(customers.email) LIKE ?", "%"+strings.ToLower(f.Email)+"%")
	}
	if f.Date != "" {
		q = q.Where("bookings.date = ?", f.Date)
	}
	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}
	return q
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.Filter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Joins("JOIN customers ON customers.id = bookings.customer_id").
		Preload("Customer")

	var bookings []models.Booking
	if err := applyFilter(q, f).Order("bookings.id ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) CountByStatus(
	ctx context.Context,
	f domain.Filter,
) (map[string]int64, error) {

	var rows []struct {
		Status string
		Total  int64
	}

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.status AS status, COUNT(*) AS total").
		Joins("JOIN customers ON customers.id = bookings.customer_id")

	if err := applyFilter(q, f).Group("bookings.status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Total
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
