package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"clientdesk/internal/models"
)

// PageSize is the fixed number of clients per listing page.
const PageSize = 10

// ClientStore owns the lifetime of client records. It is constructed once at
// startup and handed to the HTTP layer; handlers never touch *gorm.DB directly.
type ClientStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *ClientStore {
	return &ClientStore{db: db}
}

func (s *ClientStore) Migrate() error {
	return s.db.AutoMigrate(&models.Client{})
}

// ClientForm carries the full field set submitted by the create and edit
// forms. Every field overwrites the stored value on update.
type ClientForm struct {
	Name    string
	Email   string
	Phone   string
	Company string
	Address string
	City    string
	State   string
	ZipCode string
}

// ClientPatch is the allowlist of fields a partial update may change. The
// identifier and timestamps are not representable here, so input carrying
// them is ignored by construction.
type ClientPatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zip_code"`
}

// ClientPage is one listing page plus the metadata the templates need to
// draw pagination controls.
type ClientPage struct {
	Clients []models.Client
	Page    int
	Pages   int
	Total   int64
	HasPrev bool
	HasNext bool
}

func (p ClientPage) PrevPage() int { return p.Page - 1 }
func (p ClientPage) NextPage() int { return p.Page + 1 }

func (s *ClientStore) Create(ctx context.Context, f ClientForm) (*models.Client, error) {
	taken, err := s.emailTaken(ctx, f.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	now := time.Now().UTC()
	c := models.Client{
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Company:   f.Company,
		Address:   f.Address,
		City:      f.City,
		State:     f.State,
		ZipCode:   f.ZipCode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &c, nil
}

func (s *ClientStore) Get(ctx context.Context, id uint) (*models.Client, error) {
	var c models.Client
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// Update overwrites every form field of an existing client.
func (s *ClientStore) Update(ctx context.Context, id uint, f ClientForm) (*models.Client, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	taken, err := s.emailTaken(ctx, f.Email, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	c.Company = f.Company
	c.Address = f.Address
	c.City = f.City
	c.State = f.State
	c.ZipCode = f.ZipCode
	c.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

// Patch changes only the fields present in p.
func (s *ClientStore) Patch(ctx context.Context, id uint, p ClientPatch) (*models.Client, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Email != nil && *p.Email != c.Email {
		taken, err := s.emailTaken(ctx, *p.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Company != nil {
		c.Company = *p.Company
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.City != nil {
		c.City = *p.City
	}
	if p.State != nil {
		c.State = *p.State
	}
	if p.ZipCode != nil {
		c.ZipCode = *p.ZipCode
	}
	c.UpdatedAt = time.Now().UTC()
	if err := s.db.WithContext(ctx).Save(c).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("patch client: %w", err)
	}
	return c, nil
}

// Delete removes a client permanently. Deleting an absent id reports
// ErrNotFound, so a repeated delete is not a silent no-op.
func (s *ClientStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete client: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns page (1-based) of all clients in id order. Pages beyond the
// last are empty, not an error.
func (s *ClientStore) List(ctx context.Context, page int) (*ClientPage, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}
	var cs []models.Client
	err = s.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	pages := int((total + PageSize - 1) / PageSize)
	return &ClientPage{
		Clients: cs,
		Page:    page,
		Pages:   pages,
		Total:   total,
		HasPrev: page > 1,
		HasNext: page < pages,
	}, nil
}

// All returns every client in id order.
func (s *ClientStore) All(ctx context.Context) ([]models.Client, error) {
	var cs []models.Client
	if err := s.db.WithContext(ctx).Order("id").Find(&cs).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return cs, nil
}

// Search matches q as a case-insensitive substring of name, email, phone or
// company. An empty query matches nothing.
func (s *ClientStore) Search(ctx context.Context, q string) ([]models.Client, error) {
	if q == "" {
		return []models.Client{}, nil
	}
	pat := "%" + strings.ToLower(q) + "%"
	var cs []models.Client
	err := s.db.WithContext(ctx).
		Where("lower(name) LIKE ? OR lower(email) LIKE ? OR lower(phone) LIKE ? OR lower(company) LIKE ?",
			pat, pat, pat, pat).
		Order("id").
		Find(&cs).Error
	if err != nil {
		return nil, fmt.Errorf("search clients: %w", err)
	}
	return cs, nil
}

func (s *ClientStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Client{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

func (s *ClientStore) emailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.Client{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}
