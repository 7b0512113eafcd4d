package models

import "time"

// TimeFormat is the fixed pattern used for timestamps in API payloads.
const TimeFormat = "2006-01-02 15:04:05"

type Client struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"size:20;not null" json:"phone"`
	Company   string    `gorm:"size:100" json:"company"`
	Address   string    `json:"address"`
	City      string    `gorm:"size:50" json:"city"`
	State     string    `gorm:"size:50" json:"state"`
	ZipCode   string    `gorm:"size:10" json:"zip_code"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ClientJSON is the wire shape of a client record.
type ClientJSON struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zip_code"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (c Client) JSON() ClientJSON {
	return ClientJSON{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Address:   c.Address,
		City:      c.City,
		State:     c.State,
		ZipCode:   c.ZipCode,
		CreatedAt: c.CreatedAt.Format(TimeFormat),
		UpdatedAt: c.UpdatedAt.Format(TimeFormat),
	}
}

// CreatedDisplay and UpdatedDisplay back the detail template.
func (c Client) CreatedDisplay() string { return c.CreatedAt.Format(TimeFormat) }
func (c Client) UpdatedDisplay() string { return c.UpdatedAt.Format(TimeFormat) }
