package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name         TEXT NOT NULL,
//     category     TEXT NOT NULL,
//     brand        TEXT NOT NULL,
//     price        NUMERIC NOT NULL,
//     style        TEXT,
//     availability BOOLEAN DEFAULT TRUE,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"column:name;type:text;not null" json:"name"`
	Category     string    `gorm:"column:category;type:text;not null" json:"category"`
	Brand        string    `gorm:"column:brand;type:text;not null" json:"brand"`
	Price        float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	Style        string    `gorm:"column:style;type:text" json:"style,omitempty"`
	Availability bool      `gorm:"column:availability;default:true" json:"availability"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
