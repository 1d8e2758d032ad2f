package models

import (
	"time"
)

// Defaults applied to products created without an explicit value.
const (
	DefaultUnit   = "U"
	DefaultFamily = "Divers"
	DefaultIcon   = "📦"
)

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference   string    `gorm:"uniqueIndex;not null"     json:"reference"`
	Designation string    `gorm:"not null"                 json:"designation"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Unit        string    `gorm:"not null"                 json:"unit"`
	Family      string    `gorm:"not null;index"           json:"family"`
	Icon        string    `gorm:"not null"                 json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Family struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
	Icon string `gorm:"not null"                 json:"icon"`
}

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string     `gorm:"uniqueIndex;not null"     json:"email"`
	Name         string     `gorm:"not null"                 json:"name"`
	PasswordHash string     `gorm:"not null"                 json:"-"`
	Role         string     `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Purchase-request lifecycle. A request starts pending and moves to exactly
// one of the terminal states.
const (
	DAStatusPending   = "pending"
	DAStatusApproved  = "approved"
	DAStatusRejected  = "rejected"
	DAStatusFulfilled = "fulfilled"
)

type PurchaseRequest struct {
	ID                 uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	DANumber           string      `gorm:"uniqueIndex;not null"     json:"da_number"`
	UserEmail          string      `gorm:"not null;index"           json:"user_email"`
	UserName           string      `gorm:"not null"                 json:"user_name"`
	Site               string      `gorm:"not null"                 json:"site"`
	Status             string      `gorm:"not null;default:pending" json:"status"`
	AttachmentFilename string      `json:"attachment_filename,omitempty"`
	Comments           string      `json:"comments,omitempty"`
	Articles           []DAArticle `gorm:"foreignKey:DANumber;references:DANumber" json:"articles"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type DAArticle struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	DANumber    string  `gorm:"index;not null"            json:"da_number"`
	Reference   string  `gorm:"not null"                  json:"reference"`
	Designation string  `gorm:"not null"                  json:"designation"`
	Quantity    int     `gorm:"not null;check:quantity>0" json:"quantity"`
	Unit        string  `gorm:"not null"                  json:"unit"`
	Price       float64 `gorm:"not null"                  json:"price"`
}

type UploadedFile struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename         string    `gorm:"uniqueIndex;not null"     json:"filename"`
	OriginalFilename string    `gorm:"not null"                 json:"original_filename"`
	FilePath         string    `gorm:"not null"                 json:"file_path"`
	FileSize         int64     `gorm:"not null"                 json:"file_size"`
	MimeType         string    `json:"mime_type"`
	UploadedBy       string    `json:"uploaded_by"`
	UploadedAt       time.Time `gorm:"autoCreateTime"           json:"uploaded_at"`
}
