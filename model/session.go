package model

import "gorm.io/plugin/soft_delete"

type Session struct {
	ID string `json:"id" gorm:"primaryKey"`
	// Accumulator, formatted so that NaN and the infinities survive.
	Value string `json:"value"`
	// Number of lines evaluated against this session.
	Lines           int64 `json:"lines"`
	CreatedAt       int64 `json:"created_at"`
	LastAccess      int64 `json:"last_access" gorm:"index:idx_last_access"`
	ExpiredDuration int64 `json:"expired_duration"` /* seconds */
	/* 0 false 1 true */
	Deleted soft_delete.DeletedAt `json:"-" gorm:"softDelete:flag;default:0"`
}

func (Session) TableName() string {
	return "session"
}
