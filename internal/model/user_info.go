// Package model defines the database entities.
package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfo is a registered account. The engine itself only needs an opaque
// caller identity; this table exists so the server can issue those
// identities and resolve members by email.
type UserInfo struct {
	gorm.Model

	// Uuid is the identity carried through the engine, format "U" + 17 chars.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:user uuid"`

	Nickname string `gorm:"column:nickname;type:varchar(30);not null;comment:display name"`

	// Email is the login credential and the lookup key for addMember.
	Email string `gorm:"column:email;uniqueIndex;type:varchar(60);not null;comment:login email"`

	// Password stores the bcrypt hash, never plaintext.
	Password string `gorm:"column:password;type:varchar(100);not null;comment:bcrypt hash"`

	// Status 0=normal, 1=disabled.
	Status int8 `gorm:"column:status;index;not null;comment:0 normal, 1 disabled"`

	// RawPassword receives the plaintext from the request and is hashed in
	// BeforeSave; gorm:"-" keeps it out of the table.
	RawPassword string `gorm:"-" json:"-"`
}

func (UserInfo) TableName() string {
	return "user_info"
}

// BeforeSave hashes RawPassword into Password so callers never handle the
// hash themselves.
func (u *UserInfo) BeforeSave(tx *gorm.DB) (err error) {
	if u.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.Password = string(hash)
		u.RawPassword = ""
	}
	return nil
}

// CheckPassword verifies a login attempt against the stored hash.
func (u *UserInfo) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext))
	return err == nil
}
