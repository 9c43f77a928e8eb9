package model

import "gorm.io/gorm"

type PersonType string

const (
	PersonStudent PersonType = "student"
	PersonTeacher PersonType = "teacher"
)

func (t PersonType) Valid() bool {
	return t == PersonStudent || t == PersonTeacher
}

type Class struct {
	gorm.Model
	Name              string `json:"name" gorm:"size:50;not null"`
	HomeroomTeacherID *uint  `json:"homeroom_teacher_id"`

	Students []Student `json:"students,omitempty"`
}

type Student struct {
	gorm.Model
	ClassID       uint   `json:"class_id" gorm:"index"`
	NIS           string `json:"nis" gorm:"column:nis;size:30;unique;not null"`
	Name          string `json:"name" gorm:"size:120;not null"`
	FingerprintID string `json:"fingerprint_id" gorm:"size:30;unique;not null"`
	ParentPhone   string `json:"parent_phone" gorm:"size:20"` // Nomor WhatsApp orang tua
	IsActive      bool   `json:"is_active" gorm:"default:true"`

	// Relasi
	Class Class `json:"class" gorm:"foreignKey:ClassID"`
}

type Teacher struct {
	gorm.Model
	NIP           string `json:"nip" gorm:"column:nip;size:30;unique;not null"`
	Name          string `json:"name" gorm:"size:120;not null"`
	FingerprintID string `json:"fingerprint_id" gorm:"size:30;unique;not null"`
	Phone         string `json:"phone" gorm:"size:20"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`
}

// Person adalah pemilik absensi hasil resolve dari sidik jari atau identifier,
// bukan tabel.
type Person struct {
	Type      PersonType `json:"type"`
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	ClassID   *uint      `json:"class_id,omitempty"`
	ClassName string     `json:"class_name,omitempty"`
	Phone     string     `json:"phone,omitempty"`
}

func (s Student) AsPerson() Person {
	classID := s.ClassID
	return Person{
		Type:      PersonStudent,
		ID:        s.ID,
		Name:      s.Name,
		ClassID:   &classID,
		ClassName: s.Class.Name,
		Phone:     s.ParentPhone,
	}
}

func (t Teacher) AsPerson() Person {
	return Person{
		Type:  PersonTeacher,
		ID:    t.ID,
		Name:  t.Name,
		Phone: t.Phone,
	}
}
