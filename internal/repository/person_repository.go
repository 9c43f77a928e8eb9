package repository

import (
	"context"
	"errors"
	"fmt"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
)

type PersonRepository interface {
	FindByFingerprint(ctx context.Context, fingerprintID string) (*model.Person, error)
	FindByIdentifier(ctx context.Context, identifier string) (*model.Person, error)
	FindByRef(ctx context.Context, personType model.PersonType, id uint) (*model.Person, error)
	ListActive(ctx context.Context, personType model.PersonType) ([]model.Person, error)
	Delete(ctx context.Context, personType model.PersonType, id uint) error
}

type personRepository struct {
	db *gorm.DB
}

func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &personRepository{db}
}

// FindByFingerprint mencari siswa lebih dulu, lalu guru.
func (r *personRepository) FindByFingerprint(ctx context.Context, fingerprintID string) (*model.Person, error) {
	return r.findFirst(ctx, "fingerprint_id = ?", "fingerprint_id = ?", fingerprintID)
}

// FindByIdentifier menerima NIS siswa, NIP guru, atau fingerprint id.
func (r *personRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.Person, error) {
	return r.findFirst(ctx,
		"nis = ? OR fingerprint_id = ?",
		"nip = ? OR fingerprint_id = ?",
		identifier, identifier)
}

func (r *personRepository) findFirst(ctx context.Context, studentQuery, teacherQuery string, args ...interface{}) (*model.Person, error) {
	db := r.db.WithContext(ctx)

	// Gunakan Find + Limit(1) agar GORM tidak mencetak log error "record not found"
	var student model.Student
	if err := db.Preload("Class").Where(studentQuery, args...).Limit(1).Find(&student).Error; err != nil {
		return nil, err
	}
	if student.ID != 0 {
		p := student.AsPerson()
		return &p, nil
	}

	var teacher model.Teacher
	if err := db.Where(teacherQuery, args...).Limit(1).Find(&teacher).Error; err != nil {
		return nil, err
	}
	if teacher.ID != 0 {
		p := teacher.AsPerson()
		return &p, nil
	}
	return nil, ErrNotFound
}

func (r *personRepository) FindByRef(ctx context.Context, personType model.PersonType, id uint) (*model.Person, error) {
	db := r.db.WithContext(ctx)
	switch personType {
	case model.PersonStudent:
		var student model.Student
		if err := db.Preload("Class").First(&student, id).Error; err != nil {
			return nil, err
		}
		p := student.AsPerson()
		return &p, nil
	case model.PersonTeacher:
		var teacher model.Teacher
		if err := db.First(&teacher, id).Error; err != nil {
			return nil, err
		}
		p := teacher.AsPerson()
		return &p, nil
	}
	return nil, fmt.Errorf("person type %q tidak dikenal", personType)
}

func (r *personRepository) ListActive(ctx context.Context, personType model.PersonType) ([]model.Person, error) {
	db := r.db.WithContext(ctx)
	var persons []model.Person

	switch personType {
	case model.PersonStudent:
		var students []model.Student
		if err := db.Preload("Class").Where("is_active = ?", true).Order("id asc").Find(&students).Error; err != nil {
			return nil, err
		}
		for _, s := range students {
			persons = append(persons, s.AsPerson())
		}
	case model.PersonTeacher:
		var teachers []model.Teacher
		if err := db.Where("is_active = ?", true).Order("id asc").Find(&teachers).Error; err != nil {
			return nil, err
		}
		for _, t := range teachers {
			persons = append(persons, t.AsPerson())
		}
	default:
		return nil, fmt.Errorf("person type %q tidak dikenal", personType)
	}
	return persons, nil
}

// Delete menghapus orang beserta absensi dan perizinannya dalam satu transaksi.
func (r *personRepository) Delete(ctx context.Context, personType model.PersonType, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("person_type = ? AND person_id = ?", personType, id).Delete(&model.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("person_type = ? AND person_id = ?", personType, id).Delete(&model.LeaveRequest{}).Error; err != nil {
			return err
		}

		var res *gorm.DB
		switch personType {
		case model.PersonStudent:
			if err := tx.Unscoped().Where("student_id = ?", id).Delete(&model.DisciplineRanking{}).Error; err != nil {
				return err
			}
			res = tx.Unscoped().Delete(&model.Student{}, id)
		case model.PersonTeacher:
			res = tx.Unscoped().Delete(&model.Teacher{}, id)
		default:
			return errors.New("person type tidak dikenal")
		}
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
