package database

import (
	"fmt"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/usecase"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedAll mengisi data awal. Aman dijalankan berulang (FirstOrCreate / upsert).
func SeedAll(db *gorm.DB, adminPassword string, log *zap.Logger) error {
	// 1. Seed Kelas
	classes := []string{"X IPA 1", "X IPS 1", "XI IPA 1"}
	classIDs := make([]uint, 0, len(classes))
	for _, name := range classes {
		class := model.Class{Name: name}
		if err := db.FirstOrCreate(&class, model.Class{Name: name}).Error; err != nil {
			return fmt.Errorf("seed kelas: %w", err)
		}
		classIDs = append(classIDs, class.ID)
	}

	// 2. Seed Guru
	teachers := []model.Teacher{
		{NIP: "198001012005011001", Name: "Budi Santoso, S.Pd", FingerprintID: "9001", Phone: "081200000001", IsActive: true},
		{NIP: "198502022010012002", Name: "Siti Aminah, S.Pd", FingerprintID: "9002", Phone: "081200000002", IsActive: true},
	}
	for i := range teachers {
		if err := db.FirstOrCreate(&teachers[i], model.Teacher{NIP: teachers[i].NIP}).Error; err != nil {
			return fmt.Errorf("seed guru: %w", err)
		}
	}
	// Wali kelas X IPA 1
	db.Model(&model.Class{}).Where("id = ?", classIDs[0]).Update("homeroom_teacher_id", teachers[0].ID)

	// 3. Seed Siswa (5 per kelas)
	for ci, classID := range classIDs {
		for n := 1; n <= 5; n++ {
			nis := fmt.Sprintf("2025%d%03d", ci+1, n)
			student := model.Student{
				ClassID:       classID,
				NIS:           nis,
				Name:          fmt.Sprintf("Siswa %s %d", classes[ci], n),
				FingerprintID: fmt.Sprintf("%d%03d", ci+1, n),
				ParentPhone:   fmt.Sprintf("0813%08d", (ci+1)*100+n),
				IsActive:      true,
			}
			if err := db.FirstOrCreate(&student, model.Student{NIS: nis}).Error; err != nil {
				return fmt.Errorf("seed siswa: %w", err)
			}
		}
	}

	// 4. Seed Aturan Absensi: Senin-Jumat untuk tiap kelas, satu aturan guru
	weekdays := datatypes.JSONSlice[string]{"monday", "tuesday", "wednesday", "thursday", "friday"}
	for ci, classID := range classIDs {
		id := classID
		rule := model.AttendanceRule{
			ClassID:      &id,
			Name:         "Reguler " + classes[ci],
			DaysOfWeek:   weekdays,
			TimeInStart:  "06:00:00",
			TimeInEnd:    "07:15:00",
			TimeOutStart: "14:00:00",
			TimeOutEnd:   "17:00:00",
		}
		if err := db.FirstOrCreate(&rule, model.AttendanceRule{Name: rule.Name}).Error; err != nil {
			return fmt.Errorf("seed aturan: %w", err)
		}
	}
	staffRule := model.AttendanceRule{
		Name:         "Reguler Guru",
		DaysOfWeek:   weekdays,
		TimeInStart:  "06:00:00",
		TimeInEnd:    "07:00:00",
		TimeOutStart: "14:30:00",
		TimeOutEnd:   "18:00:00",
	}
	if err := db.FirstOrCreate(&staffRule, model.AttendanceRule{Name: staffRule.Name}).Error; err != nil {
		return fmt.Errorf("seed aturan guru: %w", err)
	}

	// 5. Seed Settings default, nilai yang sudah diubah admin tidak ditimpa
	for _, s := range usecase.DefaultSettings() {
		setting := s
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&setting).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", s.Key, err)
		}
	}

	// 6. Seed Akun Admin Pertama
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{Username: "admin", Name: "Administrator", Password: string(hashedPassword), Role: model.RoleAdmin}
	result := db.FirstOrCreate(&admin, model.User{Username: admin.Username})
	if result.Error != nil {
		return fmt.Errorf("seed admin: %w", result.Error)
	}
	// Paksa update password agar selalu sinkron dengan ADMIN_PASSWORD meskipun user sudah ada
	db.Model(&admin).Update("password", string(hashedPassword))

	log.Info("seeding selesai",
		zap.Int("kelas", len(classIDs)),
		zap.Int("guru", len(teachers)),
		zap.Int("settings", len(usecase.DefaultSettings())))
	return nil
}
