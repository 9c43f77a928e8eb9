package repository

import (
	"context"

	"absensi-sekolah/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RankingRepository interface {
	Adjust(ctx context.Context, studentID uint, month string, delta model.RankingDelta, w model.ScoreWeights) (*model.DisciplineRanking, error)
	Replace(ctx context.Context, studentID uint, month string, present, late, absent int, w model.ScoreWeights) error
	ResetMonth(ctx context.Context, month string) error
	Rescore(ctx context.Context, month string, w model.ScoreWeights) error
	ListByMonth(ctx context.Context, month string) ([]model.DisciplineRanking, error)
}

type rankingRepository struct {
	db *gorm.DB
}

func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &rankingRepository{db}
}

// Adjust membuat baris (siswa, bulan) bila belum ada, menambah counter secara atomik,
// lalu menghitung ulang skor dengan bobot yang sedang berlaku.
func (r *rankingRepository) Adjust(ctx context.Context, studentID uint, month string, delta model.RankingDelta, w model.ScoreWeights) (*model.DisciplineRanking, error) {
	var ranking model.DisciplineRanking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRankingRow(tx, studentID, month); err != nil {
			return err
		}
		err := tx.Model(&model.DisciplineRanking{}).
			Where("student_id = ? AND month = ?", studentID, month).
			Updates(map[string]interface{}{
				"total_present": gorm.Expr("GREATEST(total_present + ?, 0)", delta.Present),
				"total_late":    gorm.Expr("GREATEST(total_late + ?, 0)", delta.Late),
				"total_absent":  gorm.Expr("GREATEST(total_absent + ?, 0)", delta.Absent),
			}).Error
		if err != nil {
			return err
		}
		if err := rescore(tx.Where("student_id = ? AND month = ?", studentID, month), w); err != nil {
			return err
		}
		return tx.Where("student_id = ? AND month = ?", studentID, month).First(&ranking).Error
	})
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

func (r *rankingRepository) Replace(ctx context.Context, studentID uint, month string, present, late, absent int, w model.ScoreWeights) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRankingRow(tx, studentID, month); err != nil {
			return err
		}
		return tx.Model(&model.DisciplineRanking{}).
			Where("student_id = ? AND month = ?", studentID, month).
			Updates(map[string]interface{}{
				"total_present": present,
				"total_late":    late,
				"total_absent":  absent,
				"score":         w.Score(present, late, absent),
			}).Error
	})
}

func (r *rankingRepository) ResetMonth(ctx context.Context, month string) error {
	return r.db.WithContext(ctx).Model(&model.DisciplineRanking{}).Where("month = ?", month).
		Updates(map[string]interface{}{"total_present": 0, "total_late": 0, "total_absent": 0, "score": 0}).Error
}

func (r *rankingRepository) Rescore(ctx context.Context, month string, w model.ScoreWeights) error {
	return rescore(r.db.WithContext(ctx).Where("month = ?", month), w)
}

func (r *rankingRepository) ListByMonth(ctx context.Context, month string) ([]model.DisciplineRanking, error) {
	var list []model.DisciplineRanking
	err := r.db.WithContext(ctx).Preload("Student").Preload("Student.Class").
		Where("month = ?", month).
		Order("score asc").Order("total_absent desc").Order("total_late desc").
		Find(&list).Error
	return list, err
}

func ensureRankingRow(tx *gorm.DB, studentID uint, month string) error {
	row := model.DisciplineRanking{StudentID: studentID, Month: month}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "month"}},
		DoNothing: true,
	}).Create(&row).Error
}

func rescore(scoped *gorm.DB, w model.ScoreWeights) error {
	return scoped.Model(&model.DisciplineRanking{}).
		Update("score", gorm.Expr("total_present * ? + total_late * ? + total_absent * ?", w.Present, w.Late, w.Absent)).Error
}
