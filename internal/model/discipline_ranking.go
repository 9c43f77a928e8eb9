package model

import "gorm.io/gorm"

type DisciplineRanking struct {
	gorm.Model
	StudentID    uint    `json:"student_id" gorm:"not null;uniqueIndex:idx_ranking_student_month,priority:1"`
	Month        string  `json:"month" gorm:"size:7;not null;uniqueIndex:idx_ranking_student_month,priority:2;index"` // YYYY-MM
	TotalPresent int     `json:"total_present" gorm:"not null;default:0"`
	TotalLate    int     `json:"total_late" gorm:"not null;default:0"`
	TotalAbsent  int     `json:"total_absent" gorm:"not null;default:0"`
	Score        float64 `json:"score" gorm:"not null;default:0"`

	Student Student `json:"student" gorm:"foreignKey:StudentID"`
}

// RankingDelta adalah perubahan counter akibat satu transisi status.
type RankingDelta struct {
	Present int
	Late    int
	Absent  int
}

func (d RankingDelta) IsZero() bool {
	return d.Present == 0 && d.Late == 0 && d.Absent == 0
}

type ScoreWeights struct {
	Present float64 `json:"present"`
	Late    float64 `json:"late"`
	Absent  float64 `json:"absent"`
}

func (w ScoreWeights) Score(present, late, absent int) float64 {
	return float64(present)*w.Present + float64(late)*w.Late + float64(absent)*w.Absent
}
