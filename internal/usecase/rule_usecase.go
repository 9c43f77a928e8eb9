package usecase

import (
	"context"
	"errors"

	"absensi-sekolah/internal/model"
	"absensi-sekolah/internal/repository"
)

// RuleUsecase dipakai panel admin untuk mengelola aturan absensi.
type RuleUsecase struct {
	repo repository.AttendanceRuleRepository
}

func NewRuleUsecase(repo repository.AttendanceRuleRepository) *RuleUsecase {
	return &RuleUsecase{repo: repo}
}

func (u *RuleUsecase) List(ctx context.Context) ([]model.AttendanceRule, error) {
	return u.repo.ListAll(ctx)
}

func (u *RuleUsecase) Create(ctx context.Context, rule *model.AttendanceRule) error {
	rule.ID = 0
	existing, err := u.repo.ListByClass(ctx, rule.ClassID)
	if err != nil {
		return err
	}
	if err := ValidateRule(rule, existing); err != nil {
		return err
	}
	return u.repo.Create(ctx, rule)
}

func (u *RuleUsecase) Update(ctx context.Context, id uint, input *model.AttendanceRule) (*model.AttendanceRule, error) {
	rule, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}

	rule.ClassID = input.ClassID
	rule.Name = input.Name
	rule.DateOverride = input.DateOverride
	rule.DaysOfWeek = input.DaysOfWeek
	rule.TimeInStart = input.TimeInStart
	rule.TimeInEnd = input.TimeInEnd
	rule.TimeOutStart = input.TimeOutStart
	rule.TimeOutEnd = input.TimeOutEnd

	existing, err := u.repo.ListByClass(ctx, rule.ClassID)
	if err != nil {
		return nil, err
	}
	if err := ValidateRule(rule, existing); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (u *RuleUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := u.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRuleNotFound
		}
		return err
	}
	return u.repo.Delete(ctx, id)
}
