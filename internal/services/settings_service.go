package services

import (
	"context"
	"errors"
	"fmt"

	"kasa/internal/core"
	"kasa/internal/currency"
	"kasa/internal/i18n"
	"kasa/internal/storage"
)

// SettingsService reads and writes the two user preferences, falling back to
// defaults when the settings table has no row yet.
type SettingsService struct {
	storage *storage.SQLiteRepository
}

func NewSettingsService(storage *storage.SQLiteRepository) *SettingsService {
	return &SettingsService{storage: storage}
}

func (s *SettingsService) DisplayCurrency(ctx context.Context) (string, error) {
	value, err := s.storage.GetSetting(ctx, storage.SettingDisplayCurrency)
	if errors.Is(err, core.ErrNotFound) {
		return currency.Default, nil
	}
	if err != nil {
		return "", err
	}
	if _, ok := currency.ByCode(value); !ok {
		return currency.Default, nil
	}
	return value, nil
}

func (s *SettingsService) SetDisplayCurrency(ctx context.Context, code string) error {
	if _, ok := currency.ByCode(code); !ok {
		return fmt.Errorf("%w: %q", core.ErrUnsupportedCurrency, code)
	}
	return s.storage.PutSetting(ctx, storage.SettingDisplayCurrency, code)
}

func (s *SettingsService) Language(ctx context.Context) (string, error) {
	value, err := s.storage.GetSetting(ctx, storage.SettingLanguage)
	if errors.Is(err, core.ErrNotFound) {
		return i18n.Default, nil
	}
	if err != nil {
		return "", err
	}
	if !i18n.Supported(value) {
		return i18n.Default, nil
	}
	return value, nil
}

func (s *SettingsService) SetLanguage(ctx context.Context, code string) error {
	if !i18n.Supported(code) {
		return fmt.Errorf("%w: %q", core.ErrUnsupportedLanguage, code)
	}
	return s.storage.PutSetting(ctx, storage.SettingLanguage, code)
}
