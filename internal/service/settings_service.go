package service

import (
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/apperrors"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/model"
	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/repository"
)

// QuoteProviderTokenKey is the setting key holding the brapi API token.
const QuoteProviderTokenKey = "quote_provider_token"

// SettingsService stores system settings, encrypting sensitive values with
// fernet before they touch the database.
type SettingsService struct {
	settingRepo *repository.SettingRepository
	key         *fernet.Key
}

// NewSettingsService creates a new SettingsService. encodedKey is the
// base64-encoded fernet key from configuration; empty disables encryption
// and encrypted writes are rejected.
func NewSettingsService(settingRepo *repository.SettingRepository, encodedKey string) (*SettingsService, error) {
	s := &SettingsService{settingRepo: settingRepo}

	if encodedKey != "" {
		key, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("invalid fernet key: %w", err)
		}
		s.key = key
	}

	return s, nil
}

// GetSetting returns a setting with its value decrypted when needed.
func (s *SettingsService) GetSetting(key string) (model.SystemSetting, error) {
	setting, err := s.settingRepo.GetSetting(key)
	if err != nil {
		return model.SystemSetting{}, err
	}

	if setting.Encrypted {
		plain, err := s.decrypt(setting.Value)
		if err != nil {
			return model.SystemSetting{}, err
		}
		setting.Value = plain
	}

	return setting, nil
}

// SetSetting stores a setting, encrypting the value when requested.
func (s *SettingsService) SetSetting(key, value string, encrypted bool) (model.SystemSetting, error) {
	if key == "" {
		return model.SystemSetting{}, apperrors.ErrMissingRequiredField
	}

	stored := value
	if encrypted {
		token, err := s.encrypt(value)
		if err != nil {
			return model.SystemSetting{}, err
		}
		stored = token
	}

	setting := model.SystemSetting{
		Key:       key,
		Value:     stored,
		Encrypted: encrypted,
	}
	if err := s.settingRepo.UpsertSetting(setting); err != nil {
		return model.SystemSetting{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToStoreSetting, err)
	}

	// Return the plaintext view; the ciphertext is a storage detail.
	setting.Value = value
	return setting, nil
}

func (s *SettingsService) encrypt(value string) (string, error) {
	if s.key == nil {
		return "", fmt.Errorf("encryption requested but no fernet key configured")
	}
	token, err := fernet.EncryptAndSign([]byte(value), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt setting: %w", err)
	}
	return string(token), nil
}

func (s *SettingsService) decrypt(token string) (string, error) {
	if s.key == nil {
		return "", fmt.Errorf("encrypted setting stored but no fernet key configured")
	}
	plain := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{s.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt setting")
	}
	return string(plain), nil
}
