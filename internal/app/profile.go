package app

import (
	"fmt"

	"mindwell/internal/util"
	"mindwell/pkg/auth"
	"mindwell/pkg/domain"
	"mindwell/pkg/store"
)

// OpenProfile loads an existing profile by name or creates one with
// all-empty defaults. The optional passphrase locks the profile: existing
// locked profiles reject mismatches, new profiles store the hash.
func (a *App) OpenProfile(name, passphrase string) (domain.Profile, error) {
	key := store.SanitizeKey(name)
	if key == "" {
		return domain.Profile{}, ErrInvalidProfileName
	}

	existing, ok, err := a.store.GetProfileByName(key)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if ok {
		if !auth.CheckPassphrase(passphrase, existing.PassphraseHash) {
			return domain.Profile{}, ErrWrongPassphrase
		}
		return existing, nil
	}

	hash, err := auth.HashPassphrase(passphrase)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("hash passphrase: %w", err)
	}
	now := a.now()
	profile := domain.Profile{
		ID:             util.NewRecordID(),
		Name:           key,
		PassphraseHash: hash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.store.SaveProfile(profile); err != nil {
		return domain.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// GetProfile loads a profile by ID.
func (a *App) GetProfile(profileID string) (domain.Profile, error) {
	profile, ok, err := a.store.GetProfileByID(profileID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	if !ok {
		return domain.Profile{}, ErrProfileNotFound
	}
	return profile, nil
}
