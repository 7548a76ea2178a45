// Package backup writes and reads passphrase-encrypted archives of every
// journal record.
//
// Archives are JSON encrypted with age using scrypt passphrase-based
// encryption and ASCII armor, so they can be stored or mailed as text.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/rnwolfe/agenda/internal/entity"
)

// FormatVersion is written into every archive.
const FormatVersion = 1

// ErrWrongPassphrase is returned when decryption fails due to a bad passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorruptedArchive is returned when the archive exists but cannot be read.
var ErrCorruptedArchive = errors.New("backup archive is corrupted or unreadable")

// Archive is the decrypted content of a backup.
type Archive struct {
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	Records   []entity.Record `json:"records"`
}

// Write encrypts records into a new archive at path, replacing any file
// already there.
func Write(path string, records []entity.Record, passphrase string, now time.Time) error {
	if passphrase == "" {
		return fmt.Errorf("passphrase must not be empty")
	}
	raw, err := encrypt(Archive{Version: FormatVersion, CreatedAt: now.UTC(), Records: records}, passphrase)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	return atomicWrite(path, raw)
}

// Read decrypts the archive at path.
//
// Returns ErrWrongPassphrase if the passphrase is incorrect and
// ErrCorruptedArchive if the file cannot be decrypted or parsed.
func Read(path, passphrase string) (Archive, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Archive{}, fmt.Errorf("reading backup: %w", err)
	}
	return decrypt(raw, passphrase)
}

// Create archives every record of es into path and returns how many were
// written.
func Create(ctx context.Context, es *entity.Store, path, passphrase string, now time.Time) (int, error) {
	records, err := es.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("collecting records: %w", err)
	}
	if err := Write(path, records, passphrase, now); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Restore upserts every record of the archive at path into es. Records not
// in the archive are left alone.
func Restore(ctx context.Context, es *entity.Store, path, passphrase string) (Archive, error) {
	a, err := Read(path, passphrase)
	if err != nil {
		return Archive{}, err
	}
	if err := es.Restore(ctx, a.Records); err != nil {
		return Archive{}, err
	}
	return a, nil
}

func encrypt(a Archive, passphrase string) ([]byte, error) {
	jsonBytes, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("serializing backup: %w", err)
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)

	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := w.Write(jsonBytes); err != nil {
		return nil, fmt.Errorf("encrypting backup: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return buf.Bytes(), nil
}

func decrypt(raw []byte, passphrase string) (Archive, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return Archive{}, fmt.Errorf("creating age identity: %w", err)
	}

	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(raw)), identity)
	if err != nil {
		// age has no typed error for a bad passphrase; match its wording.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return Archive{}, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return Archive{}, fmt.Errorf("%w: %v", ErrCorruptedArchive, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return Archive{}, fmt.Errorf("%w: reading decrypted data: %v", ErrCorruptedArchive, err)
	}

	var a Archive
	if err := json.Unmarshal(plaintext, &a); err != nil {
		return Archive{}, fmt.Errorf("%w: parsing backup JSON: %v", ErrCorruptedArchive, err)
	}
	if a.Version > FormatVersion {
		return Archive{}, fmt.Errorf("backup format %d is newer than this build supports (%d)", a.Version, FormatVersion)
	}
	return a, nil
}

// atomicWrite writes data to path: temp file, fsync, rename.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsyncing backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("committing backup file: %w", err)
	}

	success = true
	return nil
}
