package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/rnwolfe/agenda/internal/backup"
	"github.com/rnwolfe/agenda/internal/config"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const passphraseEnv = "AGENDA_BACKUP_PASSPHRASE"

var backupFile string

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Encrypted backups of every page and plan",
	Long: `Write or restore a passphrase-encrypted archive of the whole journal.

The passphrase is read from ` + passphraseEnv + ` or prompted for.`,
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write an encrypted archive",
	Args:  cobra.NoArgs,
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore pages from an encrypted archive",
	Long:  `Restore every record of the archive. Records not in the archive are kept.`,
	Args:  cobra.NoArgs,
	RunE:  runBackupRestore,
}

func init() {
	backupCmd.PersistentFlags().StringVarP(&backupFile, "file", "f", "", "Archive path (default in the data directory)")
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

func archivePath() string {
	if backupFile != "" {
		return backupFile
	}
	return config.GetPaths().BackupFile
}

func runBackupCreate(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pass, err := readPassphrase(true)
	if err != nil {
		return err
	}
	path := archivePath()
	n, err := backup.Create(context.Background(), a.entities, path, pass, a.now())
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("%d registros salvos em %s", n, path))
	return nil
}

func runBackupRestore(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	pass, err := readPassphrase(false)
	if err != nil {
		return err
	}
	path := archivePath()
	archive, err := backup.Restore(context.Background(), a.entities, path, pass)
	if errors.Is(err, backup.ErrWrongPassphrase) {
		return fmt.Errorf("wrong passphrase for %s", path)
	}
	if err != nil {
		return err
	}
	ui.Ok(fmt.Sprintf("%d registros restaurados", len(archive.Records)))
	fmt.Println(ui.Muted.Render("  backup de " + archive.CreatedAt.In(a.loc).Format("2006-01-02 15:04")))
	return nil
}

func readPassphrase(confirm bool) (string, error) {
	if p := os.Getenv(passphraseEnv); p != "" {
		return p, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("backup passphrase required: set %s or run interactively", passphraseEnv)
	}

	fmt.Fprint(os.Stderr, ui.Muted.Render("  "+ui.IconLock+" Senha do backup: "))
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	passphrase := strings.TrimSpace(string(passBytes))
	if passphrase == "" {
		return "", fmt.Errorf("passphrase can't be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, ui.Muted.Render("  Confirme a senha: "))
		confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if strings.TrimSpace(string(confirmBytes)) != passphrase {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return passphrase, nil
}
