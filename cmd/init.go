package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/rnwolfe/agenda/internal/config"
	"github.com/rnwolfe/agenda/internal/store"
	"github.com/rnwolfe/agenda/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up agenda for the first time",
	Long:  `Initialize agenda with your name, email and timezone. Creates config and data directories.`,
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	return runInitWithReader(bufio.NewReader(os.Stdin))
}

func runInitWithReader(reader *bufio.Reader) error {
	fmt.Println(ui.Title.Render(ui.IconBook + " Bem-vindo à Agenda Reflexiva!"))
	fmt.Println()
	ui.Inf("Vamos configurar tudo. Leva menos de um minuto.")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.User.Name = prompt(reader, "  Como devo chamar você?", orDefault(cfg.User.Name, guessName()))
	cfg.User.Email = prompt(reader, "  Seu email (identifica suas páginas)?", cfg.User.Email)

	for {
		tz := prompt(reader, "  Fuso horário?", orDefault(cfg.Calendar.Timezone, guessTimezone()))
		entry, _ := config.LookupKey("calendar.timezone")
		if err := entry.Set(cfg, tz); err != nil {
			ui.Warn(err.Error())
			continue
		}
		break
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	db, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	db.Close()

	paths := config.GetPaths()
	if cfg.User.Name != "" {
		ui.Ok("Tudo pronto, " + cfg.User.Name + "!")
	} else {
		ui.Ok("Tudo pronto!")
	}
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Criado:"))
	fmt.Printf("    Config  %s\n", ui.Muted.Render(paths.ConfigFile))
	if cfg.Store.Driver == store.DriverSQLite {
		fmt.Printf("    Dados   %s\n", ui.Muted.Render(orDefault(cfg.Store.DSN, paths.DBFile)))
	}
	fmt.Println()
	fmt.Printf("  Digite %s para ver o seu dia.\n", ui.Accent.Render("agenda"))
	fmt.Println()
	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func guessName() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	if f := strings.Fields(u.Name); len(f) > 0 {
		return f[0]
	}
	return u.Username
}

// guessTimezone returns the IANA name of the local zone when the TZ variable
// carries one.
func guessTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			return tz
		}
	}
	return ""
}
