package cli

import (
	"flag"
	"fmt"
	"os"
)

type MigrateCommand struct {
	DatabasePath string
}

func NewMigrateCommand() *MigrateCommand {
	return &MigrateCommand{}
}

func (cmd *MigrateCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	fs.StringVar(&cmd.DatabasePath, "db", "", "Path to the sqlite database file (overrides DATABASE_PATH)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s migrate [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create or update the catalog tables.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *MigrateCommand) Run() error {
	// NewDatabase migrates on open
	db, log, err := openDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer db.Close()

	fmt.Println("Migrations applied")
	return nil
}
