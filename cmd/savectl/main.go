package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"anthill/internal/config"
	"anthill/internal/ops"
	"anthill/internal/savesys"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stderr)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func run(cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "path":
		return cmdPath(args, out)
	case "show":
		return cmdShow(args, out)
	case "reset":
		return cmdReset(args, out)
	case "backup":
		return cmdBackup(args, out)
	case "restore":
		return cmdRestore(args, out)
	case "drill":
		return cmdDrill(args, out)
	default:
		return errUsage
	}
}

func newFlagSet(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfgPath := fs.String("config", "anthill_config.yml", "path to YAML config")
	return fs, cfgPath
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return config.FromEnv(cfg), nil
}

func openStore(cfg *config.Config) (*savesys.Store, error) {
	return savesys.NewStore(savesys.Options{
		Dir:               cfg.Save.Dir,
		FileName:          cfg.Save.FileName,
		QuarantineCorrupt: cfg.Save.Quarantine(),
		Logger:            log.New(os.Stderr, "", log.LstdFlags),
	})
}

func cmdPath(args []string, out io.Writer) error {
	fs, cfgPath := newFlagSet("path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, st.Path())
	return nil
}

// show loads the save the same way the game does, creating or recovering
// it if needed, unless --inspect asks for a read-only decode.
func cmdShow(args []string, out io.Writer) error {
	fs, cfgPath := newFlagSet("show")
	inspect := fs.Bool("inspect", false, "decode without creating or recovering the save")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if *inspect {
		d, h, err := st.Inspect()
		if err != nil {
			return err
		}
		return enc.Encode(map[string]any{
			"schemaVersion": h.SchemaVersion,
			"saveId":        h.SaveID,
			"savedAt":       h.SavedAt,
			"data":          d,
		})
	}
	d, outcome := st.LoadWithOutcome()
	return enc.Encode(map[string]any{
		"outcome":    outcome.String(),
		"currentEgg": d.CurrentEgg(),
		"data":       d,
	})
}

func cmdReset(args []string, out io.Writer) error {
	fs, cfgPath := newFlagSet("reset")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if err := st.Delete(); err != nil {
		return err
	}
	fmt.Fprintln(out, "deleted", st.Path())
	return nil
}

func cmdBackup(args []string, out io.Writer) error {
	fs, cfgPath := newFlagSet("backup")
	archive := fs.String("out", "", "output archive path (.tar.gz)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	if *archive == "" {
		ts := time.Now().UTC().Format("20060102T150405Z")
		*archive = filepath.Join(cfg.Backup.Dir, "anthill-"+ts+".tar.gz")
	}
	if err := ops.BackupSaveDir(filepath.Dir(st.Path()), *archive); err != nil {
		return err
	}
	fmt.Fprintln(out, *archive)
	return nil
}

// cmdRestore writes into the save dir without taking the Store lock. It
// must not run while a game holds the store.
func cmdRestore(args []string, out io.Writer) error {
	fs, cfgPath := newFlagSet("restore")
	archive := fs.String("archive", "", "input backup archive (.tar.gz)")
	target := fs.String("target-dir", "", "restore target directory (default: the save dir)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archive == "" {
		return fmt.Errorf("archive is required")
	}
	if *target == "" {
		cfg, err := loadConfig(*cfgPath)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		*target = filepath.Dir(st.Path())
	}
	if err := ops.RestoreSaveDir(*archive, *target); err != nil {
		return err
	}
	fmt.Fprintln(out, "restored:", *target)
	return nil
}

func cmdDrill(args []string, out io.Writer) error {
	fs, cfgPath := newFlagSet("drill")
	workDir := fs.String("work-dir", os.TempDir(), "temporary workspace for drill artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	res, err := ops.Drill(filepath.Dir(st.Path()), *workDir, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "backup:", res.Archive)
	fmt.Fprintln(out, "restored:", res.RestoreDir)
	fmt.Fprintln(out, "digest:", res.Digest)
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  savectl path    [--config anthill_config.yml]")
	fmt.Fprintln(w, "  savectl show    [--inspect]")
	fmt.Fprintln(w, "  savectl reset")
	fmt.Fprintln(w, "  savectl backup  [--out backups/backup.tar.gz]")
	fmt.Fprintln(w, "  savectl restore --archive backups/backup.tar.gz [--target-dir dir]")
	fmt.Fprintln(w, "  savectl drill   [--work-dir /tmp]")
}
