package main

import (
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"golang.org/x/term"

	"ftparchive/client"
	"ftparchive/config"
	"ftparchive/perflog"
	"ftparchive/terminal"
)

// ftparchive pushes instrument data and log files to the FTP archive.
//
//	ftparchive -dir logs data_20260829.csv
//	ftparchive -list
//	ftparchive -interactive
//
// Connection settings come from FTPARCHIVE_* environment variables;
// flags override them.
var (
	theme     *terminal.Theme
	tables    *terminal.TableFormatter
	completer *terminal.Completer

	session     *client.Session
	remoteWD    string // cached for the interactive prompt prefix
	perflogPath string
	noOverwrite bool
)

func main() {
	var (
		host        = flag.String("host", "", "archive server host (overrides FTPARCHIVE_HOST)")
		user        = flag.String("user", "", "login user (overrides FTPARCHIVE_USER)")
		dir         = flag.String("dir", "", "base remote directory (overrides FTPARCHIVE_DIR)")
		timeout     = flag.Duration("timeout", 0, "connection timeout (overrides FTPARCHIVE_TIMEOUT)")
		plain       = flag.Bool("plain", false, "disable transport security")
		insecure    = flag.Bool("insecure", false, "skip TLS certificate verification")
		list        = flag.Bool("list", false, "list the remote directory and exit")
		sizeOf      = flag.String("size", "", "report the size of a remote file and exit")
		interactive = flag.Bool("interactive", false, "start an interactive session")
		noColor     = flag.Bool("no-color", false, "disable colored output")
		logCSV      = flag.String("perflog", "", "append per-upload records to this CSV file")
	)
	flag.BoolVar(&noOverwrite, "no-overwrite", false, "skip files already present on the server")
	flag.Parse()

	theme = terminal.DefaultTheme()
	if *noColor {
		theme = terminal.Monochrome()
	}
	tables = terminal.NewTableFormatter()
	perflogPath = *logCSV

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *user != "" {
		cfg.User = *user
	}
	if *dir != "" {
		cfg.Dir = *dir
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *plain {
		cfg.Secure = false
	}
	if *insecure {
		cfg.InsecureSkipVerify = true
	}
	if cfg.Host == "" {
		fatal(errors.New("no archive host configured (set FTPARCHIVE_HOST or -host)"))
	}

	password := cfg.Password
	if password == "" {
		password, err = promptPassword(cfg.User, cfg.Host)
		if err != nil {
			fatal(err)
		}
	}

	opts := []client.Option{
		client.WithTimeout(cfg.Timeout),
		client.WithTransportSecurity(cfg.Secure),
		client.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, client.WithTLSConfig(&tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: true,
		}))
	}

	session, err = client.Open(cfg.Addr(), cfg.User, password, opts...)
	if err != nil {
		fatal(err)
	}
	defer session.Close()

	theme.Success.Printf("Connected to %s", cfg.Addr())
	if session.Secure() {
		theme.Success.Println(" (TLS)")
	} else {
		fmt.Println()
	}

	if cfg.Dir != "" {
		if err := session.ChangeDirectory(cfg.Dir); err != nil {
			fatal(err)
		}
		wd, err := session.CurrentDir()
		if err != nil {
			fatal(err)
		}
		remoteWD = wd
		theme.Info.Printf("Remote directory: %s\n", wd)
	}

	switch {
	case *interactive:
		runInteractive()
	case *list:
		listRemote()
	case *sizeOf != "":
		printSize(*sizeOf)
	default:
		if flag.NArg() == 0 {
			fatal(errors.New("nothing to do: pass files to upload, or -list/-size/-interactive"))
		}
		failed := 0
		for _, file := range flag.Args() {
			if !uploadOne(file) {
				failed++
			}
		}
		if failed > 0 {
			session.Close()
			os.Exit(1)
		}
	}
}

// promptPassword asks on the terminal when no password is configured.
func promptPassword(user, host string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s@%s: ", user, host)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// uploadOne pushes a single file and reports the outcome. A file
// skipped because it already exists on the server counts as success.
func uploadOne(file string) bool {
	var opts []client.UploadOption
	if noOverwrite {
		opts = append(opts, client.NoOverwrite())
	}

	start := time.Now()
	err := session.UploadFile(file, opts...)
	elapsed := time.Since(start)

	result := "ok"
	ok := true
	switch {
	case err == nil:
		theme.Success.Printf("Uploaded %s (%.1fs)\n", file, elapsed.Seconds())
	case errors.Is(err, client.ErrRemoteFileExists):
		theme.Info.Printf("Skipped %s: already on server\n", file)
		result = "skipped"
	default:
		theme.Error.Printf("Failed %s: %v\n", file, err)
		result = err.Error()
		ok = false
	}

	if perflogPath != "" {
		bytes := int64(0)
		if info, statErr := os.Stat(file); statErr == nil {
			bytes = info.Size()
		}
		rec := perflog.Record{File: file, Bytes: bytes, Duration: elapsed, Result: result}
		if logErr := perflog.Append(perflogPath, rec); logErr != nil {
			theme.Error.Printf("perflog: %v\n", logErr)
		}
	}

	return ok
}

func listRemote() {
	l, err := session.ListContents("")
	if err != nil {
		fatal(err)
	}
	if err := tables.FormatListing(l); err != nil {
		fatal(err)
	}
}

func printSize(name string) {
	n, known, err := session.Size(name)
	if err != nil {
		fatal(err)
	}
	if !known {
		theme.Info.Printf("%s: size unknown (server declined SIZE)\n", name)
		return
	}
	fmt.Printf("%s: %d bytes\n", name, n)
}

// runInteractive drops into a prompt loop against the open session.
func runInteractive() {
	completer = terminal.NewCompleter()
	completer.SetLister(session)

	theme.Prompt.Println("ftparchive interactive session")
	theme.Text.Println("Type 'help' for available commands")

	p := prompt.New(
		executor,
		completer.Complete,
		prompt.OptionTitle("ftparchive"),
		prompt.OptionLivePrefix(func() (string, bool) {
			if remoteWD == "" {
				return "ftp> ", true
			}
			return remoteWD + "> ", true
		}),
		prompt.OptionPrefixTextColor(prompt.Green),
		prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
		prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
		prompt.OptionSuggestionBGColor(prompt.DarkGray),
		prompt.OptionCompletionWordSeparator(" "),
	)
	p.Run()
}

// executor handles one interactive command line.
func executor(input string) {
	words := strings.Fields(strings.TrimSpace(input))
	if len(words) == 0 {
		return
	}
	cmd, args := words[0], words[1:]

	switch cmd {
	case "put":
		if len(args) == 0 {
			theme.Error.Println("usage: put <local file> [remote name]")
			return
		}
		var opts []client.UploadOption
		if noOverwrite {
			opts = append(opts, client.NoOverwrite())
		}
		if len(args) > 1 {
			opts = append(opts, client.WithRemoteName(args[1]))
		}
		start := time.Now()
		if err := session.UploadFile(args[0], opts...); err != nil {
			theme.Error.Printf("put: %v\n", err)
			return
		}
		theme.Success.Printf("Uploaded %s (%.1fs)\n", args[0], time.Since(start).Seconds())
		completer.Invalidate()

	case "ls":
		listRemote()

	case "cd":
		if len(args) != 1 {
			theme.Error.Println("usage: cd <directory>")
			return
		}
		if err := session.ChangeDirectory(args[0]); err != nil {
			theme.Error.Printf("cd: %v\n", err)
			return
		}
		if wd, err := session.CurrentDir(); err == nil {
			remoteWD = wd
		}
		completer.Invalidate()

	case "pwd":
		wd, err := session.CurrentDir()
		if err != nil {
			theme.Error.Printf("pwd: %v\n", err)
			return
		}
		fmt.Println(wd)

	case "size":
		if len(args) != 1 {
			theme.Error.Println("usage: size <remote file>")
			return
		}
		printSize(args[0])

	case "help":
		theme.Text.Println("put <file> [name]  upload a file into the current remote directory")
		theme.Text.Println("ls                 list the current remote directory")
		theme.Text.Println("cd <dir>           change directory (enters the year subdirectory)")
		theme.Text.Println("pwd                show the remote working directory")
		theme.Text.Println("size <file>        query a remote file's size")
		theme.Text.Println("exit               close the session and quit")

	case "exit", "quit":
		if err := session.Close(); err != nil {
			theme.Error.Printf("close: %v\n", err)
		}
		os.Exit(0)

	default:
		theme.Error.Printf("unknown command %q (try 'help')\n", cmd)
	}
}

func fatal(err error) {
	if session != nil {
		session.Close()
	}
	if theme != nil {
		theme.Error.Fprintf(os.Stderr, "ftparchive: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "ftparchive: %v\n", err)
	}
	os.Exit(1)
}
