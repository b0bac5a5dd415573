package terminal

import (
	"os"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"

	"ftparchive/client"
)

// RemoteLister is the slice of the session the completer needs for
// remote suggestions.
type RemoteLister interface {
	ListContents(path string) (client.Listing, error)
}

// Completer suggests push-tool commands and their arguments: local
// files for put, remote directories for cd, remote files for size.
type Completer struct {
	commands     []prompt.Suggest
	lister       RemoteLister
	remoteDirs   []string
	remoteFiles  []string
	lastRefresh  time.Time
	cacheTimeout time.Duration
}

// NewCompleter creates a completer without a session attached; remote
// suggestions stay empty until SetLister is called.
func NewCompleter() *Completer {
	return &Completer{
		commands: []prompt.Suggest{
			{Text: "put", Description: "Upload a local file"},
			{Text: "ls", Description: "List the remote directory"},
			{Text: "cd", Description: "Change remote directory (enters the year subdirectory)"},
			{Text: "pwd", Description: "Show the remote working directory"},
			{Text: "size", Description: "Query the size of a remote file"},
			{Text: "help", Description: "Show available commands"},
			{Text: "exit", Description: "Close the session and quit"},
		},
		cacheTimeout: 15 * time.Second,
	}
}

// SetLister attaches the session used for remote suggestions.
func (c *Completer) SetLister(l RemoteLister) {
	c.lister = l
	c.lastRefresh = time.Time{}
}

// Invalidate drops the cached remote names, forcing a refresh on the
// next suggestion. Call it after cd or put.
func (c *Completer) Invalidate() {
	c.lastRefresh = time.Time{}
}

// Complete returns suggestions for the current input.
func (c *Completer) Complete(d prompt.Document) []prompt.Suggest {
	text := d.TextBeforeCursor()
	words := strings.Fields(text)

	if len(words) == 0 || (len(words) == 1 && !strings.HasSuffix(text, " ")) {
		prefix := ""
		if len(words) == 1 {
			prefix = words[0]
		}
		return prompt.FilterHasPrefix(c.commands, prefix, true)
	}

	last := ""
	if !strings.HasSuffix(text, " ") {
		last = words[len(words)-1]
	}

	switch words[0] {
	case "put":
		return c.localFiles(last)
	case "cd":
		return c.remote(last, true)
	case "size":
		return c.remote(last, false)
	default:
		return nil
	}
}

// localFiles suggests regular files from the process working directory.
func (c *Completer) localFiles(prefix string) []prompt.Suggest {
	entries, err := os.ReadDir(".")
	if err != nil {
		return nil
	}

	var suggestions []prompt.Suggest
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			suggestions = append(suggestions, prompt.Suggest{Text: name, Description: "Local file"})
		}
	}
	return suggestions
}

// remote suggests names from the remote working directory, refreshing
// the cache when stale.
func (c *Completer) remote(prefix string, dirs bool) []prompt.Suggest {
	if time.Since(c.lastRefresh) > c.cacheTimeout {
		c.refresh()
	}

	names := c.remoteFiles
	desc := "Remote file"
	if dirs {
		names = c.remoteDirs
		desc = "Remote directory"
	}

	var suggestions []prompt.Suggest
	for _, n := range names {
		if strings.HasPrefix(n, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		if strings.HasPrefix(strings.ToLower(n), strings.ToLower(prefix)) {
			suggestions = append(suggestions, prompt.Suggest{Text: n, Description: desc})
		}
	}
	return suggestions
}

func (c *Completer) refresh() {
	if c.lister == nil {
		return
	}
	l, err := c.lister.ListContents("")
	if err != nil {
		return // keep the stale cache
	}
	c.remoteDirs = l.Dirs
	c.remoteFiles = l.Files
	c.lastRefresh = time.Now()
}
