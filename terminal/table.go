package terminal

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"ftparchive/client"
)

// TableFormatter renders remote directory listings as aligned tables.
type TableFormatter struct {
	table *tablewriter.Table
}

// NewTableFormatter creates a formatter writing to stdout.
func NewTableFormatter() *TableFormatter {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Type")
	table.Options(
		tablewriter.WithRendition(tw.Rendition{Borders: tw.Border{Left: tw.Pending, Right: tw.Pending, Top: tw.Pending, Bottom: tw.Pending}}),
		tablewriter.WithPadding(tw.Padding{Left: "\t", Right: "\t"}),
	)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.MaxWidth = 0
		cfg.Header = tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		}
		cfg.Row = tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		}
	})

	return &TableFormatter{table: table}
}

// FormatListing renders one listing: directories first, then files, each
// group in server order.
func (tf *TableFormatter) FormatListing(l client.Listing) error {
	if len(l.Dirs) == 0 && len(l.Files) == 0 {
		fmt.Println("Directory is empty")
		return nil
	}

	tf.table.Reset()
	tf.table.Header("Name", "Type")

	for _, d := range l.Dirs {
		tf.table.Append([]string{truncateName(d) + "/", "dir"})
	}
	for _, f := range l.Files {
		tf.table.Append([]string{truncateName(f), "file"})
	}

	return tf.table.Render()
}

func truncateName(name string) string {
	if len(name) > 50 {
		return name[:47] + "..."
	}
	return name
}
