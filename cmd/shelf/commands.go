package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/shelf/internal/exporter"
	"github.com/nikbrunner/shelf/internal/favicon"
	"github.com/nikbrunner/shelf/internal/importer"
	"github.com/nikbrunner/shelf/internal/logger"
	"github.com/nikbrunner/shelf/internal/model"
	"github.com/nikbrunner/shelf/internal/picker"
	"github.com/nikbrunner/shelf/internal/search"
	"github.com/nikbrunner/shelf/internal/stats"
)

func runAdd(a *app, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usage("shelf add <url> <title> [description]")
	}
	params := model.NewBookmarkParams{URL: args[0], Title: args[1]}
	if len(args) == 3 {
		params.Description = args[2]
	}

	b, err := a.store.Add(params)
	if err != nil {
		return notified{err}
	}
	fmt.Println(b.ID)
	return nil
}

func runAddFolder(a *app, args []string) error {
	if len(args) != 1 {
		return usage("shelf add-folder <title>")
	}

	b, err := a.store.Add(model.NewBookmarkParams{Title: args[0], IsFolder: true})
	if err != nil {
		return notified{err}
	}
	fmt.Println(b.ID)
	return nil
}

func runEdit(a *app, args []string) error {
	const line = "shelf edit <id> [-title T] [-url U] [-desc D] [-hide|-unhide]"
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return usage(line)
	}
	id := args[0]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	title := fs.String("title", "", "new title")
	url := fs.String("url", "", "new URL")
	desc := fs.String("desc", "", "new description")
	hide := fs.Bool("hide", false, "hide from the default view")
	unhide := fs.Bool("unhide", false, "show in the default view")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() > 0 || (*hide && *unhide) {
		return usage(line)
	}

	var patch model.Patch
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "url":
			patch.URL = url
		case "desc":
			patch.Description = desc
		case "hide":
			patch.IsHidden = hide
		case "unhide":
			visible := !*unhide
			patch.IsHidden = &visible
		}
	})

	if _, err := a.store.Update(id, patch); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return notified{err}
	}
	return nil
}

func runRemove(a *app, args []string) error {
	switch len(args) {
	case 0:
		return usage("shelf rm <id>...")
	case 1:
		if err := a.store.Remove(args[0]); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return err
			}
			return notified{err}
		}
		return nil
	}

	removed, err := a.store.RemoveMany(args)
	if err != nil {
		return notified{err}
	}
	if removed == 0 {
		return fmt.Errorf("%w: none of the %d ids", model.ErrNotFound, len(args))
	}
	return nil
}

func runMove(a *app, args []string) error {
	const line = "shelf mv <from> <to>"
	if len(args) != 2 {
		return usage(line)
	}
	from, err := strconv.Atoi(args[0])
	if err != nil {
		return usage(line)
	}
	to, err := strconv.Atoi(args[1])
	if err != nil {
		return usage(line)
	}

	var drag model.DragResult = model.NoMove{}
	if from != to && from >= 0 && to >= 0 && from < a.store.Len() && to < a.store.Len() {
		drag = model.Move{From: from, To: to}
	}
	if _, ok := drag.(model.NoMove); ok {
		a.info("Nothing to move")
		return nil
	}

	if err := a.store.ApplyDrag(drag); err != nil {
		return notified{err}
	}
	return nil
}

func runClear(a *app, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "skip confirmation")
	if err := fs.Parse(args); err != nil || fs.NArg() > 0 {
		return usage("shelf clear [-yes]")
	}

	if !*yes && !confirm(fmt.Sprintf("Delete all %d bookmarks?", a.store.Len())) {
		a.info("Cancelled")
		return nil
	}

	if err := a.store.Clear(); err != nil {
		return notified{err}
	}
	return nil
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// viewOptions parses the shared list/open flags.
func (a *app) viewOptions(name string, args []string) (search.Options, error) {
	line := fmt.Sprintf("shelf %s [-sort name|type|domain|date] [-desc] [-hidden] [query]", name)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	sortFlag := fs.String("sort", a.cfg.DefaultSort, "sort key")
	desc := fs.Bool("desc", false, "reverse the sort")
	hidden := fs.Bool("hidden", false, "include hidden records")
	if err := fs.Parse(args); err != nil {
		return search.Options{}, usage(line)
	}

	key, err := search.ParseSortKey(*sortFlag)
	if err != nil {
		return search.Options{}, usage(line)
	}

	opts := search.Options{
		ShowHidden: *hidden,
		Query:      search.ParseQuery(strings.Join(fs.Args(), " ")),
		Sort:       key,
		Direction:  search.Ascending,
	}
	if *desc {
		opts.Direction = search.Descending
	}
	if !opts.Query.Valid() {
		a.fail("Invalid regular expression: %s", opts.Query)
	}
	a.log.Debug("view options",
		logger.String("query", opts.Query.String()),
		logger.String("mode", opts.Query.Mode().String()),
		logger.String("sort", opts.Sort.String()),
		logger.String("direction", opts.Direction.String()))
	return opts, nil
}

func runList(a *app, args []string) error {
	opts, err := a.viewOptions("list", args)
	if err != nil {
		return err
	}

	view := search.Apply(a.store.Bookmarks(), opts)
	if len(view) == 0 {
		a.info("No bookmarks")
		return nil
	}
	renderList(os.Stdout, view, defaultListStyles())
	return nil
}

func runOpen(a *app, args []string) error {
	opts, err := a.viewOptions("open", args)
	if err != nil {
		return err
	}

	var candidates []model.Bookmark
	for _, b := range search.Apply(a.store.Bookmarks(), opts) {
		if !b.IsFolder {
			candidates = append(candidates, b)
		}
	}

	if len(candidates) == 0 {
		a.info("No bookmarks found for '%s'", opts.Query)
		return nil
	}

	var selected *model.Bookmark
	if len(candidates) == 1 {
		// Single result - select it directly
		selected = &candidates[0]
	} else {
		title := opts.Query.String()
		if title == "" {
			title = "Bookmarks"
		}
		program := tea.NewProgram(picker.New(candidates, title))
		finalModel, err := program.Run()
		if err != nil {
			return fmt.Errorf("running picker: %w", err)
		}
		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return nil
		}
		selected = finalPicker.SelectedBookmark()
	}

	if selected == nil {
		return nil
	}

	a.info("Opening: %s", selected.Title)
	if err := openURL(selected.URL); err != nil {
		return fmt.Errorf("opening %s: %w", selected.URL, err)
	}
	return nil
}

func runImport(a *app, args []string) error {
	if len(args) != 1 {
		return usage("shelf import <file.html>")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	candidates, err := importer.ParseHTML(file)
	if err != nil {
		if errors.Is(err, importer.ErrParse) {
			a.fail("Failed to import bookmarks: %s is not a readable bookmark file", args[0])
			return notified{err}
		}
		return err
	}

	if _, err := a.store.Import(candidates); err != nil {
		return notified{err}
	}
	return nil
}

func runExport(a *app, args []string) error {
	if len(args) > 1 {
		return usage("shelf export [path]")
	}

	outputPath := ""
	if len(args) == 1 {
		outputPath = args[0]
	} else {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("getting default export path: %w", err)
		}
	}

	bookmarks := a.store.Bookmarks()
	html := exporter.ExportHTML(bookmarks)
	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	a.success("Exported %d records to %s", len(bookmarks), outputPath)
	return nil
}

func runStats(a *app, args []string) error {
	if len(args) != 0 {
		return usage("shelf stats")
	}

	bookmarks := a.store.Bookmarks()
	folders := 0
	for _, b := range bookmarks {
		if b.IsFolder {
			folders++
		}
	}

	renderStats(os.Stdout, len(bookmarks)-folders, folders, stats.Domains(bookmarks), defaultListStyles())
	return nil
}

func runFavicons(a *app, args []string) error {
	if len(args) > 1 {
		return usage("shelf favicons [dir]")
	}
	dir := a.cfg.FaviconCacheDir
	if len(args) == 1 {
		dir = args[0]
	}

	hosts := favicon.UniqueHosts(a.store.Bookmarks())
	if len(hosts) == 0 {
		a.info("No favicons to fetch")
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := favicon.NewFetcher(a.cfg.FaviconTimeout)
	results := fetcher.FetchAll(ctx, hosts, a.cfg.FaviconConcurrency, func(completed, total int) {
		fmt.Fprintf(os.Stderr, "\rFetching favicons... %d/%d", completed, total)
	})
	fmt.Fprintln(os.Stderr)

	if err := favicon.WriteCache(dir, results); err != nil {
		return fmt.Errorf("writing favicon cache: %w", err)
	}

	placeholders := 0
	for _, r := range results {
		if r.Placeholder {
			placeholders++
			a.log.Debug("favicon placeholder used",
				logger.String("host", r.Bookmark.Host()),
				logger.String("reason", r.Error))
		}
	}

	a.success("Cached %d favicons in %s (%d placeholders)", len(results), dir, placeholders)
	return nil
}
