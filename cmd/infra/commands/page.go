package commands

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/fivetwenty-io/infra-client/internal/bookmark"
	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/fivetwenty-io/infra-client/pkg/infra"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// ErrResourceRequired is returned when a new bookmark names no resource.
var ErrResourceRequired = errors.New("--resource is required to start a new bookmark")

// BookmarkPage is the displayed result of one page command.
type BookmarkPage struct {
	Bookmark string           `json:"bookmark"         yaml:"bookmark"`
	Resource string           `json:"resource"         yaml:"resource"`
	Pages    int              `json:"pages"            yaml:"pages"`
	Items    []infra.Resource `json:"items"            yaml:"items"`
	Cursor   string           `json:"cursor,omitempty" yaml:"cursor,omitempty"`
}

// resolveResource accepts a log alias such as "card" or a registered
// resource name such as "IssuingCard".
func resolveResource(name string) (string, error) {
	if resource, err := lookupLogResource(name); err == nil {
		return resource.name, nil
	}

	if slices.Contains(infra.DefaultRegistry().Names(), name) {
		return name, nil
	}

	return "", fmt.Errorf("%w: %q", constants.ErrUnknownResource, name)
}

// NewPageCommand creates the page command.
func NewPageCommand() *cobra.Command {
	var (
		name     string
		resource string
		filters  []string
		limit    int
		pages    int
		reset    bool
		list     bool
	)

	cmd := &cobra.Command{
		Use:   "page",
		Short: "Read a collection page by page",
		Long: `Read any collection one page at a time, remembering the cursor under a
bookmark name.

Resuming in a later run needs a persistent store: set --nats-url to keep
bookmarks in a NATS key-value bucket. Without it bookmarks live in memory
and are lost when the command exits, so only --pages within one run
continue from the stored cursor. --seal encrypts stored cursors with a
passphrase.`,
		Example: `  infra page --bookmark nightly --resource card --filter types=blocked
  infra page --bookmark nightly
  infra page --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)

			store, err := bookmarkStoreOpener(ctx)
			if err != nil {
				return fmt.Errorf("failed to open bookmark store: %w", err)
			}
			defer func() { _ = store.Close() }()

			if list {
				return listBookmarks(cmd, store)
			}

			mark, err := loadBookmark(cmd, store, name, resource, filters, reset)
			if err != nil {
				return err
			}

			if mark.Exhausted() {
				return fmt.Errorf("%w: %s", constants.ErrBookmarkExhausted, mark.Name)
			}

			client, err := CreateClient(ctx)
			if err != nil {
				return err
			}

			result := BookmarkPage{Bookmark: mark.Name, Resource: mark.Resource, Items: []infra.Resource{}}

			stream := client.Resources().Stream(ctx, mark.Resource, queryOf(mark.Query), &infra.PaginationOptions{
				PageSize: limit,
				MaxPages: max(pages, 1),
				Cursor:   mark.Cursor,
			})
			defer stream.Close()

			for {
				page, ok := stream.Next()
				if !ok {
					break
				}

				if page.Err != nil {
					return fmt.Errorf("failed to fetch page: %w", page.Err)
				}

				result.Items = append(result.Items, page.Items...)
				mark.Advance(page.Cursor, time.Now())

				err = store.Put(ctx, mark)
				if err != nil {
					return fmt.Errorf("failed to save bookmark: %w", err)
				}
			}

			if err := ctx.Err(); err != nil {
				return fmt.Errorf("failed to fetch page: %w", err)
			}

			result.Pages = mark.Pages
			result.Cursor = mark.Cursor

			return render(cmd, result, func(table *tablewriter.Table) error {
				table.Header("ID", "Resource")

				for _, item := range result.Items {
					if err := table.Append(item.GetID(), result.Resource); err != nil {
						return fmt.Errorf("failed to append row: %w", err)
					}
				}

				table.Footer("Pages read", itoa(int64(result.Pages)))

				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&name, "bookmark", "b", "", "bookmark name holding the cursor")
	cmd.Flags().StringVarP(&resource, "resource", "r", "", "resource to read, a log alias or a resource name")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "query filter as key=value, repeatable")
	cmd.Flags().IntVarP(&limit, "limit", "l", constants.DefaultPageSize, "page size (at most 100)")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of pages to read in this run")
	cmd.Flags().BoolVar(&reset, "reset", false, "discard the stored cursor and start over")
	cmd.Flags().BoolVar(&list, "list", false, "list stored bookmarks")

	return cmd
}

// loadBookmark resumes a stored bookmark or starts a new one. Flags given for
// an existing bookmark replace its resource and query and restart it.
func loadBookmark(cmd *cobra.Command, store bookmark.Store, name, resource string, filters []string, reset bool) (*bookmark.Bookmark, error) {
	ctx := commandContext(cmd)

	err := bookmark.ValidateName(name)
	if err != nil {
		return nil, err
	}

	query, err := parseKeyValues(filters)
	if err != nil {
		return nil, err
	}

	mark, err := store.Get(ctx, name)

	switch {
	case errors.Is(err, constants.ErrBookmarkNotFound):
		mark = &bookmark.Bookmark{Name: name}
		reset = true
	case err != nil:
		return nil, fmt.Errorf("failed to read bookmark: %w", err)
	}

	if resource != "" {
		resolved, err := resolveResource(resource)
		if err != nil {
			return nil, err
		}

		if resolved != mark.Resource {
			mark.Resource = resolved
			reset = true
		}
	}

	if cmd.Flags().Changed("filter") && !maps.Equal(query, mark.Query) {
		mark.Query = query
		reset = true
	}

	if mark.Resource == "" {
		return nil, ErrResourceRequired
	}

	if reset {
		mark.Cursor = ""
		mark.Pages = 0
	}

	return mark, nil
}

func listBookmarks(cmd *cobra.Command, store bookmark.Store) error {
	ctx := commandContext(cmd)

	names, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookmarks: %w", err)
	}

	marks := make([]*bookmark.Bookmark, 0, len(names))

	for _, name := range names {
		mark, err := store.Get(ctx, name)
		if err != nil {
			if errors.Is(err, constants.ErrBookmarkNotFound) {
				continue
			}

			return fmt.Errorf("failed to read bookmark: %w", err)
		}

		marks = append(marks, mark)
	}

	return render(cmd, marks, func(table *tablewriter.Table) error {
		table.Header("Name", "Resource", "Pages", "Exhausted", "Updated")

		for _, mark := range marks {
			err := table.Append(mark.Name, mark.Resource, itoa(int64(mark.Pages)), fmt.Sprint(mark.Exhausted()), formatTime(&mark.Updated))
			if err != nil {
				return fmt.Errorf("failed to append row: %w", err)
			}
		}

		return nil
	})
}
